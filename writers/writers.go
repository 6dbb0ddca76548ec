/*
 * Copyright 2025 Olake By Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package writers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/datazip-inc/cityfilter/types"
	"github.com/datazip-inc/cityfilter/utils/logger"
	"github.com/spf13/afero"
)

// outputMode matches a file created through os.Create under the usual umask.
const outputMode os.FileMode = 0o644

type NewFunc func() Writer

// Writer serializes a filtered table in one output format.
type Writer interface {
	Type() types.OutputFormat
	Write(ctx context.Context, w io.Writer, table *types.Table) error
}

var RegisteredWriters = map[types.OutputFormat]NewFunc{}

// New returns the writer registered for format.
func New(format types.OutputFormat) (Writer, error) {
	newfunc, found := RegisteredWriters[format]
	if !found {
		return nil, fmt.Errorf("invalid output format has been passed [%s]", format)
	}
	return newfunc(), nil
}

// Write creates the output directory and, when table has rows, writes it to
// the configured output path through a temporary file in that directory.
// written is false for an empty table; path is reported either way.
func Write(ctx context.Context, fs afero.Fs, config *types.Config, table *types.Table) (path string, written bool, err error) {
	writer, err := New(config.Format)
	if err != nil {
		return "", false, err
	}

	path = config.OutputPath()
	if err := fs.MkdirAll(config.OutputDir, os.ModePerm); err != nil {
		return path, false, fmt.Errorf("failed to create directories[%s]: %s", config.OutputDir, err)
	}

	if table.Len() == 0 {
		logger.Debugf("no rows to write, skipping %s", path)
		return path, false, nil
	}

	tmp, err := afero.TempFile(fs, filepath.Dir(path), ".cityfilter-*")
	if err != nil {
		return path, false, fmt.Errorf("failed to create temporary file: %s", err)
	}

	if err := writer.Write(ctx, tmp, table); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmp.Name())
		return path, false, fmt.Errorf("%s write error: %s", writer.Type(), err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmp.Name())
		return path, false, fmt.Errorf("failed to close %s: %s", tmp.Name(), err)
	}
	if err := fs.Chmod(tmp.Name(), outputMode); err != nil {
		_ = fs.Remove(tmp.Name())
		return path, false, fmt.Errorf("failed to set mode on %s: %s", tmp.Name(), err)
	}
	if err := fs.Rename(tmp.Name(), path); err != nil {
		_ = fs.Remove(tmp.Name())
		return path, false, fmt.Errorf("failed to move output into place: %s", err)
	}

	logger.Infof("wrote %d rows as %s to %s", table.Len(), writer.Type(), path)
	return path, true, nil
}
