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

package protocol

import (
	"fmt"
	"io"
	"os"

	"github.com/datazip-inc/cityfilter/source"
	"github.com/datazip-inc/cityfilter/types"
	"github.com/datazip-inc/cityfilter/utils"
	"github.com/datazip-inc/cityfilter/utils/logger"
	"github.com/goccy/go-json"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the input and output locations without writing anything",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := resolveConfig()
		message := types.Message{
			Type:   types.StatusMessage,
			Status: &types.StatusRow{Status: types.CheckSucceed},
		}
		if err == nil {
			err = Check(appFs, config)
		}
		if err != nil {
			message.Status.Status = types.CheckFailed
			message.Status.Message = err.Error()
		}

		return report(cmd.OutOrStdout(), message)
	},
}

// Check verifies that a run would succeed: the input is readable, carries
// the header and the code column, and the output directory is writable.
// All failures are reported together.
func Check(fs afero.Fs, config *types.Config) error {
	return utils.ErrExecSequential(
		func() error {
			return utils.Critical(config.Validate())
		},
		func() error {
			if _, err := fs.Stat(config.InputPath); err != nil {
				return utils.Critical(fmt.Errorf("input not readable: %s", err))
			}
			return nil
		},
		func() error {
			_, err := source.Load(fs, config.InputPath, config.HeaderMarker, config.CodeColumn)
			return err
		},
		utils.ErrExecFormat("output directory not writable: %s", func() error {
			return checkWritable(fs, config.OutputDir)
		}),
	)
}

func checkWritable(fs afero.Fs, dir string) error {
	if err := fs.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	tempFile, err := afero.TempFile(fs, dir, "temporary-*.txt")
	if err != nil {
		return err
	}
	logger.Debugf("temporary file created: %s", tempFile.Name())

	if _, err := tempFile.Write([]byte("cityfilter check")); err != nil {
		_ = tempFile.Close()
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	return fs.Remove(tempFile.Name())
}

func report(out io.Writer, message types.Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %s", err)
	}
	logger.Debugf("reporting %s message", message.Type)
	_, err = fmt.Fprintln(out, string(data))
	return err
}
