// Package source reads the city list: it finds the header line below the
// preamble and loads the delimited rows that follow it.
package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/datazip-inc/cityfilter/types"
	"github.com/datazip-inc/cityfilter/utils/logger"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	ErrHeaderNotFound = errors.New("header not found")
	ErrMissingColumn  = errors.New("missing column")
	ErrInvalidUTF8    = errors.New("input is not valid UTF-8")
)

// LocateHeader returns the zero-based index of the first line starting with
// marker. ok is false when no line does.
func LocateHeader(lines []string, marker string) (idx int, ok bool) {
	for i, line := range lines {
		if strings.HasPrefix(line, marker) {
			return i, true
		}
	}
	return -1, false
}

// ReadLines reads the whole file, dropping a leading UTF-8 byte order mark.
// Lines keep their terminators so they can be joined back verbatim. Input
// that is not valid UTF-8 is rejected rather than repaired.
func ReadLines(fs afero.Fs, path string) ([]string, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input[%s]: %w", path, err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidUTF8, path)
	}

	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), unicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode input[%s]: %w", path, err)
	}
	if len(decoded) == 0 {
		return nil, nil
	}

	lines := strings.SplitAfter(string(decoded), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// Load reads path and parses it as CSV from the header line onward. Every
// column named in required must be present in the header.
func Load(fs afero.Fs, path, marker string, required ...string) (*types.Table, error) {
	lines, err := ReadLines(fs, path)
	if err != nil {
		return nil, err
	}

	idx, ok := LocateHeader(lines, marker)
	if !ok {
		return nil, fmt.Errorf("%w: no line starts with %q in %s", ErrHeaderNotFound, marker, path)
	}
	logger.Debugf("header found at line %d of %s", idx, path)

	table, err := parse(strings.Join(lines[idx:], ""))
	if err != nil {
		return nil, fmt.Errorf("failed to parse input[%s]: %w", path, err)
	}
	table.HeaderLine = idx

	for _, column := range required {
		if table.ColumnIndex(column) < 0 {
			return nil, fmt.Errorf("%w: %q not in header of %s", ErrMissingColumn, column, path)
		}
	}

	logger.Debugf("loaded %d rows with %d columns from %s", table.Len(), len(table.Header), path)
	return table, nil
}

func parse(text string) (*types.Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	table := &types.Table{Header: header}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, types.Record(rec))
	}

	return table, nil
}
