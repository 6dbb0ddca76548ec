package parquet

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/datazip-inc/cityfilter/types"
	"github.com/datazip-inc/cityfilter/writers"
	pqgo "github.com/parquet-go/parquet-go"
)

const (
	schemaName   = "city"
	maxRowsInBuf = 1000
)

// Parquet writes every column as a required UTF-8 string, Snappy compressed.
type Parquet struct{}

func (p *Parquet) Type() types.OutputFormat {
	return types.Parquet
}

// ColumnNames makes header names usable as parquet leaves: blanks get a
// positional name and repeats get the first numeric suffix not already
// taken, so every input column keeps its own leaf.
func ColumnNames(header []string) []string {
	taken := make(map[string]bool, len(header))
	for _, h := range header {
		taken[strings.TrimSpace(h)] = true
	}

	names := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i)
		}
		if used[name] {
			base := name
			for n := 1; ; n++ {
				name = fmt.Sprintf("%s_%d", base, n)
				if !used[name] && !taken[name] {
					break
				}
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func (p *Parquet) Write(ctx context.Context, w io.Writer, table *types.Table) error {
	names := ColumnNames(table.Header)
	group := pqgo.Group{}
	position := make(map[string]int, len(names))
	for i, name := range names {
		group[name] = pqgo.String()
		position[name] = i
	}
	schema := pqgo.NewSchema(schemaName, group)

	// leaves are ordered by the schema, not by the header
	fields := schema.Fields()
	writer := pqgo.NewWriter(w, schema, pqgo.Compression(&pqgo.Snappy))

	rows := make([]pqgo.Row, 0, maxRowsInBuf)
	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		if _, err := writer.WriteRows(rows); err != nil {
			return fmt.Errorf("failed to write rows: %s", err)
		}
		rows = rows[:0]
		return nil
	}

	for _, record := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		row := make(pqgo.Row, 0, len(fields))
		for col, field := range fields {
			cell := record.Cell(position[field.Name()])
			row = append(row, pqgo.ByteArrayValue([]byte(cell)).Level(0, 0, col))
		}
		rows = append(rows, row)

		if len(rows) == maxRowsInBuf {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if err := flush(); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %s", err)
	}
	return nil
}

func init() {
	writers.RegisteredWriters[types.Parquet] = func() writers.Writer {
		return new(Parquet)
	}
}
