package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"io"

	"github.com/datazip-inc/cityfilter/types"
	"github.com/datazip-inc/cityfilter/writers"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSV writes UTF-8 with a leading byte order mark, like the city list it
// is filtered from.
type CSV struct{}

func (c *CSV) Type() types.OutputFormat {
	return types.CSV
}

func (c *CSV) Write(ctx context.Context, w io.Writer, table *types.Table) error {
	bom := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := stdcsv.NewWriter(bom)

	if err := cw.Write(table.Header); err != nil {
		return fmt.Errorf("failed to write header: %s", err)
	}
	for i, record := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row[%d]: %s", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bom.Close()
}

func init() {
	writers.RegisteredWriters[types.CSV] = func() writers.Writer {
		return new(CSV)
	}
}
