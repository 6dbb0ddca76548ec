package json

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/datazip-inc/cityfilter/types"
	"github.com/datazip-inc/cityfilter/writers"
	"github.com/goccy/go-json"
)

// JSON writes the table as an indented array of city objects keyed by
// column name, keys in header order.
type JSON struct{}

// orderedRecord marshals a record as an object whose keys follow the header.
type orderedRecord struct {
	keys   []string
	values types.Record
}

func (o orderedRecord) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("{")
	for i, key := range o.keys {
		if i > 0 {
			b.WriteString(",")
		}

		keyBytes, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal key %s: %w", key, err)
		}
		b.Write(keyBytes)
		b.WriteString(":")

		valBytes, err := json.Marshal(o.values.Cell(i))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal value for key %s: %w", key, err)
		}
		b.Write(valBytes)
	}
	b.WriteString("}")
	return b.Bytes(), nil
}

func (j *JSON) Type() types.OutputFormat {
	return types.JSON
}

func (j *JSON) Write(ctx context.Context, w io.Writer, table *types.Table) error {
	records := make([]orderedRecord, 0, table.Len())
	for _, record := range table.Rows {
		records = append(records, orderedRecord{keys: table.Header, values: record})
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.EncodeContext(ctx, records)
}

func init() {
	writers.RegisteredWriters[types.JSON] = func() writers.Writer {
		return new(JSON)
	}
}
