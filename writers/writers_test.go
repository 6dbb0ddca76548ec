package writers_test

import (
	"bytes"
	"context"
	stdcsv "encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/datazip-inc/cityfilter/types"
	"github.com/datazip-inc/cityfilter/writers"
	"github.com/datazip-inc/cityfilter/writers/parquet"
	"github.com/goccy/go-json"
	pqgo "github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	_ "github.com/datazip-inc/cityfilter/writers/csv"
	_ "github.com/datazip-inc/cityfilter/writers/json"
)

const bom = "\xEF\xBB\xBF"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func makeTable() *types.Table {
	return &types.Table{
		Header: []string{"location_id", "Location_Name_ZH", "AD_code"},
		Rows: []types.Record{
			{"101010100", "北京", "110000"},
			{"101320101", "Hong Kong, SAR", "810000"},
			{"101340101", "台北"},
		},
	}
}

func makeConfig(format types.OutputFormat) *types.Config {
	config := types.DefaultConfig("/app/tools")
	config.Format = format
	return config
}

// ─────────────────────────────────────────────────────────────────────────────
// Registry and file handling
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_UnknownFormat(t *testing.T) {
	_, err := writers.New(types.OutputFormat("xml"))
	assert.Error(t, err)
}

func TestWrite_CreatesDirectoryAndFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	config := makeConfig(types.CSV)

	path, written, err := writers.Write(context.Background(), fs, config, makeTable())
	require.NoError(t, err)

	assert.True(t, written)
	assert.Equal(t, filepath.Join("/app", "assets", "filtered_cities.csv"), path)

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, exists)

	entries, err := afero.ReadDir(fs, config.OutputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}

func TestWrite_OutputIsWorldReadable(t *testing.T) {
	fs := afero.NewOsFs()
	config := makeConfig(types.CSV)
	config.OutputDir = filepath.Join(t.TempDir(), "assets")

	path, written, err := writers.Write(context.Background(), fs, config, makeTable())
	require.NoError(t, err)
	require.True(t, written)

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWrite_EmptyTableWritesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	config := makeConfig(types.CSV)
	table := makeTable().WithRows(nil)

	path, written, err := writers.Write(context.Background(), fs, config, table)
	require.NoError(t, err)

	assert.False(t, written)
	assert.Equal(t, config.OutputPath(), path, "path is reported even when nothing is written")

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.False(t, exists)

	dirExists, err := afero.DirExists(fs, config.OutputDir)
	require.NoError(t, err)
	assert.True(t, dirExists, "output directory is still created")
}

func TestWrite_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, written, err := writers.Write(context.Background(), fs, makeConfig(types.CSV), makeTable())
	assert.Error(t, err)
	assert.False(t, written)
}

// ─────────────────────────────────────────────────────────────────────────────
// Formats
// ─────────────────────────────────────────────────────────────────────────────

func TestCSV_WritesByteOrderMarkAndRows(t *testing.T) {
	writer, err := writers.New(types.CSV)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writer.Write(context.Background(), &buf, makeTable()))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, bom), "output starts with a byte order mark")
	assert.Equal(t, 1, strings.Count(out, bom))

	r := stdcsv.NewReader(strings.NewReader(strings.TrimPrefix(out, bom)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"location_id", "Location_Name_ZH", "AD_code"},
		{"101010100", "北京", "110000"},
		{"101320101", "Hong Kong, SAR", "810000"},
		{"101340101", "台北"},
	}, records)
}

func TestCSV_CanceledContext(t *testing.T) {
	writer, err := writers.New(types.CSV)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, writer.Write(ctx, io.Discard, makeTable()), context.Canceled)
}

func TestJSON_WritesOrderedObjects(t *testing.T) {
	writer, err := writers.New(types.JSON)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writer.Write(context.Background(), &buf, makeTable()))

	out := buf.String()
	first := out[:strings.Index(out, "}")]
	assert.Less(t, strings.Index(first, "location_id"), strings.Index(first, "Location_Name_ZH"))
	assert.Less(t, strings.Index(first, "Location_Name_ZH"), strings.Index(first, "AD_code"))

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "Hong Kong, SAR", decoded[1]["Location_Name_ZH"])
	assert.Equal(t, "", decoded[2]["AD_code"], "short rows get empty values")
}

func TestParquet_RoundTrip(t *testing.T) {
	writer, err := writers.New(types.Parquet)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writer.Write(context.Background(), &buf, makeTable()))

	file, err := pqgo.OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, int64(3), file.NumRows())

	var names []string
	for _, field := range file.Schema().Fields() {
		names = append(names, field.Name())
	}
	assert.ElementsMatch(t, []string{"location_id", "Location_Name_ZH", "AD_code"}, names)
}

func TestParquet_ColumnNames(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		expected []string
	}{
		{
			name:     "blank and repeated names",
			header:   []string{"a", " ", "a", "b"},
			expected: []string{"a", "column_1", "a_1", "b"},
		},
		{
			name:     "suffix already in header",
			header:   []string{"a_1", "a", "a"},
			expected: []string{"a_1", "a", "a_2"},
		},
		{
			name:     "suffix appears later in header",
			header:   []string{"a", "a", "a_1"},
			expected: []string{"a", "a_2", "a_1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, parquet.ColumnNames(tc.header))
		})
	}
}

func TestParquet_CollidingNamesKeepEveryColumn(t *testing.T) {
	writer, err := writers.New(types.Parquet)
	require.NoError(t, err)

	table := &types.Table{
		Header: []string{"a_1", "a", "a"},
		Rows:   []types.Record{{"x", "y", "z"}},
	}
	var buf bytes.Buffer
	require.NoError(t, writer.Write(context.Background(), &buf, table))

	file, err := pqgo.OpenFile(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Len(t, file.Schema().Fields(), 3)
}
