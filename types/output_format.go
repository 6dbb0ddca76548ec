package types

// OutputFormat selects the writer registered for the filtered table.
type OutputFormat string

const (
	CSV     OutputFormat = "csv"
	JSON    OutputFormat = "json"
	Parquet OutputFormat = "parquet"
)
