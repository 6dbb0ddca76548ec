package constants

const (
	// HeaderMarker is the literal prefix of the column-name row; everything
	// above it in the city list is preamble.
	HeaderMarker = "location_id,"
	ADCodeColumn = "AD_code"
	// derived per-row fields; never written to the output
	ADCodeStr = "AD_code_str"
	ADCodeInt = "AD_code_int"

	InputFileName  = "China-City-List-latest.csv"
	OutputDirName  = "assets"
	OutputFileName = "filtered_cities.csv"

	CSVFileExt     = "csv"
	JSONFileExt    = "json"
	ParquetFileExt = "parquet"

	LogFolderName = "logs"
	LogFileName   = "cityfilter.log"
)

// viper keys
const (
	EnvPrefix    = "CITYFILTER"
	ConfigFolder = "CONFIG_FOLDER"
	LogLevel     = "LOG_LEVEL"
	NoSave       = "NO_SAVE"
	RunID        = "RUN_ID"
	BaseDir      = "BASE_DIR"
	InputPath    = "INPUT_PATH"
	OutputDir    = "OUTPUT_DIR"
	OutputFile   = "OUTPUT_FILE"
	Marker       = "HEADER_MARKER"
	CodeColumn   = "CODE_COLUMN"
	Format       = "FORMAT"
)

// Codes of the four direct-administered municipalities:
// Beijing, Tianjin, Shanghai, Chongqing.
var MunicipalityCodes = []int64{110000, 120000, 310000, 500000}

// SpecialRegionPrefixes covers Taiwan (71), Hong Kong (81) and Macau (82).
var SpecialRegionPrefixes = []string{"71", "81", "82"}
