package types

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/datazip-inc/cityfilter/constants"
	"github.com/datazip-inc/cityfilter/utils"
	"github.com/mitchellh/hashstructure"
)

type S3Config struct {
	Bucket    string `json:"s3_bucket,omitempty"`
	Region    string `json:"s3_region,omitempty" validate:"required_with=Bucket"`
	Prefix    string `json:"s3_path,omitempty"`
	AccessKey string `json:"s3_access_key,omitempty" hash:"ignore"`
	SecretKey string `json:"s3_secret_key,omitempty" hash:"ignore" validate:"required_with=AccessKey"`
}

func (c *S3Config) Enabled() bool {
	return c != nil && c.Bucket != ""
}

type Config struct {
	// BaseDir plays the role of the directory the tool lives in; input and
	// output paths default relative to it.
	BaseDir      string       `json:"base_dir,omitempty"`
	InputPath    string       `json:"input_path" validate:"required"`
	OutputDir    string       `json:"output_dir" validate:"required"`
	OutputFile   string       `json:"output_file" validate:"required"`
	HeaderMarker string       `json:"header_marker" validate:"required"`
	CodeColumn   string       `json:"code_column" validate:"required"`
	Format       OutputFormat `json:"format" validate:"required,oneof=csv json parquet"`
	S3           *S3Config    `json:"s3,omitempty"`
}

// DefaultConfig lays the tool out the way the city list ships: input next
// to baseDir, output in a sibling assets directory.
func DefaultConfig(baseDir string) *Config {
	return &Config{
		BaseDir:      baseDir,
		InputPath:    filepath.Join(baseDir, constants.InputFileName),
		OutputDir:    filepath.Clean(filepath.Join(baseDir, "..", constants.OutputDirName)),
		OutputFile:   constants.OutputFileName,
		HeaderMarker: constants.HeaderMarker,
		CodeColumn:   constants.ADCodeColumn,
		Format:       CSV,
	}
}

func (c *Config) Validate() error {
	c.Format = OutputFormat(strings.ToLower(string(c.Format)))
	if c.S3 != nil {
		if err := utils.Validate(c.S3); err != nil {
			return fmt.Errorf("invalid s3 config: %s", err)
		}
	}
	return utils.Validate(c)
}

// OutputPath is where the filtered table lands. A file name without an
// extension gets the format's one.
func (c *Config) OutputPath() string {
	name := c.OutputFile
	if filepath.Ext(name) == "" {
		name = fmt.Sprintf("%s.%s", name, c.Format)
	}
	return filepath.Join(c.OutputDir, name)
}

// Fingerprint identifies the effective configuration in logs; credentials
// are excluded.
func (c *Config) Fingerprint() string {
	hash, err := hashstructure.Hash(c, nil)
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("%016x", hash)
}
