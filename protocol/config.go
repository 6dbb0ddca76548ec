package protocol

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/datazip-inc/cityfilter/constants"
	"github.com/datazip-inc/cityfilter/types"
	"github.com/datazip-inc/cityfilter/utils"
	"github.com/spf13/viper"
)

// resolveConfig builds the effective config. Precedence: flag, env, config
// file, defaults derived from the base directory.
func resolveConfig() (*types.Config, error) {
	fileConfig := &types.Config{}
	if configPath != "" {
		if err := utils.UnmarshalFile(appFs, configPath, fileConfig, false); err != nil {
			return nil, err
		}
	}

	baseDir := utils.ExecutableDir()
	if fileConfig.BaseDir != "" {
		baseDir = fileConfig.BaseDir
	}
	overlay(constants.BaseDir, &baseDir)

	config := types.DefaultConfig(baseDir)
	merge(config, fileConfig)

	overlay(constants.InputPath, &config.InputPath)
	overlay(constants.OutputDir, &config.OutputDir)
	overlay(constants.OutputFile, &config.OutputFile)
	overlay(constants.Marker, &config.HeaderMarker)
	overlay(constants.CodeColumn, &config.CodeColumn)
	format := string(config.Format)
	overlay(constants.Format, &format)
	config.Format = types.OutputFormat(strings.ToLower(format))

	// the default file name follows the format
	if config.OutputFile == constants.OutputFileName && config.Format != types.CSV {
		config.OutputFile = fmt.Sprintf("%s.%s", strings.TrimSuffix(constants.OutputFileName, filepath.Ext(constants.OutputFileName)), config.Format)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %s", err)
	}
	return config, nil
}

func overlay(key string, dst *string) {
	if viper.IsSet(key) {
		if value := viper.GetString(key); value != "" {
			*dst = value
		}
	}
}

func merge(dst, src *types.Config) {
	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	set(&dst.InputPath, src.InputPath)
	set(&dst.OutputDir, src.OutputDir)
	set(&dst.OutputFile, src.OutputFile)
	set(&dst.HeaderMarker, src.HeaderMarker)
	set(&dst.CodeColumn, src.CodeColumn)
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.S3 != nil {
		dst.S3 = src.S3
	}
}
