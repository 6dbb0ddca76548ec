package protocol

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/datazip-inc/cityfilter/constants"
	"github.com/datazip-inc/cityfilter/utils"
	"github.com/datazip-inc/cityfilter/utils/logger"
	"github.com/oklog/ulid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	// registering output writers
	_ "github.com/datazip-inc/cityfilter/writers/csv"
	_ "github.com/datazip-inc/cityfilter/writers/json"
	_ "github.com/datazip-inc/cityfilter/writers/parquet"
)

var (
	configPath string
	noSave     bool

	// appFs backs every file the commands touch
	appFs afero.Fs = afero.NewOsFs()

	commands = []*cobra.Command{}
)

// RootCmd runs the filter when called without a sub-command, which is how
// the tool has always been used.
var RootCmd = &cobra.Command{
	Use:   "cityfilter",
	Short: "Filter the China city list down to prefecture-level cities, municipalities and special regions",
	Args:  cobra.ArbitraryArgs,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		configFolder := utils.Ternary(configPath == "", filepath.Join(os.TempDir(), "cityfilter"), filepath.Dir(configPath)).(string)
		viper.Set(constants.ConfigFolder, configFolder)
		viper.Set(constants.NoSave, noSave)
		viper.Set(constants.RunID, ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String())

		logger.Init()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 && !utils.IsValidSubcommand(commands, args[0]) {
			return fmt.Errorf("'%s' is an invalid command. Use 'cityfilter --help' to display usage guide", args[0])
		}
		return filterCmd.RunE(cmd, args)
	},
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, RootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

// CreateRootCommand wires the sub-commands onto RootCmd.
func CreateRootCommand() *cobra.Command {
	if !RootCmd.HasSubCommands() {
		RootCmd.AddCommand(commands...)
	}
	return RootCmd
}

func init() {
	commands = append(commands, filterCmd, checkCmd, specCmd)

	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "(Optional) JSON or YAML config file")
	flags.String("base-dir", "", "(Optional) Directory the input and output paths default relative to; defaults to the executable's directory")
	flags.String("input", "", "(Optional) Path to the city list")
	flags.String("output-dir", "", "(Optional) Directory for the filtered file, created if missing")
	flags.String("output-file", "", "(Optional) Name of the filtered file")
	flags.String("header-marker", "", "(Optional) Prefix identifying the header line")
	flags.String("code-column", "", "(Optional) Name of the administrative division code column")
	flags.String("format", "", "(Optional) Output format: csv, json or parquet")
	flags.String("log-level", "info", "(Optional) Log level: debug, info, warn, error")
	flags.BoolVarP(&noSave, "no-save", "", false, "(Optional) Skip writing the log file")

	bindFlag(constants.BaseDir, "base-dir")
	bindFlag(constants.InputPath, "input")
	bindFlag(constants.OutputDir, "output-dir")
	bindFlag(constants.OutputFile, "output-file")
	bindFlag(constants.Marker, "header-marker")
	bindFlag(constants.CodeColumn, "code-column")
	bindFlag(constants.Format, "format")
	bindFlag(constants.LogLevel, "log-level")

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()

	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true
}
