package protocol

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/datazip-inc/cityfilter/filter"
	"github.com/datazip-inc/cityfilter/source"
	"github.com/datazip-inc/cityfilter/types"
	"github.com/datazip-inc/cityfilter/utils/logger"
	"github.com/datazip-inc/cityfilter/writers"
	"github.com/datazip-inc/cityfilter/writers/s3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Result describes one filter run.
type Result struct {
	HeaderFound bool
	Path        string
	Written     bool
	Uploaded    string
	Summary     types.Summary
}

// filterCmd represents the filter command: locate, load, normalize, filter, write.
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Write the filtered city list",
	Long:  `Filter keeps rows whose AD_code is a prefecture-level city, a direct-administered municipality or a special administrative region, and writes them to the output directory.`,
	Example: `
cityfilter
cityfilter filter --input ./China-City-List-latest.csv --output-dir ./assets
cityfilter filter --config cityfilter.yaml --format json
`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := resolveConfig()
		if err != nil {
			return err
		}
		logger.Infof("running filter with config fingerprint %s", config.Fingerprint())

		_, err = Run(cmd.Context(), appFs, config, cmd.OutOrStdout())
		return err
	},
}

// Run executes one pass of the pipeline and reports the outcome on out. A
// missing header is reported and returns a nil error without writing.
func Run(ctx context.Context, fs afero.Fs, config *types.Config, out io.Writer) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	table, err := source.Load(fs, config.InputPath, config.HeaderMarker, config.CodeColumn)
	if errors.Is(err, source.ErrHeaderNotFound) {
		logger.Warnf("%s", err)
		fmt.Fprintf(out, "Header not found: no line starting with %q in %s\n", config.HeaderMarker, config.InputPath)
		return &Result{}, nil
	}
	if err != nil {
		return nil, err
	}

	filtered, summary, err := filter.Records(table, config.CodeColumn, filter.Selection)
	if err != nil {
		return nil, err
	}
	logger.Fields("filter summary", map[string]any{
		"input":          summary.Input,
		"kept":           summary.Kept,
		"prefecture":     summary.Prefecture,
		"municipality":   summary.Municipality,
		"special_region": summary.SpecialRegion,
		"unparsed":       summary.Unparsed,
	})

	path, written, err := writers.Write(ctx, fs, config, filtered)
	if err != nil {
		return nil, err
	}

	result := &Result{
		HeaderFound: true,
		Path:        path,
		Written:     written,
		Summary:     summary,
	}

	if written && config.S3.Enabled() {
		location, err := s3.Upload(ctx, fs, config.S3, path)
		if err != nil {
			return nil, err
		}
		result.Uploaded = location
	}

	fmt.Fprintf(out, "Filtered %d rows to %s\n", summary.Kept, path)
	return result, nil
}
