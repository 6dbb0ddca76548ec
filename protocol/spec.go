package protocol

import (
	"github.com/datazip-inc/cityfilter/types"
	"github.com/spf13/cobra"
)

const maskedValue = "********"

// specCmd prints the effective configuration, credentials masked.
var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := resolveConfig()
		if err != nil {
			return err
		}

		return report(cmd.OutOrStdout(), types.Message{
			Type: types.SpecMessage,
			Spec: maskSecrets(config),
		})
	},
}

func maskSecrets(config *types.Config) *types.Config {
	out := *config
	if config.S3 != nil {
		s3 := *config.S3
		if s3.AccessKey != "" {
			s3.AccessKey = maskedValue
		}
		if s3.SecretKey != "" {
			s3.SecretKey = maskedValue
		}
		out.S3 = &s3
	}
	return &out
}
