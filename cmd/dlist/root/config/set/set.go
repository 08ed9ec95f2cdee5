package set

import (
	"errors"
	"fmt"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wandb/dlist/internal/observability/wberrors"
)

// ValidConfigKeys defines the allowed configuration keys
var ValidConfigKeys = []string{
	"log-level",
	"log-format",
	"sentry-dsn",
	"format",
	"template",
}

func NewSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long:  `Set a configuration value that will be persisted in the config file.`,
		Example: heredoc.Doc(`
			# Print JSON reports by default
			$ dlist config set format json

			# Show every step in the logs
			$ dlist config set log-level debug
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			if !slices.Contains(ValidConfigKeys, key) {
				return wberrors.Newf(
					"invalid config key: %s. Valid keys are: %v",
					key, ValidConfigKeys).
					SkipSentryIf(true)
			}

			viper.Set(key, value)

			err := viper.WriteConfig()
			if errors.As(err, &viper.ConfigFileNotFoundError{}) {
				err = viper.SafeWriteConfig()
			}
			if err != nil {
				return wberrors.Enrichf(err, "failed to write config")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully set %s = %s\n", key, value)
			return nil
		},
	}

	return cmd
}
