package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wandb/dlist/cmd/dlist/root/config"
	"github.com/wandb/dlist/cmd/dlist/root/demo"
	"github.com/wandb/dlist/cmd/dlist/root/run"
	"github.com/wandb/dlist/cmd/dlist/root/version"
)

// NewRootCmd creates the dlist command tree.
//
// Scripts are read from fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dlist <command>",
		Short: "Exercise a doubly linked list",
		Long:  `Run scripted sequences of operations against doubly linked lists of strings.`,
		Example: heredoc.Doc(`
			$ dlist demo
			$ dlist run -f script.yaml --format json
		`),
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().String("log-format", "text", "Log format: text, json or logfmt")
	cmd.PersistentFlags().String("sentry-dsn", "", "Sentry DSN for error reporting (disabled if empty)")
	cmd.PersistentFlags().StringP("format", "o", "text", "Output format: text, json or yaml")
	cmd.PersistentFlags().String("template", "", "Template for output format. Accepts Go template format (e.g. --template='{{.RunID}}')")

	cmd.AddCommand(config.NewConfigCmd())
	cmd.AddCommand(demo.NewDemoCmd())
	cmd.AddCommand(run.NewRunCmd(fs))
	cmd.AddCommand(version.NewVersionCmd())

	return cmd
}
