package demo

import (
	_ "embed"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/wandb/dlist/cmd/dlist/root/run"
	"github.com/wandb/dlist/internal/listscript"
)

//go:embed demo.yaml
var demoScript []byte

// NewDemoCmd creates a command that runs the built-in demonstration script.
func NewDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the demonstration script",
		Long: heredoc.Doc(`
			Build a list, copy it, change the copy and show that the original
			is unaffected.
		`),
		Example: heredoc.Doc(`
			$ dlist demo
			Size: 0
			< Hello, There, World >
			< Wow!, Super..., Hello, World >
			< Hello, There, World >
			Hello
			Found Hello: true
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := listscript.Parse(demoScript)
			if err != nil {
				return err
			}

			return run.RunScript(cmd, script)
		},
	}

	return cmd
}
