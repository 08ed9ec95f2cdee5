package run

import (
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wandb/dlist/cmd/dlist/root/version"
	"github.com/wandb/dlist/internal/cliutil"
	"github.com/wandb/dlist/internal/listscript"
)

// NewRunCmd creates a command that runs a script file read from fs.
func NewRunCmd(fs afero.Fs) *cobra.Command {
	var filePath string
	var continueOnError bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a list script",
		Long:  `Run a YAML script of list operations and print the results.`,
		Example: heredoc.Doc(`
			# script.yaml
			name: greeting
			steps:
			  - op: insert
			    index: 0
			    value: Hello
			  - op: push_back
			    value: World
			  - op: print

			$ dlist run -f script.yaml
			< Hello, World >
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := listscript.Load(fs, filePath)
			if err != nil {
				return err
			}
			script.ContinueOnError = script.ContinueOnError || continueOnError

			return RunScript(cmd, script)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Path to the YAML script (required)")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Record failing steps instead of stopping")
	cmd.MarkFlagRequired("file")

	return cmd
}

// RunScript runs the script with a logger configured from the command's
// flags and writes the report to the command's output.
//
// If a step fails, the partial report is still written and the error is
// returned without being printed again.
func RunScript(cmd *cobra.Command, script *listscript.Script) error {
	params := cliutil.LoggerParamsFromFlags(cmd)
	params.Release = version.Version
	params.Commit = version.GitCommit

	logger, sentryClient, err := cliutil.NewLogger(cmd.ErrOrStderr(), params)
	if err != nil {
		return err
	}
	defer sentryClient.Flush(2 * time.Second)
	defer logger.Reraise()

	runner := listscript.NewRunner(listscript.RunnerParams{Logger: logger})
	report, runErr := runner.Run(script)
	if report != nil {
		if err := cliutil.HandleOutput(cmd, report); err != nil {
			return err
		}

		// The report already shows the failed step.
		cmd.SilenceErrors = runErr != nil
	}

	return runErr
}
