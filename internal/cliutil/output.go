package cliutil

import (
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wandb/dlist/internal/observability/wberrors"
)

// HandleOutput writes a command's result according to the template or
// format flag.
//
// The "text" format (the default) prints fmt.Stringer results as is and
// anything else as JSON.
func HandleOutput(cmd *cobra.Command, result any) error {
	out := cmd.OutOrStdout()

	if templateFlag := GetString(cmd, "template"); templateFlag != "" {
		tmpl, err := template.New("output").Parse(templateFlag)
		if err != nil {
			return wberrors.Enrichf(err, "failed to parse template").
				SkipSentryIf(true)
		}

		if err := tmpl.Execute(out, result); err != nil {
			return wberrors.Enrichf(err, "failed to execute template").
				SkipSentryIf(true)
		}
		fmt.Fprintln(out)
		return nil
	}

	var output []byte
	var err error

	switch format := GetString(cmd, "format"); format {
	case "yaml":
		output, err = yaml.Marshal(result)
		if err != nil {
			return wberrors.Enrichf(err, "failed to marshal to YAML")
		}

	case "json":
		output, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			return wberrors.Enrichf(err, "failed to marshal to JSON")
		}

	case "", "text":
		if stringer, ok := result.(fmt.Stringer); ok {
			fmt.Fprintln(out, stringer.String())
			return nil
		}

		output, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			return wberrors.Enrichf(err, "failed to marshal to JSON")
		}

	default:
		return wberrors.Newf(
			"invalid format %q: expected text, json or yaml", format).
			SkipSentryIf(true)
	}

	fmt.Fprintln(out, string(output))
	return nil
}
