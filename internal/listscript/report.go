package listscript

import (
	"fmt"
	"strings"
)

// Report is the outcome of running a script.
type Report struct {
	RunID   string              `json:"runId" yaml:"runId"`
	Script  string              `json:"script" yaml:"script"`
	Results []StepResult        `json:"results" yaml:"results"`
	Lists   map[string][]string `json:"lists" yaml:"lists"`
}

// StepResult is the outcome of a single step.
type StepResult struct {
	// Step is the 1-based position of the step in the script.
	Step int    `json:"step" yaml:"step"`
	Op   Op     `json:"op" yaml:"op"`
	List string `json:"list" yaml:"list"`

	// Output is the text produced by query ops like print and find.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Error is the failure message if the step failed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// String renders the report the way the demo program prints: one line
// per output or failed step.
func (r *Report) String() string {
	var sb strings.Builder

	for _, result := range r.Results {
		switch {
		case result.Error != "":
			fmt.Fprintf(&sb, "error: %s\n", result.Error)
		case result.Output != "":
			sb.WriteString(result.Output)
			sb.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
