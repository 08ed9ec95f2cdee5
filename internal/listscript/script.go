// Package listscript runs scripted sequences of list operations.
//
// A script is a YAML document naming a list of steps. Each step applies
// one operation to a named DoublyLinkedList of strings:
//
//	name: greeting
//	steps:
//	  - op: insert
//	    index: 0
//	    value: Hello
//	  - op: push_back
//	    value: World
//	  - op: print
package listscript

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wandb/dlist/internal/observability/wberrors"
)

// DefaultList is the list a step applies to if it doesn't name one.
const DefaultList = "default"

// Op is the operation performed by a step.
type Op string

const (
	OpPushFront Op = "push_front"
	OpPushBack  Op = "push_back"
	OpInsert    Op = "insert"
	OpErase     Op = "erase"
	OpEraseAt   Op = "erase_at"
	OpFind      Op = "find"
	OpAt        Op = "at"
	OpFront     Op = "front"
	OpBack      Op = "back"
	OpSize      Op = "size"
	OpEmpty     Op = "empty"
	OpPrint     Op = "print"
	OpCopy      Op = "copy"
	OpAssign    Op = "assign"
	OpClear     Op = "clear"
)

var knownOps = []Op{
	OpPushFront, OpPushBack, OpInsert, OpErase, OpEraseAt,
	OpFind, OpAt, OpFront, OpBack, OpSize, OpEmpty, OpPrint,
	OpCopy, OpAssign, OpClear,
}

// needsIndex reports whether the op reads Step.Index.
func (op Op) needsIndex() bool {
	return op == OpInsert || op == OpEraseAt || op == OpAt
}

// needsSource reports whether the op reads Step.From.
func (op Op) needsSource() bool {
	return op == OpCopy || op == OpAssign
}

// Step is a single operation in a script.
type Step struct {
	Op Op `yaml:"op"`

	// List is the name of the list to operate on.
	//
	// Lists are created empty the first time they're named.
	List string `yaml:"list,omitempty"`

	// Index is the position argument of insert, erase_at and at.
	Index *int `yaml:"index,omitempty"`

	// Value is the item argument of push_front, push_back, insert, erase
	// and find.
	Value string `yaml:"value,omitempty"`

	// From is the source list of copy and assign.
	From string `yaml:"from,omitempty"`
}

// ListName returns the name of the list the step operates on.
func (s Step) ListName() string {
	if s.List == "" {
		return DefaultList
	}
	return s.List
}

// Script is a named sequence of steps.
type Script struct {
	Name string `yaml:"name"`

	// ContinueOnError makes a failing step get recorded in the report
	// instead of stopping the run.
	ContinueOnError bool `yaml:"continueOnError,omitempty"`

	Steps []Step `yaml:"steps"`
}

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	script := &Script{}
	if err := yaml.Unmarshal(data, script); err != nil {
		return nil, wberrors.Enrichf(err, "listscript: invalid YAML").
			SkipSentryIf(true)
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}

	return script, nil
}

// Load reads and parses the script at path.
func Load(fs afero.Fs, path string) (*Script, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, wberrors.Enrichf(err, "listscript: failed to read script").
			SkipSentryIf(true)
	}

	script, err := Parse(data)
	if err != nil {
		return nil, wberrors.Enrichf(err, "%s", path)
	}

	if script.Name == "" {
		script.Name = path
	}
	return script, nil
}

// Validate checks that every step has the arguments its op needs.
func (s *Script) Validate() error {
	var problems []string

	for i, step := range s.Steps {
		switch {
		case !slices.Contains(knownOps, step.Op):
			problems = append(problems,
				fmt.Sprintf("step %d: unknown op %q", i+1, step.Op))
		case step.Op.needsIndex() && step.Index == nil:
			problems = append(problems,
				fmt.Sprintf("step %d: %s requires an index", i+1, step.Op))
		case step.Op.needsSource() && step.From == "":
			problems = append(problems,
				fmt.Sprintf("step %d: %s requires a source list", i+1, step.Op))
		}
	}

	if len(problems) > 0 {
		return wberrors.Newf("listscript: invalid script: %s",
			strings.Join(problems, "; ")).
			SkipSentryIf(true)
	}

	return nil
}
