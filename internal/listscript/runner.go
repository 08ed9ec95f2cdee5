package listscript

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wandb/dlist/internal/observability"
	"github.com/wandb/dlist/internal/observability/wberrors"
	"github.com/wandb/dlist/pkg/collections"
)

type RunnerParams struct {
	Logger *observability.CoreLogger

	// RunID identifies the run in logs and the report.
	//
	// A random one is generated if it's empty.
	RunID string
}

// Runner executes scripts against a set of named lists.
//
// Lists persist across calls to Run. A Runner is not safe for concurrent use.
type Runner struct {
	logger *observability.CoreLogger
	runID  string
	lists  map[string]*collections.DoublyLinkedList[string]
}

func NewRunner(params RunnerParams) *Runner {
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}
	if params.RunID == "" {
		params.RunID = uuid.NewString()
	}

	return &Runner{
		logger: params.Logger.With("run_id", params.RunID),
		runID:  params.RunID,
		lists:  make(map[string]*collections.DoublyLinkedList[string]),
	}
}

// List returns the named list if a step has created it.
func (r *Runner) List(name string) (*collections.DoublyLinkedList[string], bool) {
	list, ok := r.lists[name]
	return list, ok
}

// Run executes the script's steps in order.
//
// A failing step stops the run unless the script sets ContinueOnError.
// The report is returned in both cases and covers every step that ran.
// An invalid script is rejected before any step runs.
func (r *Runner) Run(script *Script) (*Report, error) {
	if err := script.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		RunID:   r.runID,
		Script:  script.Name,
		Results: make([]StepResult, 0, len(script.Steps)),
	}
	defer func() { report.Lists = r.snapshot() }()

	r.logger.Info("listscript: running script",
		"script", script.Name, "steps", len(script.Steps))

	for i, step := range script.Steps {
		result := StepResult{Step: i + 1, Op: step.Op, List: step.ListName()}

		output, err := r.runStep(step)
		if err != nil {
			err = wberrors.Bubblef(err, "step %d (%s)", i+1, step.Op).
				Attr(slog.Int("step", i+1)).
				Attr(slog.String("list", step.ListName()))
			r.logStepError(err, script.Name)

			result.Error = err.Error()
			report.Results = append(report.Results, result)

			if !script.ContinueOnError {
				return report, err
			}
			continue
		}

		result.Output = output
		report.Results = append(report.Results, result)

		r.logger.Debug("listscript: ran step",
			"step", i+1,
			"op", string(step.Op),
			"list", step.ListName(),
			"len", r.lists[step.ListName()].Len())
	}

	return report, nil
}

// runStep applies the step and returns its text output, if any.
func (r *Runner) runStep(step Step) (string, error) {
	// Resolved first so that a failed copy doesn't create its target.
	var source *collections.DoublyLinkedList[string]
	if step.Op.needsSource() {
		var err error
		if source, err = r.source(step.From); err != nil {
			return "", err
		}
	}

	list := r.listOrNew(step.ListName())

	switch step.Op {
	case OpPushFront:
		list.PushFront(step.Value)

	case OpPushBack:
		list.PushBack(step.Value)

	case OpInsert:
		return "", list.Insert(*step.Index, step.Value)

	case OpErase:
		list.Erase(step.Value)

	case OpEraseAt:
		_, err := list.EraseAt(*step.Index)
		return "", err

	case OpFind:
		return fmt.Sprintf("Found %s: %t", step.Value, list.Find(step.Value)), nil

	case OpAt:
		return list.At(*step.Index)

	case OpFront:
		return list.Front()

	case OpBack:
		return list.Back()

	case OpSize:
		return fmt.Sprintf("Size: %d", list.Len()), nil

	case OpEmpty:
		return fmt.Sprintf("Empty: %t", list.Empty()), nil

	case OpPrint:
		return list.String(), nil

	case OpCopy:
		r.lists[step.ListName()] = source.Clone()

	case OpAssign:
		list.Assign(source)

	case OpClear:
		list.Clear()

	default:
		return "", wberrors.Newf("unknown op %q", step.Op).SkipSentryIf(true)
	}

	return "", nil
}

// logStepError records a failed step.
//
// Caller mistakes like bad indices are already in the report and the
// returned error, so they're only logged at debug level.
func (r *Runner) logStepError(err error, scriptName string) {
	if wberrors.SkipSentry(err) {
		args := []any{"error", err.Error(), "script", scriptName}
		for _, attr := range wberrors.Attrs(err) {
			args = append(args, attr)
		}
		r.logger.Debug("listscript: step failed", args...)
		return
	}

	r.logger.CaptureError(err, "script", scriptName)
}

func (r *Runner) listOrNew(name string) *collections.DoublyLinkedList[string] {
	list, ok := r.lists[name]
	if !ok {
		list = &collections.DoublyLinkedList[string]{}
		r.lists[name] = list
	}
	return list
}

func (r *Runner) source(name string) (*collections.DoublyLinkedList[string], error) {
	list, ok := r.lists[name]
	if !ok {
		return nil, wberrors.Newf("no list named %q", name).
			Attr(slog.String("from", name)).
			SkipSentryIf(true)
	}
	return list, nil
}

func (r *Runner) snapshot() map[string][]string {
	lists := make(map[string][]string, len(r.lists))
	for name, list := range r.lists {
		lists[name] = list.ToSlice()
	}
	return lists
}
