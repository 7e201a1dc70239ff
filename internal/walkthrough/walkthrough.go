// Package walkthrough runs a scripted sequence of button taps and snapshot
// captures against one application.
//
// Every tap re-queries the buttons on screen; nothing is cached between
// steps. The first failing step ends the run, the remaining steps are not
// attempted.
package walkthrough

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mj1618/storeshots/internal/model"
	"github.com/mj1618/storeshots/internal/platform"
)

// StepResult is the output for a single step.
type StepResult struct {
	Step    int               `yaml:"step"              json:"step"`
	OK      bool              `yaml:"ok"                json:"ok"`
	Action  Kind              `yaml:"action"            json:"action"`
	Label   string            `yaml:"label,omitempty"   json:"label,omitempty"`
	Index   *int              `yaml:"index,omitempty"   json:"index,omitempty"`
	Buttons *int              `yaml:"buttons,omitempty" json:"buttons,omitempty"`
	Target  *model.ElementRef `yaml:"target,omitempty"  json:"target,omitempty"`
	Diff    *model.ButtonDiff `yaml:"diff,omitempty"    json:"diff,omitempty"`
	Error   string            `yaml:"error,omitempty"   json:"error,omitempty"`
	Elapsed string            `yaml:"elapsed,omitempty" json:"elapsed,omitempty"`
}

// Result is the output of a walkthrough run.
type Result struct {
	OK        bool         `yaml:"ok"                  json:"ok"`
	Action    string       `yaml:"action"              json:"action"`
	RunID     string       `yaml:"run_id,omitempty"    json:"run_id,omitempty"`
	Steps     int          `yaml:"steps"               json:"steps"`
	Completed int          `yaml:"completed"           json:"completed"`
	Error     string       `yaml:"error,omitempty"     json:"error,omitempty"`
	Results   []StepResult `yaml:"results"             json:"results"`
	Snapshots []string     `yaml:"snapshots"           json:"snapshots"`
	Manifest  string       `yaml:"manifest,omitempty"  json:"manifest,omitempty"`
}

// StepError reports which step ended a run.
type StepError struct {
	Step int  // 1-based position in the script
	Op   Step // The step that failed
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Step, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Run executes script against app, capturing through capturer. The app must
// already be launched. It returns the result of every attempted step and the
// error of the first failing one; errors.Is(err, platform.ErrElementNotFound)
// identifies a missing button.
func Run(ctx context.Context, app platform.Application, capturer platform.Capturer, script []Step, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	result := Result{
		Action:    "walkthrough",
		Steps:     len(script),
		Results:   make([]StepResult, 0, len(script)),
		Snapshots: []string{},
	}
	if err := Validate(script); err != nil {
		result.Error = err.Error()
		return result, err
	}

	for i, step := range script {
		stepNum := i + 1
		start := time.Now()

		var sr StepResult
		err := ctx.Err()
		if err == nil {
			sr, err = execute(ctx, app, capturer, step)
		}
		sr.Step = stepNum
		sr.Action = step.Kind
		sr.Elapsed = time.Since(start).Round(time.Millisecond).String()

		if err != nil {
			sr.OK = false
			sr.Error = err.Error()
			result.Results = append(result.Results, sr)
			stepErr := &StepError{Step: stepNum, Op: step, Err: err}
			result.Error = stepErr.Error()
			logger.Error("walkthrough step failed", "step", stepNum, "op", step.String(), "error", err)
			return result, stepErr
		}

		sr.OK = true
		result.Completed++
		result.Results = append(result.Results, sr)
		if step.Kind == KindCapture {
			result.Snapshots = append(result.Snapshots, step.Label)
		}
		logger.Debug("walkthrough step done", "step", stepNum, "op", step.String(), "elapsed", sr.Elapsed)
	}

	result.OK = true
	return result, nil
}

func execute(ctx context.Context, app platform.Application, capturer platform.Capturer, step Step) (StepResult, error) {
	switch step.Kind {
	case KindCapture:
		return StepResult{Label: step.Label}, capturer.Capture(ctx, step.Label)
	case KindTap:
		return tap(ctx, app, step.Index)
	default:
		return StepResult{}, fmt.Errorf("unknown step type %q", step.Kind)
	}
}

// tap queries the buttons on screen, activates the one at index and reads
// the buttons again to record what changed.
func tap(ctx context.Context, app platform.Application, index int) (StepResult, error) {
	sr := StepResult{Index: intPtr(index)}

	before, err := app.Buttons(ctx)
	if err != nil {
		return sr, fmt.Errorf("query buttons: %w", err)
	}
	sr.Buttons = intPtr(len(before))

	ref, err := platform.ElementAt(before, index)
	if err != nil {
		return sr, err
	}
	sr.Target = &ref

	if err := app.Activate(ctx, ref); err != nil {
		return sr, err
	}

	// The diff is informational; a failed read here does not fail the tap.
	if after, err := app.Buttons(ctx); err == nil {
		diff := model.DiffButtons(before, after)
		sr.Diff = &diff
	} else if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return sr, err
	}
	return sr, nil
}

func intPtr(i int) *int { return &i }
