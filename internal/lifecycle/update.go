package lifecycle

import (
	"context"
	"strings"

	"github.com/openparlor/parlor-ctl/internal/errors"
	"github.com/openparlor/parlor-ctl/internal/logging"
)

// Update step names, in execution order.
const (
	StepStop    = "stop"
	StepRebuild = "rebuild"
	StepStart   = "start"
)

// StepResult records the outcome of one stage of a multi-step operation.
type StepResult struct {
	Step string
	Err  error
}

// UpdateReport describes what an update attempt did.
type UpdateReport struct {
	Steps []StepResult

	// StaleImage is set when the rebuild failed but the instance was
	// started anyway, so it is running on the previous images.
	StaleImage bool
}

// Succeeded reports whether all three steps ran and passed.
func (r *UpdateReport) Succeeded() bool {
	if len(r.Steps) != 3 {
		return false
	}
	for _, s := range r.Steps {
		if s.Err != nil {
			return false
		}
	}
	return true
}

// FailedSteps lists the names of failed steps.
func (r *UpdateReport) FailedSteps() []string {
	var failed []string
	for _, s := range r.Steps {
		if s.Err != nil {
			failed = append(failed, s.Step)
		}
	}
	return failed
}

// Update runs the three-step update sequence: stop, rebuild without the
// layer cache, start.
//
// Rebuild is only attempted when stop succeeded. Start is attempted even
// when rebuild failed, which recovers the instance on its prior images;
// that outcome is surfaced as a StaleImage warning, not silent success.
// Nothing is rolled back: the instance is left in whatever state the
// partial execution produced.
func (c *Controller) Update(ctx context.Context, name string) (*UpdateReport, error) {
	rec, dir, err := c.resolve(name)
	if err != nil {
		return nil, err
	}

	project := rec.Project()
	report := &UpdateReport{}

	stopErr := c.Runtime.Stop(ctx, project, dir)
	report.Steps = append(report.Steps, StepResult{Step: StepStop, Err: stopErr})
	if stopErr != nil {
		return report, errors.StepFailed(StepStop, stopErr)
	}

	buildErr := c.Runtime.Build(ctx, project, dir, true)
	report.Steps = append(report.Steps, StepResult{Step: StepRebuild, Err: buildErr})

	startErr := c.Runtime.Start(ctx, project, dir)
	report.Steps = append(report.Steps, StepResult{Step: StepStart, Err: startErr})

	if buildErr != nil && startErr == nil {
		report.StaleImage = true
		logging.Warn("instance restarted on stale images after failed rebuild", "name", name)
	}

	if !report.Succeeded() {
		return report, errors.StepFailed(strings.Join(report.FailedSteps(), ", "), nil)
	}

	return report, nil
}
