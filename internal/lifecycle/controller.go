package lifecycle

import (
	"context"
	"time"

	"github.com/openparlor/parlor-ctl/internal/config"
	"github.com/openparlor/parlor-ctl/internal/errors"
	"github.com/openparlor/parlor-ctl/internal/instance"
	"github.com/openparlor/parlor-ctl/internal/runtime"
)

// Controller sequences operations against instances.
type Controller struct {
	Registry instance.Registry
	Runtime  runtime.Runtime
	Config   *config.Config
	Paths    *config.Paths

	// Now is the clock; overridable in tests for stable timestamps.
	Now func() time.Time
}

// NewController wires a controller from its collaborators.
func NewController(reg instance.Registry, rt runtime.Runtime, cfg *config.Config, paths *config.Paths) *Controller {
	return &Controller{
		Registry: reg,
		Runtime:  rt,
		Config:   cfg,
		Paths:    paths,
		Now:      time.Now,
	}
}

// resolve loads the record and its compose project directory.
func (c *Controller) resolve(name string) (*instance.Record, string, error) {
	rec, err := c.Registry.Get(name)
	if err != nil {
		return nil, "", err
	}

	dir, err := c.Registry.Dir(name)
	if err != nil {
		return nil, "", err
	}

	return rec, dir, nil
}

// Start starts the instance's containers. Runtime failures are reported
// verbatim; the underlying operation is idempotent, so no retries.
func (c *Controller) Start(ctx context.Context, name string) error {
	rec, dir, err := c.resolve(name)
	if err != nil {
		return err
	}
	return c.Runtime.Start(ctx, rec.Project(), dir)
}

// Stop stops the instance's containers.
func (c *Controller) Stop(ctx context.Context, name string) error {
	rec, dir, err := c.resolve(name)
	if err != nil {
		return err
	}
	return c.Runtime.Stop(ctx, rec.Project(), dir)
}

// Restart restarts the instance's containers.
func (c *Controller) Restart(ctx context.Context, name string) error {
	rec, dir, err := c.resolve(name)
	if err != nil {
		return err
	}
	return c.Runtime.Restart(ctx, rec.Project(), dir)
}

// Status derives the instance's state from the runtime. The result is a
// projection of a runtime query, never persisted.
func (c *Controller) Status(ctx context.Context, name string) (runtime.Status, error) {
	rec, _, err := c.resolve(name)
	if err != nil {
		return runtime.StatusUnknown, err
	}
	return c.Runtime.Status(ctx, rec.Project())
}

// Stats returns the runtime's resource usage summary for the instance.
func (c *Controller) Stats(ctx context.Context, name string) (string, error) {
	rec, _, err := c.resolve(name)
	if err != nil {
		return "", err
	}
	return c.Runtime.Stats(ctx, rec.Project())
}

// Logs streams the instance's logs.
func (c *Controller) Logs(ctx context.Context, name string, follow bool, lines int) error {
	rec, dir, err := c.resolve(name)
	if err != nil {
		return err
	}
	return c.Runtime.Logs(ctx, rec.Project(), dir, follow, lines)
}

// Exec runs a command in the instance's app container.
func (c *Controller) Exec(ctx context.Context, name string, command []string) (*runtime.ExecResult, error) {
	rec, dir, err := c.resolve(name)
	if err != nil {
		return nil, err
	}

	status, err := c.Runtime.Status(ctx, rec.Project())
	if err != nil {
		return nil, err
	}
	if status != runtime.StatusRunning {
		return nil, errors.NotRunning(name)
	}

	return c.Runtime.Exec(ctx, rec.Project(), dir, "app", command)
}

// Remove tears an instance down: stop and remove containers first, then
// delete the record. The record survives a failed teardown so the
// instance stays visible and removal can be retried.
func (c *Controller) Remove(ctx context.Context, name string, keepData bool) error {
	rec, dir, err := c.resolve(name)
	if err != nil {
		return err
	}

	if err := c.Runtime.Down(ctx, rec.Project(), dir, !keepData); err != nil {
		return errors.StepFailed("teardown", err)
	}

	return c.Registry.Delete(name)
}
