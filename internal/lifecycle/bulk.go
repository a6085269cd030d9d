package lifecycle

import (
	"context"
	"time"

	"github.com/openparlor/parlor-ctl/internal/logging"
)

// BulkReport aggregates a bulk operation over the registry.
type BulkReport struct {
	Succeeded int
	Failed    int
	Failures  map[string]error
	Elapsed   time.Duration
}

// forEach applies fn to every instance in registry order (sorted by
// name), continuing past individual failures. The batch itself never
// aborts; per-instance errors land in the report.
func (c *Controller) forEach(ctx context.Context, op string, fn func(ctx context.Context, name string) error) (*BulkReport, error) {
	records, err := c.Registry.List()
	if err != nil {
		return nil, err
	}

	report := &BulkReport{Failures: make(map[string]error)}
	start := c.Now()

	for _, rec := range records {
		logging.Debug("bulk operation", "op", op, "instance", rec.Name)
		if err := fn(ctx, rec.Name); err != nil {
			report.Failed++
			report.Failures[rec.Name] = err
			continue
		}
		report.Succeeded++
	}

	report.Elapsed = c.Now().Sub(start)
	return report, nil
}

// StartAll starts every registered instance. Instances that are already
// running count as successes; the underlying start is idempotent.
func (c *Controller) StartAll(ctx context.Context) (*BulkReport, error) {
	return c.forEach(ctx, "start", c.Start)
}

// StopAll stops every registered instance.
func (c *Controller) StopAll(ctx context.Context) (*BulkReport, error) {
	return c.forEach(ctx, "stop", c.Stop)
}

// UpdateAll updates every registered instance.
func (c *Controller) UpdateAll(ctx context.Context) (*BulkReport, error) {
	return c.forEach(ctx, "update", func(ctx context.Context, name string) error {
		_, err := c.Update(ctx, name)
		return err
	})
}

// BackupAll backs up every registered instance.
func (c *Controller) BackupAll(ctx context.Context) (*BulkReport, error) {
	return c.forEach(ctx, "backup", func(ctx context.Context, name string) error {
		_, err := c.Backup(ctx, name)
		return err
	})
}
