package lifecycle

import (
	"context"
	"strings"

	"github.com/openparlor/parlor-ctl/internal/config"
	"github.com/openparlor/parlor-ctl/internal/errors"
	"github.com/openparlor/parlor-ctl/internal/instance"
	"github.com/openparlor/parlor-ctl/internal/lock"
	"github.com/openparlor/parlor-ctl/internal/logging"
	"github.com/openparlor/parlor-ctl/internal/port"
)

// DeployOptions holds the inputs for creating a new instance.
type DeployOptions struct {
	Name        string
	CompanyName string
	AdminEmail  string

	// AppPort and DBPort override allocation when non-zero. They are
	// still probed and checked against the registry.
	AppPort int
	DBPort  int
}

// Deploy creates a new instance: allocate ports, generate credentials,
// write the registry record and compose file, then provision the
// containers.
//
// The advisory deploy lock is held from the first probe until the record
// is written, because probe-then-reserve is not atomic; two unserialized
// deploys could otherwise claim the same port. Container provisioning
// happens after the lock is dropped since the record already reserves
// the ports at that point.
func (c *Controller) Deploy(ctx context.Context, opts DeployOptions) (*instance.Record, error) {
	if err := config.ValidateInstanceName(opts.Name); err != nil {
		return nil, errors.ValidationError(err.Error())
	}

	secrets, err := instance.GenerateSecrets()
	if err != nil {
		return nil, err
	}

	rec, err := c.reserve(ctx, opts, secrets)
	if err != nil {
		return nil, err
	}

	dir, err := c.Registry.Dir(rec.Name)
	if err != nil {
		return nil, err
	}

	logging.Debug("provisioning instance", "name", rec.Name, "appPort", rec.AppPort, "dbPort", rec.DBPort)

	if err := c.Runtime.Up(ctx, rec.Project(), dir); err != nil {
		// The record stays: ports are reserved and the user can retry
		// with start or update once the runtime issue is fixed.
		return rec, errors.StepFailed("provision", err)
	}

	return rec, nil
}

// reserve runs the critical section: probe ports and write the record
// under the deploy lock.
func (c *Controller) reserve(ctx context.Context, opts DeployOptions, secrets instance.Secrets) (*instance.Record, error) {
	l, err := lock.Acquire(c.Paths.LockFile)
	if err != nil {
		return nil, err
	}
	defer l.Release()

	used, err := instance.UsedPorts(c.Registry)
	if err != nil {
		return nil, err
	}

	alloc := port.NewAllocator(c.Runtime)

	appPort, err := c.pickPort(ctx, alloc, opts.AppPort, c.Config.AppBasePort, used)
	if err != nil {
		return nil, err
	}
	used[appPort] = true

	dbPort, err := c.pickPort(ctx, alloc, opts.DBPort, c.Config.DBBasePort, used)
	if err != nil {
		return nil, err
	}

	rec := &instance.Record{
		Name:         opts.Name,
		AppPort:      appPort,
		DBPort:       dbPort,
		CompanyName:  opts.CompanyName,
		AdminEmail:   opts.AdminEmail,
		DatabaseName: databaseName(opts.Name),
		CreatedAt:    c.Now(),
		Secrets:      secrets,
	}

	if err := c.Registry.Create(rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// pickPort allocates from base, or verifies an explicit override.
func (c *Controller) pickPort(ctx context.Context, alloc *port.Allocator, explicit, base int, used map[int]bool) (int, error) {
	if explicit == 0 {
		return alloc.Allocate(ctx, base, c.Config.MaxPortAttempts, used)
	}

	if used[explicit] {
		return 0, errors.PortConflict(explicit)
	}
	if !alloc.Probe.IsFree(ctx, explicit, alloc.Scope) {
		return 0, errors.PortConflict(explicit)
	}

	return explicit, nil
}

// databaseName derives a postgres-safe database name from the instance
// name.
func databaseName(name string) string {
	return "parlor_" + strings.ReplaceAll(name, "-", "_")
}
