package lifecycle

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/openparlor/parlor-ctl/internal/config"
	"github.com/openparlor/parlor-ctl/internal/instance"
	"github.com/openparlor/parlor-ctl/internal/runtime"
)

// testClock is a fixed deterministic clock.
var testClock = func() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// newTestController wires a controller against a filesystem registry in
// a temp dir and a mock runtime. High base ports keep host probes away
// from anything a developer machine might have bound.
func newTestController(t *testing.T) (*Controller, *runtime.MockRuntime) {
	t.Helper()

	tmp := t.TempDir()
	cfg := config.Default()
	cfg.RegistryDir = filepath.Join(tmp, "instances")
	cfg.BackupDir = filepath.Join(tmp, "backups")
	cfg.AppBasePort = 39000
	cfg.DBBasePort = 35432
	cfg.MaxPortAttempts = 20

	paths := config.PathsFor(filepath.Join(tmp, "config"), cfg)

	reg := instance.NewFSRegistry(cfg.RegistryDir, cfg.AppImage, cfg.PostgresImage)
	rt := runtime.NewMockRuntime()

	c := NewController(reg, rt, cfg, paths)
	c.Now = testClock
	return c, rt
}

// mustDeploy deploys an instance or fails the test.
func mustDeploy(t *testing.T, c *Controller, name string) *instance.Record {
	t.Helper()

	rec, err := c.Deploy(context.Background(), DeployOptions{
		Name:        name,
		CompanyName: "Acme Corp",
		AdminEmail:  "admin@acme.test",
	})
	if err != nil {
		t.Fatalf("Deploy(%s) failed: %v", name, err)
	}
	return rec
}
