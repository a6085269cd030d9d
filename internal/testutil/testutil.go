// Package testutil provides test utilities for integration tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openparlor/parlor-ctl/internal/app"
	"github.com/openparlor/parlor-ctl/internal/config"
	"github.com/openparlor/parlor-ctl/internal/instance"
	"github.com/openparlor/parlor-ctl/internal/runtime"
)

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	TmpDir   string
	Config   *config.Config
	Paths    *config.Paths
	Registry instance.Registry
	Runtime  *runtime.MockRuntime
	App      *app.App
	cleanup  func()
}

// NewTestEnv creates a new test environment with a mock runtime and a
// filesystem registry under a temp dir, and installs it as app.Default.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	cfg := config.Default()
	cfg.RegistryDir = filepath.Join(tmpDir, "state", "instances")
	cfg.BackupDir = filepath.Join(tmpDir, "state", "backups")
	cfg.AppBasePort = 39000
	cfg.DBBasePort = 35432
	cfg.MaxPortAttempts = 20

	paths := config.PathsFor(filepath.Join(tmpDir, "config"), cfg)

	for _, dir := range []string{paths.ConfigDir, paths.RegistryDir, paths.BackupDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	reg := instance.NewFSRegistry(cfg.RegistryDir, cfg.AppImage, cfg.PostgresImage)
	mockRuntime := runtime.NewMockRuntime()

	testApp := app.New(
		app.WithConfig(cfg),
		app.WithPaths(paths),
		app.WithRegistry(reg),
		app.WithRuntime(mockRuntime),
	)

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	return &TestEnv{
		T:        t,
		TmpDir:   tmpDir,
		Config:   cfg,
		Paths:    paths,
		Registry: reg,
		Runtime:  mockRuntime,
		App:      testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// AddInstance registers an instance record and seeds its compose project
// in the mock runtime as stopped.
func (e *TestEnv) AddInstance(name string, appPort, dbPort int) *instance.Record {
	e.T.Helper()

	rec := &instance.Record{
		Name:         name,
		AppPort:      appPort,
		DBPort:       dbPort,
		CompanyName:  "Acme Corp",
		AdminEmail:   "admin@acme.test",
		DatabaseName: "parlor_" + name,
		CreatedAt:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Secrets: instance.Secrets{
			SessionSecret:    "test-session-secret",
			EncryptionKey:    "test-encryption-key",
			PostgresPassword: "test-db-password",
		},
	}

	if err := e.Registry.Create(rec); err != nil {
		e.T.Fatalf("Failed to create instance record: %v", err)
	}

	e.Runtime.AddProject(rec.Project(), runtime.StatusStopped)
	return rec
}

// StartInstance marks an instance's compose project as running.
func (e *TestEnv) StartInstance(name string) {
	e.T.Helper()
	e.Runtime.AddProject(config.ProjectPrefix+name, runtime.StatusRunning)
}

// WriteCorruptRecord drops a directory with a broken env file into the
// registry, bypassing Create's validation.
func (e *TestEnv) WriteCorruptRecord(name string) {
	e.T.Helper()

	dir := filepath.Join(e.Config.RegistryDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.T.Fatalf("Failed to create directory: %v", err)
	}

	data, err := CorruptInstanceEnv()
	if err != nil {
		e.T.Fatalf("Failed to load fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, instance.EnvFileName), data, 0600); err != nil {
		e.T.Fatalf("Failed to write env file: %v", err)
	}
}
