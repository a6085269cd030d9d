// Package runtime defines the container runtime interface for parlor-ctl.
// The production adapter shells out to docker compose; tests use the mock.
// All durability and isolation guarantees live on the other side of this
// interface; the toolkit only sequences calls into it.
package runtime

import (
	"context"
)

// Status represents the derived state of an instance's container group.
// It is computed on demand and never cached in the registry.
type Status string

const (
	StatusRunning  Status = "running"
	StatusStopped  Status = "stopped"
	StatusNotFound Status = "not-found"
	StatusUnknown  Status = "unknown"
)

// ExecResult holds the result of executing a command in a container.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runtime is the capability interface over the external container
// runtime. project is the compose project name, dir the directory
// holding the project's compose file.
//
// Operations block until the runtime returns; there are no retries and
// no timeouts beyond what the context carries.
type Runtime interface {
	// Name returns the runtime identifier (e.g. "docker").
	Name() string

	// Up creates and starts the project's containers.
	Up(ctx context.Context, project, dir string) error

	// Down stops and removes the project's containers and networks,
	// and optionally its volumes.
	Down(ctx context.Context, project, dir string, removeVolumes bool) error

	// Start starts the project's existing containers.
	Start(ctx context.Context, project, dir string) error

	// Stop stops the project's containers without removing them.
	Stop(ctx context.Context, project, dir string) error

	// Restart restarts the project's containers.
	Restart(ctx context.Context, project, dir string) error

	// Build rebuilds the project's images, bypassing the layer cache
	// when noCache is set.
	Build(ctx context.Context, project, dir string, noCache bool) error

	// Status derives the project's state from the runtime.
	Status(ctx context.Context, project string) (Status, error)

	// PublishedPorts returns every host port currently published by any
	// container, regardless of project.
	PublishedPorts(ctx context.Context) ([]int, error)

	// Exec runs a command in the named service's container.
	Exec(ctx context.Context, project, dir, service string, command []string) (*ExecResult, error)

	// Logs streams the project's logs to the invoking terminal. With
	// follow it blocks until interrupted.
	Logs(ctx context.Context, project, dir string, follow bool, lines int) error

	// Stats returns a human-readable resource usage summary for the
	// project's containers.
	Stats(ctx context.Context, project string) (string, error)

	// ExportVolumes archives the named volumes into a tar.gz at outPath.
	ExportVolumes(ctx context.Context, volumes []string, outPath string) error
}
