package app

import (
	"github.com/openparlor/parlor-ctl/internal/config"
	"github.com/openparlor/parlor-ctl/internal/errors"
	"github.com/openparlor/parlor-ctl/internal/instance"
	"github.com/openparlor/parlor-ctl/internal/lifecycle"
	"github.com/openparlor/parlor-ctl/internal/logging"
	"github.com/openparlor/parlor-ctl/internal/runtime"
)

// App holds the application dependencies
type App struct {
	// Config is the loaded tool configuration
	Config *config.Config

	// Paths holds the configured paths
	Paths *config.Paths

	// Registry holds the instance records
	Registry instance.Registry

	// Runtime is the container runtime
	Runtime runtime.Runtime

	// Controller sequences operations against instances
	Controller *lifecycle.Controller
}

// Option is a function that configures the App
type Option func(*App)

// WithConfig sets a custom tool configuration
func WithConfig(cfg *config.Config) Option {
	return func(a *App) {
		a.Config = cfg
	}
}

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// WithRegistry sets a custom instance registry
func WithRegistry(reg instance.Registry) Option {
	return func(a *App) {
		a.Registry = reg
	}
}

// WithRuntime sets a custom runtime
func WithRuntime(r runtime.Runtime) Option {
	return func(a *App) {
		a.Runtime = r
	}
}

// New creates a new App with the given options.
// If runtime is not provided via WithRuntime, docker compose is used;
// when docker is not on PATH the Runtime stays nil and commands that
// need it report the runtime as unavailable.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Config == nil {
		cfg, err := config.Load(config.DefaultConfigDir)
		if err != nil {
			logging.Debug("failed to load config, using defaults", "error", err)
			cfg = config.Default()
		}
		app.Config = cfg
	}

	if app.Paths == nil {
		app.Paths = config.PathsFor(config.DefaultConfigDir, app.Config)
	}

	if app.Registry == nil {
		app.Registry = instance.NewFSRegistry(app.Paths.RegistryDir, app.Config.AppImage, app.Config.PostgresImage)
	}

	if app.Runtime == nil {
		rt, err := runtime.NewComposeRuntime(app.Config.DockerCommand)
		if err != nil {
			logging.Debug("failed to initialize runtime", "error", err)
		} else {
			app.Runtime = rt
		}
	}

	if app.Runtime != nil {
		app.Controller = lifecycle.NewController(app.Registry, app.Runtime, app.Config, app.Paths)
	}

	return app
}

// GetController returns the lifecycle controller, or an error when the
// container runtime could not be initialized.
func (a *App) GetController() (*lifecycle.Controller, error) {
	if a.Controller == nil {
		return nil, errors.RuntimeUnavailable(nil)
	}
	return a.Controller, nil
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
