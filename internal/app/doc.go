// Package app provides the application context for parlor-ctl.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Config     *config.Config        // Tool configuration
//	    Paths      *config.Paths         // File system paths
//	    Registry   instance.Registry     // Instance records
//	    Runtime    runtime.Runtime       // Container runtime
//	    Controller *lifecycle.Controller // Operation sequencing
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	app := app.New()
//
//	// Testing with custom dependencies
//	app := app.New(
//	    app.WithPaths(testPaths),
//	    app.WithRegistry(memRegistry),
//	    app.WithRuntime(mockRuntime),
//	)
//
// # Available Options
//
//	WithConfig(cfg)      // Custom tool configuration
//	WithPaths(paths)     // Custom path configuration
//	WithRegistry(reg)    // Custom instance registry
//	WithRuntime(runtime) // Custom container runtime
package app
