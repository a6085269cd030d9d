// Package testutil provides test fixtures and utilities.
//
// This package contains embedded fixtures and a TestEnv helper that
// wires a full application context against a temp-dir registry and a
// mock container runtime.
//
// # Fixtures
//
// Fixtures are embedded using go:embed:
//
//	fixtures/valid_instance.env
//	fixtures/corrupt_instance.env
//	fixtures/config.toml
//
// # Usage in Tests
//
//	func TestSomething(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    defer env.Cleanup()
//
//	    env.AddInstance("acme", 9000, 5432)
//	    // commands now run against env.App via app.Default
//	}
package testutil
