// Package logging provides logging utilities for parlor-ctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("allocating port", "base", base, "attempts", attempts)
//	logging.Warn("skipping corrupt record", "name", name)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Deploying instance %s...", name)
//	logging.UserSuccess("Instance %s is running on port %d", name, port)
//	logging.UserWarning("Record %s is corrupt, skipping", name)
//	logging.UserError("Backup failed: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
