// Package lifecycle drives operations against an instance's container
// group: deploy, start, stop, restart, update, backup, remove, and the
// bulk variants.
//
// The controller owns sequencing and reporting; the actual process
// control is delegated to the runtime interface. Multi-step operations
// (update, backup) record per-step failures instead of aborting, and
// bulk operations continue past individual instance failures, so one
// broken instance never takes down a batch.
package lifecycle
