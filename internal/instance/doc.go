// Package instance defines the instance record model and the registry
// that persists it.
//
// Each deployed instance owns one directory under the registry root:
//
//	<registryRoot>/<name>/instance.env        key=value record
//	<registryRoot>/<name>/docker-compose.yml  compose project definition
//
// The env file holds the assigned ports, descriptive metadata, and the
// generated credentials. Runtime status is never stored in the record; it
// is derived from the container runtime on demand.
//
// Records missing required keys (for example after a process was killed
// mid-write) are treated as corrupt: List skips them with a warning and
// Get reports a CorruptRecord error. The registry never crashes on a
// partially written record.
package instance
