// Package port provides host port probing and allocation for instances.
//
// Each instance needs a unique application port and database port. The
// allocator scans linearly from a base port, consulting the probe and the
// set of ports already recorded in the registry, and returns the first
// free port within its attempt budget.
//
// The probe checks OS-level bindability and cross-references the container
// runtime's published ports, since a container may reserve a port without
// an OS-visible listener between probe and use. Probe errors are treated
// as "port taken" so allocation fails closed.
//
// Probing and reserving are not atomic with respect to the runtime, so
// the whole probe-then-record sequence must run inside the deploy lock
// (see the lock package).
package port
