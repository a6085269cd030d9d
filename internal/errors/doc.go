// Package errors provides typed errors for parlor-ctl.
//
// # Error Types
//
// CtlError is the base error type that carries a failure kind:
//
//	type CtlError struct {
//	    Kind    Kind   // Failure category
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Kinds
//
// Failure categories reported by the toolkit:
//
//	KindNotFound           // unknown instance name
//	KindDuplicateName      // creation-time name collision
//	KindPortConflict       // creation-time port collision
//	KindPortRangeExhausted // allocator gave up within its attempt budget
//	KindRuntimeUnavailable // container runtime unreachable
//	KindStepFailed         // one stage of a multi-step operation failed
//	KindCorruptRecord      // registry entry missing required fields
//	KindValidation         // invalid user input
//	KindNotRunning         // instance exists but its containers are down
//	KindGeneral            // everything else
//
// # Error Constructors
//
// Use the provided constructors for consistent error creation:
//
//	errors.NotFound("acme")
//	errors.DuplicateName("acme")
//	errors.PortConflict(9000)
//	errors.StepFailed("rebuild", err)
//
// # Exit Codes
//
// The CLI reports 0 on success and 1 on any failure. GetExitCode collapses
// every error to 1; the Kind is for programmatic matching and messages only:
//
//	if err != nil {
//	    os.Exit(errors.GetExitCode(err))
//	}
package errors
