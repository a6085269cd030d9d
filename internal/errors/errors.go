package errors

import (
	"errors"
	"fmt"
)

// Exit codes for parlor-ctl. Any failure exits 1; there are no
// finer-grained codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Kind categorizes a failure.
type Kind int

const (
	KindGeneral Kind = iota
	KindNotFound
	KindDuplicateName
	KindPortConflict
	KindPortRangeExhausted
	KindRuntimeUnavailable
	KindStepFailed
	KindCorruptRecord
	KindValidation
	KindNotRunning
)

// CtlError is the base error type for parlor-ctl.
type CtlError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *CtlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CtlError) Unwrap() error {
	return e.Cause
}

// New creates a new CtlError.
func New(kind Kind, message string) *CtlError {
	return &CtlError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with a CtlError.
func Wrap(kind Kind, message string, cause error) *CtlError {
	return &CtlError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// NotFound returns an error for a missing instance.
func NotFound(name string) *CtlError {
	return New(KindNotFound, fmt.Sprintf("instance not found: %s", name))
}

// DuplicateName returns an error for a creation-time name collision.
func DuplicateName(name string) *CtlError {
	return New(KindDuplicateName, fmt.Sprintf("instance already exists: %s", name))
}

// PortConflict returns an error for a creation-time port collision.
func PortConflict(port int) *CtlError {
	return New(KindPortConflict, fmt.Sprintf("port %d is already assigned to another instance", port))
}

// PortRangeExhausted returns an error when the allocator gives up.
func PortRangeExhausted(base, attempts int) *CtlError {
	return New(KindPortRangeExhausted,
		fmt.Sprintf("no free port in range %d-%d", base, base+attempts-1))
}

// RuntimeUnavailable returns an error when the container runtime is unreachable.
func RuntimeUnavailable(cause error) *CtlError {
	return Wrap(KindRuntimeUnavailable, "container runtime unavailable", cause)
}

// StepFailed returns an error for a failed stage of a multi-step operation.
func StepFailed(step string, cause error) *CtlError {
	return Wrap(KindStepFailed, fmt.Sprintf("step %s failed", step), cause)
}

// CorruptRecord returns an error for a registry entry missing required fields.
func CorruptRecord(name, detail string) *CtlError {
	return New(KindCorruptRecord, fmt.Sprintf("corrupt record %s: %s", name, detail))
}

// ValidationError returns an error for input validation failures.
func ValidationError(message string) *CtlError {
	return New(KindValidation, message)
}

// ConfigError returns an error for configuration issues.
func ConfigError(message string, cause error) *CtlError {
	return Wrap(KindGeneral, message, cause)
}

// NotRunning returns an error when an instance exists but is not running.
func NotRunning(name string) *CtlError {
	return New(KindNotRunning, fmt.Sprintf("instance %s is not running", name))
}

// IsKind reports whether any error in err's chain is a CtlError of the
// given kind.
func IsKind(err error, kind Kind) bool {
	var ctlErr *CtlError
	if errors.As(err, &ctlErr) {
		return ctlErr.Kind == kind
	}
	return false
}

// GetExitCode extracts the exit code from an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

// Is checks if an error matches a target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
