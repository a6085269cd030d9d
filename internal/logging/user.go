package logging

import (
	"fmt"
	"io"
	"os"
)

// User-facing output with status indicator prefixes. Unlike the
// structured debug logging, these always print, unprefixed by level or
// timestamp; they are the CLI's conversation with the operator.

var (
	userOut io.Writer = os.Stdout
	userErr io.Writer = os.Stderr
)

// SetUserOutput redirects user-facing output. It returns a function that
// restores the previous writers; tests capture output with it.
func SetUserOutput(out, errOut io.Writer) func() {
	prevOut, prevErr := userOut, userErr
	userOut, userErr = out, errOut
	return func() {
		userOut, userErr = prevOut, prevErr
	}
}

// UserInfo prints an info message.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(userOut, "ℹ "+format+"\n", args...)
}

// UserSuccess prints a success message.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(userOut, "✓ "+format+"\n", args...)
}

// UserWarning prints a warning message to the error stream.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(userErr, "⚠ "+format+"\n", args...)
}

// UserError prints an error message to the error stream.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(userErr, "✗ "+format+"\n", args...)
}
