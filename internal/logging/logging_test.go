package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetup_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "{") {
		t.Errorf("Expected JSON output, got: %s", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
}

func TestSetup_VerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	if !Verbose {
		t.Error("Verbose flag should be true after Setup(true, ...)")
	}

	Debug("debug message")

	output := buf.String()
	if !strings.Contains(output, "debug message") {
		t.Errorf("Debug message should appear in verbose mode, got: %s", output)
	}
}

func TestSetup_NonVerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	if Verbose {
		t.Error("Verbose flag should be false after Setup(false, ...)")
	}

	Debug("debug message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Errorf("Debug message should NOT appear in non-verbose mode, got: %s", output)
	}
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Warn("warn test", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "warn test") {
		t.Errorf("Expected 'warn test' in output, got: %s", output)
	}
}

func TestUserOutput_PrefixesAndStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	restore := SetUserOutput(&out, &errOut)
	defer restore()

	UserInfo("deploying %s", "acme")
	UserSuccess("done")
	UserWarning("slow engine")
	UserError("gone wrong")

	stdout := out.String()
	if !strings.Contains(stdout, "ℹ deploying acme") {
		t.Errorf("stdout missing info line: %q", stdout)
	}
	if !strings.Contains(stdout, "✓ done") {
		t.Errorf("stdout missing success line: %q", stdout)
	}

	stderr := errOut.String()
	if !strings.Contains(stderr, "⚠ slow engine") {
		t.Errorf("stderr missing warning line: %q", stderr)
	}
	if !strings.Contains(stderr, "✗ gone wrong") {
		t.Errorf("stderr missing error line: %q", stderr)
	}

	// Warnings and errors never land on stdout.
	if strings.Contains(stdout, "slow engine") || strings.Contains(stdout, "gone wrong") {
		t.Errorf("stdout carries error-stream lines: %q", stdout)
	}
}

func TestSetUserOutput_RestoreFunc(t *testing.T) {
	var first, second bytes.Buffer

	restore := SetUserOutput(&first, &first)
	SetUserOutput(&second, &second)()
	UserInfo("back to first")
	restore()

	if !strings.Contains(first.String(), "back to first") {
		t.Errorf("restore did not reinstate previous writer: %q", first.String())
	}
	if second.Len() != 0 {
		t.Errorf("second writer should be empty, got %q", second.String())
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	logger := With("component", "registry")
	if logger == nil {
		t.Fatal("With() returned nil")
	}

	logger.Info("with test")

	if !strings.Contains(buf.String(), "with test") {
		t.Errorf("Expected 'with test' in output, got: %s", buf.String())
	}
}
