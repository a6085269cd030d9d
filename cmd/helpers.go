package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openparlor/parlor-ctl/internal/app"
	"github.com/openparlor/parlor-ctl/internal/instance"
	"github.com/openparlor/parlor-ctl/internal/lifecycle"
	"github.com/openparlor/parlor-ctl/internal/runtime"
)

// getController returns the application's lifecycle controller.
func getController() (*lifecycle.Controller, error) {
	return app.Default.GetController()
}

// getRegistry returns the application's instance registry.
func getRegistry() instance.Registry {
	return app.Default.Registry
}

// confirm prompts on the command's input stream and accepts y/yes.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// formatStatus renders a runtime status for table output.
func formatStatus(status runtime.Status) string {
	switch status {
	case runtime.StatusRunning:
		return "✓ running"
	case runtime.StatusStopped:
		return "● stopped"
	case runtime.StatusNotFound:
		return "○ missing"
	default:
		return "? unknown"
	}
}

// printBulkReport summarizes a bulk operation for the user.
func printBulkReport(op string, report *lifecycle.BulkReport) {
	for name, err := range report.Failures {
		logWarning("%s failed for %s: %v", op, name, err)
	}
	logInfo("%s: %d succeeded, %d failed (%.1fs)", op, report.Succeeded, report.Failed, report.Elapsed.Seconds())
}
