package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openparlor/parlor-ctl/internal/errors"
	"github.com/openparlor/parlor-ctl/internal/lifecycle"
)

var backupCmd = &cobra.Command{
	Use:   "backup [name]",
	Short: "Back up an instance",
	Long: `Capture a snapshot of an instance: a PostgreSQL dump, an archive of
the data volumes, and copies of the instance's configuration files,
all stamped with a single timestamp.

The captures are best-effort: a failed step is reported but does not
stop the remaining steps.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBackup,
}

var backupAll bool

func init() {
	backupCmd.Flags().BoolVar(&backupAll, "all", false, "Back up every instance")
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	c, err := getController()
	if err != nil {
		return err
	}

	if backupAll {
		if len(args) > 0 {
			return errors.ValidationError("--all does not take an instance name")
		}
		report, err := c.BackupAll(cmd.Context())
		if err != nil {
			return err
		}
		printBulkReport("backup", report)
		if report.Failed > 0 {
			return errors.StepFailed("backup", nil)
		}
		return nil
	}

	if len(args) != 1 {
		return errors.ValidationError("usage: parlor-ctl backup <name> | --all")
	}
	name := args[0]

	logInfo("Backing up instance %s...", name)

	report, err := c.Backup(cmd.Context(), name)
	if report != nil {
		for _, artifact := range report.Artifacts {
			logInfo("  %s", filepath.Join(report.Dir, artifact))
		}
		printFailedSteps(report.Steps)
	}
	if err != nil {
		return err
	}

	logSuccess("Backed up instance %s", name)
	return nil
}

func printFailedSteps(steps []lifecycle.StepResult) {
	for _, step := range steps {
		if step.Err != nil {
			logWarning("step %s failed: %v", step.Step, step.Err)
		}
	}
}
