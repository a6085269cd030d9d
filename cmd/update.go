package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openparlor/parlor-ctl/internal/errors"
)

var updateCmd = &cobra.Command{
	Use:   "update [name]",
	Short: "Update an instance to the latest image",
	Long: `Stop an instance, rebuild its images without the layer cache, and
start it again.

When the rebuild fails the instance is still started on its previous
images so it does not stay down; the stale image is reported as a
warning.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

var (
	updateAll   bool
	updateForce bool
)

func init() {
	updateCmd.Flags().BoolVar(&updateAll, "all", false, "Update every instance")
	updateCmd.Flags().BoolVar(&updateForce, "force", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	c, err := getController()
	if err != nil {
		return err
	}

	if updateAll {
		if len(args) > 0 {
			return errors.ValidationError("--all does not take an instance name")
		}

		if !updateForce && !confirm(cmd, "Update every instance? Each one restarts during the update") {
			logInfo("Update cancelled.")
			return nil
		}

		report, err := c.UpdateAll(cmd.Context())
		if err != nil {
			return err
		}
		printBulkReport("update", report)
		if report.Failed > 0 {
			return errors.StepFailed("update", nil)
		}
		return nil
	}

	if len(args) != 1 {
		return errors.ValidationError("usage: parlor-ctl update <name> | --all")
	}
	name := args[0]

	logInfo("Updating instance %s...", name)

	report, err := c.Update(cmd.Context(), name)
	if report != nil {
		printFailedSteps(report.Steps)
		if report.StaleImage {
			logWarning("Instance %s restarted on its previous images; rerun the update once the build is fixed.", name)
		}
	}
	if err != nil {
		return err
	}

	logSuccess("Updated instance %s", name)
	return nil
}
