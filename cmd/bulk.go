package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openparlor/parlor-ctl/internal/errors"
)

var startAllCmd = &cobra.Command{
	Use:   "start-all",
	Short: "Start every instance",
	Args:  cobra.NoArgs,
	RunE:  runStartAll,
}

var stopAllCmd = &cobra.Command{
	Use:   "stop-all",
	Short: "Stop every instance",
	Args:  cobra.NoArgs,
	RunE:  runStopAll,
}

func init() {
	rootCmd.AddCommand(startAllCmd)
	rootCmd.AddCommand(stopAllCmd)
}

func runStartAll(cmd *cobra.Command, args []string) error {
	c, err := getController()
	if err != nil {
		return err
	}

	report, err := c.StartAll(cmd.Context())
	if err != nil {
		return err
	}

	printBulkReport("start", report)
	if report.Failed > 0 {
		return errors.StepFailed("start", nil)
	}
	return nil
}

func runStopAll(cmd *cobra.Command, args []string) error {
	c, err := getController()
	if err != nil {
		return err
	}

	report, err := c.StopAll(cmd.Context())
	if err != nil {
		return err
	}

	printBulkReport("stop", report)
	if report.Failed > 0 {
		return errors.StepFailed("stop", nil)
	}
	return nil
}
