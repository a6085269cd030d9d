package cmd

import (
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <name>",
	Short: "Start an instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	name := args[0]

	c, err := getController()
	if err != nil {
		return err
	}

	if err := c.Start(cmd.Context(), name); err != nil {
		return err
	}

	logSuccess("Started instance %s", name)
	return nil
}
