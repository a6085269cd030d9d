package cmd

import (
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop <name>",
	Short: "Stop an instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	name := args[0]

	c, err := getController()
	if err != nil {
		return err
	}

	if err := c.Stop(cmd.Context(), name); err != nil {
		return err
	}

	logSuccess("Stopped instance %s", name)
	return nil
}
