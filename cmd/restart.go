package cmd

import (
	"github.com/spf13/cobra"
)

var restartCmd = &cobra.Command{
	Use:   "restart <name>",
	Short: "Restart an instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestart,
}

func init() {
	rootCmd.AddCommand(restartCmd)
}

func runRestart(cmd *cobra.Command, args []string) error {
	name := args[0]

	c, err := getController()
	if err != nil {
		return err
	}

	if err := c.Restart(cmd.Context(), name); err != nil {
		return err
	}

	logSuccess("Restarted instance %s", name)
	return nil
}
