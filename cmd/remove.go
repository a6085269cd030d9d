package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openparlor/parlor-ctl/internal/logging"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove an instance",
	Long: `Stop and remove an instance's containers, delete its data volumes,
and drop its record from the registry.

By default the database and uploaded files are destroyed with the
volumes. Use --keep-data to leave the volumes in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

var (
	removeForce    bool
	removeKeepData bool
)

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip the confirmation prompt")
	removeCmd.Flags().BoolVar(&removeKeepData, "keep-data", false, "Keep the instance's data volumes")
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	c, err := getController()
	if err != nil {
		return err
	}

	// Resolve first so a typo'd name fails before the prompt.
	if _, err := getRegistry().Get(name); err != nil {
		return err
	}

	if !removeForce {
		prompt := "Remove instance " + name + " and destroy its data?"
		if removeKeepData {
			prompt = "Remove instance " + name + "? Its data volumes will be kept"
		}
		if !confirm(cmd, prompt) {
			logInfo("Remove cancelled.")
			return nil
		}
	}

	logging.Debug("removing instance", "name", name, "keepData", removeKeepData)
	logInfo("Removing instance %s...", name)

	if err := c.Remove(cmd.Context(), name, removeKeepData); err != nil {
		return err
	}

	logSuccess("Removed instance %s", name)
	return nil
}
