package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listQuiet bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all instances",
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listQuiet, "quiet", "q", false, "Only print instance names")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	records, err := getRegistry().List()
	if err != nil {
		return fmt.Errorf("failed to list instances: %w", err)
	}

	if listQuiet {
		for _, rec := range records {
			fmt.Fprintln(cmd.OutOrStdout(), rec.Name)
		}
		return nil
	}

	c, err := getController()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		logInfo("No instances found. Create one with: parlor-ctl deploy <name>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tAPP PORT\tDB PORT\tCOMPANY\tCREATED\tSTATUS")
	fmt.Fprintln(w, "----\t--------\t-------\t-------\t-------\t------")

	for _, rec := range records {
		status, err := c.Status(cmd.Context(), rec.Name)
		if err != nil {
			logWarning("failed to query status for %s: %v", rec.Name, err)
		}

		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\n",
			rec.Name, rec.AppPort, rec.DBPort, rec.CompanyName,
			rec.CreatedAt.Format("2006-01-02"), formatStatus(status))
	}

	return w.Flush()
}
