package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show instance details",
	Long: `Show an instance's configuration, derived container status, and
resource usage. Secrets are never printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	name := args[0]

	c, err := getController()
	if err != nil {
		return err
	}

	rec, err := getRegistry().Get(name)
	if err != nil {
		return err
	}

	status, err := c.Status(cmd.Context(), name)
	if err != nil {
		logWarning("failed to query status: %v", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Name:\t%s\n", rec.Name)
	fmt.Fprintf(w, "Company:\t%s\n", rec.CompanyName)
	fmt.Fprintf(w, "Admin email:\t%s\n", rec.AdminEmail)
	fmt.Fprintf(w, "App URL:\thttp://localhost:%d\n", rec.AppPort)
	fmt.Fprintf(w, "Database:\tlocalhost:%d (%s)\n", rec.DBPort, rec.DatabaseName)
	fmt.Fprintf(w, "Created:\t%s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Status:\t%s\n", formatStatus(status))
	if err := w.Flush(); err != nil {
		return err
	}

	stats, err := c.Stats(cmd.Context(), name)
	if err == nil && stats != "" {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), stats)
	}

	return nil
}
