package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openparlor/parlor-ctl/internal/lifecycle"
	"github.com/openparlor/parlor-ctl/internal/tui"
)

var deployCmd = &cobra.Command{
	Use:   "deploy [name]",
	Short: "Deploy a new instance",
	Long: `Deploy a new Parlor instance: allocate ports, generate credentials,
write the instance record, and start the containers.

With a name and the --company and --email flags the deploy runs
non-interactively. Without them an interactive wizard collects the
missing values.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDeploy,
}

var (
	deployCompany string
	deployEmail   string
	deployAppPort int
	deployDBPort  int
)

func init() {
	deployCmd.Flags().StringVar(&deployCompany, "company", "", "Company name shown to the instance's users")
	deployCmd.Flags().StringVar(&deployEmail, "email", "", "Admin email for the instance")
	deployCmd.Flags().IntVar(&deployAppPort, "app-port", 0, "Host port for the web app (default: automatic)")
	deployCmd.Flags().IntVar(&deployDBPort, "db-port", 0, "Host port for PostgreSQL (default: automatic)")
	rootCmd.AddCommand(deployCmd)
}

func runDeploy(cmd *cobra.Command, args []string) error {
	c, err := getController()
	if err != nil {
		return err
	}

	opts := lifecycle.DeployOptions{
		CompanyName: deployCompany,
		AdminEmail:  deployEmail,
		AppPort:     deployAppPort,
		DBPort:      deployDBPort,
	}
	if len(args) == 1 {
		opts.Name = args[0]
	}

	if opts.Name == "" || opts.CompanyName == "" || opts.AdminEmail == "" {
		answers, err := tui.RunDeployWizard()
		if err != nil {
			return err
		}
		if answers == nil {
			logInfo("Deploy cancelled.")
			return nil
		}
		opts = lifecycle.DeployOptions{
			Name:        answers.Name,
			CompanyName: answers.CompanyName,
			AdminEmail:  answers.AdminEmail,
			AppPort:     answers.AppPort,
			DBPort:      answers.DBPort,
		}
	}

	logInfo("Deploying instance %s...", opts.Name)

	rec, err := c.Deploy(cmd.Context(), opts)
	if err != nil {
		if rec != nil {
			// The record was written before provisioning failed.
			logWarning("Instance %s is registered but its containers did not start.", rec.Name)
			logWarning("Retry with: parlor-ctl start %s, or remove with: parlor-ctl remove %s", rec.Name, rec.Name)
		}
		return err
	}

	logSuccess("Deployed instance %s", rec.Name)
	logInfo("App:      http://localhost:%d", rec.AppPort)
	logInfo("Database: localhost:%d (%s)", rec.DBPort, rec.DatabaseName)
	return nil
}
