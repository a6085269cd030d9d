package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/openparlor/parlor-ctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "parlor-ctl",
	Short: "Parlor instance management CLI",
	Long: `parlor-ctl deploys and manages isolated Parlor chat instances.

Each instance is a Docker Compose project with:
  - The Parlor application container on its own host port
  - A dedicated PostgreSQL container and database
  - Generated credentials stored in the instance registry`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	_          = logging.UserError // reserved for future use
)
