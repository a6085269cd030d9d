package cmd

import (
	"fmt"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/openparlor/parlor-ctl/internal/errors"
)

var execCmd = &cobra.Command{
	Use:   "exec <name> -- <command>",
	Short: "Execute a command in an instance's app container",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	name := args[0]
	command := args[1:]

	// A single argument may be a quoted command string.
	if len(command) == 1 {
		split, err := shellquote.Split(command[0])
		if err != nil {
			return errors.ValidationError(fmt.Sprintf("invalid command: %v", err))
		}
		command = split
	}
	if len(command) == 0 {
		return errors.ValidationError("usage: parlor-ctl exec <name> -- <command>")
	}

	c, err := getController()
	if err != nil {
		return err
	}

	result, err := c.Exec(cmd.Context(), name, command)
	if err != nil {
		return err
	}

	if result.Stdout != "" {
		fmt.Fprint(cmd.OutOrStdout(), result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprint(cmd.ErrOrStderr(), result.Stderr)
	}
	if result.ExitCode != 0 {
		return errors.New(errors.KindGeneral, fmt.Sprintf("command exited %d", result.ExitCode))
	}

	return nil
}
