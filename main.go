package main

import (
	"os"

	"github.com/openparlor/parlor-ctl/cmd"
	"github.com/openparlor/parlor-ctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
