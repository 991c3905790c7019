package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/star-xai-protocol/capsbench-leaderboard/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands print their own diagnostics and return an ExitError;
		// anything else is a cobra-level error that was never reported.
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCommandError)
	}
}
