package main

import (
	"fmt"
	"os"

	"github.com/hawaka-joe/recfix/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands emit their own diagnostics before returning an
		// ExitError; reprinting those here would double the verdict
		// line. Anything else (bad flags, cobra usage errors) has not
		// been shown yet and gets one line on stderr.
		if !cli.IsExitError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
