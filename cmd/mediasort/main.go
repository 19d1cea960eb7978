package main

import (
	"context"
	"fmt"
	"os"

	"mediasort/internal/errors"
)

var version = "dev"

func main() {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	err := cmd.Execute()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.Render(err))
	}
	os.Exit(exitCode(err))
}

// exitCode maps a run error to the process status: 0 only when every file
// succeeded.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
