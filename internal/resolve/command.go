package resolve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	serr "mediasort/internal/errors"
	"mediasort/internal/log"
)

var commandContext = exec.CommandContext

// Result is what a finished helper process left behind.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// Runner launches a helper and waits for it. A non-nil error means the
// process could not be started; a non-zero exit is reported in Result.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs helpers with os/exec.
type ExecRunner struct{}

// Run executes name with args, capturing stdout and stderr separately.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := commandContext(ctx, name, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}

// runTool runs a helper for path and returns its stdout, turning launch
// failures and non-zero exits into resolution errors.
func runTool(ctx context.Context, runner Runner, logger log.Logging, path, binary string, args []string) (string, error) {
	res, err := runner.Run(ctx, binary, args...)
	if err != nil {
		return "", serr.NewResolutionError(fmt.Sprintf("failed to execute %s", binary), path, err)
	}

	logger.Debugf("%s %s status = %d", path, binary, res.ExitCode)

	if res.ExitCode != 0 {
		return "", serr.NewResolutionError(
			fmt.Sprintf("%s failed with exit status %d, stderr\n%s", binary, res.ExitCode, strings.TrimRight(string(res.Stderr), "\n")),
			path, nil)
	}

	out := string(res.Stdout)
	logger.Debugf("%s datetime raw %q", binary, out)
	return out, nil
}
