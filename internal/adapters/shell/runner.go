// Package shell provides the command runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner executes commands through the system shell. Build commands and
// dependency commands both go through here, so the whole tool has one place
// that spawns processes.
type Runner struct {
	logger ports.Logger

	// shell is the interpreter invoked with -c; defaults to sh.
	shell string
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger, shell: "sh"}
}

// Run executes the request synchronously and captures stdout and stderr. The
// inherited environment is extended, never replaced, so PATH and friends keep
// working inside build commands. A non-zero exit returns an error carrying the
// exit code alongside the populated result.
func (r *Runner) Run(ctx context.Context, req ports.RunRequest) (ports.RunResult, error) {
	cmd := exec.CommandContext(ctx, r.shell, "-c", req.Command) //nolint:gosec // User-declared build command
	cmd.Dir = req.Dir
	cmd.Env = append(os.Environ(), req.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if req.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, req.Stdout)
	}
	if req.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, req.Stderr)
	}

	r.logger.Debug("running command", "command", req.Command, "dir", req.Dir)

	err := cmd.Run()
	result := ports.RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		result.ExitCode = exitCode
		runErr := zerr.With(zerr.With(domain.ErrCommandFailed, "command", req.Command), "exit_code", exitCode)
		if captured := strings.TrimSpace(result.Stderr); captured != "" {
			runErr = zerr.With(runErr, "stderr", captured)
		}
		return result, runErr
	}
	return result, nil
}
