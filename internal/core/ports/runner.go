// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// RunRequest describes one command invocation.
type RunRequest struct {
	// Command is passed to the shell verbatim.
	Command string

	// Dir is the working directory; empty means the current directory.
	Dir string

	// Env is appended to the inherited process environment as KEY=VALUE pairs.
	Env []string

	// Stdout and Stderr, when set, receive the streams as the command runs
	// in addition to the captured result.
	Stdout io.Writer
	Stderr io.Writer
}

// RunResult carries the captured outcome of a command invocation.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner executes shell commands. It is synchronous and blocking from
// the perspective of the calling worker.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes the request and captures its output. A non-zero exit
	// returns an error alongside the populated result.
	Run(ctx context.Context, req RunRequest) (RunResult, error)
}
