// Package app implements the application layer for quack.
package app

import (
	"context"
	"os"

	"go.trai.ch/quack/internal/adapters/config"
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/quack/internal/engine/scheduler"
	"go.trai.ch/quack/internal/ui/output"
	"go.trai.ch/zerr"
)

// RunOptions carry CLI overrides for one invocation.
type RunOptions struct {
	// CacheMode overrides the configured cache policy when non-empty.
	CacheMode string

	// Jobs overrides the configured parallelism when positive.
	Jobs int
}

// App represents the main application logic.
type App struct {
	loader    ports.SpecLoader
	scheduler *scheduler.Scheduler
	runner    ports.CommandRunner
	settings  *config.Settings
	telemetry ports.Telemetry
	logger    ports.Logger
	printer   *output.Printer
}

// New creates a new App instance.
func New(
	loader ports.SpecLoader,
	sched *scheduler.Scheduler,
	runner ports.CommandRunner,
	settings *config.Settings,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		loader:    loader,
		scheduler: sched,
		runner:    runner,
		settings:  settings,
		telemetry: telemetry,
		logger:    logger,
		printer:   output.NewPrinter(os.Stdout),
	}
}

// WithPrinter replaces the output printer. Used for testing.
func (a *App) WithPrinter(p *output.Printer) *App {
	a.printer = p
	return a
}

// Run executes the named scripts and targets. Each name resolves to a script
// first and falls back to a target, so targets stay runnable without a script
// alias.
func (a *App) Run(ctx context.Context, names []string, opts RunOptions) error {
	if len(names) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	project, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load project spec")
	}

	var targets []string
	var commands []*domain.Script
	for _, name := range names {
		if script := project.Script(name); script != nil {
			if script.Target != "" {
				targets = append(targets, script.Target)
			} else {
				commands = append(commands, script)
			}
			continue
		}
		if _, err := project.Graph.Get(name); err != nil {
			return zerr.With(domain.ErrTargetNotFound, "name", name)
		}
		targets = append(targets, name)
	}

	mode, err := a.resolveMode(opts)
	if err != nil {
		return err
	}

	if len(targets) > 0 {
		summary, runErr := a.scheduler.Run(ctx, project, targets, scheduler.RunOptions{
			Mode:    mode,
			Jobs:    a.resolveJobs(opts),
			WorkDir: ".",
		})
		// Flush the progress tape before the summary so the two do not interleave.
		if err := a.telemetry.Close(); err != nil {
			a.logger.Warn("failed to close telemetry", "error", err)
		}
		if summary != nil {
			a.printer.Summary(summary)
		}
		if runErr != nil {
			return runErr
		}
	}

	// Plain command scripts run after any target builds they were listed with.
	for _, script := range commands {
		a.logger.Info("running script", "script", script.Name)
		if _, err := a.runner.Run(ctx, ports.RunRequest{
			Command: script.Command,
			Dir:     ".",
			Stdout:  os.Stdout,
			Stderr:  os.Stderr,
		}); err != nil {
			return zerr.With(zerr.Wrap(err, "script failed"), "script", script.Name)
		}
	}

	return nil
}

// List prints the project's targets and scripts.
func (a *App) List(_ context.Context) error {
	project, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load project spec")
	}
	a.printer.Project(project)
	return nil
}

func (a *App) resolveMode(opts RunOptions) (domain.CacheMode, error) {
	raw := opts.CacheMode
	if raw == "" {
		raw = a.settings.Cache
	}
	return domain.ParseCacheMode(raw)
}

func (a *App) resolveJobs(opts RunOptions) int {
	if opts.Jobs > 0 {
		return opts.Jobs
	}
	return a.settings.Jobs
}
