// Package scheduler implements the build orchestrator: it drives the
// fingerprint engine, cache store and archiver per target, respecting graph
// order while independent targets build in parallel.
package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/zerr"
)

// TargetStatus represents the state of a target in the orchestrator's state
// machine. Built and Failed are terminal; Cancelled marks dependents of a
// failure that never started.
type TargetStatus string

const (
	// StatusPending indicates the target is waiting for its dependencies.
	StatusPending TargetStatus = "Pending"
	// StatusResolving indicates the target's checksum is being computed.
	StatusResolving TargetStatus = "Resolving"
	// StatusRestoring indicates a cache hit is being unpacked.
	StatusRestoring TargetStatus = "Restoring"
	// StatusRunning indicates the build command is executing.
	StatusRunning TargetStatus = "Running"
	// StatusArchiving indicates the declared outputs are being packed.
	StatusArchiving TargetStatus = "Archiving"
	// StatusStoring indicates the entry is being published to the cache.
	StatusStoring TargetStatus = "Storing"
	// StatusBuilt indicates the target finished successfully.
	StatusBuilt TargetStatus = "Built"
	// StatusFailed indicates the target failed.
	StatusFailed TargetStatus = "Failed"
	// StatusCancelled indicates the target was skipped because a dependency failed.
	StatusCancelled TargetStatus = "Cancelled"
)

// Outcome is the per-target result the orchestrator reports.
type Outcome struct {
	Target   string
	Status   TargetStatus
	CacheHit bool
	Checksum string
	Err      error
}

// Summary aggregates the per-target outcomes of one run, in execution order.
type Summary struct {
	Outcomes []Outcome
}

// Failed returns the names of targets that failed or were cancelled.
func (s *Summary) Failed() []string {
	var names []string
	for _, o := range s.Outcomes {
		if o.Status == StatusFailed || o.Status == StatusCancelled {
			names = append(names, o.Target)
		}
	}
	return names
}

// RunOptions parameterize one orchestrator run.
type RunOptions struct {
	// Mode is the global cache policy; targets may override it.
	Mode domain.CacheMode

	// Jobs bounds the number of targets building concurrently.
	Jobs int

	// WorkDir is the directory build commands run in and outputs are
	// restored under.
	WorkDir string
}

// Scheduler is the build orchestrator.
type Scheduler struct {
	runner        ports.CommandRunner
	fingerprinter ports.Fingerprinter
	archiver      ports.Archiver
	stores        ports.StoreSelector
	telemetry     ports.Telemetry
	logger        ports.Logger

	mu       sync.RWMutex
	statuses map[string]TargetStatus
}

// NewScheduler creates a new Scheduler with the given collaborators.
func NewScheduler(
	runner ports.CommandRunner,
	fingerprinter ports.Fingerprinter,
	archiver ports.Archiver,
	stores ports.StoreSelector,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		runner:        runner,
		fingerprinter: fingerprinter,
		archiver:      archiver,
		stores:        stores,
		telemetry:     telemetry,
		logger:        logger,
		statuses:      make(map[string]TargetStatus),
	}
}

// Status returns the current status of a target.
func (s *Scheduler) Status(name string) TargetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statuses[name]
}

func (s *Scheduler) setStatus(name string, status TargetStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[name] = status
}

// resolvedSet is the thread-safe checksum table handed to the fingerprint
// engine for target-kind dependencies.
type resolvedSet struct {
	mu        sync.RWMutex
	checksums map[string]string
}

func newResolvedSet() *resolvedSet {
	return &resolvedSet{checksums: make(map[string]string)}
}

func (r *resolvedSet) ResolvedChecksum(target string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sum, ok := r.checksums[target]
	return sum, ok
}

func (r *resolvedSet) record(target, sum string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checksums[target] = sum
}

// Run builds the requested root targets and their transitive dependencies.
// Mutually independent targets build in parallel up to opts.Jobs; a failure
// cancels the failed target's dependents while sibling subtrees finish. The
// returned error is non-nil when any target ends Failed or Cancelled and wraps
// domain.ErrBuildExecutionFailed.
func (s *Scheduler) Run(ctx context.Context, project *domain.Project, roots []string, opts RunOptions) (*Summary, error) {
	if len(roots) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}
	if err := project.Graph.Validate(); err != nil {
		return nil, err
	}

	targets, err := project.Graph.Subgraph(roots)
	if err != nil {
		return nil, err
	}

	state := s.newRunState(ctx, project, targets, opts)

	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}
		if state.ctx.Err() != nil {
			if state.active == 0 {
				break
			}
			// Cancelled: drain in-flight workers, they observe ctx themselves.
			state.handleResult(<-state.results)
			continue
		}

		select {
		case res := <-state.results:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	return state.finish()
}

type result struct {
	outcome Outcome
}

type runState struct {
	ctx     context.Context
	s       *Scheduler
	project *domain.Project
	opts    RunOptions

	order    []string
	targets  map[string]*domain.Target
	inDegree map[string]int
	ready    []string
	active   int
	results  chan result
	resolved *resolvedSet
	outcomes map[string]Outcome
	errs     error
}

func (s *Scheduler) newRunState(ctx context.Context, project *domain.Project, targets []*domain.Target, opts RunOptions) *runState {
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}

	state := &runState{
		ctx:      ctx,
		s:        s,
		project:  project,
		opts:     opts,
		targets:  make(map[string]*domain.Target, len(targets)),
		inDegree: make(map[string]int, len(targets)),
		results:  make(chan result, opts.Jobs),
		resolved: newResolvedSet(),
		outcomes: make(map[string]Outcome, len(targets)),
	}

	for _, t := range targets {
		state.order = append(state.order, t.Name)
		state.targets[t.Name] = t
		state.inDegree[t.Name] = len(t.DependsOn())
		s.setStatus(t.Name, StatusPending)
	}
	// order is topologically sorted, so ready fills in a deterministic order.
	for _, name := range state.order {
		if state.inDegree[name] == 0 {
			state.ready = append(state.ready, name)
		}
	}
	return state
}

func (state *runState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *runState) schedule() {
	for len(state.ready) > 0 && state.active < state.opts.Jobs && state.ctx.Err() == nil {
		name := state.ready[0]
		state.ready = state.ready[1:]
		state.active++

		go func(t *domain.Target) {
			state.results <- result{outcome: state.executeTarget(state.ctx, t)}
		}(state.targets[name])
	}
}

func (state *runState) handleResult(res result) {
	state.active--
	out := res.outcome
	state.outcomes[out.Target] = out
	state.s.setStatus(out.Target, out.Status)

	if out.Status == StatusFailed {
		state.errs = errors.Join(state.errs, zerr.With(zerr.Wrap(out.Err, "target failed"), "target", out.Target))
		state.cancelDependents(out.Target)
		return
	}

	for _, dep := range state.project.Graph.Dependents(out.Target) {
		if _, tracked := state.inDegree[dep]; !tracked {
			continue
		}
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}

// cancelDependents marks every transitive dependent of a failed target as
// cancelled. Targets outside that dependent set keep running.
func (state *runState) cancelDependents(failed string) {
	for _, dep := range state.project.Graph.Dependents(failed) {
		if _, tracked := state.inDegree[dep]; !tracked {
			continue
		}
		if _, done := state.outcomes[dep]; done {
			continue
		}
		state.outcomes[dep] = Outcome{
			Target: dep,
			Status: StatusCancelled,
			Err:    zerr.With(zerr.New("dependency failed"), "dependency", failed),
		}
		state.s.setStatus(dep, StatusCancelled)
		state.cancelDependents(dep)
	}
}

func (state *runState) finish() (*Summary, error) {
	summary := &Summary{}
	for _, name := range state.order {
		out, ok := state.outcomes[name]
		if !ok {
			out = Outcome{Target: name, Status: StatusCancelled, Err: state.ctx.Err()}
			state.s.setStatus(name, StatusCancelled)
		}
		summary.Outcomes = append(summary.Outcomes, out)
	}

	errs := state.errs
	if state.ctx.Err() != nil {
		errs = errors.Join(errs, state.ctx.Err())
	}
	for _, out := range summary.Outcomes {
		if out.Status == StatusCancelled || out.Status == StatusFailed {
			if errs == nil {
				errs = zerr.With(zerr.New("target cancelled"), "target", out.Target)
			}
			return summary, errors.Join(domain.ErrBuildExecutionFailed, errs)
		}
	}
	if errs != nil {
		return summary, errors.Join(domain.ErrBuildExecutionFailed, errs)
	}
	return summary, nil
}

// executeTarget walks one target through the state machine:
// Resolving -> (Restoring | Running -> Archiving -> Storing) -> Built.
func (state *runState) executeTarget(ctx context.Context, t *domain.Target) Outcome {
	s := state.s
	out := Outcome{Target: t.Name}

	ctx, vertex := s.telemetry.Record(ctx, t.Name)

	fail := func(err error) Outcome {
		out.Status = StatusFailed
		out.Err = err
		vertex.Complete(err)
		return out
	}

	s.setStatus(t.Name, StatusResolving)
	checksum, err := s.fingerprinter.Checksum(ctx, t, state.resolved)
	if err != nil {
		return fail(err)
	}
	out.Checksum = checksum
	s.logger.Info("resolved target", "target", t.Name, "checksum", checksum)

	mode := state.opts.Mode
	if t.CacheMode != "" {
		mode = t.CacheMode
	}
	store, err := s.stores.ForMode(mode)
	if err != nil {
		return fail(err)
	}

	key := domain.CacheKey{App: state.project.AppName, Target: t.Name, Checksum: checksum}

	entry, err := store.Lookup(ctx, key)
	if err != nil {
		return fail(err)
	}
	if entry != nil {
		defer entry.Release()
		s.setStatus(t.Name, StatusRestoring)
		if err := s.archiver.Unpack(entry.ArchivePath, state.opts.WorkDir); err != nil {
			return fail(err)
		}
		s.logger.Info("restored target from cache", "target", t.Name, "checksum", checksum)
		state.resolved.record(t.Name, checksum)
		out.Status = StatusBuilt
		out.CacheHit = true
		vertex.Cached()
		vertex.Complete(nil)
		return out
	}

	s.setStatus(t.Name, StatusRunning)
	s.logger.Info("building target", "target", t.Name, "command", t.Build)
	if _, err := s.runner.Run(ctx, ports.RunRequest{
		Command: t.Build,
		Dir:     state.opts.WorkDir,
		Stdout:  vertex.Stdout(),
		Stderr:  vertex.Stderr(),
	}); err != nil {
		return fail(err)
	}

	s.setStatus(t.Name, StatusArchiving)
	tmpDir, err := os.MkdirTemp("", "quack-archive-")
	if err != nil {
		return fail(zerr.Wrap(err, "failed to create archive directory"))
	}
	defer os.RemoveAll(tmpDir) //nolint:errcheck // Transient directory

	archivePath := filepath.Join(tmpDir, key.ArchiveFileName())
	info, err := s.archiver.Pack(t.Outputs.Paths, state.opts.WorkDir, archivePath)
	if err != nil {
		return fail(err)
	}

	s.setStatus(t.Name, StatusStoring)
	meta := domain.Metadata{
		Checksum:        checksum,
		ArchiveChecksum: info.Checksum,
		Size:            info.Size,
		Outputs:         t.Outputs.Paths,
		Hostname:        hostname(),
		CreatedAt:       time.Now().UTC(),
	}
	if err := store.Store(ctx, key, meta, archivePath); err != nil {
		// A store failure never blocks a successful build.
		s.logger.Warn("failed to store cache entry", "target", t.Name, "cause", err)
	}

	state.resolved.record(t.Name, checksum)
	out.Status = StatusBuilt
	vertex.Complete(nil)
	return out
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return ""
	}
	return h
}
