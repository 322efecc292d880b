// Package fingerprint implements the fingerprint engine: it turns a target's
// declared dependencies into one deterministic content digest.
package fingerprint

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fingerprinter = (*Engine)(nil)

// Engine computes target checksums. Every contribution is written to the
// digest as a length-prefixed (kind, key, value) record, so contributions of
// different kinds can never collide even when their raw bytes coincide.
type Engine struct {
	root   string
	runner ports.CommandRunner
	logger ports.Logger

	// environ is swappable for tests.
	environ func() []string
}

// New creates an Engine resolving source patterns against the given project root.
func New(root string, runner ports.CommandRunner, logger ports.Logger) *Engine {
	return &Engine{
		root:    root,
		runner:  runner,
		logger:  logger,
		environ: os.Environ,
	}
}

// Checksum resolves every dependency of the target in declaration order and
// returns the hex sha256 digest of the canonical contribution stream. The
// digest contains no machine-local paths, timestamps or ordering artifacts.
func (e *Engine) Checksum(ctx context.Context, target *domain.Target, resolved ports.ChecksumSource) (string, error) {
	h := sha256.New()

	for _, dep := range target.Dependencies {
		var err error
		switch dep.Kind {
		case domain.KindSource:
			err = e.hashSource(dep, h)
		case domain.KindTarget:
			err = e.hashTarget(dep, resolved, h)
		case domain.KindCommand:
			err = e.hashCommand(ctx, dep, h)
		case domain.KindVariable:
			err = e.hashVariable(dep, h)
		default:
			err = zerr.With(domain.ErrInvalidSpec, "kind", string(dep.Kind))
		}
		if err != nil {
			return "", zerr.With(zerr.With(err, "dependency", dep.DisplayName()), "target", target.Name)
		}
	}

	digest := hex.EncodeToString(h.Sum(nil))
	e.logger.Debug("computed checksum", "target", target.Name, "checksum", digest)
	return digest, nil
}

// hashSource resolves the include/exclude patterns against the project tree at
// call time. Matched paths come out of the walk in lexical order, so the
// hashed sequence is stable. A pattern matching nothing is a configuration
// error: it usually means a stale spec.
func (e *Engine) hashSource(dep domain.Dependency, h hash.Hash) error {
	files, err := walkFiles(e.root)
	if err != nil {
		return err
	}

	includes, err := compilePatterns(dep.Paths)
	if err != nil {
		return err
	}
	excludes, err := compilePatterns(dep.Excludes)
	if err != nil {
		return err
	}

	matchCounts := make(map[string]int, len(includes)+len(excludes))

	for _, file := range files {
		matched := false
		for _, p := range includes {
			if p.MatchString(file) {
				matchCounts[p.String()]++
				matched = true
				break
			}
		}
		for _, p := range excludes {
			if p.MatchString(file) {
				matchCounts[p.String()]++
				matched = false
				break
			}
		}
		if !matched {
			continue
		}

		sum, err := e.fileChecksum(filepath.Join(e.root, filepath.FromSlash(file)))
		if err != nil {
			return err
		}
		writeRecord(h, domain.KindSource, file, sum)
	}

	for _, p := range append(includes, excludes...) {
		if matchCounts[p.String()] == 0 {
			return zerr.With(domain.ErrNoFilesMatched, "pattern", p.String())
		}
	}
	return nil
}

// hashTarget contributes the referenced target's resulting checksum. The
// scheduler guarantees the reference has been resolved before this runs.
func (e *Engine) hashTarget(dep domain.Dependency, resolved ports.ChecksumSource, h hash.Hash) error {
	sum, ok := resolved.ResolvedChecksum(dep.Name)
	if !ok {
		return zerr.With(zerr.With(domain.ErrUnknownTarget, "reason", "referenced target not resolved yet"), "target", dep.Name)
	}
	writeRecord(h, domain.KindTarget, dep.Name, sum)
	return nil
}

// hashCommand runs each command synchronously and contributes its trimmed
// stdout. Commands are re-run on every checksum computation; a non-zero exit
// fails the whole computation.
func (e *Engine) hashCommand(ctx context.Context, dep domain.Dependency, h hash.Hash) error {
	for _, command := range dep.Commands {
		res, err := e.runner.Run(ctx, ports.RunRequest{Command: command, Dir: e.root})
		if err != nil {
			return zerr.With(zerr.With(zerr.Wrap(err, "dependency command failed"), "command", command), "exit_code", res.ExitCode)
		}
		writeRecord(h, domain.KindCommand, command, strings.TrimSpace(res.Stdout))
	}
	return nil
}

// hashVariable matches the declared patterns against the whole environment
// and contributes every matched variable, sorted by name. A pattern matching
// nothing contributes nothing, so fingerprints stay computable on machines
// where the variable is simply absent.
func (e *Engine) hashVariable(dep domain.Dependency, h hash.Hash) error {
	includes, err := compilePatterns(dep.Variables)
	if err != nil {
		return err
	}
	excludes, err := compilePatterns(dep.Excludes)
	if err != nil {
		return err
	}

	var names []string
	values := make(map[string]string)
	for _, pair := range e.environ() {
		name, value, _ := strings.Cut(pair, "=")
		if !matchesAny(includes, name) || matchesAny(excludes, name) {
			continue
		}
		if _, seen := values[name]; !seen {
			names = append(names, name)
		}
		values[name] = value
	}
	sort.Strings(names)

	for _, name := range names {
		writeRecord(h, domain.KindVariable, name, values[name])
	}
	return nil
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func (e *Engine) fileChecksum(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Paths come from the walked project tree
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open source file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash source file"), "path", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// writeRecord encodes one contribution as uvarint-length-prefixed fields. The
// prefixes make the record stream prefix-free, which is what rules out
// collisions between kinds and between adjacent contributions.
func writeRecord(w io.Writer, kind domain.DependencyKind, key, value string) {
	for _, field := range []string{string(kind), key, value} {
		var buf [binary.MaxVarintLen64]byte
		n := binary.PutUvarint(buf[:], uint64(len(field)))
		_, _ = w.Write(buf[:n])
		_, _ = io.WriteString(w, field)
	}
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid pattern"), "pattern", p)
		}
		res = append(res, re)
	}
	return res, nil
}
