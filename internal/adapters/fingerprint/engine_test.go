package fingerprint_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quack/internal/adapters/fingerprint"
	"go.trai.ch/quack/internal/adapters/logger"
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/quack/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func testLogger() ports.Logger {
	return logger.NewWithWriter(io.Discard, slog.LevelError)
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return root
}

type staticChecksums map[string]string

func (s staticChecksums) ResolvedChecksum(target string) (string, bool) {
	sum, ok := s[target]
	return sum, ok
}

func sourceTarget(patterns, excludes []string) *domain.Target {
	return &domain.Target{
		Name:  "app",
		Build: "true",
		Dependencies: []domain.Dependency{
			{Kind: domain.KindSource, Paths: patterns, Excludes: excludes},
		},
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/main.go": "package main",
		"src/util.go": "package main // util",
	})
	engine := fingerprint.New(root, nil, testLogger())
	target := sourceTarget([]string{`^src/.*$`}, nil)

	first, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)
	second, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64, "hex sha256")
}

func TestChecksum_ContentSensitive(t *testing.T) {
	files := map[string]string{"src/main.go": "package main"}
	target := sourceTarget([]string{`^src/.*$`}, nil)

	rootA := writeTree(t, files)
	before, err := fingerprint.New(rootA, nil, testLogger()).Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)

	files["src/main.go"] = "package main // changed"
	rootB := writeTree(t, files)
	after, err := fingerprint.New(rootB, nil, testLogger()).Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestChecksum_IgnoresUnmatchedFiles(t *testing.T) {
	target := sourceTarget([]string{`^src/.*$`}, nil)

	rootA := writeTree(t, map[string]string{
		"src/main.go": "package main",
		"README.md":   "v1",
	})
	before, err := fingerprint.New(rootA, nil, testLogger()).Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)

	rootB := writeTree(t, map[string]string{
		"src/main.go": "package main",
		"README.md":   "v2",
	})
	after, err := fingerprint.New(rootB, nil, testLogger()).Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestChecksum_ExcludePatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/main.go":      "package main",
		"src/main_test.go": "package main // test",
	})
	engine := fingerprint.New(root, nil, testLogger())

	all, err := engine.Checksum(context.Background(), sourceTarget([]string{`^src/.*$`}, nil), staticChecksums{})
	require.NoError(t, err)
	filtered, err := engine.Checksum(context.Background(),
		sourceTarget([]string{`^src/.*$`}, []string{`^src/.*_test\.go$`}), staticChecksums{})
	require.NoError(t, err)

	assert.NotEqual(t, all, filtered)
}

func TestChecksum_ZeroMatchesIsError(t *testing.T) {
	root := writeTree(t, map[string]string{"src/main.go": "package main"})
	engine := fingerprint.New(root, nil, testLogger())

	_, err := engine.Checksum(context.Background(), sourceTarget([]string{`^lib/.*$`}, nil), staticChecksums{})
	require.ErrorIs(t, err, domain.ErrNoFilesMatched)
}

func TestChecksum_SkipsInternalDirs(t *testing.T) {
	target := sourceTarget([]string{`^.*\.go$`}, nil)

	rootA := writeTree(t, map[string]string{"main.go": "package main"})
	before, err := fingerprint.New(rootA, nil, testLogger()).Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)

	rootB := writeTree(t, map[string]string{
		"main.go":         "package main",
		".git/hooks.go":   "not a source file",
		".quack/cache.go": "not a source file",
	})
	after, err := fingerprint.New(rootB, nil, testLogger()).Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestChecksum_TargetDependency(t *testing.T) {
	root := t.TempDir()
	engine := fingerprint.New(root, nil, testLogger())
	target := &domain.Target{
		Name:  "app",
		Build: "true",
		Dependencies: []domain.Dependency{
			{Kind: domain.KindTarget, Name: "lib"},
		},
	}

	first, err := engine.Checksum(context.Background(), target, staticChecksums{"lib": "aaa"})
	require.NoError(t, err)
	changed, err := engine.Checksum(context.Background(), target, staticChecksums{"lib": "bbb"})
	require.NoError(t, err)
	assert.NotEqual(t, first, changed, "referenced target checksum must propagate")

	_, err = engine.Checksum(context.Background(), target, staticChecksums{})
	require.ErrorIs(t, err, domain.ErrUnknownTarget)
}

func TestChecksum_CommandDependency(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	root := t.TempDir()
	engine := fingerprint.New(root, runner, testLogger())
	target := &domain.Target{
		Name:  "app",
		Build: "true",
		Dependencies: []domain.Dependency{
			{Kind: domain.KindCommand, Commands: []string{"go version"}},
		},
	}

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(ports.RunResult{Stdout: "go1.25.3\n"}, nil)
	first, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)

	// Trailing whitespace never changes the contribution.
	runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(ports.RunResult{Stdout: "  go1.25.3  \n"}, nil)
	trimmed, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)
	assert.Equal(t, first, trimmed)

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(ports.RunResult{Stdout: "go1.26.0\n"}, nil)
	changed, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestChecksum_CommandFailureFailsComputation(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := mocks.NewMockCommandRunner(ctrl)
	engine := fingerprint.New(t.TempDir(), runner, testLogger())
	target := &domain.Target{
		Name:  "app",
		Build: "true",
		Dependencies: []domain.Dependency{
			{Kind: domain.KindCommand, Commands: []string{"false"}},
		},
	}

	runner.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(ports.RunResult{ExitCode: 1}, domain.ErrCommandFailed)

	_, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.ErrorIs(t, err, domain.ErrCommandFailed)
}

func TestChecksum_VariableDependency(t *testing.T) {
	engine := fingerprint.New(t.TempDir(), nil, testLogger())
	target := &domain.Target{
		Name:  "app",
		Build: "true",
		Dependencies: []domain.Dependency{
			{Kind: domain.KindVariable, Variables: []string{`^QUACK_TEST_CC$`}},
		},
	}

	t.Setenv("QUACK_TEST_CC", "gcc")
	first, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)

	t.Setenv("QUACK_TEST_CC", "clang")
	changed, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)

	// An absent variable contributes nothing, which keeps the fingerprint
	// computable but distinguishes "unset" from "set to empty".
	require.NoError(t, os.Unsetenv("QUACK_TEST_CC"))
	unset, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)

	t.Setenv("QUACK_TEST_CC", "")
	empty, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)
	assert.NotEqual(t, unset, empty)
}

func TestChecksum_VariablePatternMatching(t *testing.T) {
	engine := fingerprint.New(t.TempDir(), nil, testLogger())
	target := &domain.Target{
		Name:  "app",
		Build: "true",
		Dependencies: []domain.Dependency{
			{
				Kind:      domain.KindVariable,
				Variables: []string{`^QUACK_CI_.*$`},
				Excludes:  []string{`^QUACK_CI_TOKEN$`},
			},
		},
	}

	t.Setenv("QUACK_CI_REGION", "eu")
	t.Setenv("QUACK_CI_TOKEN", "hunter2")
	base, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)

	t.Setenv("QUACK_CI_TOKEN", "rotated")
	sum, err := engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)
	assert.Equal(t, base, sum, "excluded variables never contribute")

	t.Setenv("QUACK_CI_REGION", "us")
	sum, err = engine.Checksum(context.Background(), target, staticChecksums{})
	require.NoError(t, err)
	assert.NotEqual(t, base, sum, "every matched variable contributes")
}

func TestChecksum_KindsDoNotCollide(t *testing.T) {
	engine := fingerprint.New(t.TempDir(), nil, testLogger())

	asVariable := &domain.Target{
		Name:  "app",
		Build: "true",
		Dependencies: []domain.Dependency{
			{Kind: domain.KindVariable, Variables: []string{`^lib$`}},
		},
	}
	asTarget := &domain.Target{
		Name:  "app",
		Build: "true",
		Dependencies: []domain.Dependency{
			{Kind: domain.KindTarget, Name: "lib"},
		},
	}

	t.Setenv("lib", "abc")
	varSum, err := engine.Checksum(context.Background(), asVariable, staticChecksums{})
	require.NoError(t, err)
	targetSum, err := engine.Checksum(context.Background(), asTarget, staticChecksums{"lib": "abc"})
	require.NoError(t, err)

	assert.NotEqual(t, varSum, targetSum, "same key and value under different kinds")
}
