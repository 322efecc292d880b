package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quack/internal/core/domain"
)

func validTarget() *domain.Target {
	return &domain.Target{
		Name:  "app:build",
		Build: "go build ./...",
		Dependencies: []domain.Dependency{
			{Kind: domain.KindSource, Paths: []string{`^src/.*$`}},
		},
	}
}

func TestTarget_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Target)
		wantErr bool
	}{
		{name: "valid", mutate: func(*domain.Target) {}},
		{name: "uppercase name", mutate: func(tg *domain.Target) { tg.Name = "App" }, wantErr: true},
		{name: "empty name", mutate: func(tg *domain.Target) { tg.Name = "" }, wantErr: true},
		{name: "name with slash", mutate: func(tg *domain.Target) { tg.Name = "a/b" }, wantErr: true},
		{name: "name too long", mutate: func(tg *domain.Target) { tg.Name = strings.Repeat("a", 49) }, wantErr: true},
		{name: "name at limit", mutate: func(tg *domain.Target) { tg.Name = strings.Repeat("a", 48) }},
		{name: "description too long", mutate: func(tg *domain.Target) { tg.Description = strings.Repeat("d", 256) }, wantErr: true},
		{name: "missing build command", mutate: func(tg *domain.Target) { tg.Build = "" }, wantErr: true},
		{name: "unanchored pattern", mutate: func(tg *domain.Target) {
			tg.Dependencies[0].Paths = []string{`src/.*`}
		}, wantErr: true},
		{name: "unanchored exclude", mutate: func(tg *domain.Target) {
			tg.Dependencies[0].Excludes = []string{`.*_test\.go`}
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := validTarget()
			tt.mutate(target)
			err := target.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidSpec)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTarget_Validate_BadRegex(t *testing.T) {
	target := validTarget()
	target.Dependencies[0].Paths = []string{`^src/[$`}
	err := target.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}

func TestTarget_DependsOn(t *testing.T) {
	target := &domain.Target{
		Name:  "app",
		Build: "make",
		Dependencies: []domain.Dependency{
			{Kind: domain.KindSource, Paths: []string{`^src/.*$`}},
			{Kind: domain.KindTarget, Name: "lib"},
			{Kind: domain.KindVariable, Variables: []string{`^CC$`}},
			{Kind: domain.KindTarget, Name: "proto"},
		},
	}
	assert.Equal(t, []string{"lib", "proto"}, target.DependsOn())
}

func TestScript_Validate(t *testing.T) {
	tests := []struct {
		name    string
		script  domain.Script
		wantErr bool
	}{
		{name: "command script", script: domain.Script{Name: "test", Command: "go test ./..."}},
		{name: "target alias", script: domain.Script{Name: "build.all", Target: "app"}},
		{name: "neither command nor target", script: domain.Script{Name: "noop"}, wantErr: true},
		{name: "both command and target", script: domain.Script{Name: "both", Command: "true", Target: "app"}, wantErr: true},
		{name: "colon not allowed", script: domain.Script{Name: "a:b", Command: "true"}, wantErr: true},
		{name: "underscore allowed", script: domain.Script{Name: "run_it", Command: "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.script.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidSpec)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDependency_Validate_EmptyVariants(t *testing.T) {
	tests := []struct {
		name string
		dep  domain.Dependency
	}{
		{name: "source without paths", dep: domain.Dependency{Kind: domain.KindSource}},
		{name: "target without name", dep: domain.Dependency{Kind: domain.KindTarget}},
		{name: "command without commands", dep: domain.Dependency{Kind: domain.KindCommand}},
		{name: "variable without names", dep: domain.Dependency{Kind: domain.KindVariable}},
		{name: "global without name", dep: domain.Dependency{Kind: domain.KindGlobal}},
		{name: "unknown kind", dep: domain.Dependency{Kind: "mystery"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.dep.Validate(), domain.ErrInvalidSpec)
		})
	}
}

func TestDependency_Validate_VariablePatterns(t *testing.T) {
	dep := domain.Dependency{
		Kind:      domain.KindVariable,
		Variables: []string{`^CI_.*$`},
		Excludes:  []string{`^CI_TOKEN$`},
	}
	assert.NoError(t, dep.Validate())

	dep.Variables = []string{"CC"}
	assert.ErrorIs(t, dep.Validate(), domain.ErrInvalidSpec, "variable patterns must be anchored")
}

func TestDependency_DisplayName(t *testing.T) {
	assert.Equal(t, "source[2]:^src/.*$",
		domain.Dependency{Kind: domain.KindSource, Paths: []string{`^src/.*$`, `^go\.mod$`}}.DisplayName())
	assert.Equal(t, "target:lib",
		domain.Dependency{Kind: domain.KindTarget, Name: "lib"}.DisplayName())
	assert.Equal(t, "command[1]:go",
		domain.Dependency{Kind: domain.KindCommand, Commands: []string{"go version"}}.DisplayName())
	assert.Equal(t, "variable[1]:^CC$",
		domain.Dependency{Kind: domain.KindVariable, Variables: []string{`^CC$`}}.DisplayName())
}

func TestParseCacheMode(t *testing.T) {
	for _, valid := range []string{"false", "local", "cloud", "dev"} {
		mode, err := domain.ParseCacheMode(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.CacheMode(valid), mode)
	}

	mode, err := domain.ParseCacheMode("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCacheMode, mode)

	_, err = domain.ParseCacheMode("remote")
	assert.ErrorIs(t, err, domain.ErrInvalidCacheMode)
}

func TestCacheKey_Path(t *testing.T) {
	key := domain.CacheKey{App: "shop", Target: "api", Checksum: "abc123"}
	assert.Equal(t, "shop/api/abc123", key.Path())
	assert.Equal(t, "api.tar.gz", key.ArchiveFileName())
}
