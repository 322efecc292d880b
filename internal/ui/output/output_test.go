package output_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/engine/scheduler"
	"go.trai.ch/quack/internal/ui/output"
)

func TestPrinter_Summary(t *testing.T) {
	var buf bytes.Buffer
	p := output.NewPrinter(&buf)

	p.Summary(&scheduler.Summary{Outcomes: []scheduler.Outcome{
		{Target: "proto", Status: scheduler.StatusBuilt, CacheHit: true},
		{Target: "lib", Status: scheduler.StatusBuilt},
		{Target: "api", Status: scheduler.StatusFailed, Err: errors.New("exit 2")},
		{Target: "docs", Status: scheduler.StatusCancelled},
	}})

	out := buf.String()
	assert.Contains(t, out, "proto")
	assert.Contains(t, out, "cached")
	assert.Contains(t, out, "built")
	assert.Contains(t, out, "exit 2")
	assert.Contains(t, out, "cancelled")
}

func TestPrinter_Project(t *testing.T) {
	g := domain.NewGraph()
	require.NoError(t, g.AddTarget(&domain.Target{
		Name:        "api",
		Description: "Build the API",
		Build:       "make api",
	}))
	require.NoError(t, g.Validate())
	project := &domain.Project{
		AppName: "shop",
		Graph:   g,
		Scripts: map[string]*domain.Script{
			"test": {Name: "test", Command: "go test ./..."},
		},
		ScriptOrder: []string{"test"},
	}

	var buf bytes.Buffer
	output.NewPrinter(&buf).Project(project)

	out := buf.String()
	assert.Contains(t, out, "Targets")
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "Build the API")
	assert.Contains(t, out, "Scripts")
	assert.Contains(t, out, "test")
}
