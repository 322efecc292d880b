package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/zerr"
)

func makeTarget(name string, deps ...string) *domain.Target {
	t := &domain.Target{Name: name, Build: "true"}
	for _, dep := range deps {
		t.Dependencies = append(t.Dependencies, domain.Dependency{Kind: domain.KindTarget, Name: dep})
	}
	return t
}

func makeGraph(t *testing.T, targets ...*domain.Target) *domain.Graph {
	t.Helper()
	g := domain.NewGraph()
	for _, target := range targets {
		require.NoError(t, g.AddTarget(target))
	}
	return g
}

func walkOrder(g *domain.Graph) []string {
	var order []string
	for target := range g.Walk() {
		order = append(order, target.Name)
	}
	return order
}

func TestGraph_Validate_TopologicalOrder(t *testing.T) {
	g := makeGraph(t,
		makeTarget("app", "lib"),
		makeTarget("lib", "proto"),
		makeTarget("proto"),
	)

	require.NoError(t, g.Validate())
	assert.Equal(t, []string{"proto", "lib", "app"}, walkOrder(g))
}

func TestGraph_Validate_DeclarationOrderTieBreak(t *testing.T) {
	// b and c are both roots; declaration order decides who walks first.
	g := makeGraph(t,
		makeTarget("b"),
		makeTarget("c"),
		makeTarget("a", "b", "c"),
	)

	require.NoError(t, g.Validate())
	assert.Equal(t, []string{"b", "c", "a"}, walkOrder(g))
}

func TestGraph_Validate_Cycle(t *testing.T) {
	g := makeGraph(t,
		makeTarget("a", "b"),
		makeTarget("b", "a"),
	)

	err := g.Validate()
	require.ErrorIs(t, err, domain.ErrCycleDetected)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "a -> b -> a", zErr.Metadata()["cycle"])
}

func TestGraph_Validate_SelfCycle(t *testing.T) {
	g := makeGraph(t, makeTarget("a", "a"))

	err := g.Validate()
	require.ErrorIs(t, err, domain.ErrCycleDetected)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "a -> a", zErr.Metadata()["cycle"])
}

func TestGraph_Validate_UnknownReference(t *testing.T) {
	g := makeGraph(t, makeTarget("a", "missing"))

	err := g.Validate()
	require.ErrorIs(t, err, domain.ErrUnknownTarget)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "missing", zErr.Metadata()["target"])
	assert.Equal(t, "a", zErr.Metadata()["referenced_by"])
}

func TestGraph_AddTarget_Duplicate(t *testing.T) {
	g := makeGraph(t, makeTarget("a"))
	err := g.AddTarget(makeTarget("a"))
	require.ErrorIs(t, err, domain.ErrTargetAlreadyExists)
}

func TestGraph_Subgraph(t *testing.T) {
	g := makeGraph(t,
		makeTarget("proto"),
		makeTarget("lib", "proto"),
		makeTarget("app", "lib"),
		makeTarget("docs"),
	)
	require.NoError(t, g.Validate())

	sub, err := g.Subgraph([]string{"app"})
	require.NoError(t, err)

	names := make([]string, 0, len(sub))
	for _, target := range sub {
		names = append(names, target.Name)
	}
	assert.Equal(t, []string{"proto", "lib", "app"}, names, "docs is unreachable from app")
}

func TestGraph_Subgraph_UnknownRoot(t *testing.T) {
	g := makeGraph(t, makeTarget("a"))
	require.NoError(t, g.Validate())

	_, err := g.Subgraph([]string{"nope"})
	require.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestGraph_Dependents(t *testing.T) {
	g := makeGraph(t,
		makeTarget("proto"),
		makeTarget("lib", "proto"),
		makeTarget("app", "lib", "proto"),
	)
	require.NoError(t, g.Validate())

	assert.Equal(t, []string{"lib", "app"}, g.Dependents("proto"))
	assert.Equal(t, []string{"app"}, g.Dependents("lib"))
	assert.Empty(t, g.Dependents("app"))
}
