// Package domain contains the core domain models for the target dependency graph.
package domain

import (
	"iter"
	"strings"

	"go.trai.ch/zerr"
)

// Graph is a directed acyclic graph of targets keyed by name. Edges point from
// a target to each target it depends on via target-kind dependencies.
type Graph struct {
	targets map[string]*Target

	// order preserves declaration order so that traversal and tie-breaking
	// are deterministic across runs.
	order []string

	executionOrder []string
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{targets: make(map[string]*Target)}
}

// AddTarget adds a target to the graph.
// It returns an error if a target with the same name already exists.
func (g *Graph) AddTarget(t *Target) error {
	if _, exists := g.targets[t.Name]; exists {
		return zerr.With(ErrTargetAlreadyExists, "target", t.Name)
	}
	g.targets[t.Name] = t
	g.order = append(g.order, t.Name)
	return nil
}

// Get returns the target with the given name.
func (g *Graph) Get(name string) (*Target, error) {
	t, ok := g.targets[name]
	if !ok {
		return nil, zerr.With(ErrTargetNotFound, "target", name)
	}
	return t, nil
}

// Len returns the number of targets in the graph.
func (g *Graph) Len() int {
	return len(g.targets)
}

// Names returns all target names in declaration order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// Validate checks that every referenced target exists and that the graph has no
// cycles, using a three-color depth-first traversal. On success it records a
// topological execution order with ties broken by declaration order.
func (g *Graph) Validate() error {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)

	g.executionOrder = make([]string, 0, len(g.targets))
	visited := make(map[string]int, len(g.targets))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		visited[name] = visiting
		path = append(path, name)

		target, exists := g.targets[name]
		if !exists {
			return zerr.With(zerr.With(ErrUnknownTarget, "target", name), "referenced_by", path[len(path)-2])
		}

		for _, dep := range target.DependsOn() {
			switch visited[dep] {
			case visiting:
				return g.cycleError(path, dep)
			case unvisited:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[name] = done
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, name)
		return nil
	}

	for _, name := range g.order {
		if visited[name] == unvisited {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// cycleError names the cycle as a sequence of target names, e.g. "a -> b -> a".
func (g *Graph) cycleError(path []string, dep string) error {
	start := 0
	for i, node := range path {
		if node == dep {
			start = i
			break
		}
	}
	cycle := strings.Join(append(path[start:], dep), " -> ")
	return zerr.With(ErrCycleDetected, "cycle", cycle)
}

// Walk yields targets in execution order. Validate must have succeeded first.
func (g *Graph) Walk() iter.Seq[*Target] {
	return func(yield func(*Target) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.targets[name]) {
				return
			}
		}
	}
}

// Subgraph returns the induced subgraph of the given roots and all their
// transitive dependencies, in a valid execution order. Validate must have
// succeeded first so that executionOrder is populated.
func (g *Graph) Subgraph(roots []string) ([]*Target, error) {
	wanted := make(map[string]bool, len(roots))

	var mark func(name string) error
	mark = func(name string) error {
		if wanted[name] {
			return nil
		}
		target, exists := g.targets[name]
		if !exists {
			return zerr.With(ErrTargetNotFound, "target", name)
		}
		wanted[name] = true
		for _, dep := range target.DependsOn() {
			if err := mark(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := mark(root); err != nil {
			return nil, err
		}
	}

	ordered := make([]*Target, 0, len(wanted))
	for _, name := range g.executionOrder {
		if wanted[name] {
			ordered = append(ordered, g.targets[name])
		}
	}
	return ordered, nil
}

// Dependents returns the names of targets that directly depend on the given
// target, in declaration order.
func (g *Graph) Dependents(name string) []string {
	var dependents []string
	for _, candidate := range g.order {
		for _, dep := range g.targets[candidate].DependsOn() {
			if dep == name {
				dependents = append(dependents, candidate)
				break
			}
		}
	}
	return dependents
}
