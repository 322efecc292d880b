package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

var (
	targetNameRe = regexp.MustCompile(`^[a-z0-9\-:]+$`)
	scriptNameRe = regexp.MustCompile(`^[a-z0-9\-_\.]+$`)
)

const (
	maxNameLen        = 48
	maxDescriptionLen = 255
)

// Outputs declares the paths a target produces, relative to the working directory.
// When Inherit is set the loader unions in the outputs of every target-kind
// dependency, recursively.
type Outputs struct {
	Paths   []string
	Inherit bool
}

// Target is a named, cacheable unit of work. Targets are defined once at spec
// load and immutable afterwards.
type Target struct {
	Name         string
	Description  string
	Dependencies []Dependency
	Build        string
	Outputs      Outputs

	// CacheMode, when non-empty, overrides the global cache policy for this target.
	CacheMode CacheMode
}

// DependsOn returns the names of all target-kind dependencies in declaration order.
func (t *Target) DependsOn() []string {
	var names []string
	for _, dep := range t.Dependencies {
		if dep.Kind == KindTarget {
			names = append(names, dep.Name)
		}
	}
	return names
}

// Validate checks the target declaration against the naming and size rules.
func (t *Target) Validate() error {
	if !targetNameRe.MatchString(t.Name) {
		return zerr.With(zerr.With(ErrInvalidSpec, "reason", "target name must be lowercase letters, digits, colons and hyphens"), "target", t.Name)
	}
	if len(t.Name) > maxNameLen {
		return zerr.With(zerr.With(ErrInvalidSpec, "reason", "target name too long"), "target", t.Name)
	}
	if len(t.Description) > maxDescriptionLen {
		return zerr.With(zerr.With(ErrInvalidSpec, "reason", "target description too long"), "target", t.Name)
	}
	if t.Build == "" {
		return zerr.With(zerr.With(ErrInvalidSpec, "reason", "target needs a build command"), "target", t.Name)
	}
	for _, dep := range t.Dependencies {
		if err := dep.Validate(); err != nil {
			return zerr.With(err, "target", t.Name)
		}
	}
	return nil
}

// Script is a named alias that either runs an arbitrary command or invokes a
// target by name. It has no caching semantics of its own.
type Script struct {
	Name        string
	Description string

	// Exactly one of Command and Target is set.
	Command string
	Target  string
}

// Validate checks the script declaration.
func (s *Script) Validate() error {
	if !scriptNameRe.MatchString(s.Name) {
		return zerr.With(zerr.With(ErrInvalidSpec, "reason", "script name must be lowercase letters, digits, dots, hyphens and underscores"), "script", s.Name)
	}
	if len(s.Name) > maxNameLen {
		return zerr.With(zerr.With(ErrInvalidSpec, "reason", "script name too long"), "script", s.Name)
	}
	if len(s.Description) > maxDescriptionLen {
		return zerr.With(zerr.With(ErrInvalidSpec, "reason", "script description too long"), "script", s.Name)
	}
	if (s.Command == "") == (s.Target == "") {
		return zerr.With(zerr.With(ErrInvalidSpec, "reason", "script needs exactly one of command or target"), "script", s.Name)
	}
	return nil
}
