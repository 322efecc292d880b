package domain

import (
	"fmt"
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// DependencyKind discriminates the closed set of dependency variants.
type DependencyKind string

const (
	// KindSource selects project files by anchored regular expressions.
	KindSource DependencyKind = "source"
	// KindTarget references another target; its resulting checksum is the contribution.
	KindTarget DependencyKind = "target"
	// KindCommand contributes the captured stdout of a command, re-run on every fingerprint.
	KindCommand DependencyKind = "command"
	// KindVariable contributes the value of named environment variables (empty if unset).
	KindVariable DependencyKind = "variable"
	// KindGlobal is a by-name reference to a spec-level dependency. It never survives
	// spec loading: the loader replaces it with the underlying declaration.
	KindGlobal DependencyKind = "global"
)

// Dependency is a tagged variant. Exactly the fields for its Kind are populated;
// resolution dispatches on Kind rather than on subtyping, so adding a kind means
// adding a constant and a matching arm.
type Dependency struct {
	Kind DependencyKind

	// Paths holds anchored regular expressions for KindSource. Excludes
	// filters matches for both KindSource and KindVariable.
	Paths    []string
	Excludes []string

	// Name is the referenced target name (KindTarget) or the global
	// dependency name (KindGlobal).
	Name string

	// Commands holds the shell commands for KindCommand.
	Commands []string

	// Variables holds anchored regular expressions matched against
	// environment variable names for KindVariable.
	Variables []string
}

// DisplayName returns a short human-readable identifier for log output.
func (d Dependency) DisplayName() string {
	switch d.Kind {
	case KindSource:
		return fmt.Sprintf("source[%d]:%s", len(d.Paths), first(d.Paths))
	case KindTarget:
		return "target:" + d.Name
	case KindCommand:
		return fmt.Sprintf("command[%d]:%s", len(d.Commands), firstWord(first(d.Commands)))
	case KindVariable:
		return fmt.Sprintf("variable[%d]:%s", len(d.Variables), first(d.Variables))
	case KindGlobal:
		return "global:" + d.Name
	default:
		return string(d.Kind)
	}
}

// Validate checks the structural invariants of the declaration. Pattern fields
// must be anchored so that a pattern always means "whole path", never a substring.
func (d Dependency) Validate() error {
	switch d.Kind {
	case KindSource:
		if len(d.Paths) == 0 {
			return zerr.With(ErrInvalidSpec, "reason", "source dependency needs at least one path pattern")
		}
		for _, p := range append(append([]string{}, d.Paths...), d.Excludes...) {
			if err := validatePattern(p); err != nil {
				return err
			}
		}
	case KindTarget:
		if d.Name == "" {
			return zerr.With(ErrInvalidSpec, "reason", "target dependency needs a name")
		}
	case KindCommand:
		if len(d.Commands) == 0 {
			return zerr.With(ErrInvalidSpec, "reason", "command dependency needs at least one command")
		}
	case KindVariable:
		if len(d.Variables) == 0 {
			return zerr.With(ErrInvalidSpec, "reason", "variable dependency needs at least one name pattern")
		}
		for _, p := range append(append([]string{}, d.Variables...), d.Excludes...) {
			if err := validatePattern(p); err != nil {
				return err
			}
		}
	case KindGlobal:
		if d.Name == "" {
			return zerr.With(ErrInvalidSpec, "reason", "global dependency needs a name")
		}
	default:
		return zerr.With(ErrInvalidSpec, "kind", string(d.Kind))
	}
	return nil
}

func validatePattern(p string) error {
	if !strings.HasPrefix(p, "^") || !strings.HasSuffix(p, "$") {
		return zerr.With(zerr.With(ErrInvalidSpec, "reason", "pattern must be anchored with ^ and $"), "pattern", p)
	}
	if _, err := regexp.Compile(p); err != nil {
		return zerr.With(zerr.Wrap(err, "invalid pattern"), "pattern", p)
	}
	return nil
}

func first(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}

func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[:i]
	}
	return s
}
