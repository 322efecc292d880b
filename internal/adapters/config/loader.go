// Package config loads the project spec and the tool settings.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"go.trai.ch/quack/internal/core/domain"
	"go.trai.ch/quack/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.SpecLoader = (*Loader)(nil)

// Loader implements ports.SpecLoader from quack.yaml files. Included specs are
// merged into the root spec; targets and scripts must be uniquely named across
// the whole tree.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the spec rooted at dir, merges includes, resolves global
// dependencies and inherited outputs, validates everything, and returns the
// project model with a cycle-checked graph.
func (l *Loader) Load(dir string) (*domain.Project, error) {
	root, specFiles, err := l.readTree(dir)
	if err != nil {
		return nil, err
	}

	if root.App == "" {
		return nil, zerr.With(domain.ErrInvalidSpec, "reason", "spec needs an app name")
	}

	globals, propagated, err := resolveGlobals(root.GlobalDependencies)
	if err != nil {
		return nil, err
	}

	// Every target implicitly depends on the spec files themselves, so a
	// configuration change invalidates all cached entries.
	specDep := specFilesDependency(specFiles)

	graph := domain.NewGraph()
	for _, dto := range root.Targets {
		target, err := buildTarget(dto, globals, append([]domain.Dependency{specDep}, propagated...))
		if err != nil {
			return nil, err
		}
		if err := target.Validate(); err != nil {
			return nil, err
		}
		if err := graph.AddTarget(target); err != nil {
			return nil, err
		}
	}

	// Cycle and reference checks must pass before walking inherit edges,
	// otherwise the inherit resolution could recurse forever.
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	if err := resolveInheritedOutputs(graph); err != nil {
		return nil, err
	}

	scripts := make(map[string]*domain.Script, len(root.Scripts))
	var scriptOrder []string
	for _, dto := range root.Scripts {
		script := &domain.Script{
			Name:        dto.Name,
			Description: dto.Description,
			Command:     dto.Command,
			Target:      dto.Target,
		}
		if err := script.Validate(); err != nil {
			return nil, err
		}
		if _, exists := scripts[script.Name]; exists {
			return nil, zerr.With(zerr.With(domain.ErrInvalidSpec, "reason", "duplicate script name"), "script", script.Name)
		}
		if slices.Contains(graph.Names(), script.Name) {
			return nil, zerr.With(zerr.With(domain.ErrInvalidSpec, "reason", "script name collides with a target"), "script", script.Name)
		}
		if script.Target != "" {
			if _, err := graph.Get(script.Target); err != nil {
				return nil, zerr.With(zerr.With(domain.ErrUnknownTarget, "target", script.Target), "referenced_by", "script "+script.Name)
			}
		}
		scripts[script.Name] = script
		scriptOrder = append(scriptOrder, script.Name)
	}

	l.logger.Debug("loaded project spec", "app", root.App, "targets", graph.Len(), "scripts", len(scripts))

	return &domain.Project{
		AppName:     root.App,
		Graph:       graph,
		Scripts:     scripts,
		ScriptOrder: scriptOrder,
	}, nil
}

// readTree parses the spec at dir and merges every included spec into it.
// The returned file list holds the spec paths relative to dir.
func (l *Loader) readTree(dir string) (*SpecFile, []string, error) {
	root, err := readSpecFile(filepath.Join(dir, SpecFileName))
	if err != nil {
		return nil, nil, err
	}
	specFiles := []string{SpecFileName}

	for _, include := range root.Include {
		rel := filepath.ToSlash(filepath.Join(include, SpecFileName))
		included, err := readSpecFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, nil, err
		}
		if len(included.Include) > 0 {
			return nil, nil, zerr.With(zerr.With(domain.ErrInvalidSpec, "reason", "nested includes are not supported"), "spec", rel)
		}
		root.Targets = append(root.Targets, included.Targets...)
		root.Scripts = append(root.Scripts, included.Scripts...)
		specFiles = append(specFiles, rel)
	}
	return root, specFiles, nil
}

func readSpecFile(path string) (*SpecFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is the user's project spec
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read spec file"), "path", path)
	}
	var spec SpecFile
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse spec file"), "path", path)
	}
	return &spec, nil
}

// resolveGlobals indexes the named global dependencies and collects the
// propagated ones in declaration order.
func resolveGlobals(dtos []GlobalDepDTO) (map[string]domain.Dependency, []domain.Dependency, error) {
	globals := make(map[string]domain.Dependency, len(dtos))
	var propagated []domain.Dependency
	for _, dto := range dtos {
		if dto.Name == "" {
			return nil, nil, zerr.With(domain.ErrInvalidSpec, "reason", "global dependency needs a name")
		}
		if _, exists := globals[dto.Name]; exists {
			return nil, nil, zerr.With(zerr.With(domain.ErrInvalidSpec, "reason", "duplicate global dependency"), "name", dto.Name)
		}
		dep, err := buildDependency(dto.dependency())
		if err != nil {
			return nil, nil, zerr.With(err, "global_dependency", dto.Name)
		}
		if dep.Kind == domain.KindGlobal {
			return nil, nil, zerr.With(zerr.With(domain.ErrInvalidSpec, "reason", "global dependency cannot reference another global"), "name", dto.Name)
		}
		globals[dto.Name] = dep
		if dto.Propagate {
			propagated = append(propagated, dep)
		}
	}
	return globals, propagated, nil
}

func buildTarget(dto TargetDTO, globals map[string]domain.Dependency, implicit []domain.Dependency) (*domain.Target, error) {
	deps := append([]domain.Dependency{}, implicit...)
	for _, depDTO := range dto.Dependencies {
		dep, err := buildDependency(depDTO)
		if err != nil {
			return nil, zerr.With(err, "target", dto.Name)
		}
		if dep.Kind == domain.KindGlobal {
			resolved, ok := globals[dep.Name]
			if !ok {
				return nil, zerr.With(zerr.With(domain.ErrUnknownGlobalDependency, "name", dep.Name), "target", dto.Name)
			}
			dep = resolved
		}
		deps = append(deps, dep)
	}

	mode := domain.CacheMode("")
	if dto.Cache != "" {
		parsed, err := domain.ParseCacheMode(dto.Cache)
		if err != nil {
			return nil, zerr.With(err, "target", dto.Name)
		}
		mode = parsed
	}

	return &domain.Target{
		Name:         dto.Name,
		Description:  dto.Description,
		Dependencies: deps,
		Build:        dto.Operations.Build,
		Outputs: domain.Outputs{
			Paths:   dto.Outputs.Paths,
			Inherit: dto.Outputs.Inherit,
		},
		CacheMode: mode,
	}, nil
}

func buildDependency(dto DependencyDTO) (domain.Dependency, error) {
	switch domain.DependencyKind(dto.Type) {
	case domain.KindSource:
		return domain.Dependency{Kind: domain.KindSource, Paths: dto.Paths, Excludes: dto.Excludes}, nil
	case domain.KindTarget:
		return domain.Dependency{Kind: domain.KindTarget, Name: dto.Name}, nil
	case domain.KindCommand:
		return domain.Dependency{Kind: domain.KindCommand, Commands: dto.Commands}, nil
	case domain.KindVariable:
		return domain.Dependency{Kind: domain.KindVariable, Variables: dto.Names, Excludes: dto.Excludes}, nil
	case domain.KindGlobal:
		return domain.Dependency{Kind: domain.KindGlobal, Name: dto.Name}, nil
	default:
		return domain.Dependency{}, zerr.With(zerr.With(domain.ErrInvalidSpec, "reason", "unknown dependency type"), "type", dto.Type)
	}
}

// specFilesDependency builds the implicit source dependency matching the spec
// files themselves.
func specFilesDependency(specFiles []string) domain.Dependency {
	patterns := make([]string, len(specFiles))
	for i, f := range specFiles {
		patterns[i] = "^" + regexp.QuoteMeta(f) + "$"
	}
	return domain.Dependency{Kind: domain.KindSource, Paths: patterns}
}

// resolveInheritedOutputs unions dependency outputs into every target that
// declares inherit, following target-kind edges recursively.
func resolveInheritedOutputs(graph *domain.Graph) error {
	resolved := make(map[string][]string)

	var outputs func(name string) ([]string, error)
	outputs = func(name string) ([]string, error) {
		if paths, ok := resolved[name]; ok {
			return paths, nil
		}
		target, err := graph.Get(name)
		if err != nil {
			return nil, err
		}
		paths := append([]string{}, target.Outputs.Paths...)
		if target.Outputs.Inherit {
			for _, dep := range target.DependsOn() {
				depPaths, err := outputs(dep)
				if err != nil {
					return nil, err
				}
				paths = append(paths, depPaths...)
			}
			slices.Sort(paths)
			paths = slices.Compact(paths)
		}
		resolved[name] = paths
		return paths, nil
	}

	for _, name := range graph.Names() {
		paths, err := outputs(name)
		if err != nil {
			return err
		}
		target, _ := graph.Get(name)
		target.Outputs.Paths = paths
	}
	return nil
}
