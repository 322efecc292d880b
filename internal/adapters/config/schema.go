package config

// SpecFileName is the name of the project configuration file.
const SpecFileName = "quack.yaml"

// SpecFile represents the structure of the quack.yaml configuration file.
type SpecFile struct {
	App                string          `yaml:"app"`
	GlobalDependencies []GlobalDepDTO  `yaml:"global_dependencies"`
	Targets            []TargetDTO     `yaml:"targets"`
	Scripts            []ScriptDTO     `yaml:"scripts"`
	Include            []string        `yaml:"include"`
}

// GlobalDepDTO is a named dependency declared once at spec level. When
// Propagate is set it is prepended to every target's dependency list;
// otherwise targets pull it in by name with a global-kind reference. The
// fields mirror DependencyDTO except that target references use the "target"
// key, since "name" already names the global itself.
type GlobalDepDTO struct {
	Name      string   `yaml:"name"`
	Propagate bool     `yaml:"propagate"`
	Type      string   `yaml:"type"`
	Paths     []string `yaml:"paths"`
	Excludes  []string `yaml:"excludes"`
	Commands  []string `yaml:"commands"`
	Names     []string `yaml:"names"`
	Target    string   `yaml:"target"`
}

// dependency converts the global declaration into a plain dependency DTO.
func (g GlobalDepDTO) dependency() DependencyDTO {
	return DependencyDTO{
		Type:     g.Type,
		Paths:    g.Paths,
		Excludes: g.Excludes,
		Commands: g.Commands,
		Names:    g.Names,
		Name:     g.Target,
	}
}

// DependencyDTO is one tagged dependency declaration.
type DependencyDTO struct {
	Type     string   `yaml:"type"`
	Paths    []string `yaml:"paths"`
	Excludes []string `yaml:"excludes"`
	Name     string   `yaml:"name"`
	Commands []string `yaml:"commands"`
	Names    []string `yaml:"names"`
}

// TargetDTO represents a target definition in the configuration.
type TargetDTO struct {
	Name         string          `yaml:"name"`
	Description  string          `yaml:"description"`
	Dependencies []DependencyDTO `yaml:"dependencies"`
	Operations   OperationsDTO   `yaml:"operations"`
	Outputs      OutputsDTO      `yaml:"outputs"`
	Cache        string          `yaml:"cache"`
}

// OperationsDTO holds the commands a target can run. Build is the only
// operation today.
type OperationsDTO struct {
	Build string `yaml:"build"`
}

// OutputsDTO declares a target's produced paths.
type OutputsDTO struct {
	Paths   []string `yaml:"paths"`
	Inherit bool     `yaml:"inherit"`
}

// ScriptDTO represents a script definition in the configuration.
type ScriptDTO struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Command     string `yaml:"command"`
	Target      string `yaml:"target"`
}
