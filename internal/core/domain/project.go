package domain

// Project is the fully resolved in-memory model of a configuration tree:
// one application name, the validated target graph, and the script aliases.
// Global dependencies have already been spliced into each target by the loader.
type Project struct {
	AppName string
	Graph   *Graph
	Scripts map[string]*Script

	// ScriptOrder preserves script declaration order for listing.
	ScriptOrder []string
}

// Script returns the script with the given name, or nil.
func (p *Project) Script(name string) *Script {
	return p.Scripts[name]
}
