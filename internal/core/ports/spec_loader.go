package ports

import "go.trai.ch/quack/internal/core/domain"

// SpecLoader loads and validates the project configuration tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=spec_loader.go -destination=mocks/mock_spec_loader.go -package=mocks
type SpecLoader interface {
	// Load reads the spec rooted at dir and returns the resolved project model.
	Load(dir string) (*domain.Project, error)
}
