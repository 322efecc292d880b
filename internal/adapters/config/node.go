package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quack/internal/adapters/logger"
	"go.trai.ch/quack/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the spec loader Graft node.
	NodeID graft.ID = "adapter.spec_loader"
	// SettingsNodeID is the unique identifier for the tool settings Graft node.
	SettingsNodeID graft.ID = "adapter.settings"
)

func init() {
	graft.Register(graft.Node[ports.SpecLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.SpecLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[*Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Settings, error) {
			return LoadSettings(".")
		},
	})
}
