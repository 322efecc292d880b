package fingerprint

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quack/internal/adapters/logger"
	"go.trai.ch/quack/internal/adapters/shell"
	"go.trai.ch/quack/internal/core/ports"
)

const NodeID graft.ID = "adapter.fingerprint"

func init() {
	graft.Register(graft.Node[ports.Fingerprinter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Fingerprinter, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(".", runner, log), nil
		},
	})
}
