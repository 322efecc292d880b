package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quack/internal/core/ports"
)

const NodeID graft.ID = "adapter.archiver"

func init() {
	graft.Register(graft.Node[ports.Archiver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Archiver, error) {
			return New(), nil
		},
	})
}
