package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/quack/internal/adapters/telemetry/progrock"
	"go.trai.ch/quack/internal/core/ports"
)

const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			// Progress goes to stderr so target stdout summaries stay clean.
			return progrock.New(os.Stderr), nil
		},
	})
}
