package logger

import (
	"context"
	"log/slog"

	"github.com/grindlemire/graft"
	"go.trai.ch/quack/internal/core/ports"
)

const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Logger, error) {
			return New(slog.LevelInfo), nil
		},
	})
}
