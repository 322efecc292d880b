package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/quack/internal/adapters/archive"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quack/internal/adapters/cache"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quack/internal/adapters/fingerprint" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quack/internal/adapters/logger"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quack/internal/adapters/shell"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quack/internal/adapters/telemetry"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/quack/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			fingerprint.NodeID,
			archive.NodeID,
			cache.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}

			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}

			archiver, err := graft.Dep[ports.Archiver](ctx)
			if err != nil {
				return nil, err
			}

			stores, err := graft.Dep[ports.StoreSelector](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(
				runner,
				fingerprinter,
				archiver,
				stores,
				recorder,
				log,
			), nil
		},
	})
}
