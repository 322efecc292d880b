// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/quack/internal/adapters/archive"
	_ "go.trai.ch/quack/internal/adapters/cache"
	_ "go.trai.ch/quack/internal/adapters/config"
	_ "go.trai.ch/quack/internal/adapters/fingerprint"
	_ "go.trai.ch/quack/internal/adapters/logger"
	_ "go.trai.ch/quack/internal/adapters/shell"
	_ "go.trai.ch/quack/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/quack/internal/app"
	_ "go.trai.ch/quack/internal/engine/scheduler"
)
