// Package telemetry provides ports.Telemetry implementations.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/quack/internal/core/ports"
)

var _ ports.Telemetry = (*Noop)(nil)

// Noop is the default telemetry sink: it records nothing.
type Noop struct{}

// NewNoop creates a Noop telemetry sink.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns a vertex that discards everything.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close does nothing.
func (n *Noop) Close() error {
	return nil
}

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return io.Discard }
func (noopVertex) Stderr() io.Writer { return io.Discard }
func (noopVertex) Cached()           {}
func (noopVertex) Complete(error)    {}
