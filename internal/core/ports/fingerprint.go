package ports

import (
	"context"

	"go.trai.ch/quack/internal/core/domain"
)

// ChecksumSource provides the already-resolved checksums of other targets.
// Target-kind dependencies require the referenced target to have been resolved
// first, which ties fingerprinting to the graph's topological order.
type ChecksumSource interface {
	// ResolvedChecksum returns the checksum of a built or restored target.
	ResolvedChecksum(target string) (string, bool)
}

// Fingerprinter turns a target's declared dependencies into one deterministic
// digest, stable across processes and machines.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprint.go -destination=mocks/mock_fingerprint.go -package=mocks
type Fingerprinter interface {
	Checksum(ctx context.Context, target *domain.Target, resolved ChecksumSource) (string, error)
}
