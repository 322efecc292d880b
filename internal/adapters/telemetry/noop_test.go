package telemetry_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quack/internal/adapters/telemetry"
)

func TestNoop(t *testing.T) {
	n := telemetry.NewNoop()

	ctx, vertex := n.Record(context.Background(), "api")
	assert.NotNil(t, ctx)

	_, err := io.WriteString(vertex.Stdout(), "out")
	require.NoError(t, err)
	_, err = io.WriteString(vertex.Stderr(), "err")
	require.NoError(t, err)

	vertex.Cached()
	vertex.Complete(nil)
	require.NoError(t, n.Close())
}
