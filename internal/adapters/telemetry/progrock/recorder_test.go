package progrock_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quack/internal/adapters/telemetry/progrock"
)

func TestNew(t *testing.T) {
	recorder := progrock.New(&bytes.Buffer{})
	assert.NotNil(t, recorder)

	_, vertex := recorder.Record(context.Background(), "api")
	require.NotNil(t, vertex)
	vertex.Cached()
	vertex.Complete(nil)

	require.NoError(t, recorder.Close())
}

func TestNew_RendersVertexOutput(t *testing.T) {
	var out bytes.Buffer
	recorder := progrock.New(&out)

	_, vertex := recorder.Record(context.Background(), "build api")
	fmt.Fprintln(vertex.Stdout(), "compiled 3 packages")
	vertex.Complete(nil)
	require.NoError(t, recorder.Close())

	assert.Contains(t, out.String(), "build api")
	assert.Contains(t, out.String(), "compiled 3 packages")
}
