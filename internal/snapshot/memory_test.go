package snapshot_test

import (
	"testing"

	"github.com/nikolayk812/figurestore/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := t.Context()
	m := snapshot.NewMemory()

	_, ok, err := m.GetSnapshot(ctx, "cart")
	require.NoError(t, err)
	assert.False(t, ok)

	payload := []byte(`[{"product":{"id":1},"quantity":2}]`)
	require.NoError(t, m.SaveSnapshot(ctx, "cart", payload))

	// the slot keeps its own copy
	payload[0] = 'x'

	got, ok, err := m.GetSnapshot(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"product":{"id":1},"quantity":2}]`, string(got))

	_, ok, err = m.GetSnapshot(ctx, "other")
	require.NoError(t, err)
	assert.False(t, ok)
}
