package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRegistry_EvictsIdleClients(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	registry := newClientRegistry(start)

	require.True(t, registry.allow("10.0.0.1", 1, 1, start))

	// A request past the idle window triggers a sweep that drops the
	// quiet client but keeps the active one.
	later := start.Add(idleEvictAfter + time.Minute)
	require.True(t, registry.allow("10.0.0.2", 1, 1, later))

	registry.mu.Lock()
	_, evicted := registry.clients["10.0.0.1"]
	_, kept := registry.clients["10.0.0.2"]
	registry.mu.Unlock()

	assert.False(t, evicted, "idle client is evicted")
	assert.True(t, kept)
}

func TestClientRegistry_ActiveClientsSurviveSweep(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	registry := newClientRegistry(start)

	require.True(t, registry.allow("10.0.0.1", 1, 2, start))

	// Seen again just inside the idle window: the sweep must keep it, and
	// its bucket keeps draining rather than resetting.
	seenAgain := start.Add(idleEvictAfter - time.Minute)
	require.True(t, registry.allow("10.0.0.1", 1, 2, seenAgain))

	sweepAt := seenAgain.Add(idleEvictAfter - time.Minute)
	registry.allow("10.0.0.2", 1, 1, sweepAt)

	registry.mu.Lock()
	_, kept := registry.clients["10.0.0.1"]
	registry.mu.Unlock()
	assert.True(t, kept, "recently seen client survives the sweep")
}
