package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"food-marketplace-api/lifecycle"
)

func TestTransitionTable(t *testing.T) {
	assert.True(t, lifecycle.CanTransition(lifecycle.StatusPreparing, lifecycle.StatusReady))
	assert.True(t, lifecycle.CanTransition(lifecycle.StatusPreparing, lifecycle.StatusCancelled))
	assert.True(t, lifecycle.CanTransition(lifecycle.StatusReady, lifecycle.StatusCompleted))
	assert.True(t, lifecycle.CanTransition(lifecycle.StatusReady, lifecycle.StatusCancelled))

	// no skipping and no moving backwards
	assert.False(t, lifecycle.CanTransition(lifecycle.StatusPreparing, lifecycle.StatusCompleted))
	assert.False(t, lifecycle.CanTransition(lifecycle.StatusReady, lifecycle.StatusPreparing))
	assert.False(t, lifecycle.CanTransition(lifecycle.StatusCompleted, lifecycle.StatusPreparing))
	assert.False(t, lifecycle.CanTransition(lifecycle.StatusCompleted, lifecycle.StatusReady))
	assert.False(t, lifecycle.CanTransition(lifecycle.StatusCancelled, lifecycle.StatusReady))
	assert.False(t, lifecycle.CanTransition(lifecycle.StatusCancelled, lifecycle.StatusCompleted))
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, lifecycle.IsTerminal(lifecycle.StatusCompleted))
	assert.True(t, lifecycle.IsTerminal(lifecycle.StatusCancelled))
	assert.False(t, lifecycle.IsTerminal(lifecycle.StatusPreparing))
	assert.False(t, lifecycle.IsTerminal(lifecycle.StatusReady))

	assert.Empty(t, lifecycle.ValidTransitionsFrom(lifecycle.StatusCompleted))
	assert.Empty(t, lifecycle.ValidTransitionsFrom(lifecycle.StatusCancelled))
	assert.ElementsMatch(t,
		[]lifecycle.Status{lifecycle.StatusReady, lifecycle.StatusCancelled},
		lifecycle.ValidTransitionsFrom(lifecycle.StatusPreparing))
}
