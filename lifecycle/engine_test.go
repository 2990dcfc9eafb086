package lifecycle_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-marketplace-api/lifecycle"
	"food-marketplace-api/push"
)

func newTestEngine(seed []lifecycle.Order, start time.Time) (*lifecycle.Engine, *time.Time) {
	now := start
	e := lifecycle.NewEngine(seed, lifecycle.WithClock(func() time.Time { return now }))
	return e, &now
}

func burgerOrder(id string) lifecycle.Order {
	return lifecycle.Order{
		ID:       id,
		Customer: "Alice",
		Items: []lifecycle.Item{
			{ID: "1", Name: "Cheeseburger", Quantity: 2, UnitPrice: 8.5},
		},
		Status:          lifecycle.StatusPreparing,
		DeliveryType:    lifecycle.DeliveryDelivery,
		PreparationTime: 15,
	}
}

func TestIngestAppliesDefaults(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, _ := newTestEngine(nil, start)

	payload, err := json.Marshal(map[string]interface{}{
		"id":       "ord-1",
		"customer": "Bob",
		"status":   "SOMETHING_WEIRD",
		"items": []map[string]interface{}{
			{"id": "1", "name": "Falafel Wrap", "quantity": 0, "unit_price": -3},
		},
	})
	require.NoError(t, err)

	order, err := e.Ingest(payload)
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusPreparing, order.Status)
	assert.Equal(t, lifecycle.DeliveryDelivery, order.DeliveryType)
	assert.Equal(t, 15, order.PreparationTime)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, 0.0, order.Items[0].UnitPrice)
	assert.True(t, order.IsPreparing)
	require.NotNil(t, order.StartedPreparingAt)
	require.NotNil(t, order.EstimatedReady)
	assert.Equal(t, start, *order.StartedPreparingAt)
	assert.Equal(t, start.Add(15*time.Minute), *order.EstimatedReady)
	assert.Equal(t, start, order.OrderTime)
}

func TestIngestRejectsOnlyBrokenJSON(t *testing.T) {
	e, _ := newTestEngine(nil, time.Now())

	_, err := e.Ingest([]byte("not json at all"))
	assert.Error(t, err)
	assert.Empty(t, e.Snapshot())
}

func TestIngestPrependsNewestFirst(t *testing.T) {
	e, _ := newTestEngine([]lifecycle.Order{burgerOrder("old")}, time.Now())

	e.Add(burgerOrder("new"))

	snapshot := e.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "new", snapshot[0].ID)
	assert.Equal(t, "old", snapshot[1].ID)
}

func TestTickRecomputesElapsed(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, now := newTestEngine([]lifecycle.Order{burgerOrder("ord-1")}, start)

	*now = start.Add(30 * time.Second)
	e.Tick()

	order, ok := e.Get("ord-1")
	require.True(t, ok)
	assert.Equal(t, 30, order.TimeElapsed)
	assert.Equal(t, lifecycle.StatusPreparing, order.Status)
}

func TestTickIdempotentAtSameInstant(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, now := newTestEngine([]lifecycle.Order{burgerOrder("ord-1")}, start)

	*now = start.Add(45 * time.Second)
	e.Tick()
	first := e.Snapshot()
	e.Tick()
	second := e.Snapshot()

	assert.Equal(t, first, second)
	assert.Equal(t, 45, second[0].TimeElapsed)
}

func TestTickAutoPromotesPastDeadline(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, now := newTestEngine([]lifecycle.Order{burgerOrder("ord-1")}, start)

	// 16 minutes past the 15 minute estimate
	*now = start.Add(16 * time.Minute)
	e.Tick()

	order, ok := e.Get("ord-1")
	require.True(t, ok)
	assert.Equal(t, lifecycle.StatusReady, order.Status)
	assert.False(t, order.IsPreparing)
	assert.Nil(t, order.StartedPreparingAt)
	// automatic promotion records the actual ready time
	require.NotNil(t, order.EstimatedReady)
	assert.Equal(t, *now, *order.EstimatedReady)

	// a second tick at the same instant changes nothing
	before := e.Snapshot()
	e.Tick()
	assert.Equal(t, before, e.Snapshot())
}

func TestMarkReadyIdempotent(t *testing.T) {
	e, _ := newTestEngine([]lifecycle.Order{burgerOrder("ord-1")}, time.Now())

	first, applied := e.MarkReady("ord-1")
	require.True(t, applied)
	assert.Equal(t, lifecycle.StatusReady, first.Status)
	assert.False(t, first.IsPreparing)
	assert.Nil(t, first.StartedPreparingAt)
	assert.Nil(t, first.EstimatedReady)

	second, applied := e.MarkReady("ord-1")
	assert.False(t, applied)
	assert.Equal(t, first, second)
}

func TestCompleteSetsCompletedTimeOnce(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, now := newTestEngine([]lifecycle.Order{burgerOrder("ord-1")}, start)

	e.MarkReady("ord-1")
	*now = start.Add(20 * time.Minute)
	order, applied := e.MarkCompleted("ord-1")
	require.True(t, applied)
	require.NotNil(t, order.CompletedTime)
	assert.Equal(t, *now, *order.CompletedTime)

	*now = start.Add(25 * time.Minute)
	again, applied := e.MarkCompleted("ord-1")
	assert.False(t, applied)
	assert.Equal(t, order.CompletedTime, again.CompletedTime)
}

func TestTerminalOrdersAcceptNothing(t *testing.T) {
	e, _ := newTestEngine([]lifecycle.Order{burgerOrder("done"), burgerOrder("gone")}, time.Now())

	e.MarkReady("done")
	e.MarkCompleted("done")
	e.Cancel("gone")

	for _, id := range []string{"done", "gone"} {
		_, applied := e.MarkReady(id)
		assert.False(t, applied)
		_, applied = e.MarkCompleted(id)
		assert.False(t, applied)
		_, applied = e.Cancel(id)
		assert.False(t, applied)
	}

	done, _ := e.Get("done")
	assert.Equal(t, lifecycle.StatusCompleted, done.Status)
	gone, _ := e.Get("gone")
	assert.Equal(t, lifecycle.StatusCancelled, gone.Status)
}

func TestCancelClosesPreparationWindow(t *testing.T) {
	e, _ := newTestEngine([]lifecycle.Order{burgerOrder("ord-1")}, time.Now())

	order, applied := e.Cancel("ord-1")
	require.True(t, applied)
	assert.Equal(t, lifecycle.StatusCancelled, order.Status)
	assert.False(t, order.IsPreparing)
	assert.Nil(t, order.StartedPreparingAt)
	assert.Nil(t, order.EstimatedReady)
	assert.Zero(t, order.TimeElapsed)
}

func TestUnknownOrderIsNotFound(t *testing.T) {
	e, _ := newTestEngine(nil, time.Now())

	order, applied := e.MarkReady("missing")
	assert.False(t, applied)
	assert.Empty(t, order.ID)
}

func TestSnapshotsAreImmutable(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e, now := newTestEngine([]lifecycle.Order{burgerOrder("ord-1")}, start)

	before := e.Snapshot()
	require.Equal(t, lifecycle.StatusPreparing, before[0].Status)

	*now = start.Add(time.Minute)
	e.Tick()
	e.MarkReady("ord-1")

	// the old snapshot still shows the state it was taken at
	assert.Equal(t, lifecycle.StatusPreparing, before[0].Status)
	assert.Zero(t, before[0].TimeElapsed)

	after := e.Snapshot()
	assert.Equal(t, lifecycle.StatusReady, after[0].Status)
}

func TestRunConsumesChannelAndStopsOnCancel(t *testing.T) {
	e, _ := newTestEngine(nil, time.Now())
	channel := push.NewMemoryChannel()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx, channel) }()

	payload, err := json.Marshal(burgerOrder("pushed"))
	require.NoError(t, err)

	// publish until the subscription loop has picked the order up
	assert.Eventually(t, func() bool {
		if _, ok := e.Get("pushed"); ok {
			return true
		}
		_ = channel.Publish(context.Background(), []byte("pushed"), payload)
		return false
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop after cancellation")
	}

	// teardown closed the channel
	assert.ErrorIs(t, channel.Publish(context.Background(), nil, nil), push.ErrClosed)
}
