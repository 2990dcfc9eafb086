// Package lifecycle owns the in-memory order collection behind the vendor
// live board and applies every status transition to it. The collection is
// copy-on-write: each change publishes a fresh snapshot slice, so a caller
// holding an older snapshot never observes later mutations.
package lifecycle

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"food-marketplace-api/metrics"
	"food-marketplace-api/push"
)

// Engine serializes all order mutations: the periodic tick, inbound push
// events, and user-triggered transitions all funnel through the same lock
// and replace the collection wholesale.
type Engine struct {
	mu     sync.Mutex
	orders []Order
	now    func() time.Time
	log    *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the wall clock, used by tests for deterministic timing
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger attaches a structured logger
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// NewEngine seeds the collection. Seed orders pass through the same
// normalization as inbound push events, so a persisted order in the
// preparing state gets a fresh preparation window.
func NewEngine(seed []Order, opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	now := e.now()
	orders := make([]Order, 0, len(seed))
	for _, o := range seed {
		orders = append(orders, Normalize(o, now))
	}
	e.orders = orders
	metrics.LiveOrders.Set(float64(len(orders)))
	return e
}

// Snapshot returns the current immutable order collection, newest first.
// The returned slice is never mutated by the engine afterwards.
func (e *Engine) Snapshot() []Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.orders
}

// Ingest decodes and normalizes an inbound push payload and prepends the
// resulting order to the collection. Malformed fields are repaired, not
// rejected; only undecodable JSON returns an error.
func (e *Engine) Ingest(payload []byte) (Order, error) {
	o, err := DecodeOrder(payload)
	if err != nil {
		metrics.MalformedPushEventsTotal.Inc()
		return Order{}, err
	}
	return e.Add(o), nil
}

// Add normalizes an order and prepends it, newest-first
func (e *Engine) Add(o Order) Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	o = Normalize(o, e.now())

	next := make([]Order, 0, len(e.orders)+1)
	next = append(next, o)
	next = append(next, e.orders...)
	e.orders = next

	metrics.OrdersIngestedTotal.Inc()
	metrics.LiveOrders.Set(float64(len(next)))
	e.log.Info("order ingested",
		zap.String("order_id", o.ID),
		zap.String("status", string(o.Status)),
		zap.String("delivery_type", string(o.DeliveryType)))
	return o
}

// MarkReady applies the explicit preparing → ready transition. The
// preparation window closes and the estimate is cleared. Returns the
// resulting order and whether anything changed; requests against orders in
// any other state are silent no-ops.
func (e *Engine) MarkReady(id string) (Order, bool) {
	return e.transition(id, StatusReady, false)
}

// MarkCompleted applies ready → completed and stamps the completion time
func (e *Engine) MarkCompleted(id string) (Order, bool) {
	return e.transition(id, StatusCompleted, false)
}

// Cancel applies the explicit transition to cancelled from preparing or ready
func (e *Engine) Cancel(id string) (Order, bool) {
	return e.transition(id, StatusCancelled, false)
}

// Get returns an order by id from the current snapshot
func (e *Engine) Get(id string) (Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, o := range e.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

func (e *Engine) transition(id string, to Status, automatic bool) (Order, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, o := range e.orders {
		if o.ID != id {
			continue
		}
		if !CanTransition(o.Status, to) {
			return o, false
		}
		next := make([]Order, len(e.orders))
		copy(next, e.orders)
		next[i] = e.applyTransition(o, to, automatic)
		e.orders = next

		metrics.OrderTransitionsTotal.WithLabelValues(string(to)).Inc()
		e.log.Info("order transition",
			zap.String("order_id", id),
			zap.String("from", string(o.Status)),
			zap.String("to", string(to)),
			zap.Bool("automatic", automatic))
		return next[i], true
	}
	return Order{}, false
}

// applyTransition performs the entry/exit actions for a validated transition
func (e *Engine) applyTransition(o Order, to Status, automatic bool) Order {
	now := e.now()
	o.Status = to
	switch to {
	case StatusReady:
		o.IsPreparing = false
		o.StartedPreparingAt = nil
		o.TimeElapsed = 0
		if automatic {
			// keep the estimate meaningful: record the actual ready time
			ready := now
			o.EstimatedReady = &ready
		} else {
			o.EstimatedReady = nil
		}
	case StatusCompleted:
		if o.CompletedTime == nil {
			completed := now
			o.CompletedTime = &completed
		}
	case StatusCancelled:
		o.IsPreparing = false
		o.StartedPreparingAt = nil
		o.EstimatedReady = nil
		o.TimeElapsed = 0
	}
	return o
}

// Tick recomputes elapsed preparation time for every preparing order and
// auto-promotes those whose estimated-ready deadline has passed. Running it
// twice at the same instant leaves the collection unchanged the second time.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()

	var next []Order
	for i, o := range e.orders {
		if o.Status != StatusPreparing || o.StartedPreparingAt == nil {
			continue
		}
		updated := o
		changed := false
		if o.EstimatedReady != nil && !now.Before(*o.EstimatedReady) {
			updated = e.applyTransition(o, StatusReady, true)
			metrics.AutoPromotionsTotal.Inc()
			metrics.OrderTransitionsTotal.WithLabelValues(string(StatusReady)).Inc()
			e.log.Info("order auto-promoted to ready", zap.String("order_id", o.ID))
			changed = true
		} else {
			elapsed := int(now.Sub(*o.StartedPreparingAt).Seconds())
			if elapsed < 0 {
				elapsed = 0
			}
			if elapsed != o.TimeElapsed {
				updated.TimeElapsed = elapsed
				changed = true
			}
		}
		if changed {
			if next == nil {
				next = make([]Order, len(e.orders))
				copy(next, e.orders)
			}
			next[i] = updated
		}
	}
	if next != nil {
		e.orders = next
	}
}

// Run drives the engine for the lifetime of the hosting view: it subscribes
// to the push channel, ticks once per second, and tears both down when the
// context is cancelled.
func (e *Engine) Run(ctx context.Context, ch push.Channel) error {
	events, err := ch.Subscribe(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := ch.Close(); cerr != nil {
			e.log.Warn("closing push channel failed", zap.Error(cerr))
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.Tick()
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := e.Ingest(msg.Value); err != nil {
				e.log.Warn("dropping undecodable order event", zap.Error(err))
			}
		}
	}
}
