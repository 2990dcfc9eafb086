// Package push provides the real-time channel that carries newly placed
// orders onto the vendor live board. The engine consumes it through the
// Channel interface so it can be exercised in tests without a broker.
package push

import (
	"context"
	"time"
)

// Message is one inbound event on the orders topic
type Message struct {
	Key   []byte
	Value []byte
	Time  time.Time
}

// Channel is a long-lived subscription to the orders topic. Subscribe may be
// called once per consumer; the returned channel is closed when the channel
// itself is closed or the context is cancelled.
type Channel interface {
	Subscribe(ctx context.Context) (<-chan Message, error)
	Close() error
}

// Publisher is the outbound side: order placement pushes the accepted order
// payload through it so live boards pick the order up in real time.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
	Close() error
}
