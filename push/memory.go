package push

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrClosed = errors.New("push: channel closed")

// MemoryChannel is an in-process orders channel. It backs the engine tests
// and the single-process deployment mode where order placement and the live
// board run in the same binary.
type MemoryChannel struct {
	mu     sync.Mutex
	subs   []chan Message
	closed bool
}

func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{}
}

func (m *MemoryChannel) Subscribe(ctx context.Context) (<-chan Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	sub := make(chan Message, 64)
	m.subs = append(m.subs, sub)
	return sub, nil
}

// Publish fans the message out to every subscriber. A subscriber that has
// fallen 64 messages behind loses the oldest delivery rather than blocking
// the publisher.
func (m *MemoryChannel) Publish(ctx context.Context, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	msg := Message{Key: key, Value: value, Time: time.Now()}
	for _, sub := range m.subs {
		select {
		case sub <- msg:
		default:
			select {
			case <-sub:
			default:
			}
			sub <- msg
		}
	}
	return nil
}

func (m *MemoryChannel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	for _, sub := range m.subs {
		close(sub)
	}
	m.subs = nil
	return nil
}
