package push_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-marketplace-api/push"
)

func TestMemoryChannelDeliversToAllSubscribers(t *testing.T) {
	ch := push.NewMemoryChannel()
	ctx := context.Background()

	first, err := ch.Subscribe(ctx)
	require.NoError(t, err)
	second, err := ch.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, ch.Publish(ctx, []byte("k"), []byte("v")))

	for _, sub := range []<-chan push.Message{first, second} {
		select {
		case msg := <-sub:
			assert.Equal(t, []byte("k"), msg.Key)
			assert.Equal(t, []byte("v"), msg.Value)
			assert.WithinDuration(t, time.Now(), msg.Time, time.Second)
		case <-time.After(time.Second):
			t.Fatal("message not delivered")
		}
	}
}

func TestMemoryChannelCloseEndsSubscriptions(t *testing.T) {
	ch := push.NewMemoryChannel()

	sub, err := ch.Subscribe(context.Background())
	require.NoError(t, err)

	require.NoError(t, ch.Close())

	_, open := <-sub
	assert.False(t, open)

	assert.ErrorIs(t, ch.Publish(context.Background(), nil, nil), push.ErrClosed)
	_, err = ch.Subscribe(context.Background())
	assert.ErrorIs(t, err, push.ErrClosed)

	// closing twice is fine
	assert.NoError(t, ch.Close())
}

func TestMemoryChannelDropsOldestWhenBehind(t *testing.T) {
	ch := push.NewMemoryChannel()
	sub, err := ch.Subscribe(context.Background())
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, ch.Publish(context.Background(), nil, []byte{byte(i)}))
	}

	// the slow subscriber lost the oldest deliveries, not the newest
	var last []byte
	for {
		select {
		case msg := <-sub:
			last = msg.Value
			continue
		default:
		}
		break
	}
	assert.Equal(t, []byte{99}, last)
}
