package events

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerFanOut(t *testing.T) {
	b := NewBroker()
	ctx := context.Background()

	sub1, err := b.Subscribe(ctx, "session:abc")
	require.NoError(t, err)
	defer sub1.Close()
	sub2, err := b.Subscribe(ctx, "session:abc")
	require.NoError(t, err)
	defer sub2.Close()
	other, err := b.Subscribe(ctx, "session:other")
	require.NoError(t, err)
	defer other.Close()

	b.Dispatch(Notification{Channel: "session:abc", Payload: []byte(`{"type":"status"}`)})

	for _, sub := range []*Subscription{sub1, sub2} {
		n := <-sub.C
		assert.Equal(t, "session:abc", n.Channel)
		assert.JSONEq(t, `{"type":"status"}`, string(n.Payload))
	}
	select {
	case n := <-other.C:
		t.Fatalf("unrelated channel received %s", n.Payload)
	default:
	}
}

func TestBrokerDispatchToEmptyChannel(t *testing.T) {
	b := NewBroker()
	// Must not panic or block.
	b.Dispatch(Notification{Channel: "session:nobody", Payload: []byte(`{}`)})
}

func TestBrokerLaggingSubscriberDisconnected(t *testing.T) {
	b := NewBroker()
	ctx := context.Background()

	slow, err := b.Subscribe(ctx, "session:slow")
	require.NoError(t, err)

	// Fill the buffer without draining, then one more to trigger the drop.
	for i := 0; i <= subscriptionBuffer; i++ {
		b.Dispatch(Notification{Channel: "session:slow", Payload: []byte(fmt.Sprintf(`{"n":%d}`, i))})
	}

	assert.Equal(t, 0, b.SubscriberCount("session:slow"))

	// The channel still drains the buffered notifications, then reports
	// closed.
	count := 0
	for range slow.C {
		count++
	}
	assert.Equal(t, subscriptionBuffer, count)
}

func TestBrokerDispatchRacesClose(t *testing.T) {
	// Close may land between Dispatch snapshotting the subscriber set and
	// the send; the delivery must degrade to a no-op, never panic.
	b := NewBroker()
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		sub, err := b.Subscribe(ctx, "session:race")
		require.NoError(t, err)

		var wg sync.WaitGroup
		start := make(chan struct{})
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			b.Dispatch(Notification{Channel: "session:race", Payload: []byte(`{"type":"status"}`)})
		}()
		go func() {
			defer wg.Done()
			<-start
			sub.Close()
		}()
		close(start)
		wg.Wait()

		// Drain whatever made it through before the close.
		for range sub.C {
		}
	}
	assert.Equal(t, 0, b.SubscriberCount("session:race"))
}

func TestSubscriptionCloseIdempotent(t *testing.T) {
	b := NewBroker()
	sub, err := b.Subscribe(context.Background(), "session:x")
	require.NoError(t, err)

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, b.SubscriberCount("session:x"))

	_, open := <-sub.C
	assert.False(t, open)
}

func TestBrokerSubscriberCountTracksLifecycle(t *testing.T) {
	b := NewBroker()
	ctx := context.Background()

	assert.Equal(t, 0, b.SubscriberCount("session:y"))
	sub1, err := b.Subscribe(ctx, "session:y")
	require.NoError(t, err)
	sub2, err := b.Subscribe(ctx, "session:y")
	require.NoError(t, err)
	assert.Equal(t, 2, b.SubscriberCount("session:y"))

	sub1.Close()
	assert.Equal(t, 1, b.SubscriberCount("session:y"))
	sub2.Close()
	assert.Equal(t, 0, b.SubscriberCount("session:y"))
}
