package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// subscriptionBuffer is the per-subscriber channel capacity. A subscriber
// that falls this far behind is disconnected instead of stalling the
// dispatch path; it reconnects with its last seen offset and loses nothing.
const subscriptionBuffer = 256

// listenTimeout bounds how long a LISTEN command may block when the first
// subscriber of a channel triggers it.
const listenTimeout = 10 * time.Second

// Notification is one raw NOTIFY payload routed to subscribers.
type Notification struct {
	Channel string
	Payload []byte
}

// Broker fans incoming NOTIFY payloads out to in-process subscribers.
// The SSE and WebSocket handlers subscribe BEFORE replaying the persisted
// log, so no event published in the replay/live gap is lost; duplicates
// across the seam are suppressed by offset on the consumer side.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}

	listenerMu sync.RWMutex
	listener   *Listener
}

// Subscription is one subscriber's view of a channel. Events arrive on C;
// C is closed when the subscriber lags too far behind or Close is called.
// sendMu serializes deliveries against close so Dispatch can never send on
// a channel Close has already closed.
type Subscription struct {
	C <-chan Notification

	ch      chan Notification
	channel string
	broker  *Broker
	once    sync.Once

	sendMu sync.Mutex
	closed bool
}

// NewBroker creates an empty Broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[*Subscription]struct{})}
}

// SetListener wires the LISTEN connection for dynamic channel subscription.
// Called once during startup, after both sides exist.
func (b *Broker) SetListener(l *Listener) {
	b.listenerMu.Lock()
	defer b.listenerMu.Unlock()
	b.listener = l
}

// Subscribe registers a subscriber for a channel, starting LISTEN if it is
// the first. LISTEN completes synchronously before Subscribe returns so a
// caller can replay persisted history afterwards without a gap.
func (b *Broker) Subscribe(ctx context.Context, channel string) (*Subscription, error) {
	sub := &Subscription{
		ch:      make(chan Notification, subscriptionBuffer),
		channel: channel,
		broker:  b,
	}
	sub.C = sub.ch

	b.mu.Lock()
	set, exists := b.subs[channel]
	if !exists {
		set = make(map[*Subscription]struct{})
		b.subs[channel] = set
	}
	set[sub] = struct{}{}
	first := len(set) == 1
	b.mu.Unlock()

	if first {
		b.listenerMu.RLock()
		l := b.listener
		b.listenerMu.RUnlock()
		if l != nil {
			listenCtx, cancel := context.WithTimeout(ctx, listenTimeout)
			defer cancel()
			if err := l.Listen(listenCtx, channel); err != nil {
				b.remove(sub)
				return nil, fmt.Errorf("LISTEN on channel %s: %w", channel, err)
			}
		}
	}

	return sub, nil
}

// Close detaches the subscription and stops LISTEN if it was the last
// subscriber of its channel. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s)
		s.sendMu.Lock()
		s.closed = true
		close(s.ch)
		s.sendMu.Unlock()
	})
}

// deliver attempts a non-blocking send. It reports false when the buffer is
// full so the dispatcher can disconnect the laggard. Delivery to an already
// closed subscription is a no-op: Dispatch snapshots the subscriber set
// before sending, so a concurrent Close may race the snapshot.
func (s *Subscription) deliver(n Notification) bool {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.ch <- n:
		return true
	default:
		return false
	}
}

// Dispatch routes one notification to every subscriber of its channel.
// Called by the Listener's receive loop; must never block, so a subscriber
// whose buffer is full is disconnected instead.
func (b *Broker) Dispatch(n Notification) {
	b.mu.RLock()
	targets := make([]*Subscription, 0, len(b.subs[n.Channel]))
	for sub := range b.subs[n.Channel] {
		targets = append(targets, sub)
	}
	b.mu.RUnlock()

	for _, sub := range targets {
		if !sub.deliver(n) {
			slog.Warn("Dropping lagging subscriber", "channel", n.Channel)
			sub.Close()
		}
	}
}

// SubscriberCount returns the number of subscribers for a channel.
func (b *Broker) SubscriberCount(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}

// remove detaches a subscription and triggers UNLISTEN when the channel has
// no subscribers left. The goroutine re-checks membership before UNLISTEN to
// survive rapid unsubscribe/resubscribe cycles.
func (b *Broker) remove(s *Subscription) {
	b.mu.Lock()
	set, exists := b.subs[s.channel]
	if exists {
		delete(set, s)
		if len(set) == 0 {
			delete(b.subs, s.channel)
		}
	}
	last := exists && len(set) == 0
	b.mu.Unlock()

	if !last {
		return
	}
	b.listenerMu.RLock()
	l := b.listener
	b.listenerMu.RUnlock()
	if l == nil {
		return
	}
	go func() {
		b.mu.RLock()
		_, resubscribed := b.subs[s.channel]
		b.mu.RUnlock()
		if resubscribed {
			return
		}
		if err := l.Unlisten(context.Background(), s.channel); err != nil {
			slog.Error("Failed to UNLISTEN channel", "channel", s.channel, "error", err)
		}
	}()
}
