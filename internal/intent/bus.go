package intent

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Bus is the ordered broadcast stream every routine communicates over.
// Publishing never blocks; each subscription gets its own unbounded FIFO
// queue, so every watcher sees every matching intent in publish order.
// There are no competing consumers.
type Bus struct {
	mu   sync.Mutex
	subs []*Subscription
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a watcher for the given kinds. Intents of different
// kinds share one queue, so a subscriber watching several kinds observes
// them in global publish order.
func (b *Bus) Subscribe(kinds ...Kind) *Subscription {
	s := &Subscription{
		kinds: make(map[Kind]struct{}, len(kinds)),
		ready: make(chan struct{}, 1),
	}
	for _, k := range kinds {
		s.kinds[k] = struct{}{}
	}

	b.mu.Lock()
	b.subs = append(b.subs, s)
	b.mu.Unlock()

	return s
}

// Publish appends one intent to the stream, assigning it a fresh trace id.
func (b *Bus) Publish(kind Kind, payload any) Intent {
	it := Intent{Kind: kind, TraceID: uuid.New(), Payload: payload}
	b.PublishIntent(it)
	return it
}

// PublishIntent appends an already-built intent, keeping its trace id. Used
// by workers to stamp result intents with the trace of the trigger.
func (b *Bus) PublishIntent(it Intent) {
	b.mu.Lock()
	subs := b.subs
	b.mu.Unlock()

	for _, s := range subs {
		s.push(it)
	}
}

// Subscription is one watcher's private view of the stream.
type Subscription struct {
	kinds map[Kind]struct{}

	mu    sync.Mutex
	queue []Intent
	ready chan struct{}
}

func (s *Subscription) push(it Intent) {
	if _, ok := s.kinds[it.Kind]; !ok {
		return
	}

	s.mu.Lock()
	s.queue = append(s.queue, it)
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Next suspends the caller until the next matching intent, or until ctx is
// done. Delivery is FIFO.
func (s *Subscription) Next(ctx context.Context) (Intent, error) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			it := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return it, nil
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return Intent{}, ctx.Err()
		case <-s.ready:
		}
	}
}
