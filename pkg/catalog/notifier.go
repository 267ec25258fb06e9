package catalog

import (
	"sync"

	"github.com/rs/zerolog"
)

// Subscriber is a callback receiving the full catalog snapshot after each
// committed mutation.
type Subscriber func(Snapshot)

// subscription pairs a subscriber with a removal handle.
type subscription struct {
	id int
	fn Subscriber
}

// notifier manages synchronous change callbacks for the store.
type notifier struct {
	mu   sync.Mutex
	next int
	subs []subscription
	log  zerolog.Logger
}

// newNotifier creates a new notifier instance.
func newNotifier(log zerolog.Logger) *notifier {
	return &notifier{log: log}
}

// subscribe registers a callback and returns its unsubscribe handle.
// Unsubscribing twice is harmless.
func (n *notifier) subscribe(fn Subscriber) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.next
	n.next++
	n.subs = append(n.subs, subscription{id: id, fn: fn})

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, sub := range n.subs {
			if sub.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// fire delivers the snapshot to every subscriber in registration order.
// A panicking subscriber is recovered and logged; the remaining subscribers
// still run and the already-committed mutation is unaffected.
func (n *notifier) fire(snap *Snapshot) {
	n.mu.Lock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, sub := range subs {
		n.deliver(sub, snap)
	}
}

// deliver invokes one subscriber with its own copy of the snapshot.
func (n *notifier) deliver(sub subscription, snap *Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().
				Interface("panic", r).
				Int("subscriber", sub.id).
				Msg("Change subscriber panicked")
		}
	}()
	sub.fn(*snap.Copy())
}
