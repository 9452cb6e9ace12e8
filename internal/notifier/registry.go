package notifier

import (
	"context"
	"errors"
	"sync"

	"github.com/julianstephens/habitup/internal/constants"
)

var (
	// ErrOffline is returned when the owner has no live subscription.
	ErrOffline = errors.New("owner is not connected")
	// ErrDropped is returned when the owner's buffer is full.
	ErrDropped = errors.New("notification dropped")
)

// Channel is one live subscription. C is closed when the subscription ends.
type Channel struct {
	OwnerID string
	C       <-chan Notification
	ch      chan Notification
}

// Registry maps owner ids to their most recent live subscription.
// A new subscription for the same owner replaces and closes the previous one.
type Registry struct {
	mu     sync.RWMutex
	owners map[string]*Channel
	buffer int
}

func NewRegistry() *Registry {
	return &Registry{
		owners: make(map[string]*Channel),
		buffer: constants.SubscriberBuffer,
	}
}

// Subscribe registers ownerID and returns the channel plus a func that ends it.
// The returned func is safe to call more than once.
func (r *Registry) Subscribe(ownerID string) (*Channel, func()) {
	ch := make(chan Notification, r.buffer)
	sub := &Channel{OwnerID: ownerID, C: ch, ch: ch}

	r.mu.Lock()
	if prev, ok := r.owners[ownerID]; ok {
		close(prev.ch)
	}
	r.owners[ownerID] = sub
	r.mu.Unlock()

	var once sync.Once
	return sub, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if cur, ok := r.owners[ownerID]; ok && cur == sub {
				delete(r.owners, ownerID)
				close(sub.ch)
			}
		})
	}
}

func (r *Registry) Lookup(ownerID string) (*Channel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.owners[ownerID]
	return c, ok
}

// Online returns the ids of connected owners in no particular order.
func (r *Registry) Online() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.owners))
	for id := range r.owners {
		ids = append(ids, id)
	}
	return ids
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.owners)
}

// Notify never blocks: a full buffer drops the notification.
func (r *Registry) Notify(_ context.Context, ownerID string, n Notification) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.owners[ownerID]
	if !ok {
		return ErrOffline
	}
	select {
	case c.ch <- n:
		return nil
	default:
		return ErrDropped
	}
}
