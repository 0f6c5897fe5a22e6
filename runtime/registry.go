package runtime

import (
	"chat-feed/contract"
	"sync"
)

// Registry tracks the live subscriptions of a store.
// It only holds handles, each subscription owns its own cursor.
type Registry struct {
	mu            sync.RWMutex
	subscriptions map[string]contract.ISubscription
}

func NewRegistry() *Registry {
	return &Registry{subscriptions: make(map[string]contract.ISubscription)}
}

// Subscribe registers a subscription under its id, replacing any previous entry.
func (r *Registry) Subscribe(sub contract.ISubscription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscriptions[sub.ID()] = sub
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (r *Registry) Unsubscribe(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subscriptions, id)
}

// Subscriptions returns a snapshot of the registered subscriptions.
func (r *Registry) Subscriptions() []contract.ISubscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]contract.ISubscription, 0, len(r.subscriptions))
	for _, sub := range r.subscriptions {
		res = append(res, sub)
	}
	return res
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscriptions)
}
