package hoot

import "github.com/casualjim/hoot/internal/registry"

// Hub hands out named dispatcher instances. Each name maps to exactly one
// lazily created dispatcher; routing within a dispatcher stays type indexed.
// The hub exists to keep otherwise unrelated event domains apart, it is not
// a topic namespace.
type Hub struct {
	buses registry.Registry[*Dispatcher]
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{buses: registry.New[*Dispatcher]()}
}

// Bus returns the dispatcher registered under name, creating it on first
// use. Concurrent callers asking for the same name receive the same
// instance.
func (h *Hub) Bus(name string) *Dispatcher {
	d, _ := h.buses.GetOrAdd(name, New)
	return d
}

// Lookup returns the dispatcher registered under name without creating one.
func (h *Hub) Lookup(name string) (*Dispatcher, bool) {
	return h.buses.Get(name)
}

// Names returns the names of all dispatchers the hub has created, in no
// particular order.
func (h *Hub) Names() []string {
	return h.buses.Names()
}
