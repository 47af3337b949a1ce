package hoot

import (
	"sync/atomic"

	"github.com/casualjim/hoot/pkg/typeid"
)

// Handle tracks the lifecycle of one subscription. The zero value is a valid
// unregistered handle; a dispatcher binds it to an event type on subscribe
// and resets it on unsubscribe, after which it can be reused for a new
// subscription, including one for a different event type.
//
// All mutation happens under the owning dispatcher's lock. The exported
// accessors may be called from any goroutine but report advisory snapshots:
// a concurrent subscribe or unsubscribe can change the answer immediately
// after it is read.
type Handle struct {
	registered atomic.Bool
	eventType  atomic.Uint64
	processor  Processor
}

// Registered reports whether the handle currently holds a subscription.
func (h *Handle) Registered() bool {
	return h.registered.Load()
}

// EventType returns the identifier of the bound event type, or
// typeid.Invalid when the handle is unregistered.
func (h *Handle) EventType() uint64 {
	return h.eventType.Load()
}

// register binds the handle. It fails without mutating anything when the
// type identifier is the reserved invalid value, the processor is nil, or
// the handle is already bound.
func (h *Handle) register(typeID uint64, p Processor) bool {
	if typeID == typeid.Invalid {
		return false
	}
	if p == nil {
		return false
	}
	if h.registered.Load() {
		return false
	}

	h.eventType.Store(typeID)
	h.processor = p
	h.registered.Store(true)
	return true
}

// reset returns the handle to its unregistered state. Resetting an already
// unregistered handle is a no-op. The registered flag clears last, mirroring
// register, so a handle that reads unregistered has no field writes still
// pending from its previous owner.
func (h *Handle) reset() {
	h.processor = nil
	h.eventType.Store(typeid.Invalid)
	h.registered.Store(false)
}
