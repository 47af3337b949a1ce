package hoot

import (
	"log/slog"
	"runtime/debug"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/casualjim/hoot/pkg/slogx"
	"github.com/casualjim/hoot/pkg/typeid"
)

// Dispatcher routes emitted events to the handles subscribed to their type.
//
// A single mutex serializes every registry and handle mutation. Emit
// snapshots the subscriber set for the event type under that lock and then
// invokes the processors with the lock released, on the emitting goroutine.
// Handlers may therefore call back into the same dispatcher, including
// unsubscribing themselves. The set of handles a given emit reaches is fixed
// at the moment it acquired the lock: a concurrent unsubscribe lands either
// before the snapshot, excluding the handle, or after it, in which case the
// delivery still completes.
//
// Invocation order within an event type is unspecified.
type Dispatcher struct {
	mu       sync.Mutex
	registry map[uint64]*orderedmap.OrderedMap[*Handle, struct{}]
}

// New creates an empty dispatcher. There is no shared default instance; each
// dispatcher is an independent routing domain.
func New() *Dispatcher {
	return &Dispatcher{
		registry: make(map[uint64]*orderedmap.OrderedMap[*Handle, struct{}]),
	}
}

// Subscribe binds the handle to the event type T with fn as its callback.
// It returns false, leaving both handle and registry untouched, when the
// handle is nil or already registered. A nil fn subscribes a processor that
// does nothing, it is not a failure.
func Subscribe[T any](d *Dispatcher, h *Handle, fn Handler[T]) bool {
	return SubscribeProcessor[T](d, h, ProcessorFor(fn))
}

// SubscribeProcessor binds the handle to the event type T with a caller
// supplied processor. This is the shape to use when one processor, such as a
// Journal, taps several event types through separate handles. A nil
// processor is rejected.
func SubscribeProcessor[T any](d *Dispatcher, h *Handle, p Processor) bool {
	return d.subscribe(typeid.Of[T](), h, p)
}

func (d *Dispatcher) subscribe(typeID uint64, h *Handle, p Processor) bool {
	if h == nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if h.registered.Load() {
		return false
	}
	if !h.register(typeID, p) {
		return false
	}

	set, ok := d.registry[typeID]
	if !ok {
		set = orderedmap.New[*Handle, struct{}]()
		d.registry[typeID] = set
	}
	set.Set(h, struct{}{})
	return true
}

// Unsubscribe releases the handle's subscription and resets the handle. It
// returns false when the handle is nil, not registered, or registered with a
// different dispatcher; only the dispatcher that owns the subscription can
// release it. The event type's registry entry stays behind with an empty
// set; Emit for that type keeps failing until someone subscribes again.
func (d *Dispatcher) Unsubscribe(h *Handle) bool {
	if h == nil {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !h.registered.Load() {
		return false
	}

	set, ok := d.registry[h.eventType.Load()]
	if !ok {
		return false
	}
	if _, mine := set.Get(h); !mine {
		return false
	}

	set.Delete(h)
	h.reset()
	return true
}

// Emit delivers the event to every handle subscribed to T. It returns false
// when no handle has ever subscribed for T or all of them have since
// unsubscribed; in that case no work happens. Handlers receive the event
// pointer itself, so mutations are visible to handlers invoked later in the
// same emit.
//
// A panicking handler is recovered and logged and delivery continues with
// the remaining handlers; the emit still counts as delivered.
func Emit[T any](d *Dispatcher, event *T) bool {
	typeID := typeid.Of[T]()

	d.mu.Lock()
	set, ok := d.registry[typeID]
	if !ok || set.Len() == 0 {
		d.mu.Unlock()
		return false
	}
	procs := make([]Processor, 0, set.Len())
	for pair := set.Oldest(); pair != nil; pair = pair.Next() {
		procs = append(procs, pair.Key.processor)
	}
	d.mu.Unlock()

	for _, p := range procs {
		invoke(p, event)
	}
	return true
}

func invoke(p Processor, event any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event handler panicked",
				slog.Any("panic", r),
				slogx.ByteString("stack", debug.Stack()),
			)
		}
	}()
	p.Process(event)
}

// Handles returns the number of currently registered handles across all
// event types.
func (d *Dispatcher) Handles() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	var n int
	for _, set := range d.registry {
		n += set.Len()
	}
	return n
}

// Types returns the number of event types that have ever had a subscriber.
// Unsubscribing does not shrink this; registry entries are kept for the
// dispatcher's lifetime.
func (d *Dispatcher) Types() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.registry)
}

// Subscribers returns the number of handles currently subscribed to T.
func Subscribers[T any](d *Dispatcher) int {
	typeID := typeid.Of[T]()

	d.mu.Lock()
	defer d.mu.Unlock()

	if set, ok := d.registry[typeID]; ok {
		return set.Len()
	}
	return 0
}
