package hoot

// Processor consumes one dispatched event. The payload arrives as an opaque
// value; subscriptions made through the typed API always receive the *T they
// were registered for, while a shared processor such as Journal can be bound
// to any number of event types and inspect payloads itself.
type Processor interface {
	Process(event any)
}

// ProcessorFunc adapts an ordinary function to the Processor interface.
// A nil function is a valid processor that does nothing.
type ProcessorFunc func(event any)

func (f ProcessorFunc) Process(event any) {
	if f == nil {
		return
	}
	f(event)
}

// Handler is a typed event callback. It receives a pointer to the emitted
// value, so handlers can mutate the event in place and later handlers of the
// same emit observe the mutation.
type Handler[T any] func(*T)

// ProcessorFor wraps a typed handler in a Processor. The wrapper asserts the
// payload to *T and silently skips anything else, so a processor that ends up
// bound to the wrong event type drops mismatched payloads instead of
// panicking. A nil handler yields a no-op processor.
func ProcessorFor[T any](fn Handler[T]) Processor {
	return ProcessorFunc(func(event any) {
		if fn == nil {
			return
		}
		if ev, ok := event.(*T); ok {
			fn(ev)
		}
	})
}
