package hoot

import (
	"sync"

	"github.com/casualjim/hoot/pkg/stdx"
)

// Subscriber owns a group of subscriptions with a shared lifecycle. Every
// handle it creates stays tracked until Detach or Close, which releases them
// all at once. Components that subscribe to several event types can hold one
// Subscriber and close it on shutdown instead of bookkeeping individual
// handles.
type Subscriber struct {
	dispatcher *Dispatcher
	mu         sync.Mutex
	handles    []*Handle
	closed     bool
}

// NewSubscriber creates a subscriber bound to the given dispatcher.
func NewSubscriber(d *Dispatcher) *Subscriber {
	return &Subscriber{
		dispatcher: d,
		handles:    make([]*Handle, 0),
	}
}

// On subscribes a fresh handle to the event type T and tracks it for release
// on Close. It returns ErrSubscriberClosed after Close and
// ErrSubscribeFailed when the dispatcher rejects the subscription.
func On[T any](s *Subscriber, fn Handler[T]) (*Handle, error) {
	return OnProcessor[T](s, ProcessorFor(fn))
}

// OnProcessor is On with a caller supplied processor.
func OnProcessor[T any](s *Subscriber, p Processor) (*Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSubscriberClosed
	}

	h := &Handle{}
	if !SubscribeProcessor[T](s.dispatcher, h, p) {
		return nil, ErrSubscribeFailed
	}
	s.handles = append(s.handles, h)
	return h, nil
}

// MustOn is On but panics when the subscription fails.
func MustOn[T any](s *Subscriber, fn Handler[T]) *Handle {
	return stdx.Must1(On(s, fn))
}

// Detach releases a single tracked handle ahead of Close. It returns false
// when the handle is not tracked by this subscriber.
func (s *Subscriber) Detach(h *Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tracked := range s.handles {
		if tracked == h {
			s.handles = append(s.handles[:i], s.handles[i+1:]...)
			return s.dispatcher.Unsubscribe(h)
		}
	}
	return false
}

// Len returns the number of handles the subscriber is tracking.
func (s *Subscriber) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handles)
}

// Dispatcher returns the dispatcher this subscriber is bound to.
func (s *Subscriber) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// Close unsubscribes every tracked handle and prevents new registrations.
// It is idempotent.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, h := range s.handles {
		s.dispatcher.Unsubscribe(h)
	}
	s.handles = nil

	return nil
}
