package hoot

import "errors"

// Sentinel errors for the subscriber facade. The dispatcher itself reports
// failures as boolean results and never produces errors.
var (
	// ErrSubscriberClosed is returned when a registration is attempted on a
	// closed subscriber.
	ErrSubscriberClosed = errors.New("subscriber is closed")

	// ErrSubscribeFailed is returned when the dispatcher rejects a
	// subscription made through a subscriber.
	ErrSubscribeFailed = errors.New("subscribe failed")
)
