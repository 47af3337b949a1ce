/*
Package hoot implements an in-process, type-indexed event dispatcher:
producers emit strongly typed event values and consumers register handlers
for a specific event type, which run synchronously on the emitting goroutine.

The package is built from a few small pieces:

  - Dispatcher: routes emitted events to the handles subscribed to their type
  - Handle: tracks one subscription's lifecycle and can be reused after release
  - Processor: consumes deliveries; the typed API wraps plain functions for you
  - Subscriber: groups subscriptions under a shared lifecycle
  - Hub: hands out named, independent dispatcher instances
  - Journal: a shared processor that taps deliveries into a JSON line stream

# Basic Usage

Subscribe a handler, emit, and release the subscription when done:

	type Damage struct {
		Amount int
	}

	d := hoot.New()

	var h hoot.Handle
	hoot.Subscribe(d, &h, func(ev *Damage) {
		fmt.Println("took", ev.Amount)
	})

	hoot.Emit(d, &Damage{Amount: 12})

	d.Unsubscribe(&h)

Subscribe, Unsubscribe and Emit report success as a boolean. A false result
means the operation did not happen: the handle was already registered, the
handle was not registered, or nothing is subscribed for the emitted type.
Failures never panic and never log; the dispatcher stays fully usable.

# Event Types

Any Go type can be an event. Each distinct type gets a process-wide numeric
identifier on first use (see the typeid package); the dispatcher keys its
registry by that identifier, so there are no topic strings to keep in sync.
Handlers receive a pointer to the emitted value and may mutate it, which
later handlers of the same emit observe.

# Delivery Semantics

Delivery is synchronous. Emit collects the subscribers registered at the
moment it holds the dispatcher lock, releases the lock, and invokes them on
the caller's goroutine. Handlers may therefore subscribe, unsubscribe and
emit on the same dispatcher without deadlocking. Invocation order within an
event type is unspecified. A panicking handler is recovered and logged and
the remaining handlers still run.

# Lifecycle Management

Handles can be managed one by one, or grouped: a Subscriber tracks every
handle it creates and releases them all on Close. Components that listen to
several event types can hold a single Subscriber and close it on shutdown:

	subs := hoot.NewSubscriber(d)
	defer subs.Close()

	hoot.MustOn(subs, func(ev *Damage) { ... })
	hoot.MustOn(subs, func(ev *Healed) { ... })

# Diagnostics

A Journal is a Processor that appends one JSON record per delivery to a
writer, carrying the payload, the qualified event type name, and a
per-journal sequence number. Describe builds a JSON schema backed definition
of an event type for catalogs and generated glue; the hoot-event-gen command
generates that glue from a comment directive.

Library code logs through log/slog only and only for conditions the boolean
results cannot express, such as a recovered handler panic.
*/
package hoot
