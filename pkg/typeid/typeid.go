// Package typeid assigns process-wide numeric identifiers to Go types.
//
// Identifiers are handed out lazily from a monotonically increasing counter
// that starts at 1, so every assigned identifier is distinct and non-zero.
// The zero value is reserved to mean "no type": a subscription handle that
// is not bound to an event type reports it.
//
// Identifiers are stable for the lifetime of the process and nothing more.
// A fresh run of the same program may assign different numbers depending on
// which types are seen first, and two processes never agree on them. They
// are routing keys, not serialization material.
package typeid

import (
	"reflect"
	"sync"
)

// Invalid is the reserved identifier that no type is ever assigned.
const Invalid uint64 = 0

var (
	mu   sync.RWMutex
	ids  = make(map[reflect.Type]uint64)
	next uint64
)

// Of returns the identifier for the type T, assigning one on first use.
// It is safe for concurrent use and always returns the same non-zero value
// for the same type.
func Of[T any]() uint64 {
	return OfType(reflect.TypeFor[T]())
}

// OfType is Of for callers that only hold a runtime type, such as a
// processor inspecting an opaque payload.
func OfType(t reflect.Type) uint64 {
	mu.RLock()
	id, ok := ids[t]
	mu.RUnlock()
	if ok {
		return id
	}

	mu.Lock()
	defer mu.Unlock()
	if id, ok := ids[t]; ok {
		return id
	}
	next++
	ids[t] = next
	return next
}
