package registry

import "github.com/alphadose/haxmap"

// Registry is a concurrent name keyed store with lazy construction. Lookups
// never block each other and GetOrAdd guarantees at most one value per name
// even under racing callers.
type Registry[T any] interface {
	Get(name string) (T, bool)
	GetOrAdd(name string, value func() T) (T, bool)
	Names() []string
}

type registry[T any] struct {
	values *haxmap.Map[string, T]
}

func New[T any]() Registry[T] {
	return &registry[T]{
		values: haxmap.New[string, T](),
	}
}

func (r *registry[T]) Get(name string) (T, bool) {
	return r.values.Get(name)
}

func (r *registry[T]) GetOrAdd(name string, valueFn func() T) (T, bool) {
	return r.values.GetOrCompute(name, valueFn)
}

func (r *registry[T]) Names() []string {
	var names []string
	r.values.ForEach(func(name string, _ T) bool {
		names = append(names, name)
		return true
	})
	return names
}
