package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrAdd(t *testing.T) {
	r := New[*int]()

	var builds int
	build := func() *int {
		builds++
		v := 42
		return &v
	}

	first, loaded := r.GetOrAdd("answer", build)
	require.False(t, loaded)
	require.NotNil(t, first)

	second, loaded := r.GetOrAdd("answer", build)
	assert.True(t, loaded)
	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
}

func TestGet(t *testing.T) {
	r := New[string]()

	_, found := r.Get("missing")
	require.False(t, found)

	r.GetOrAdd("present", func() string { return "value" })
	got, found := r.Get("present")
	require.True(t, found)
	assert.Equal(t, "value", got)
}

func TestNames(t *testing.T) {
	r := New[int]()
	assert.Empty(t, r.Names())

	r.GetOrAdd("a", func() int { return 1 })
	r.GetOrAdd("b", func() int { return 2 })
	r.GetOrAdd("a", func() int { return 3 })

	assert.ElementsMatch(t, []string{"a", "b"}, r.Names())
}

func TestGetOrAddConcurrent(t *testing.T) {
	r := New[*int]()

	const callers = 64
	values := make([]*int, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := range callers {
		go func() {
			defer wg.Done()
			values[i], _ = r.GetOrAdd("shared", func() *int {
				v := i
				return &v
			})
		}()
	}
	wg.Wait()

	for _, v := range values {
		assert.Same(t, values[0], v)
	}
}
