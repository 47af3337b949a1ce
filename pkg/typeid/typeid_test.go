package typeid

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	alpha struct{ N int }
	beta  struct{ N int }
	gamma = alpha
)

func TestOf(t *testing.T) {
	t.Run("non-zero", func(t *testing.T) {
		require.NotEqual(t, Invalid, Of[alpha]())
		require.NotEqual(t, Invalid, Of[beta]())
	})

	t.Run("stable across calls", func(t *testing.T) {
		first := Of[alpha]()
		for range 100 {
			assert.Equal(t, first, Of[alpha]())
		}
	})

	t.Run("distinct per type", func(t *testing.T) {
		assert.NotEqual(t, Of[alpha](), Of[beta]())
		assert.NotEqual(t, Of[alpha](), Of[int]())
		assert.NotEqual(t, Of[int](), Of[int64]())
	})

	t.Run("alias shares the identifier", func(t *testing.T) {
		assert.Equal(t, Of[alpha](), Of[gamma]())
	})

	t.Run("pointer is its own type", func(t *testing.T) {
		assert.NotEqual(t, Of[alpha](), Of[*alpha]())
	})
}

func TestOfType(t *testing.T) {
	t.Run("agrees with Of", func(t *testing.T) {
		assert.Equal(t, Of[alpha](), OfType(reflect.TypeFor[alpha]()))
		assert.Equal(t, Of[beta](), OfType(reflect.TypeOf(beta{})))
	})

	t.Run("named types with identical shape stay distinct", func(t *testing.T) {
		assert.NotEqual(t, OfType(reflect.TypeOf(alpha{})), OfType(reflect.TypeOf(beta{})))
	})
}

func TestOfConcurrent(t *testing.T) {
	type fresh struct{ V string }

	const goroutines = 64
	results := make([]uint64, goroutines)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(goroutines)
	for i := range goroutines {
		go func() {
			defer done.Done()
			start.Wait()
			results[i] = Of[fresh]()
		}()
	}
	start.Done()
	done.Wait()

	require.NotEqual(t, Invalid, results[0])
	for _, id := range results {
		assert.Equal(t, results[0], id)
	}
}
