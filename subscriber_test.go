package hoot

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriberOn(t *testing.T) {
	t.Run("subscribes and tracks", func(t *testing.T) {
		d := New()
		subs := NewSubscriber(d)

		var calls atomic.Int64
		h, err := On(subs, func(*damage) { calls.Add(1) })
		require.NoError(t, err)
		require.NotNil(t, h)

		assert.True(t, h.Registered())
		assert.Equal(t, 1, subs.Len())
		assert.Same(t, d, subs.Dispatcher())

		require.True(t, Emit(d, &damage{Amount: 1}))
		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("fails after close", func(t *testing.T) {
		d := New()
		subs := NewSubscriber(d)
		require.NoError(t, subs.Close())

		h, err := On(subs, func(*damage) {})
		require.ErrorIs(t, err, ErrSubscriberClosed)
		assert.Nil(t, h)
	})

	t.Run("surfaces dispatcher rejections", func(t *testing.T) {
		d := New()
		subs := NewSubscriber(d)

		_, err := OnProcessor[damage](subs, nil)
		require.ErrorIs(t, err, ErrSubscribeFailed)
		assert.Equal(t, 0, subs.Len())
	})
}

func TestSubscriberMustOn(t *testing.T) {
	d := New()
	subs := NewSubscriber(d)

	assert.NotPanics(t, func() { MustOn(subs, func(*damage) {}) })

	require.NoError(t, subs.Close())
	assert.Panics(t, func() { MustOn(subs, func(*damage) {}) })
}

func TestSubscriberDetach(t *testing.T) {
	d := New()
	subs := NewSubscriber(d)

	h1 := MustOn(subs, func(*damage) {})
	MustOn(subs, func(*damage) {})
	require.Equal(t, 2, subs.Len())

	t.Run("releases a tracked handle", func(t *testing.T) {
		require.True(t, subs.Detach(h1))
		assert.False(t, h1.Registered())
		assert.Equal(t, 1, subs.Len())
		assert.Equal(t, 1, Subscribers[damage](d))
	})

	t.Run("rejects an untracked handle", func(t *testing.T) {
		var stray Handle
		require.True(t, Subscribe(d, &stray, func(*damage) {}))
		assert.False(t, subs.Detach(&stray))
		assert.True(t, stray.Registered(), "detach must not touch handles it does not own")
	})
}

func TestSubscriberClose(t *testing.T) {
	d := New()
	subs := NewSubscriber(d)

	MustOn(subs, func(*damage) {})
	MustOn(subs, func(*healed) {})
	MustOn(subs, func(*poked) {})
	require.Equal(t, 3, d.Handles())

	require.NoError(t, subs.Close())
	assert.Equal(t, 0, d.Handles())
	assert.Equal(t, 0, subs.Len())

	// Close is idempotent.
	require.NoError(t, subs.Close())

	assert.False(t, Emit(d, &damage{Amount: 1}))
}

func TestSubscriberSharedProcessor(t *testing.T) {
	d := New()
	subs := NewSubscriber(d)
	defer subs.Close()

	var calls atomic.Int64
	tap := ProcessorFunc(func(any) { calls.Add(1) })

	_, err := OnProcessor[damage](subs, tap)
	require.NoError(t, err)
	_, err = OnProcessor[healed](subs, tap)
	require.NoError(t, err)

	require.True(t, Emit(d, &damage{Amount: 1}))
	require.True(t, Emit(d, &healed{Amount: 1}))
	assert.Equal(t, int64(2), calls.Load())
}
