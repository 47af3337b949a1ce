package hoot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casualjim/hoot/pkg/typeid"
)

func TestHandleZeroValue(t *testing.T) {
	var h Handle
	assert.False(t, h.Registered())
	assert.Equal(t, typeid.Invalid, h.EventType())
}

func TestHandleRegister(t *testing.T) {
	proc := ProcessorFunc(func(any) {})

	t.Run("rejects the invalid type identifier", func(t *testing.T) {
		var h Handle
		require.False(t, h.register(typeid.Invalid, proc))
		assert.False(t, h.Registered())
	})

	t.Run("rejects a nil processor", func(t *testing.T) {
		var h Handle
		require.False(t, h.register(typeid.Of[damage](), nil))
		assert.False(t, h.Registered())
		assert.Equal(t, typeid.Invalid, h.EventType())
	})

	t.Run("binds once", func(t *testing.T) {
		var h Handle
		first := typeid.Of[damage]()
		require.True(t, h.register(first, proc))

		assert.True(t, h.Registered())
		assert.Equal(t, first, h.EventType())

		require.False(t, h.register(typeid.Of[healed](), proc))
		assert.Equal(t, first, h.EventType(), "failed register must not rebind")
	})
}

func TestHandleReset(t *testing.T) {
	var h Handle
	require.True(t, h.register(typeid.Of[damage](), ProcessorFunc(func(any) {})))

	h.reset()
	assert.False(t, h.Registered())
	assert.Equal(t, typeid.Invalid, h.EventType())
	assert.Nil(t, h.processor)

	// Resetting again changes nothing.
	h.reset()
	assert.False(t, h.Registered())

	// And the handle is usable for a fresh registration.
	require.True(t, h.register(typeid.Of[healed](), ProcessorFunc(func(any) {})))
	assert.Equal(t, typeid.Of[healed](), h.EventType())
}
