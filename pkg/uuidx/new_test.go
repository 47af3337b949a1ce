package uuidx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := New()
	assert.Equal(t, uuid.Version(7), id.Version(), "UUID should be version 7")
	assert.Equal(t, uuid.RFC4122, id.Variant(), "UUID should have RFC4122 variant")

	assert.NotEqual(t, id, New(), "generated UUIDs should be unique")
}

func TestNewString(t *testing.T) {
	idStr := NewString()
	id, err := uuid.Parse(idStr)
	require.NoError(t, err, "NewString should return a valid UUID string")
	assert.Equal(t, uuid.Version(7), id.Version(), "UUID should be version 7")

	assert.NotEqual(t, idStr, NewString(), "generated UUID strings should be unique")
	assert.Regexp(t, "^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$", idStr,
		"UUID string should match standard UUID v7 format")
}
