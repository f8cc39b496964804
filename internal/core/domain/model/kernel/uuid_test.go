package kernel_test

import (
	"testing"

	"carrierlink/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id1.String())
	assert.False(t, id1.IsEqual(id2))
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("accepted forms", func(t *testing.T) {
		for _, in := range []string{
			canonical,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(in)
			require.NoError(t, err, in)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("malformed input", func(t *testing.T) {
		for _, in := range []string{
			"",
			"not-a-uuid",
			"550e8400-e29b-41d4-a716",
			"550e8400-e29b-41d4-a716-44665544000g",
		} {
			_, err := kernel.UUIDFromString(in)
			require.Error(t, err, in)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("nil uuid is rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("valid bytes", func(t *testing.T) {
		src := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
		id, err := kernel.UUIDFromBytes(src[:])

		require.NoError(t, err)
		assert.Equal(t, src.String(), id.String())
		assert.Equal(t, src, id.Bytes())
	})

	t.Run("short slice", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("all zero bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())
	assert.True(t, zero.IsEqual(kernel.UUID{}))
}

func TestUUID_BytesDoesNotAlias(t *testing.T) {
	original := kernel.NewUUID()
	before := original.String()

	b := original.Bytes()
	for i := range b {
		b[i] = 0xFF
	}

	assert.Equal(t, before, original.String())
}
