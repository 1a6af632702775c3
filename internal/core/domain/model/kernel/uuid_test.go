package kernel_test

import (
	"testing"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderIDText = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	a, b := kernel.NewUUID(), kernel.NewUUID()

	require.NoError(t, a.Validate())
	assert.False(t, a.IsEqual(b))
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, a.String())
}

func TestUUIDFromString(t *testing.T) {
	for _, input := range []string{
		orderIDText,
		"{" + orderIDText + "}",
		"urn:uuid:" + orderIDText,
		"550e8400e29b41d4a716446655440000",
	} {
		id, err := kernel.UUIDFromString(input)
		require.NoError(t, err, input)
		assert.Equal(t, orderIDText, id.String())
	}

	for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716", orderIDText + "-extra"} {
		_, err := kernel.UUIDFromString(input)
		require.Error(t, err, input)
		assert.Contains(t, err.Error(), "invalid UUID format")
	}
}

func TestUUIDFromBytes(t *testing.T) {
	stored := uuid.MustParse(orderIDText)

	id, err := kernel.UUIDFromBytes(stored[:])
	require.NoError(t, err)
	assert.Equal(t, orderIDText, id.String())
	assert.Equal(t, stored, id.Bytes())

	_, err = kernel.UUIDFromBytes([]byte{0x55, 0x0e})
	assert.ErrorContains(t, err, "invalid UUID format")

	_, err = kernel.UUIDFromBytes(make([]byte, 16))
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	err := zero.Validate()

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.True(t, zero.IsEqual(kernel.UUID{}))
}

func TestUUID_BytesIsACopy(t *testing.T) {
	id := kernel.NewUUID()
	before := id.String()

	b := id.Bytes()
	for i := range b {
		b[i] = 0xFF
	}

	assert.Equal(t, before, id.String())
}
