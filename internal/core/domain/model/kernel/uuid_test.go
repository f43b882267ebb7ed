package kernel_test

import (
	"errors"
	"testing"

	"errands/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderIDText = "5b1f0c7e-3a2d-4e11-9c4b-0d2f6a8e9b10"

func TestNewUUID(t *testing.T) {
	a, b := kernel.NewUUID(), kernel.NewUUID()

	require.NoError(t, a.Validate())
	assert.False(t, a.IsZero())
	assert.False(t, a.IsEqual(b))
	assert.Equal(t, uuid.Version(4), a.Bytes().Version())
}

func TestUUIDFromString(t *testing.T) {
	accepted := map[string]string{
		"canonical": orderIDText,
		"braced":    "{" + orderIDText + "}",
		"urn":       "urn:uuid:" + orderIDText,
		"compact":   "5b1f0c7e3a2d4e119c4b0d2f6a8e9b10",
	}
	for name, input := range accepted {
		t.Run(name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(input)
			require.NoError(t, err)
			assert.Equal(t, orderIDText, id.String())
		})
	}

	for _, input := range []string{"", "pending", "5b1f0c7e-3a2d-4e11", orderIDText + "-x", "zb1f0c7e-3a2d-4e11-9c4b-0d2f6a8e9b10"} {
		_, err := kernel.UUIDFromString(input)
		require.Error(t, err, "input %q", input)
		assert.Contains(t, err.Error(), "invalid UUID format")
	}
}

func TestUUIDFromBytes(t *testing.T) {
	raw := uuid.MustParse(orderIDText)

	id, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)
	assert.Equal(t, orderIDText, id.String())

	_, err = kernel.UUIDFromBytes(raw[:4])
	assert.ErrorContains(t, err, "invalid UUID format")

	_, err = kernel.UUIDFromBytes(make([]byte, 16))
	assert.True(t, errors.Is(err, kernel.ErrUUIDIsNotConstructed))
}

func TestUUID_ZeroValueIsInvalid(t *testing.T) {
	var receiverID kernel.UUID

	assert.True(t, receiverID.IsZero())
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, receiverID.Validate())
	assert.True(t, receiverID.IsEqual(kernel.UUIDFrom(uuid.Nil)))
}

func TestUUIDFrom_RoundTripsStorageValue(t *testing.T) {
	stored := uuid.New()

	id := kernel.UUIDFrom(stored)

	assert.Equal(t, stored, id.Bytes())
	assert.True(t, id.IsEqual(kernel.UUIDFrom(stored)))
	assert.Equal(t, stored.String(), id.String())
}
