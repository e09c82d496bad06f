package order

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressUnmarshal(t *testing.T) {
	t.Run("string form yields raw variant", func(t *testing.T) {
		var a Address
		require.NoError(t, json.Unmarshal([]byte(`"Tverskaya 1, Moscow"`), &a))
		assert.Equal(t, AddressRaw, a.Kind())
		assert.Equal(t, "Tverskaya 1, Moscow", a.Display())
	})

	t.Run("object form yields parsed variant", func(t *testing.T) {
		var a Address
		require.NoError(t, json.Unmarshal([]byte(`{"city":"Moscow","street":"Tverskaya","building":"1","apartment":"42"}`), &a))
		assert.Equal(t, AddressParsed, a.Kind())
		assert.Equal(t, "Moscow", a.Fields().City)
		assert.Equal(t, "Moscow, Tverskaya, 1, apt. 42", a.Display())
	})

	t.Run("double-encoded object is unwrapped", func(t *testing.T) {
		var a Address
		require.NoError(t, json.Unmarshal([]byte(`"{\"city\":\"Moscow\",\"street\":\"Arbat\"}"`), &a))
		assert.Equal(t, AddressParsed, a.Kind())
		assert.Equal(t, "Arbat", a.Fields().Street)
	})

	t.Run("null and blank degrade to empty", func(t *testing.T) {
		var a Address
		require.NoError(t, json.Unmarshal([]byte(`null`), &a))
		assert.True(t, a.IsEmpty())
		assert.Equal(t, "", a.Display())

		require.NoError(t, json.Unmarshal([]byte(`""`), &a))
		assert.True(t, a.IsEmpty())
	})

	t.Run("unknown shape degrades to empty without error", func(t *testing.T) {
		var a Address
		require.NoError(t, json.Unmarshal([]byte(`42`), &a))
		assert.True(t, a.IsEmpty())
	})
}

func TestAddressMarshalRoundTrip(t *testing.T) {
	t.Run("raw", func(t *testing.T) {
		out, err := json.Marshal(RawAddress("Nevsky 5"))
		require.NoError(t, err)
		var back Address
		require.NoError(t, json.Unmarshal(out, &back))
		assert.Equal(t, AddressRaw, back.Kind())
		assert.Equal(t, "Nevsky 5", back.Raw())
	})

	t.Run("parsed", func(t *testing.T) {
		out, err := json.Marshal(ParsedAddress(AddressFields{City: "Kazan", Street: "Bauman"}))
		require.NoError(t, err)
		var back Address
		require.NoError(t, json.Unmarshal(out, &back))
		assert.Equal(t, AddressParsed, back.Kind())
		assert.Equal(t, "Kazan", back.Fields().City)
	})
}

func TestDeliveryStatusTransitions(t *testing.T) {
	assert.True(t, DeliveryAssigned.CanTransitionTo(DeliveryPickedUp))
	assert.True(t, DeliveryAssigned.CanTransitionTo(DeliveryCancelled))
	assert.True(t, DeliveryPickedUp.CanTransitionTo(DeliveryDelivered))

	assert.False(t, DeliveryAssigned.CanTransitionTo(DeliveryDelivered))
	assert.False(t, DeliveryPickedUp.CanTransitionTo(DeliveryCancelled))
	assert.False(t, DeliveryDelivered.CanTransitionTo(DeliveryPickedUp))
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("shipped_to_mars").Valid())
}
