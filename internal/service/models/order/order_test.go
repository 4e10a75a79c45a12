package order

import (
	"testing"

	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/orderitem"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusReady, true},
		{StatusProcessing, StatusOutForDelivery, true},
		{StatusProcessing, StatusPending, false},
		{StatusReady, StatusDelivered, true},
		{StatusReady, StatusCollected, true},
		{StatusOutForDelivery, StatusDelivered, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCollected, StatusPending, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.False(t, StatusReady.IsTerminal())
	assert.False(t, StatusOutForDelivery.IsTerminal())
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCollected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("PENDING")
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, got)

	_, err = ParseStatus("pending")
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus)

	_, err = ParseStatus("SHIPPED")
	assert.ErrorIs(t, err, apperr.ErrInvalidStatus)
}

func TestSubtotal(t *testing.T) {
	o := Order{OrderItems: []orderitem.OrderItem{
		{Quantity: 2, UnitPriceCents: 2000, SelectedExtras: []orderitem.Extra{{Name: "Cheese", PriceCents: 500}}},
		{Quantity: 2, UnitPriceCents: 500},
	}}

	// 2*(2000+500) + 2*500 = 6000
	assert.Equal(t, int64(6000), o.Subtotal())
}

func TestCalculateTotal_DerivesFromParts(t *testing.T) {
	o := Order{
		DeliveryFeeCents: 1500,
		DiscountCents:    1000,
		OrderItems: []orderitem.OrderItem{
			{Quantity: 2, UnitPriceCents: 2000},
		},
	}
	o.CalculateTotal()

	assert.Equal(t, int64(4000), o.SubtotalCents)
	assert.Equal(t, int64(4500), o.TotalCents)
}

func TestCalculateTotal_PreservesCommittedTotal(t *testing.T) {
	o := Order{
		TotalCents: 9999,
		OrderItems: []orderitem.OrderItem{
			{Quantity: 1, UnitPriceCents: 2000},
		},
	}
	o.CalculateTotal()

	assert.Equal(t, int64(9999), o.TotalCents)
}

func TestCalculateTotal_ClampsAtZero(t *testing.T) {
	o := Order{
		DiscountCents: 10000,
		OrderItems: []orderitem.OrderItem{
			{Quantity: 1, UnitPriceCents: 2000},
		},
	}
	o.CalculateTotal()

	assert.Equal(t, int64(0), o.TotalCents)
}

func TestTotalQuantity(t *testing.T) {
	o := Order{OrderItems: []orderitem.OrderItem{
		{Quantity: 2},
		{Quantity: 3},
	}}

	assert.Equal(t, 5, o.TotalQuantity())
}
