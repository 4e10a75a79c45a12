package order

import (
	"time"

	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/orderitem"
	"github.com/kasikotas/order/internal/service/models/user"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusProcessing     Status = "PROCESSING"
	StatusReady          Status = "READY"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCollected      Status = "COLLECTED"
	StatusCancelled      Status = "CANCELLED"
)

// transitions is the full state machine. A status missing from the map is
// terminal: nothing transitions out of it.
var transitions = map[Status][]Status{
	StatusPending:        {StatusProcessing, StatusCancelled},
	StatusProcessing:     {StatusReady, StatusOutForDelivery, StatusCancelled},
	StatusReady:          {StatusDelivered, StatusCollected, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCollected, StatusCancelled},
}

// ParseStatus converts a wire string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusReady, StatusOutForDelivery,
		StatusDelivered, StatusCollected, StatusCancelled:
		return Status(s), nil
	default:
		return "", apperr.ErrInvalidStatus
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransition reports whether s may move to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// DeliveryMethod distinguishes courier delivery from in-store collection.
type DeliveryMethod string

const (
	DeliveryMethodDelivery   DeliveryMethod = "delivery"
	DeliveryMethodCollection DeliveryMethod = "collection"
)

// Order represents a customer's order with its line items.
type Order struct {
	ID                    int64                 `json:"id"`
	UserID                int64                 `json:"userId"`
	User                  *user.User            `json:"user,omitempty"`
	Status                Status                `json:"status"`
	ShippingAddress       string                `json:"shippingAddress"`
	PaymentMethod         string                `json:"paymentMethod"`
	DeliveryMethod        DeliveryMethod        `json:"deliveryMethod"`
	ScheduledDeliveryTime *time.Time            `json:"scheduledDeliveryTime,omitempty"`
	SubtotalCents         int64                 `json:"subtotalCents"`
	DeliveryFeeCents      int64                 `json:"deliveryFeeCents"`
	DiscountCents         int64                 `json:"discountCents"`
	TotalCents            int64                 `json:"totalCents"`
	PromoCode             string                `json:"promoCode,omitempty"`
	Version               int64                 `json:"version"`
	CreatedAt             time.Time             `json:"createdAt"`
	UpdatedAt             time.Time             `json:"updatedAt"`
	OrderItems            []orderitem.OrderItem `json:"orderItems"`
}

// Subtotal derives the order subtotal from its line items: unit price times
// quantity plus the selected extras, per line. Sauces never contribute.
func (o *Order) Subtotal() int64 {
	var sum int64
	for i := range o.OrderItems {
		sum += o.OrderItems[i].LineTotal()
	}

	return sum
}

// CalculateTotal fixes the order's monetary fields. A positive total supplied
// by the caller is preserved as-is: once a total has been committed the order
// is the source of truth. Otherwise the total is derived from the line items,
// delivery fee and discount, clamped at zero.
func (o *Order) CalculateTotal() {
	o.SubtotalCents = o.Subtotal()

	if o.TotalCents > 0 {
		return
	}

	total := o.SubtotalCents + o.DeliveryFeeCents - o.DiscountCents
	if total < 0 {
		total = 0
	}
	o.TotalCents = total
}

// TotalQuantity sums the quantities across all line items.
func (o *Order) TotalQuantity() int {
	var n int
	for i := range o.OrderItems {
		n += o.OrderItems[i].Quantity
	}

	return n
}
