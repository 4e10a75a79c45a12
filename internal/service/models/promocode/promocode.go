package promocode

import (
	"time"

	"github.com/kasikotas/order/internal/service/models/apperr"
)

// Kind distinguishes percentage discounts from fixed-amount discounts.
type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
)

// ParseKind converts a wire string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPercentage, KindFixed:
		return Kind(s), nil
	default:
		return "", apperr.New(apperr.KindValidation, "discount kind must be percentage or fixed")
	}
}

// PromoCode is a redeemable discount code. UsageCount is only ever advanced
// through the ledger's conditional redeem, never by saving a mutated copy.
type PromoCode struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	DiscountValue int64     `json:"discountValue"`
	Kind          Kind      `json:"kind"`
	MaxUsages     int       `json:"maxUsages"`
	UsageCount    int       `json:"usageCount"`
	ExpiryDate    time.Time `json:"expiryDate"`
	MinOrderCents int64     `json:"minOrderCents"`
	Description   string    `json:"description,omitempty"`
	Version       int64     `json:"version"`
}

// Validate checks redeemability against the given order amount at the given
// moment. A zero orderCents skips the minimum-amount check.
func (p *PromoCode) Validate(orderCents int64, now time.Time) error {
	if p.UsageCount >= p.MaxUsages {
		return apperr.ErrPromoLimitReached
	}
	if p.ExpiryDate.Before(startOfDay(now)) {
		return apperr.ErrPromoExpired
	}
	if orderCents > 0 && orderCents < p.MinOrderCents {
		return apperr.Newf(apperr.KindValidation,
			"order amount is below the promo code minimum of %d cents", p.MinOrderCents)
	}

	return nil
}

// Discount computes the discount for the given order amount, clamped so the
// result never exceeds the amount itself.
func (p *PromoCode) Discount(orderCents int64) int64 {
	var discount int64
	switch p.Kind {
	case KindPercentage:
		discount = orderCents * p.DiscountValue / 100
	default:
		discount = p.DiscountValue
	}
	if discount > orderCents {
		discount = orderCents
	}
	if discount < 0 {
		discount = 0
	}

	return discount
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
