package promocode

import (
	"testing"
	"time"

	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/stretchr/testify/assert"
)

func validPromo() PromoCode {
	return PromoCode{
		Code:          "TEST",
		DiscountValue: 10,
		Kind:          KindPercentage,
		MaxUsages:     5,
		ExpiryDate:    time.Now().AddDate(0, 1, 0),
	}
}

func TestValidate_OK(t *testing.T) {
	p := validPromo()
	assert.NoError(t, p.Validate(5000, time.Now()))
}

func TestValidate_UsageLimitReached(t *testing.T) {
	p := validPromo()
	p.UsageCount = 5

	assert.ErrorIs(t, p.Validate(5000, time.Now()), apperr.ErrPromoLimitReached)
}

func TestValidate_Expired(t *testing.T) {
	p := validPromo()
	p.ExpiryDate = time.Now().AddDate(0, 0, -1)

	assert.ErrorIs(t, p.Validate(5000, time.Now()), apperr.ErrPromoExpired)
}

func TestValidate_ExpiringTodayStillValid(t *testing.T) {
	now := time.Now()
	p := validPromo()
	// Expiry earlier today: the code is good through the end of its expiry day.
	p.ExpiryDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	assert.NoError(t, p.Validate(5000, now))
}

func TestValidate_BelowMinimum(t *testing.T) {
	p := validPromo()
	p.MinOrderCents = 10000

	err := p.Validate(5000, time.Now())
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestValidate_ZeroAmountSkipsMinimumCheck(t *testing.T) {
	p := validPromo()
	p.MinOrderCents = 10000

	assert.NoError(t, p.Validate(0, time.Now()))
}

func TestDiscount_Percentage(t *testing.T) {
	p := validPromo()
	assert.Equal(t, int64(500), p.Discount(5000))
}

func TestDiscount_Fixed(t *testing.T) {
	p := validPromo()
	p.Kind = KindFixed
	p.DiscountValue = 750

	assert.Equal(t, int64(750), p.Discount(5000))
}

func TestDiscount_ClampedToOrderAmount(t *testing.T) {
	p := validPromo()
	p.Kind = KindFixed
	p.DiscountValue = 9000

	assert.Equal(t, int64(5000), p.Discount(5000))
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("fixed")
	assert.NoError(t, err)
	assert.Equal(t, KindFixed, kind)

	_, err = ParseKind("bogus")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
