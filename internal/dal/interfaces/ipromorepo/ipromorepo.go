package ipromorepo

import (
	"context"

	"github.com/kasikotas/order/internal/service/models/promocode"
)

// PostgresRepository is the promo code ledger.
type PostgresRepository interface {
	GetByCode(ctx context.Context, code string) (*promocode.PromoCode, error)
	// IncrementUsage advances the usage counter only while it is still below
	// max_usages, in a single conditional update, and returns the
	// post-increment record. Zero rows affected yields
	// apperr.ErrPromoLimitReached.
	IncrementUsage(ctx context.Context, code string) (*promocode.PromoCode, error)
	Insert(ctx context.Context, p promocode.PromoCode) (promocode.PromoCode, error)
	List(ctx context.Context) ([]promocode.PromoCode, error)
	Delete(ctx context.Context, id int64) error
}
