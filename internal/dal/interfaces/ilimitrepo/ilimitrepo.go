package ilimitrepo

import (
	"context"

	"github.com/kasikotas/order/internal/service/models/orderlimit"
)

// PostgresRepository manages the singleton order limit row.
type PostgresRepository interface {
	// Get returns the configured limit, or apperr.ErrLimitNotSet when no
	// limit row exists (in which case every order is admitted).
	Get(ctx context.Context) (*orderlimit.OrderLimit, error)
	Upsert(ctx context.Context, limit orderlimit.OrderLimit) (orderlimit.OrderLimit, error)
}
