package iproductrepo

import (
	"context"

	"github.com/kasikotas/order/internal/service/models/product"
)

// PostgresRepository is the inventory ledger. Reserve and Release are
// conditional updates executed in the database, never read-modify-write in
// application memory.
type PostgresRepository interface {
	GetByID(ctx context.Context, id int64) (*product.Product, error)
	// Reserve atomically decrements stock by quantity and returns the
	// remaining stock. It returns apperr.ErrInsufficientStock without
	// mutating when stock < quantity.
	Reserve(ctx context.Context, id int64, quantity int) (int, error)
	// Release is the inverse of Reserve, used when an order is cancelled or
	// deleted after its stock was reserved.
	Release(ctx context.Context, id int64, quantity int) error
}
