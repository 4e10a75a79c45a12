package iuserrepo

import (
	"context"

	"github.com/kasikotas/order/internal/service/models/user"
)

// PostgresRepository is the read-only user lookup consumed by the engine.
type PostgresRepository interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByIds(ctx context.Context, ids []int64) ([]user.User, error)
}
