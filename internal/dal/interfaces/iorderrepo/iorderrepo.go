package iorderrepo

import (
	"context"
	"time"

	"github.com/kasikotas/order/internal/service/models/order"
)

// PostgresRepository is an interface for the order postgres repository.
type PostgresRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	SetStatus(ctx context.Context, id int64, status order.Status) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	SumQuantitiesBetween(ctx context.Context, from, to time.Time) (int64, error)
}
