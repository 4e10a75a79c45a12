package iorderitemrepo

import (
	"context"

	"github.com/kasikotas/order/internal/service/models/orderitem"
)

// PostgresRepository is an interface for the order item postgres repository.
type PostgresRepository interface {
	BulkInsert(ctx context.Context, orderItems []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	QueryByOrderIds(ctx context.Context, orderIds []int64) ([]orderitem.OrderItem, error)
}
