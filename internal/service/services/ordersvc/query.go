package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/order"
	"github.com/kasikotas/order/internal/service/models/user"
	"go.opentelemetry.io/otel"
)

// GetOrders returns orders matching the filter, fully materialized: every
// order carries its line items and its customer. Callers get complete
// aggregates, never lazy references.
func (s *OrderService) GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "GetOrders")
	defer span.End()

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	if err := s.materialize(ctx, work, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// GetOrderByID returns a single fully materialized order.
func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (order.Order, error) {
	orders, err := s.GetOrders(ctx, &order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return order.Order{}, err
	}
	if len(orders) == 0 {
		return order.Order{}, apperr.ErrOrderNotFound
	}

	return orders[0], nil
}

// GetOrdersByUser returns a customer's orders, newest filter semantics apply.
func (s *OrderService) GetOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	return s.GetOrders(ctx, &order.QueryOrdersModel{UserIds: []int64{userID}})
}

// GetScheduledOrders returns orders with a scheduled delivery time, optionally
// bounded to a time range.
func (s *OrderService) GetScheduledOrders(ctx context.Context, from, to *time.Time) ([]order.Order, error) {
	return s.GetOrders(ctx, &order.QueryOrdersModel{
		Scheduled:     true,
		ScheduledFrom: from,
		ScheduledTo:   to,
	})
}

// CountOrders returns the total number of orders ever placed.
func (s *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return s.newUOW().OrderRepository().Count(ctx)
}

// materialize attaches line items and customers to the given orders with two
// batched lookups instead of a query per order.
func (s *OrderService) materialize(ctx context.Context, work unitOfWork, orders []order.Order) error {
	orderIds := make([]int64, len(orders))
	userIdSet := make(map[int64]struct{}, len(orders))
	for i := range orders {
		orderIds[i] = orders[i].ID
		userIdSet[orders[i].UserID] = struct{}{}
	}

	items, err := work.OrderItemRepository().QueryByOrderIds(ctx, orderIds)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}

	itemsByOrder := make(map[int64][]int, len(orders))
	for i := range items {
		itemsByOrder[items[i].OrderID] = append(itemsByOrder[items[i].OrderID], i)
	}

	userIds := make([]int64, 0, len(userIdSet))
	for id := range userIdSet {
		userIds = append(userIds, id)
	}
	users, err := work.UserRepository().GetByIds(ctx, userIds)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	usersByID := make(map[int64]*user.User, len(users))
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}

	for i := range orders {
		o := &orders[i]
		for _, idx := range itemsByOrder[o.ID] {
			o.OrderItems = append(o.OrderItems, items[idx])
		}
		o.User = usersByID[o.UserID]
	}

	return nil
}
