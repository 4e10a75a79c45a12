package ordersvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/order"
	"go.opentelemetry.io/otel"
)

// UpdateOrderStatus moves an order along its lifecycle. Transitions outside
// the state machine are rejected, and cancelling an order returns its
// reserved stock to the inventory in the same transaction.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int64, next order.Status) (order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "UpdateOrderStatus")
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx)

	current, err := s.getOrder(ctx, work, id)
	if err != nil {
		return order.Order{}, err
	}

	if !current.Status.CanTransition(next) {
		return order.Order{}, apperr.Newf(
			apperr.KindValidation,
			"cannot transition order from %s to %s", current.Status, next,
		)
	}

	if next == order.StatusCancelled {
		if err := s.releaseStock(ctx, work, current); err != nil {
			return order.Order{}, err
		}
	}

	if err := work.OrderRepository().SetStatus(ctx, id, next); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to commit status update: %w", err)
	}

	slog.Info("Order status updated", "order_id", id, "from", current.Status, "to", next)

	current.Status = next
	current.Version++
	current.UpdatedAt = time.Now()

	return *current, nil
}

// DeleteOrder removes an order and its items. When the order never reached a
// terminal state its reserved stock goes back to the inventory first.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "DeleteOrder")
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx)

	current, err := s.getOrder(ctx, work, id)
	if err != nil {
		return err
	}

	// Terminal orders either consumed their stock (delivered, collected) or
	// already released it (cancelled). Only in-flight orders still hold a
	// reservation.
	if !current.Status.IsTerminal() {
		if err := s.releaseStock(ctx, work, current); err != nil {
			return err
		}
	}

	if err := work.OrderRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order deletion: %w", err)
	}

	slog.Info("Order deleted", "order_id", id, "status", current.Status)

	return nil
}

// PromoteScheduledOrders advances pending scheduled orders whose delivery
// time falls within the lookahead to PROCESSING. Called by the delivery
// scheduler worker; safe to run repeatedly because promoted orders leave the
// PENDING filter.
func (s *OrderService) PromoteScheduledOrders(ctx context.Context, lookahead time.Duration) (int, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "PromoteScheduledOrders")
	defer span.End()

	now := time.Now()
	horizon := now.Add(lookahead)

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx)

	due, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{
		Status:        order.StatusPending,
		Scheduled:     true,
		ScheduledFrom: &now,
		ScheduledTo:   &horizon,
	})
	if err != nil {
		return 0, err
	}

	for i := range due {
		if err := work.OrderRepository().SetStatus(ctx, due[i].ID, order.StatusProcessing); err != nil {
			return 0, err
		}
	}

	if err := work.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit scheduled promotion: %w", err)
	}

	if len(due) > 0 {
		slog.Info("Scheduled orders promoted", "count", len(due), "horizon", horizon)
	}

	return len(due), nil
}

// getOrder loads a single order with its items inside the given transaction.
func (s *OrderService) getOrder(ctx context.Context, work unitOfWork, id int64) (*order.Order, error) {
	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperr.ErrOrderNotFound
	}

	o := orders[0]
	items, err := work.OrderItemRepository().QueryByOrderIds(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.OrderItems = items

	return &o, nil
}

// releaseStock returns every line item's reserved quantity to the inventory.
func (s *OrderService) releaseStock(ctx context.Context, work unitOfWork, o *order.Order) error {
	for i := range o.OrderItems {
		item := &o.OrderItems[i]
		if err := work.ProductRepository().Release(ctx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("failed to release stock for product %d: %w", item.ProductID, err)
		}
	}

	return nil
}
