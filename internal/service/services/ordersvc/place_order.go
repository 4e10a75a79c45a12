package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/order"
	"github.com/kasikotas/order/internal/service/models/orderlimit"
	"github.com/kasikotas/order/internal/service/models/promocode"
	"go.opentelemetry.io/otel"
)

// PlaceOrder turns a cart into a persisted order. Steps run inside one
// transaction: admission check, per-line stock reservation, scheduled-time
// validation, promo redemption and persistence all commit or roll back
// together, so a failure at any step leaves no partial state behind.
func (s *OrderService) PlaceOrder(ctx context.Context, o order.Order) (order.Order, error) {
	ctx, span := otel.Tracer("ordersvc").Start(ctx, "PlaceOrder")
	defer span.End()

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer work.Rollback(ctx)

	usr, err := work.UserRepository().GetByID(ctx, o.UserID)
	if err != nil {
		return order.Order{}, err
	}

	if len(o.OrderItems) == 0 {
		return order.Order{}, apperr.ErrEmptyOrder
	}

	if err := s.checkAdmission(ctx, work, &o, now); err != nil {
		return order.Order{}, err
	}

	// Resolve products, snapshot unit prices and reserve stock, in cart
	// order. A failed reservation aborts the whole order; the deferred
	// rollback releases everything reserved before it.
	for i := range o.OrderItems {
		item := &o.OrderItems[i]

		if item.Quantity <= 0 {
			return order.Order{}, fmt.Errorf("product %d: %w", item.ProductID, apperr.ErrInvalidQuantity)
		}

		p, err := work.ProductRepository().GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, apperr.ErrProductNotFound) {
				return order.Order{}, fmt.Errorf("product %d: %w", item.ProductID, err)
			}
			return order.Order{}, err
		}

		if _, err := work.ProductRepository().Reserve(ctx, p.ID, item.Quantity); err != nil {
			if errors.Is(err, apperr.ErrInsufficientStock) {
				return order.Order{}, fmt.Errorf(
					"product %s: only %d left, %d requested: %w",
					p.Name, p.Stock, item.Quantity, err,
				)
			}
			return order.Order{}, err
		}

		item.ProductName = p.Name
		item.UnitPriceCents = p.PriceCents
		item.CreatedAt = now
		item.UpdatedAt = now
	}

	if o.ScheduledDeliveryTime != nil {
		if err := s.window.ValidateScheduledTime(now, *o.ScheduledDeliveryTime); err != nil {
			return order.Order{}, err
		}
	}

	if o.PromoCode != "" {
		promo, err := s.redeemPromo(ctx, work, o.PromoCode, o.Subtotal(), now)
		if err != nil {
			return order.Order{}, err
		}
		o.DiscountCents = promo.Discount(o.Subtotal())
	}

	o.Status = order.StatusPending
	o.Version = 1
	o.CreatedAt = now
	o.UpdatedAt = now
	o.CalculateTotal()

	saved, err := work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return order.Order{}, err
	}

	items := o.OrderItems
	for i := range items {
		items[i].OrderID = saved.ID
	}
	items, err = work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return order.Order{}, err
	}
	saved.OrderItems = items
	saved.User = usr

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}

	slog.Info("Order placed",
		"order_id", saved.ID,
		"user_id", saved.UserID,
		"total_cents", saved.TotalCents,
		"scheduled", saved.ScheduledDeliveryTime != nil,
	)

	// Best-effort: a notification that cannot be queued never fails the
	// order that was just committed.
	s.enqueueNotification(ctx, saved)

	return saved, nil
}

// checkAdmission applies the global order cap. No configured limit admits
// everything. The count/sum reads see only committed orders, so a burst of
// concurrent placements near the cap can over-admit by a small margin; stock
// reservation and promo redemption stay strict regardless.
func (s *OrderService) checkAdmission(ctx context.Context, work unitOfWork, o *order.Order, now time.Time) error {
	limit, err := work.OrderLimitRepository().Get(ctx)
	if err != nil {
		if errors.Is(err, apperr.ErrLimitNotSet) {
			return nil
		}
		return err
	}

	var totalOrders, todaysUnits int64
	switch limit.Scope {
	case orderlimit.ScopeUnitsPerDay:
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		todaysUnits, err = work.OrderRepository().SumQuantitiesBetween(ctx, startOfDay, startOfDay.AddDate(0, 0, 1))
	default:
		totalOrders, err = work.OrderRepository().Count(ctx)
	}
	if err != nil {
		return err
	}

	return limit.Admit(totalOrders, todaysUnits, o.TotalQuantity())
}

// redeemPromo validates the code against the order amount and consumes a
// usage slot via the ledger's conditional increment.
func (s *OrderService) redeemPromo(
	ctx context.Context,
	work unitOfWork,
	code string,
	orderCents int64,
	now time.Time,
) (*promocode.PromoCode, error) {
	promo, err := work.PromoCodeRepository().GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := promo.Validate(orderCents, now); err != nil {
		return nil, err
	}

	return work.PromoCodeRepository().IncrementUsage(ctx, code)
}
