package ordersvc

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/kasikotas/order/internal/service/models/order"
	"github.com/kasikotas/order/internal/service/models/outbox"
	"github.com/spf13/viper"
)

// orderPlacedEvent is the payload published for each placed order.
type orderPlacedEvent struct {
	OrderID       int64      `json:"orderId"`
	UserID        int64      `json:"userId"`
	Email         string     `json:"email,omitempty"`
	TotalCents    int64      `json:"totalCents"`
	ItemCount     int        `json:"itemCount"`
	ScheduledTime *time.Time `json:"scheduledTime,omitempty"`
	PlacedAt      time.Time  `json:"placedAt"`
}

// enqueueNotification stores an order-placed event in the outbox for the
// publisher worker to pick up. Failures are logged and swallowed: the order
// is already committed and a lost notification must not undo it.
func (s *OrderService) enqueueNotification(ctx context.Context, o order.Order) {
	if s.outboxRepo == nil {
		return
	}

	event := orderPlacedEvent{
		OrderID:       o.ID,
		UserID:        o.UserID,
		TotalCents:    o.TotalCents,
		ItemCount:     len(o.OrderItems),
		ScheduledTime: o.ScheduledDeliveryTime,
		PlacedAt:      o.CreatedAt,
	}
	if o.User != nil {
		event.Email = o.User.Email
	}

	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to marshal order notification", "order_id", o.ID, "error", err)
		return
	}

	msg := outbox.Message{
		ExchangeName: viper.GetString("rabbitmq.notifications_exchange"),
		RoutingKey:   viper.GetString("rabbitmq.order_placed_routing_key"),
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   viper.GetInt("rabbitmq.max_retries"),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
		NextRetryAt:  time.Now(),
	}

	if err := s.outboxRepo.Insert(ctx, msg); err != nil {
		slog.Error("Failed to enqueue order notification", "order_id", o.ID, "error", err)
	}
}
