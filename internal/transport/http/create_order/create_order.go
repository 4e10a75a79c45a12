package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/order"
	"github.com/kasikotas/order/internal/service/models/orderitem"
	"github.com/kasikotas/order/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, o order.Order) (order.Order, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID          int64             `json:"productId"          validate:"gt=0"`
	Quantity           int               `json:"quantity"           validate:"gt=0"`
	CustomizationNotes string            `json:"customizationNotes"`
	SelectedExtras     []orderitem.Extra `json:"selectedExtras"`
	SelectedSauces     []orderitem.Sauce `json:"selectedSauces"`
}

func (r *itemInCreateOrderRequest) toModel() orderitem.OrderItem {
	return orderitem.OrderItem{
		ProductID:          r.ProductID,
		Quantity:           r.Quantity,
		CustomizationNotes: r.CustomizationNotes,
		SelectedExtras:     r.SelectedExtras,
		SelectedSauces:     r.SelectedSauces,
	}
}

// createOrderRequest represents a create order request. Prices are never
// taken from the client; the engine snapshots them from the catalog.
type createOrderRequest struct {
	UserID                int64                      `json:"userId"                validate:"gt=0"`
	ShippingAddress       string                     `json:"shippingAddress"`
	PaymentMethod         string                     `json:"paymentMethod"`
	DeliveryMethod        string                     `json:"deliveryMethod"        validate:"omitempty,oneof=delivery collection"`
	ScheduledDeliveryTime *time.Time                 `json:"scheduledDeliveryTime"`
	DeliveryFeeCents      int64                      `json:"deliveryFeeCents"      validate:"gte=0"`
	PromoCode             string                     `json:"promoCode"`
	OrderItems            []itemInCreateOrderRequest `json:"orderItems"            validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *createOrderRequest) toModel() order.Order {
	items := make([]orderitem.OrderItem, len(r.OrderItems))
	for i := range r.OrderItems {
		items[i] = r.OrderItems[i].toModel()
	}

	method := order.DeliveryMethod(r.DeliveryMethod)
	if method == "" {
		method = order.DeliveryMethodDelivery
	}

	return order.Order{
		UserID:                r.UserID,
		ShippingAddress:       r.ShippingAddress,
		PaymentMethod:         r.PaymentMethod,
		DeliveryMethod:        method,
		ScheduledDeliveryTime: r.ScheduledDeliveryTime,
		DeliveryFeeCents:      r.DeliveryFeeCents,
		PromoCode:             r.PromoCode,
		OrderItems:            items,
	}
}

// CreateOrder handles the place order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Error decoding request body for create order", "error", err)
		respond.Error(w, apperr.New(apperr.KindValidation, "invalid request body"))

		return
	}

	if err := req.Validate(); err != nil {
		slog.Error("Error validating request body for create order", "error", err)
		respond.Error(w, apperr.Newf(apperr.KindValidation, "invalid request: %s", err))

		return
	}

	placed, err := service.PlaceOrder(r.Context(), req.toModel())
	if err != nil {
		slog.Error("Error placing order", "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, placed)
}
