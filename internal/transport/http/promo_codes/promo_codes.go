package promocodes

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/promocode"
	"github.com/kasikotas/order/internal/transport/http/respond"
)

type service interface {
	Validate(ctx context.Context, code string, orderCents int64) (*promocode.PromoCode, error)
	Create(ctx context.Context, p promocode.PromoCode) (promocode.PromoCode, error)
	List(ctx context.Context) ([]promocode.PromoCode, error)
	Delete(ctx context.Context, id int64) error
}

type validateRequest struct {
	Code       string `json:"code"       validate:"required"`
	OrderCents int64  `json:"orderCents" validate:"gte=0"`
}

type validateResponse struct {
	Valid         bool   `json:"valid"`
	Code          string `json:"code"`
	DiscountCents int64  `json:"discountCents"`
}

// ValidatePromo checks a code against an order amount without consuming it.
func ValidatePromo(w http.ResponseWriter, r *http.Request, service service) {
	req := validateRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.New(apperr.KindValidation, "invalid request body"))

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, apperr.Newf(apperr.KindValidation, "invalid request: %s", err))

		return
	}

	promo, err := service.Validate(r.Context(), req.Code, req.OrderCents)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, validateResponse{
		Valid:         true,
		Code:          promo.Code,
		DiscountCents: promo.Discount(req.OrderCents),
	})
}

type createPromoRequest struct {
	Code          string    `json:"code"          validate:"required"`
	DiscountValue int64     `json:"discountValue" validate:"gt=0"`
	Kind          string    `json:"kind"          validate:"required,oneof=percentage fixed"`
	MaxUsages     int       `json:"maxUsages"     validate:"gt=0"`
	ExpiryDate    time.Time `json:"expiryDate"    validate:"required"`
	MinOrderCents int64     `json:"minOrderCents" validate:"gte=0"`
	Description   string    `json:"description"`
}

// CreatePromo registers a new promo code.
func CreatePromo(w http.ResponseWriter, r *http.Request, service service) {
	req := createPromoRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.New(apperr.KindValidation, "invalid request body"))

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, apperr.Newf(apperr.KindValidation, "invalid request: %s", err))

		return
	}

	created, err := service.Create(r.Context(), promocode.PromoCode{
		Code:          req.Code,
		DiscountValue: req.DiscountValue,
		Kind:          promocode.Kind(req.Kind),
		MaxUsages:     req.MaxUsages,
		ExpiryDate:    req.ExpiryDate,
		MinOrderCents: req.MinOrderCents,
		Description:   req.Description,
	})
	if err != nil {
		slog.Error("Error creating promo code", "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

// ListPromos returns all promo codes.
func ListPromos(w http.ResponseWriter, r *http.Request, service service) {
	promos, err := service.List(r.Context())
	if err != nil {
		slog.Error("Error listing promo codes", "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, promos)
}

// DeletePromo removes a promo code.
func DeletePromo(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperr.New(apperr.KindValidation, "promo code id must be an integer"))

		return
	}

	if err := service.Delete(r.Context(), id); err != nil {
		slog.Error("Error deleting promo code", "promo_id", id, "error", err)
		respond.Error(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
