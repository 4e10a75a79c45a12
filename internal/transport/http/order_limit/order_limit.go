package orderlimithandler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/orderlimit"
	"github.com/kasikotas/order/internal/transport/http/respond"
)

type service interface {
	Get(ctx context.Context) (*orderlimit.OrderLimit, error)
	Set(ctx context.Context, value int, scope orderlimit.Scope) (orderlimit.OrderLimit, error)
}

type setLimitRequest struct {
	Limit int    `json:"limit" validate:"gte=0"`
	Scope string `json:"scope" validate:"required,oneof=total_orders units_per_day"`
}

// GetLimit returns the configured admission cap.
func GetLimit(w http.ResponseWriter, r *http.Request, service service) {
	limit, err := service.Get(r.Context())
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, limit)
}

// SetLimit replaces the admission cap.
func SetLimit(w http.ResponseWriter, r *http.Request, service service) {
	req := setLimitRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.New(apperr.KindValidation, "invalid request body"))

		return
	}

	if err := validator.New().Struct(&req); err != nil {
		respond.Error(w, apperr.Newf(apperr.KindValidation, "invalid request: %s", err))

		return
	}

	limit, err := service.Set(r.Context(), req.Limit, orderlimit.Scope(req.Scope))
	if err != nil {
		slog.Error("Error setting order limit", "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, limit)
}
