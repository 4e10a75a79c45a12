package updatestatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/order"
	"github.com/kasikotas/order/internal/transport/http/respond"
)

type service interface {
	UpdateOrderStatus(ctx context.Context, id int64, next order.Status) (order.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an order to a new lifecycle state.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperr.New(apperr.KindValidation, "order id must be an integer"))

		return
	}

	req := updateStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.New(apperr.KindValidation, "invalid request body"))

		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		respond.Error(w, err)

		return
	}

	updated, err := service.UpdateOrderStatus(r.Context(), id, status)
	if err != nil {
		slog.Error("Error updating order status", "order_id", id, "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, updated)
}

// DeleteOrder removes an order, restoring reserved stock for in-flight ones.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperr.New(apperr.KindValidation, "order id must be an integer"))

		return
	}

	if err := service.DeleteOrder(r.Context(), id); err != nil {
		slog.Error("Error deleting order", "order_id", id, "error", err)
		respond.Error(w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
