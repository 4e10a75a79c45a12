package listorders

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/order"
	"github.com/kasikotas/order/internal/transport/http/respond"
)

type service interface {
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	GetOrderByID(ctx context.Context, id int64) (order.Order, error)
	GetOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error)
	CountOrders(ctx context.Context) (int64, error)
}

type queryOrdersRequest struct {
	Ids     []int64 `schema:"ids"`
	UserIds []int64 `schema:"userIds"`
	Status  string  `schema:"status"`
	Limit   int     `schema:"limit"`
	Offset  int     `schema:"offset"`
}

func (q *queryOrdersRequest) toModel() (*order.QueryOrdersModel, error) {
	filter := &order.QueryOrdersModel{
		Ids:     q.Ids,
		UserIds: q.UserIds,
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
	if q.Status != "" {
		status, err := order.ParseStatus(q.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	return filter, nil
}

// ListOrders returns orders matching the query parameters.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	query := &queryOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		slog.Error("Error decoding list orders query", "error", err)
		respond.Error(w, apperr.New(apperr.KindValidation, "invalid query parameters"))

		return
	}

	filter, err := query.toModel()
	if err != nil {
		respond.Error(w, err)

		return
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		slog.Error("Error getting orders", "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, orders)
}

// GetOrder returns a single order by its path ID.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.Error(w, apperr.New(apperr.KindValidation, "order id must be an integer"))

		return
	}

	o, err := service.GetOrderByID(r.Context(), id)
	if err != nil {
		slog.Error("Error getting order", "order_id", id, "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, o)
}

// ListOrdersByUser returns a customer's order history.
func ListOrdersByUser(w http.ResponseWriter, r *http.Request, service service) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		respond.Error(w, apperr.New(apperr.KindValidation, "user id must be an integer"))

		return
	}

	orders, err := service.GetOrdersByUser(r.Context(), userID)
	if err != nil {
		slog.Error("Error getting user orders", "user_id", userID, "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, orders)
}

// CountOrders returns the total number of orders placed.
func CountOrders(w http.ResponseWriter, r *http.Request, service service) {
	count, err := service.CountOrders(r.Context())
	if err != nil {
		slog.Error("Error counting orders", "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, map[string]int64{"count": count})
}
