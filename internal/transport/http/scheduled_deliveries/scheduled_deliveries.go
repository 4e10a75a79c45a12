package scheduleddeliveries

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/order"
	"github.com/kasikotas/order/internal/transport/http/respond"
)

type service interface {
	GetOrders(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	GetScheduledOrders(ctx context.Context, from, to *time.Time) ([]order.Order, error)
}

type slotsProvider interface {
	Slots(now time.Time, date time.Time) ([]string, error)
}

// ListScheduled returns every order carrying a scheduled delivery time.
func ListScheduled(w http.ResponseWriter, r *http.Request, service service) {
	orders, err := service.GetScheduledOrders(r.Context(), nil, nil)
	if err != nil {
		slog.Error("Error listing scheduled orders", "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, orders)
}

// ListScheduledRange returns scheduled orders within a time range, optionally
// narrowed to one status. start/end are RFC 3339 query parameters.
func ListScheduledRange(w http.ResponseWriter, r *http.Request, service service) {
	start, err := parseTimeParam(r, "start")
	if err != nil {
		respond.Error(w, err)

		return
	}
	end, err := parseTimeParam(r, "end")
	if err != nil {
		respond.Error(w, err)

		return
	}

	filter := &order.QueryOrdersModel{
		Scheduled:     true,
		ScheduledFrom: start,
		ScheduledTo:   end,
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			respond.Error(w, err)

			return
		}
		filter.Status = status
	}

	orders, err := service.GetOrders(r.Context(), filter)
	if err != nil {
		slog.Error("Error listing scheduled orders in range", "error", err)
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, orders)
}

// ListSlots returns the schedulable delivery slots for a date. The date query
// parameter is YYYY-MM-DD; missing means today.
func ListSlots(w http.ResponseWriter, r *http.Request, window slotsProvider) {
	now := time.Now()
	date := now

	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			respond.Error(w, apperr.New(apperr.KindValidation, "date must be formatted as YYYY-MM-DD"))

			return
		}
		date = parsed
	}

	slots, err := window.Slots(now, date)
	if err != nil {
		respond.Error(w, err)

		return
	}

	respond.JSON(w, http.StatusOK, map[string][]string{"slots": slots})
}

func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperr.Newf(apperr.KindValidation, "%s must be RFC 3339 formatted", name)
	}

	return &t, nil
}
