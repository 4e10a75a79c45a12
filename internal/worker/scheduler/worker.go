package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// service represents the service layer interface.
type service interface {
	PromoteScheduledOrders(ctx context.Context, lookahead time.Duration) (int, error)
}

// Worker periodically promotes pending scheduled orders whose delivery time
// is approaching into active preparation.
type Worker struct {
	service      service
	pollInterval time.Duration
	lookahead    time.Duration
	stopCh       chan struct{}
}

// NewWorker creates a new delivery scheduler worker.
func NewWorker(svc service) *Worker {
	pollIntervalSeconds := viper.GetInt("scheduler.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 300
	}

	lookaheadMinutes := viper.GetInt("scheduler.lookahead_minutes")
	if lookaheadMinutes == 0 {
		lookaheadMinutes = 30
	}

	return &Worker{
		service:      svc,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		lookahead:    time.Duration(lookaheadMinutes) * time.Minute,
		stopCh:       make(chan struct{}),
	}
}

// Start begins scanning for due scheduled orders.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Delivery scheduler started", "poll_interval", w.pollInterval, "lookahead", w.lookahead)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Delivery scheduler shutting down")

			return
		case <-w.stopCh:
			slog.Info("Delivery scheduler stopped")

			return
		case <-ticker.C:
			w.promoteDueOrders(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

func (w *Worker) promoteDueOrders(ctx context.Context) {
	count, err := w.service.PromoteScheduledOrders(ctx, w.lookahead)
	if err != nil {
		slog.Error("Failed to promote scheduled orders", "error", err)

		return
	}

	if count > 0 {
		slog.Info("Promoted scheduled orders into preparation", "count", count)
	}
}
