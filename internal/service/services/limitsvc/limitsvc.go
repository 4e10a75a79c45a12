package limitsvc

import (
	"context"
	"log/slog"

	"github.com/kasikotas/order/internal/dal/interfaces/ilimitrepo"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/orderlimit"
	"go.opentelemetry.io/otel"
)

// OrderLimitService manages the global admission cap.
type OrderLimitService struct {
	repo ilimitrepo.PostgresRepository
}

// option is a function that configures the OrderLimitService.
type option func(*OrderLimitService)

// MustNewOrderLimitService creates a new OrderLimitService.
func MustNewOrderLimitService(opts ...option) *OrderLimitService {
	s := &OrderLimitService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.repo == nil {
		panic("limitsvc: order limit repository required")
	}

	return s
}

// WithOrderLimitRepository sets the order limit repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderLimitRepository(repo ilimitrepo.PostgresRepository) option {
	return func(s *OrderLimitService) {
		s.repo = repo
	}
}

// Get returns the configured limit, or apperr.ErrLimitNotSet when none exists.
func (s *OrderLimitService) Get(ctx context.Context) (*orderlimit.OrderLimit, error) {
	return s.repo.Get(ctx)
}

// Set replaces the global cap. Zero closes the shop; negative values are
// rejected.
func (s *OrderLimitService) Set(ctx context.Context, value int, scope orderlimit.Scope) (orderlimit.OrderLimit, error) {
	ctx, span := otel.Tracer("limitsvc").Start(ctx, "Set")
	defer span.End()

	if value < 0 {
		return orderlimit.OrderLimit{}, apperr.New(apperr.KindValidation, "limit value must not be negative")
	}
	if _, err := orderlimit.ParseScope(string(scope)); err != nil {
		return orderlimit.OrderLimit{}, err
	}

	limit, err := s.repo.Upsert(ctx, orderlimit.OrderLimit{LimitValue: value, Scope: scope})
	if err != nil {
		return orderlimit.OrderLimit{}, err
	}

	slog.Info("Order limit updated", "value", limit.LimitValue, "scope", limit.Scope)

	return limit, nil
}
