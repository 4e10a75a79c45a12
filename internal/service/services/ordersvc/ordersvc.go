package ordersvc

import (
	"context"

	"github.com/kasikotas/order/internal/dal/interfaces/ilimitrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iorderrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/ioutboxrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iproductrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/ipromorepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iuserrepo"
	"github.com/kasikotas/order/internal/dal/postgres"
	"github.com/kasikotas/order/internal/dal/uow"
	"github.com/kasikotas/order/internal/service/models/delivery"
)

// OrderService is the order placement and fulfillment engine.
type OrderService struct {
	pgClient   *postgres.Client
	outboxRepo ioutboxrepo.Repository
	newUOW     func() unitOfWork
	window     delivery.Window
}

// unitOfWork is the transactional boundary the workflows run inside. All
// repositories returned after Begin share one transaction.
type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context)

	OrderRepository() iorderrepo.PostgresRepository
	OrderItemRepository() iorderitemrepo.PostgresRepository
	ProductRepository() iproductrepo.PostgresRepository
	PromoCodeRepository() ipromorepo.PostgresRepository
	OrderLimitRepository() ilimitrepo.PostgresRepository
	UserRepository() iuserrepo.PostgresRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		window: delivery.DefaultWindow,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		if s.pgClient == nil {
			panic("ordersvc: postgres client or unit of work factory required")
		}
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithOutboxRepository sets the notification outbox. When unset, placement
// skips notification dispatch entirely.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOutboxRepository(repo ioutboxrepo.Repository) option {
	return func(s *OrderService) {
		s.outboxRepo = repo
	}
}

// WithUnitOfWorkFactory overrides the transaction factory, used by tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// WithDeliveryWindow overrides the scheduled-delivery business hours.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDeliveryWindow(w delivery.Window) option {
	return func(s *OrderService) {
		s.window = w
	}
}
