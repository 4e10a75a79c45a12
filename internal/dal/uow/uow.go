package uow

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/kasikotas/order/internal/dal/interfaces/ilimitrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iorderitemrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iorderrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iproductrepo"
	"github.com/kasikotas/order/internal/dal/interfaces/ipromorepo"
	"github.com/kasikotas/order/internal/dal/interfaces/iuserrepo"
	"github.com/kasikotas/order/internal/dal/postgres"
	limitrepo "github.com/kasikotas/order/internal/dal/repositories/orderlimit/postgres"
	orderrepo "github.com/kasikotas/order/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/kasikotas/order/internal/dal/repositories/orderitem/postgres"
	productrepo "github.com/kasikotas/order/internal/dal/repositories/product/postgres"
	promorepo "github.com/kasikotas/order/internal/dal/repositories/promocode/postgres"
	userrepo "github.com/kasikotas/order/internal/dal/repositories/user/postgres"
)

// unitOfWork carries a set of repositories that share one connection. After
// Begin they are all rebound to the same pgx transaction, so a rollback
// unwinds every write made through any of them.
type unitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	orderRepo     iorderrepo.PostgresRepository
	orderItemRepo iorderitemrepo.PostgresRepository
	productRepo   iproductrepo.PostgresRepository
	promoRepo     ipromorepo.PostgresRepository
	limitRepo     ilimitrepo.PostgresRepository
	userRepo      iuserrepo.PostgresRepository
}

// NewUnitOfWork creates a unit of work bound to the pool. Until Begin is
// called, repositories run in auto-commit mode.
func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	u := &unitOfWork{client: client}
	u.bind(client.Pool())

	return u
}

func (u *unitOfWork) bind(conn postgres.Conn) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.productRepo = productrepo.NewPostgresProductRepository(conn)
	u.promoRepo = promorepo.NewPostgresPromoCodeRepository(conn)
	u.limitRepo = limitrepo.NewPostgresOrderLimitRepository(conn)
	u.userRepo = userrepo.NewPostgresUserRepository(conn)
}

// Begin opens a transaction and rebinds all repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// Commit commits the transaction, if one was started.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

// Rollback aborts the transaction. Safe to defer after Begin: rolling back a
// committed transaction is a no-op error that is intentionally swallowed.
func (u *unitOfWork) Rollback(ctx context.Context) {
	if u.tx == nil {
		return
	}
	_ = u.tx.Rollback(ctx)
}

func (u *unitOfWork) OrderRepository() iorderrepo.PostgresRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.PostgresRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) ProductRepository() iproductrepo.PostgresRepository {
	return u.productRepo
}

func (u *unitOfWork) PromoCodeRepository() ipromorepo.PostgresRepository {
	return u.promoRepo
}

func (u *unitOfWork) OrderLimitRepository() ilimitrepo.PostgresRepository {
	return u.limitRepo
}

func (u *unitOfWork) UserRepository() iuserrepo.PostgresRepository {
	return u.userRepo
}
