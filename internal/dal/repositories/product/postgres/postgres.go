package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/kasikotas/order/internal/dal/postgres"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/product"
)

// PostgresProductRepository is the inventory ledger backed by the products
// table. Stock movements are single conditional statements so two concurrent
// reservations can never both win the last unit.
type PostgresProductRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.Conn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetByID retrieves a product by its ID.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	sql, args, err := r.sb.
		Select("id", "name", "price_cents", "stock", "image_url", "created_at", "updated_at").
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var p product.Product
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&p.ID,
		&p.Name,
		&p.PriceCents,
		&p.Stock,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Reserve decrements stock by quantity only while enough stock remains.
// Zero rows affected means another order got there first or stock is simply
// too low; either way nothing was mutated.
func (r *PostgresProductRepository) Reserve(ctx context.Context, id int64, quantity int) (int, error) {
	sql := `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
		RETURNING stock
	`

	var remaining int
	err := r.conn.QueryRow(ctx, sql, id, quantity).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.ErrInsufficientStock
		}
		return 0, fmt.Errorf("failed to reserve stock: %w", err)
	}

	return remaining, nil
}

// Release returns previously reserved stock, used on order cancellation or
// deletion.
func (r *PostgresProductRepository) Release(ctx context.Context, id int64, quantity int) error {
	sql := `
		UPDATE products
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.conn.Exec(ctx, sql, id, quantity)
	if err != nil {
		return fmt.Errorf("failed to release stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrProductNotFound
	}

	return nil
}
