package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kasikotas/order/internal/dal/postgres"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/orderlimit"
)

// PostgresOrderLimitRepository manages the single order_limit row. The table
// holds at most one record, pinned to id 1.
type PostgresOrderLimitRepository struct {
	conn postgres.Conn
}

// NewPostgresOrderLimitRepository creates a new Postgres order limit repository.
func NewPostgresOrderLimitRepository(conn postgres.Conn) *PostgresOrderLimitRepository {
	return &PostgresOrderLimitRepository{conn: conn}
}

// Get retrieves the configured order limit.
func (r *PostgresOrderLimitRepository) Get(ctx context.Context) (*orderlimit.OrderLimit, error) {
	var l orderlimit.OrderLimit
	err := r.conn.QueryRow(ctx,
		"SELECT id, limit_value, scope FROM order_limit WHERE id = 1",
	).Scan(&l.ID, &l.LimitValue, &l.Scope)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrLimitNotSet
		}
		return nil, fmt.Errorf("failed to query order limit: %w", err)
	}

	return &l, nil
}

// Upsert creates or replaces the singleton limit row.
func (r *PostgresOrderLimitRepository) Upsert(ctx context.Context, limit orderlimit.OrderLimit) (orderlimit.OrderLimit, error) {
	sql := `
		INSERT INTO order_limit (id, limit_value, scope)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET limit_value = $1, scope = $2
		RETURNING id, limit_value, scope
	`

	var l orderlimit.OrderLimit
	err := r.conn.QueryRow(ctx, sql, limit.LimitValue, string(limit.Scope)).
		Scan(&l.ID, &l.LimitValue, &l.Scope)
	if err != nil {
		return orderlimit.OrderLimit{}, fmt.Errorf("failed to upsert order limit: %w", err)
	}

	return l, nil
}
