package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/kasikotas/order/internal/dal/postgres"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/promocode"
)

// PromoCodeDal represents the promo code data access layer model.
type PromoCodeDal struct {
	Id            int64     `db:"id"`
	Code          string    `db:"code"`
	DiscountValue int64     `db:"discount_value"`
	Kind          string    `db:"kind"`
	MaxUsages     int       `db:"max_usages"`
	UsageCount    int       `db:"usage_count"`
	ExpiryDate    time.Time `db:"expiry_date"`
	MinOrderCents int64     `db:"min_order_cents"`
	Description   string    `db:"description"`
	Version       int64     `db:"version"`
}

// ToModel converts PromoCodeDal to the service layer PromoCode model.
func (p *PromoCodeDal) ToModel() *promocode.PromoCode {
	return &promocode.PromoCode{
		ID:            p.Id,
		Code:          p.Code,
		DiscountValue: p.DiscountValue,
		Kind:          promocode.Kind(p.Kind),
		MaxUsages:     p.MaxUsages,
		UsageCount:    p.UsageCount,
		ExpiryDate:    p.ExpiryDate,
		MinOrderCents: p.MinOrderCents,
		Description:   p.Description,
		Version:       p.Version,
	}
}

// PostgresPromoCodeRepository represents a Postgres promo code repository.
type PostgresPromoCodeRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresPromoCodeRepository creates a new Postgres promo code repository.
func NewPostgresPromoCodeRepository(conn postgres.Conn) *PostgresPromoCodeRepository {
	return &PostgresPromoCodeRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var promoColumns = []string{
	"id",
	"code",
	"discount_value",
	"kind",
	"max_usages",
	"usage_count",
	"expiry_date",
	"min_order_cents",
	"description",
	"version",
}

func scanPromo(row pgx.Row) (*PromoCodeDal, error) {
	var dal PromoCodeDal
	err := row.Scan(
		&dal.Id,
		&dal.Code,
		&dal.DiscountValue,
		&dal.Kind,
		&dal.MaxUsages,
		&dal.UsageCount,
		&dal.ExpiryDate,
		&dal.MinOrderCents,
		&dal.Description,
		&dal.Version,
	)
	if err != nil {
		return nil, err
	}

	return &dal, nil
}

// GetByCode retrieves a promo code by its unique code string.
func (r *PostgresPromoCodeRepository) GetByCode(ctx context.Context, code string) (*promocode.PromoCode, error) {
	sql, args, err := r.sb.Select(promoColumns...).
		From("promo_codes").
		Where(sq.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	dal, err := scanPromo(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to query promo code: %w", err)
	}

	return dal.ToModel(), nil
}

// IncrementUsage advances the usage counter with a single conditional update.
// The WHERE clause is the whole point: two concurrent redemptions of the last
// usage slot cannot both match it.
func (r *PostgresPromoCodeRepository) IncrementUsage(ctx context.Context, code string) (*promocode.PromoCode, error) {
	sql := `
		UPDATE promo_codes
		SET usage_count = usage_count + 1, version = version + 1
		WHERE code = $1 AND usage_count < max_usages
		RETURNING id, code, discount_value, kind, max_usages, usage_count,
		          expiry_date, min_order_cents, description, version
	`

	dal, err := scanPromo(r.conn.QueryRow(ctx, sql, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Re-check: distinguish a missing code from an exhausted one.
			if _, getErr := r.GetByCode(ctx, code); getErr != nil {
				return nil, getErr
			}
			return nil, apperr.ErrPromoLimitReached
		}
		return nil, fmt.Errorf("failed to increment promo code usage: %w", err)
	}

	return dal.ToModel(), nil
}

// Insert persists a new promo code.
func (r *PostgresPromoCodeRepository) Insert(ctx context.Context, p promocode.PromoCode) (promocode.PromoCode, error) {
	sql, args, err := r.sb.Insert("promo_codes").
		Columns(
			"code",
			"discount_value",
			"kind",
			"max_usages",
			"usage_count",
			"expiry_date",
			"min_order_cents",
			"description",
			"version",
		).
		Values(
			p.Code,
			p.DiscountValue,
			string(p.Kind),
			p.MaxUsages,
			p.UsageCount,
			p.ExpiryDate,
			p.MinOrderCents,
			p.Description,
			p.Version,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return promocode.PromoCode{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&p.ID); err != nil {
		return promocode.PromoCode{}, fmt.Errorf("failed to insert promo code: %w", err)
	}

	return p, nil
}

// List retrieves all promo codes.
func (r *PostgresPromoCodeRepository) List(ctx context.Context) ([]promocode.PromoCode, error) {
	sql, args, err := r.sb.Select(promoColumns...).From("promo_codes").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query promo codes: %w", err)
	}
	defer rows.Close()

	var result []promocode.PromoCode
	for rows.Next() {
		dal, err := scanPromo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promo code: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Delete removes a promo code by ID.
func (r *PostgresPromoCodeRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("promo_codes").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete promo code: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrPromoNotFound
	}

	return nil
}
