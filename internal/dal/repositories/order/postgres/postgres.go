package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kasikotas/order/internal/dal/postgres"
	"github.com/kasikotas/order/internal/service/models/apperr"
	"github.com/kasikotas/order/internal/service/models/order"
	"github.com/kasikotas/order/internal/service/models/orderitem"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id                    int64              `db:"id"`
	UserId                int64              `db:"user_id"`
	Status                string             `db:"status"`
	ShippingAddress       string             `db:"shipping_address"`
	PaymentMethod         string             `db:"payment_method"`
	DeliveryMethod        string             `db:"delivery_method"`
	ScheduledDeliveryTime pgtype.Timestamptz `db:"scheduled_delivery_time"`
	SubtotalCents         int64              `db:"subtotal_cents"`
	DeliveryFeeCents      int64              `db:"delivery_fee_cents"`
	DiscountCents         int64              `db:"discount_cents"`
	TotalCents            int64              `db:"total_cents"`
	PromoCode             string             `db:"promo_code"`
	Version               int64              `db:"version"`
	CreatedAt             time.Time          `db:"created_at"`
	UpdatedAt             time.Time          `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	m := &order.Order{
		ID:               o.Id,
		UserID:           o.UserId,
		Status:           order.Status(o.Status),
		ShippingAddress:  o.ShippingAddress,
		PaymentMethod:    o.PaymentMethod,
		DeliveryMethod:   order.DeliveryMethod(o.DeliveryMethod),
		SubtotalCents:    o.SubtotalCents,
		DeliveryFeeCents: o.DeliveryFeeCents,
		DiscountCents:    o.DiscountCents,
		TotalCents:       o.TotalCents,
		PromoCode:        o.PromoCode,
		Version:          o.Version,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		OrderItems:       []orderitem.OrderItem{}, // Populated separately
	}
	if o.ScheduledDeliveryTime.Valid {
		t := o.ScheduledDeliveryTime.Time
		m.ScheduledDeliveryTime = &t
	}

	return m
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id",
	"user_id",
	"status",
	"shipping_address",
	"payment_method",
	"delivery_method",
	"scheduled_delivery_time",
	"subtotal_cents",
	"delivery_fee_cents",
	"discount_cents",
	"total_cents",
	"promo_code",
	"version",
	"created_at",
	"updated_at",
}

func scanOrder(row pgx.Row) (*OrderDal, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.UserId,
		&dal.Status,
		&dal.ShippingAddress,
		&dal.PaymentMethod,
		&dal.DeliveryMethod,
		&dal.ScheduledDeliveryTime,
		&dal.SubtotalCents,
		&dal.DeliveryFeeCents,
		&dal.DiscountCents,
		&dal.TotalCents,
		&dal.PromoCode,
		&dal.Version,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &dal, nil
}

// Insert persists a new order and returns it with its generated ID.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	var scheduled pgtype.Timestamptz
	if o.ScheduledDeliveryTime != nil {
		scheduled = pgtype.Timestamptz{Time: *o.ScheduledDeliveryTime, Valid: true}
	}

	sql, args, err := r.sb.Insert("orders").
		Columns(
			"user_id",
			"status",
			"shipping_address",
			"payment_method",
			"delivery_method",
			"scheduled_delivery_time",
			"subtotal_cents",
			"delivery_fee_cents",
			"discount_cents",
			"total_cents",
			"promo_code",
			"version",
			"created_at",
			"updated_at",
		).
		Values(
			o.UserID,
			o.Status.String(),
			o.ShippingAddress,
			o.PaymentMethod,
			string(o.DeliveryMethod),
			scheduled,
			o.SubtotalCents,
			o.DeliveryFeeCents,
			o.DiscountCents,
			o.TotalCents,
			o.PromoCode,
			o.Version,
			o.CreatedAt,
			o.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	query := r.sb.Select(orderColumns...).From("orders")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.UserIds) > 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserIds})
	}
	if filter.Status != "" {
		query = query.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.Scheduled {
		query = query.Where(sq.NotEq{"scheduled_delivery_time": nil})
	}
	if filter.ScheduledFrom != nil {
		query = query.Where(sq.GtOrEq{"scheduled_delivery_time": *filter.ScheduledFrom})
	}
	if filter.ScheduledTo != nil {
		query = query.Where(sq.LtOrEq{"scheduled_delivery_time": *filter.ScheduledTo})
	}
	if filter.CreatedFrom != nil {
		query = query.Where(sq.GtOrEq{"created_at": *filter.CreatedFrom})
	}
	if filter.CreatedTo != nil {
		query = query.Where(sq.Lt{"created_at": *filter.CreatedTo})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		dal, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// SetStatus updates an order's status, bumping the version counter.
func (r *PostgresOrderRepository) SetStatus(ctx context.Context, id int64, status order.Status) error {
	sql, args, err := r.sb.Update("orders").
		Set("status", status.String()).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order. Its items go with it via ON DELETE CASCADE.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("orders").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrOrderNotFound
	}

	return nil
}

// Count returns the total number of orders ever placed.
func (r *PostgresOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.conn.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// SumQuantitiesBetween sums line item quantities across orders created in
// [from, to), feeding the units_per_day admission check.
func (r *PostgresOrderRepository) SumQuantitiesBetween(ctx context.Context, from, to time.Time) (int64, error) {
	sql := `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1 AND o.created_at < $2 AND o.status <> $3
	`

	var sum int64
	err := r.conn.QueryRow(ctx, sql, from, to, order.StatusCancelled.String()).Scan(&sum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to sum order quantities: %w", err)
	}

	return sum, nil
}
