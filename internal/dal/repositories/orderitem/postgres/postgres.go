package postgresrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/kasikotas/order/internal/dal/postgres"
	"github.com/kasikotas/order/internal/service/models/orderitem"
)

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	Id                 int64     `db:"id"`
	OrderId            int64     `db:"order_id"`
	ProductId          int64     `db:"product_id"`
	ProductName        string    `db:"product_name"`
	Quantity           int       `db:"quantity"`
	UnitPriceCents     int64     `db:"unit_price_cents"`
	CustomizationNotes string    `db:"customization_notes"`
	SelectedExtras     []byte    `db:"selected_extras"`
	SelectedSauces     []byte    `db:"selected_sauces"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() (*orderitem.OrderItem, error) {
	m := &orderitem.OrderItem{
		ID:                 oi.Id,
		OrderID:            oi.OrderId,
		ProductID:          oi.ProductId,
		ProductName:        oi.ProductName,
		Quantity:           oi.Quantity,
		UnitPriceCents:     oi.UnitPriceCents,
		CustomizationNotes: oi.CustomizationNotes,
		CreatedAt:          oi.CreatedAt,
		UpdatedAt:          oi.UpdatedAt,
	}
	if len(oi.SelectedExtras) > 0 {
		if err := json.Unmarshal(oi.SelectedExtras, &m.SelectedExtras); err != nil {
			return nil, fmt.Errorf("failed to unmarshal selected extras: %w", err)
		}
	}
	if len(oi.SelectedSauces) > 0 {
		if err := json.Unmarshal(oi.SelectedSauces, &m.SelectedSauces); err != nil {
			return nil, fmt.Errorf("failed to unmarshal selected sauces: %w", err)
		}
	}

	return m, nil
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.Conn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts multiple order items in one statement and returns them
// with their generated IDs. Uses unnest over parallel arrays.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	sql := `
		INSERT INTO order_items (
			order_id,
			product_id,
			product_name,
			quantity,
			unit_price_cents,
			customization_notes,
			selected_extras,
			selected_sauces,
			created_at,
			updated_at
		)
		SELECT
			order_id,
			product_id,
			product_name,
			quantity,
			unit_price_cents,
			customization_notes,
			selected_extras,
			selected_sauces,
			created_at,
			updated_at
		FROM unnest(
			$1::bigint[], $2::bigint[], $3::text[], $4::int[], $5::bigint[],
			$6::text[], $7::jsonb[], $8::jsonb[], $9::timestamptz[], $10::timestamptz[]
		)
		AS t(order_id, product_id, product_name, quantity, unit_price_cents,
		     customization_notes, selected_extras, selected_sauces, created_at, updated_at)
		RETURNING id, order_id, product_id, product_name, quantity, unit_price_cents,
		          customization_notes, selected_extras, selected_sauces,
		          created_at, updated_at
	`

	orderIds := make([]int64, len(orderItems))
	productIds := make([]int64, len(orderItems))
	productNames := make([]string, len(orderItems))
	quantities := make([]int32, len(orderItems))
	unitPrices := make([]int64, len(orderItems))
	notes := make([]string, len(orderItems))
	extras := make([][]byte, len(orderItems))
	sauces := make([][]byte, len(orderItems))
	createdAts := make([]time.Time, len(orderItems))
	updatedAts := make([]time.Time, len(orderItems))

	for i, oi := range orderItems {
		orderIds[i] = oi.OrderID
		productIds[i] = oi.ProductID
		productNames[i] = oi.ProductName
		quantities[i] = int32(oi.Quantity)
		unitPrices[i] = oi.UnitPriceCents
		notes[i] = oi.CustomizationNotes
		createdAts[i] = oi.CreatedAt
		updatedAts[i] = oi.UpdatedAt

		extrasJSON, err := json.Marshal(oi.SelectedExtras)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal selected extras: %w", err)
		}
		extras[i] = extrasJSON

		saucesJSON, err := json.Marshal(oi.SelectedSauces)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal selected sauces: %w", err)
		}
		sauces[i] = saucesJSON
	}

	rows, err := r.conn.Query(ctx, sql,
		orderIds,
		productIds,
		productNames,
		quantities,
		unitPrices,
		notes,
		extras,
		sauces,
		createdAts,
		updatedAts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		var createdAt, updatedAt pgtype.Timestamptz

		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.ProductName,
			&dal.Quantity,
			&dal.UnitPriceCents,
			&dal.CustomizationNotes,
			&dal.SelectedExtras,
			&dal.SelectedSauces,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		dal.CreatedAt = createdAt.Time
		dal.UpdatedAt = updatedAt.Time

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order item dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// QueryByOrderIds retrieves all items belonging to the given orders.
func (r *PostgresOrderItemRepository) QueryByOrderIds(
	ctx context.Context,
	orderIds []int64,
) ([]orderitem.OrderItem, error) {
	if len(orderIds) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	sql, args, err := r.sb.
		Select(
			"id",
			"order_id",
			"product_id",
			"product_name",
			"quantity",
			"unit_price_cents",
			"customization_notes",
			"selected_extras",
			"selected_sauces",
			"created_at",
			"updated_at",
		).
		From("order_items").
		Where(sq.Eq{"order_id": orderIds}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		var createdAt, updatedAt pgtype.Timestamptz

		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.ProductName,
			&dal.Quantity,
			&dal.UnitPriceCents,
			&dal.CustomizationNotes,
			&dal.SelectedExtras,
			&dal.SelectedSauces,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		dal.CreatedAt = createdAt.Time
		dal.UpdatedAt = updatedAt.Time

		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order item dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
