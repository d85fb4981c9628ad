package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-api/internal/apperror"
	"github.com/xenking/storefront-api/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order under a freshly minted UUIDv7 identifier and
// returns it. The line items are serialized to JSON for storage in the JSONB
// column.
func (r *OrderRepository) Create(ctx context.Context, o order.Order) (string, error) {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return "", fmt.Errorf("marshaling order items: %w", err)
	}

	id := uuid.Must(uuid.NewV7()).String()
	_, err = r.pool.Exec(ctx,
		`INSERT INTO orders (id, user_id, items, total, created_at) VALUES ($1, $2, $3, $4, $5)`,
		id, o.UserID, itemsJSON, o.Total, o.CreatedAt,
	)
	if err != nil {
		return "", apperror.Database("Failed to create order", err)
	}
	return id, nil
}

// FindByUser returns one page of the user's orders. UUIDv7 identifiers are
// time-ordered, so ascending identifier order is insertion order.
func (r *OrderRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, items, total, created_at FROM orders
		 WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, apperror.Database("Failed to retrieve orders", err)
	}
	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, apperror.Database("Failed to retrieve orders", err)
	}
	return orders, nil
}

// CountByUser returns the total number of orders placed by the user.
func (r *OrderRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM orders WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, apperror.Database("Failed to count orders", err)
	}
	return count, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o         order.Order
		total     decimal.Decimal
		createdAt time.Time
		itemsJSON []byte
	)
	if err := row.Scan(&o.ID, &o.UserID, &itemsJSON, &total, &createdAt); err != nil {
		return o, err
	}
	o.Total = total
	o.CreatedAt = createdAt

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return o, fmt.Errorf("unmarshaling order items: %w", err)
	}
	return o, nil
}
