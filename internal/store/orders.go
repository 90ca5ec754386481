package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"foolivery/internal/models"
)

// orderRow adds the JSONB items column to the order scan target
type orderRow struct {
	models.Order
	ItemsJSON []byte `db:"items"`
}

func (r *orderRow) toOrder() (*models.Order, error) {
	order := r.Order
	if err := json.Unmarshal(r.ItemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}
	return &order, nil
}

// CreateOrder creates a new order
func (s *PostgresStore) CreateOrder(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (user_id, items, total_minor, status, payment_method, address, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()))
		RETURNING id, created_at`

	var createdAt sql.NullTime
	if !order.CreatedAt.IsZero() {
		createdAt = sql.NullTime{Time: order.CreatedAt, Valid: true}
	}

	row := s.db.QueryRowxContext(ctx, query,
		order.UserID, items, order.TotalMinor, order.Status, order.PaymentMethod,
		order.Address, order.Phone, createdAt)
	return row.Scan(&order.ID, &order.CreatedAt)
}

// GetOrderByID retrieves an order by ID
func (s *PostgresStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var row orderRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toOrder()
}

// ListOrdersByUserID retrieves orders for a user, newest first
func (s *PostgresStore) ListOrdersByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	var rows []orderRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC", userID)
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(rows))
	for i := range rows {
		order, err := rows[i].toOrder()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// UpdateOrderStatus updates order status
func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	var row orderRow
	err := s.db.GetContext(ctx, &row,
		"UPDATE orders SET status = $1 WHERE id = $2 RETURNING *", status, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toOrder()
}
