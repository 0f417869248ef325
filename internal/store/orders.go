// Package store provides the PostgreSQL implementations of the workflow's
// store interfaces. Each method is a single request to the database; the
// workflow treats every call as independently atomic.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"restaurant-pos/internal/database"
	"restaurant-pos/internal/models"
	"restaurant-pos/internal/workflow"
)

// OrderStore persists orders in PostgreSQL
type OrderStore struct {
	db *database.DB
}

// NewOrderStore creates an order store backed by the shared pool
func NewOrderStore(db *database.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Create inserts a pending order row and returns its generated ID
func (s *OrderStore) Create(ctx context.Context, customerID, total int64, note string) (int64, error) {
	var (
		id        int64
		createdAt time.Time
	)
	err := s.db.QueryRow(ctx, database.InsertOrderSQL, customerID, total, note, models.OrderPending).Scan(&id, &createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

// UpdateStatus sets the order's status
func (s *OrderStore) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	tag, err := s.db.Pool.Exec(ctx, database.UpdateOrderStatusSQL, status, orderID)
	if err != nil {
		return fmt.Errorf("update order %d status: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return workflow.ErrOrderNotFound
	}
	return nil
}

// Get loads an order by ID, returning workflow.ErrOrderNotFound when absent
func (s *OrderStore) Get(ctx context.Context, orderID int64) (*models.Order, error) {
	var order models.Order
	err := s.db.QueryRow(ctx, database.GetOrderSQL, orderID).Scan(
		&order.ID, &order.CustomerID, &order.CreatedAt, &order.Total, &order.Note, &order.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}
	return &order, nil
}

// OrderLineStore persists order lines in PostgreSQL
type OrderLineStore struct {
	db *database.DB
}

// NewOrderLineStore creates an order line store backed by the shared pool
func NewOrderLineStore(db *database.DB) *OrderLineStore {
	return &OrderLineStore{db: db}
}

// CreateBatch inserts the lines one by one in the given order. A failed
// insert is recorded in its result and does not stop the remaining lines.
func (s *OrderLineStore) CreateBatch(ctx context.Context, orderID int64, lines []models.CartLine) []workflow.LineResult {
	results := make([]workflow.LineResult, 0, len(lines))
	for _, line := range lines {
		err := s.db.Exec(ctx, database.InsertOrderLineSQL, orderID, line.MenuItemID, line.Name, line.Quantity, line.UnitPrice)
		if err != nil {
			err = fmt.Errorf("insert line for item %d: %w", line.MenuItemID, err)
		}
		results = append(results, workflow.LineResult{Line: line, Err: err})
	}
	return results
}

// ListByOrder returns an order's lines in insertion order
func (s *OrderLineStore) ListByOrder(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	rows, err := s.db.Query(ctx, database.GetOrderLinesSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("list lines for order %d: %w", orderID, err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.MenuItemID, &line.Name, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
