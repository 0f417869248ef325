package store

import (
	"context"
	"fmt"

	"restaurant-pos/internal/database"
)

// CancellationStore persists cancellation audit records in PostgreSQL.
// order_id is the primary key, so the table itself enforces at most one
// record per order.
type CancellationStore struct {
	db *database.DB
}

// NewCancellationStore creates a cancellation store backed by the shared pool
func NewCancellationStore(db *database.DB) *CancellationStore {
	return &CancellationStore{db: db}
}

// Create inserts the audit record for a cancelled order
func (s *CancellationStore) Create(ctx context.Context, orderID int64, reason string) error {
	if err := s.db.Exec(ctx, database.InsertCancellationSQL, orderID, reason); err != nil {
		return fmt.Errorf("insert cancellation for order %d: %w", orderID, err)
	}
	return nil
}

// Exists reports whether an audit record already exists for the order
func (s *CancellationStore) Exists(ctx context.Context, orderID int64) (bool, error) {
	var count int
	err := s.db.QueryRow(ctx, database.CancellationExistsSQL, orderID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check cancellation for order %d: %w", orderID, err)
	}
	return count > 0, nil
}
