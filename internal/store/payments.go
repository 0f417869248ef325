package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-pos/internal/database"
	"restaurant-pos/internal/models"
)

// ErrNoRecord is returned when a payment or receipt does not exist for an order
var ErrNoRecord = errors.New("record not found")

// PaymentStore persists payment records in PostgreSQL
type PaymentStore struct {
	db *database.DB
}

// NewPaymentStore creates a payment store backed by the shared pool
func NewPaymentStore(db *database.DB) *PaymentStore {
	return &PaymentStore{db: db}
}

// Create inserts a payment record and returns its generated ID
func (s *PaymentStore) Create(ctx context.Context, orderID, cashierID int64, method models.PaymentMethod, amount int64, status models.PaymentStatus) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, database.InsertPaymentSQL, orderID, cashierID, method, amount, status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert payment for order %d: %w", orderID, err)
	}
	return id, nil
}

// GetByOrder loads the payment record for an order
func (s *PaymentStore) GetByOrder(ctx context.Context, orderID int64) (*models.PaymentRecord, error) {
	var payment models.PaymentRecord
	err := s.db.QueryRow(ctx, database.GetPaymentByOrderSQL, orderID).Scan(
		&payment.ID, &payment.OrderID, &payment.CashierID, &payment.Method,
		&payment.Amount, &payment.Status, &payment.PaidAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("get payment for order %d: %w", orderID, err)
	}
	return &payment, nil
}

// ReceiptStore persists receipts in PostgreSQL
type ReceiptStore struct {
	db *database.DB
}

// NewReceiptStore creates a receipt store backed by the shared pool
func NewReceiptStore(db *database.DB) *ReceiptStore {
	return &ReceiptStore{db: db}
}

// Create inserts a receipt and returns its generated ID
func (s *ReceiptStore) Create(ctx context.Context, number string, orderID, amount int64, method models.PaymentMethod, status models.PaymentStatus) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, database.InsertReceiptSQL, number, orderID, amount, method, status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert receipt for order %d: %w", orderID, err)
	}
	return id, nil
}

// GetByOrder loads the receipt for an order
func (s *ReceiptStore) GetByOrder(ctx context.Context, orderID int64) (*models.Receipt, error) {
	var receipt models.Receipt
	err := s.db.QueryRow(ctx, database.GetReceiptByOrderSQL, orderID).Scan(
		&receipt.ID, &receipt.Number, &receipt.OrderID, &receipt.IssuedAt,
		&receipt.Amount, &receipt.Method, &receipt.Status,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("get receipt for order %d: %w", orderID, err)
	}
	return &receipt, nil
}
