package workflow

import (
	"context"

	"restaurant-pos/internal/models"
)

// OrderStore persists order rows
type OrderStore interface {
	Create(ctx context.Context, customerID, total int64, note string) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error
	Get(ctx context.Context, orderID int64) (*models.Order, error)
}

// LineResult is the per-line outcome of a batch insert
type LineResult struct {
	Line models.CartLine
	Err  error
}

// OrderLineStore persists order line items
type OrderLineStore interface {
	// CreateBatch inserts each line best-effort and reports every outcome;
	// one line failing must not abort the remaining lines.
	CreateBatch(ctx context.Context, orderID int64, lines []models.CartLine) []LineResult
	ListByOrder(ctx context.Context, orderID int64) ([]models.OrderLine, error)
}

// PaymentStore persists settlement records
type PaymentStore interface {
	Create(ctx context.Context, orderID, cashierID int64, method models.PaymentMethod, amount int64, status models.PaymentStatus) (int64, error)
	GetByOrder(ctx context.Context, orderID int64) (*models.PaymentRecord, error)
}

// ReceiptStore persists receipts
type ReceiptStore interface {
	Create(ctx context.Context, number string, orderID, amount int64, method models.PaymentMethod, status models.PaymentStatus) (int64, error)
	GetByOrder(ctx context.Context, orderID int64) (*models.Receipt, error)
}

// CancellationStore persists cancellation audit records
type CancellationStore interface {
	Create(ctx context.Context, orderID int64, reason string) error
	Exists(ctx context.Context, orderID int64) (bool, error)
}

// EventPublisher fans out status changes and receipt print jobs. Publishing
// is best-effort: failures are logged but never fail the workflow.
type EventPublisher interface {
	PublishStatusUpdate(ctx context.Context, msg *models.StatusUpdateMessage) error
	PublishReceiptPrint(ctx context.Context, msg *models.ReceiptPrintMessage) error
}
