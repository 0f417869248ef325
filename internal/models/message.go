package models

import (
	"fmt"
	"time"
)

// ReceiptPrintMessage is a print job sent to receipt printer workers.
// Lines come from the checkout-time snapshot, not a store re-read.
type ReceiptPrintMessage struct {
	ReceiptNumber string        `json:"receipt_number"`
	OrderID       int64         `json:"order_id"`
	Amount        int64         `json:"amount"`
	Method        PaymentMethod `json:"method"`
	IssuedAt      time.Time     `json:"issued_at"`
	Lines         []CartLine    `json:"lines"`
}

// StatusUpdateMessage is fanned out whenever an order changes status
type StatusUpdateMessage struct {
	OrderID   int64       `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	ChangedBy string      `json:"changed_by"`
	Reason    string      `json:"reason,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewStatusUpdateMessage creates a StatusUpdateMessage for order status changes
func NewStatusUpdateMessage(orderID int64, oldStatus, newStatus OrderStatus, changedBy, reason string) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	}
}

// PrintDuration returns the simulated print time for a payment method.
// QRIS receipts carry the scan confirmation block and take a little longer.
func PrintDuration(method PaymentMethod) time.Duration {
	switch method {
	case PaymentQRIS:
		return 3 * time.Second
	default:
		return 2 * time.Second
	}
}

// PrintRoutingKey generates a routing key for receipt print jobs
func PrintRoutingKey(method PaymentMethod) string {
	return fmt.Sprintf("receipt.print.%s", method)
}
