// Package workflow drives an order from cart snapshot to receipt-issued or
// cancelled. It owns every status transition: the HTTP layer and the
// background workers only react to its results.
package workflow

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"restaurant-pos/internal/logger"
	"restaurant-pos/internal/models"
)

// changedBy is recorded on status notifications produced by this workflow.
const changedBy = "pos-service"

// Stores bundles the persistence collaborators of the workflow
type Stores struct {
	Orders        OrderStore
	Lines         OrderLineStore
	Payments      PaymentStore
	Receipts      ReceiptStore
	Cancellations CancellationStore
}

// Workflow orchestrates the order lifecycle against the backing stores.
// Orders are independent aggregates, so there is no cross-order locking;
// a per-order mutex serializes settlement against concurrent cancellation.
type Workflow struct {
	stores    Stores
	events    EventPublisher
	logger    *logger.Logger
	cashierID int64

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// CheckoutResult is returned by a successful checkout
type CheckoutResult struct {
	OrderID int64 `json:"order_id"`
	Total   int64 `json:"total"`
}

// SettlementResult is returned by a successful payment settlement.
// ReceiptIssued is false when the receipt write failed after the payment
// succeeded; the order is completed regardless.
type SettlementResult struct {
	PaymentID     int64  `json:"payment_id"`
	ReceiptID     int64  `json:"receipt_id,omitempty"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
	ReceiptIssued bool   `json:"receipt_issued"`
}

// CancelResult is returned by a successful cancellation. AuditRecorded is
// false when the order was cancelled but the audit record write failed.
type CancelResult struct {
	OrderID       int64 `json:"order_id"`
	AuditRecorded bool  `json:"audit_recorded"`
}

// OrderDetails is the read model for a persisted order
type OrderDetails struct {
	Order   *models.Order         `json:"order"`
	Lines   []models.OrderLine    `json:"lines"`
	Payment *models.PaymentRecord `json:"payment,omitempty"`
	Receipt *models.Receipt       `json:"receipt,omitempty"`
}

// New creates a workflow. events may be nil when no broker is configured.
func New(stores Stores, events EventPublisher, log *logger.Logger, cashierID int64) *Workflow {
	return &Workflow{
		stores:    stores,
		events:    events,
		logger:    log,
		cashierID: cashierID,
		locks:     make(map[int64]*sync.Mutex),
	}
}

// Checkout persists the order intent as an order row plus its lines.
// On full success the order is pending and awaiting payment. Line inserts
// are best-effort: a PartialPersistError reports the order ID and the failed
// lines so the caller can cancel or accept the degraded order.
func (w *Workflow) Checkout(ctx context.Context, intent *OrderIntent, customerID int64, requestID string) (*CheckoutResult, error) {
	orderID, err := w.stores.Orders.Create(ctx, customerID, intent.Total(), intent.Note())
	if err != nil {
		w.logger.Error("order_persist_failed", "Failed to create order row", requestID, err, map[string]interface{}{
			"customer_id": customerID,
			"total":       intent.Total(),
		})
		return nil, &OrderPersistError{Err: err}
	}

	var failed []FailedLine
	for _, result := range w.stores.Lines.CreateBatch(ctx, orderID, intent.Lines()) {
		if result.Err != nil {
			failed = append(failed, FailedLine{Line: result.Line, Err: result.Err})
		}
	}

	if len(failed) > 0 {
		w.logger.Error("order_lines_partial_failure", "Some order lines failed to persist", requestID, failed[0].Err, map[string]interface{}{
			"order_id":     orderID,
			"failed_lines": len(failed),
			"total_lines":  len(intent.Lines()),
		})
		return nil, &PartialPersistError{OrderID: orderID, Failed: failed}
	}

	w.logger.Info("order_confirmed", "Order persisted and awaiting payment", requestID, map[string]interface{}{
		"order_id": orderID,
		"total":    intent.Total(),
		"lines":    len(intent.Lines()),
	})

	return &CheckoutResult{OrderID: orderID, Total: intent.Total()}, nil
}

// ChoosePayment settles a pending order with the chosen method. Cash and
// QRIS are both recorded as succeeded on invocation: the external act
// (cash handed over, scan confirmed) happens before this call. The payment
// record is created before the status flips to completed, so a completed
// order always has a recorded payment. lines is the checkout-time snapshot,
// used only for receipt rendering.
func (w *Workflow) ChoosePayment(ctx context.Context, orderID int64, method models.PaymentMethod, lines []models.CartLine, requestID string) (*SettlementResult, error) {
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	unlock := w.lockOrder(orderID)
	defer unlock()

	order, err := w.stores.Orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			w.forgetLock(orderID)
		}
		return nil, err
	}
	if !CanTransition(stateOf(order.Status), StateCompleted) {
		w.forgetLock(orderID)
		return nil, &AlreadyTerminalError{OrderID: orderID, Status: order.Status}
	}

	paymentID, err := w.stores.Payments.Create(ctx, orderID, w.cashierID, method, order.Total, models.PaymentSucceeded)
	if err != nil {
		w.logger.Error("payment_persist_failed", "Failed to create payment record", requestID, err, map[string]interface{}{
			"order_id": orderID,
			"method":   string(method),
		})
		return nil, &PaymentPersistError{OrderID: orderID, Err: err}
	}

	if err := w.stores.Orders.UpdateStatus(ctx, orderID, models.OrderCompleted); err != nil {
		w.logger.Error("order_status_inconsistent", "Payment recorded but status update failed", requestID, err, map[string]interface{}{
			"order_id":   orderID,
			"payment_id": paymentID,
		})
		return nil, &InconsistentStateError{OrderID: orderID, PaymentID: paymentID, Err: err}
	}
	w.forgetLock(orderID)

	result := &SettlementResult{PaymentID: paymentID}

	number := newReceiptNumber()
	receiptID, err := w.stores.Receipts.Create(ctx, number, orderID, order.Total, method, models.PaymentSucceeded)
	if err != nil {
		// The receipt is a derived artifact, not a settlement fact, so its
		// failure does not undo the payment.
		w.logger.Warn("receipt_persist_failed", "Payment settled but receipt could not be created", requestID, map[string]interface{}{
			"order_id":   orderID,
			"payment_id": paymentID,
		})
	} else {
		result.ReceiptID = receiptID
		result.ReceiptNumber = number
		result.ReceiptIssued = true
		w.publishReceiptPrint(ctx, number, order, method, lines, requestID)
	}

	w.publishStatusUpdate(ctx, orderID, order.Status, models.OrderCompleted, "", requestID)

	w.logger.Info("payment_settled", "Order completed", requestID, map[string]interface{}{
		"order_id":       orderID,
		"payment_id":     paymentID,
		"method":         string(method),
		"amount":         order.Total,
		"receipt_issued": result.ReceiptIssued,
	})

	return result, nil
}

// Cancel moves a persisted, non-terminal order to cancelled and records the
// reason at most once. A second cancellation returns AlreadyTerminalError
// without writing anything. Draft cancellation (no order row yet) is purely
// local and never reaches this method.
func (w *Workflow) Cancel(ctx context.Context, orderID int64, reason, requestID string) (*CancelResult, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrEmptyReason
	}

	unlock := w.lockOrder(orderID)
	defer unlock()

	order, err := w.stores.Orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			w.forgetLock(orderID)
		}
		return nil, err
	}
	if !CanTransition(stateOf(order.Status), StateCancelled) {
		w.forgetLock(orderID)
		return nil, &AlreadyTerminalError{OrderID: orderID, Status: order.Status}
	}

	if err := w.stores.Orders.UpdateStatus(ctx, orderID, models.OrderCancelled); err != nil {
		w.logger.Error("cancel_persist_failed", "Failed to update order status to cancelled", requestID, err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, &CancelPersistError{OrderID: orderID, Err: err}
	}
	w.forgetLock(orderID)

	result := &CancelResult{OrderID: orderID, AuditRecorded: true}

	exists, err := w.stores.Cancellations.Exists(ctx, orderID)
	if err == nil && exists {
		// Audit record already present from an earlier attempt.
		w.publishStatusUpdate(ctx, orderID, order.Status, models.OrderCancelled, reason, requestID)
		return result, nil
	}

	if err := w.stores.Cancellations.Create(ctx, orderID, reason); err != nil {
		// The order stays cancelled without an audit record. Flagged for
		// manual reconciliation rather than retried here.
		result.AuditRecorded = false
		w.logger.Error("cancellation_audit_failed", "Order cancelled but audit record could not be written", requestID, err, map[string]interface{}{
			"order_id": orderID,
			"reason":   reason,
		})
	}

	w.publishStatusUpdate(ctx, orderID, order.Status, models.OrderCancelled, reason, requestID)

	w.logger.Info("order_cancelled", "Order cancelled", requestID, map[string]interface{}{
		"order_id":       orderID,
		"reason":         reason,
		"audit_recorded": result.AuditRecorded,
	})

	return result, nil
}

// Details returns the order with its lines and, when present, its payment
// and receipt.
func (w *Workflow) Details(ctx context.Context, orderID int64) (*OrderDetails, error) {
	order, err := w.stores.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	lines, err := w.stores.Lines.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	details := &OrderDetails{Order: order, Lines: lines}

	if payment, err := w.stores.Payments.GetByOrder(ctx, orderID); err == nil {
		details.Payment = payment
	}
	if receipt, err := w.stores.Receipts.GetByOrder(ctx, orderID); err == nil {
		details.Receipt = receipt
	}

	return details, nil
}

// lockOrder serializes operations on one order. Settlement holds the lock
// while persisting the payment record, so a concurrent cancel blocks and
// then observes the terminal state.
func (w *Workflow) lockOrder(orderID int64) func() {
	w.mu.Lock()
	m, ok := w.locks[orderID]
	if !ok {
		m = &sync.Mutex{}
		w.locks[orderID] = m
	}
	w.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// forgetLock drops the lock entry once an order is terminal or unknown
func (w *Workflow) forgetLock(orderID int64) {
	w.mu.Lock()
	delete(w.locks, orderID)
	w.mu.Unlock()
}

func (w *Workflow) publishStatusUpdate(ctx context.Context, orderID int64, oldStatus, newStatus models.OrderStatus, reason, requestID string) {
	if w.events == nil {
		return
	}
	msg := models.NewStatusUpdateMessage(orderID, oldStatus, newStatus, changedBy, reason)
	if err := w.events.PublishStatusUpdate(ctx, msg); err != nil {
		w.logger.Warn("notification_publish_failed", "Failed to publish status update", requestID, map[string]interface{}{
			"order_id":   orderID,
			"new_status": string(newStatus),
		})
	}
}

func (w *Workflow) publishReceiptPrint(ctx context.Context, number string, order *models.Order, method models.PaymentMethod, lines []models.CartLine, requestID string) {
	if w.events == nil {
		return
	}
	msg := &models.ReceiptPrintMessage{
		ReceiptNumber: number,
		OrderID:       order.ID,
		Amount:        order.Total,
		Method:        method,
		IssuedAt:      time.Now().UTC(),
		Lines:         lines,
	}
	if err := w.events.PublishReceiptPrint(ctx, msg); err != nil {
		w.logger.Warn("print_publish_failed", "Failed to publish receipt print job", requestID, map[string]interface{}{
			"order_id": order.ID,
			"receipt":  number,
		})
	}
}

// newReceiptNumber returns an uppercased 8-character receipt number
func newReceiptNumber() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
