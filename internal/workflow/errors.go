package workflow

import (
	"errors"
	"fmt"

	"restaurant-pos/internal/models"
)

// Validation errors never touch storage and are always recoverable locally.
var (
	// ErrEmptyCart is returned when assembling a cart with no lines.
	ErrEmptyCart = errors.New("cart has no lines")

	// ErrEmptyReason is returned when cancelling without a reason.
	ErrEmptyReason = errors.New("cancellation reason must not be empty")

	// ErrOrderNotFound is returned by order stores for unknown order IDs.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidPaymentMethod is returned for methods other than cash or qris.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// InvalidQuantityError reports a cart line with a non-positive quantity.
// The cart itself never produces one; the assembler re-checks because it is
// the last validation point before persistence.
type InvalidQuantityError struct {
	MenuItemID int64
	Quantity   int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("item %d has invalid quantity %d", e.MenuItemID, e.Quantity)
}

// OrderPersistError reports that the order row could not be created.
// No other side effects have occurred when it is returned.
type OrderPersistError struct {
	Err error
}

func (e *OrderPersistError) Error() string {
	return fmt.Sprintf("failed to persist order: %v", e.Err)
}

func (e *OrderPersistError) Unwrap() error { return e.Err }

// FailedLine records one order line that could not be persisted
type FailedLine struct {
	Line models.CartLine
	Err  error
}

// PartialPersistError reports that the order row exists but one or more of
// its lines failed to persist. The caller decides whether to cancel the
// order or accept it with missing lines.
type PartialPersistError struct {
	OrderID int64
	Failed  []FailedLine
}

func (e *PartialPersistError) Error() string {
	return fmt.Sprintf("order %d persisted with %d failed line(s)", e.OrderID, len(e.Failed))
}

// PaymentPersistError reports a failed payment record creation. The order
// status has not been touched when it is returned.
type PaymentPersistError struct {
	OrderID int64
	Err     error
}

func (e *PaymentPersistError) Error() string {
	return fmt.Sprintf("failed to persist payment for order %d: %v", e.OrderID, e.Err)
}

func (e *PaymentPersistError) Unwrap() error { return e.Err }

// InconsistentStateError reports a payment record that exists for an order
// whose status update failed. It is surfaced as a hard stop and never
// auto-repaired: retrying the update blind risks double-charging.
type InconsistentStateError struct {
	OrderID   int64
	PaymentID int64
	Err       error
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("payment %d recorded but order %d status update failed: %v", e.PaymentID, e.OrderID, e.Err)
}

func (e *InconsistentStateError) Unwrap() error { return e.Err }

// AlreadyTerminalError reports an attempted transition on an order that is
// already completed or cancelled. No writes have occurred.
type AlreadyTerminalError struct {
	OrderID int64
	Status  models.OrderStatus
}

func (e *AlreadyTerminalError) Error() string {
	return fmt.Sprintf("order %d is already %s", e.OrderID, e.Status)
}

// CancelPersistError reports that the cancellation status update failed and
// the order keeps its previous status.
type CancelPersistError struct {
	OrderID int64
	Err     error
}

func (e *CancelPersistError) Error() string {
	return fmt.Sprintf("failed to cancel order %d: %v", e.OrderID, e.Err)
}

func (e *CancelPersistError) Unwrap() error { return e.Err }
