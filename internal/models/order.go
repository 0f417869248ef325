package models

import "time"

// OrderStatus represents the persisted status of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentQRIS PaymentMethod = "qris"
)

// Valid reports whether the method is one the system settles.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentQRIS
}

// PaymentStatus represents the status of a payment or receipt
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
)

// MenuItem is a catalog entry offered to customers
type MenuItem struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Price     int64  `json:"price" db:"price"` // integer minor currency units
	Available bool   `json:"available" db:"available"`
}

// CartLine is one (menu item, quantity) pair in a cart or order intent
type CartLine struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int    `json:"quantity"`
}

// Subtotal returns unit price times quantity.
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Order is the persisted order entity
type Order struct {
	ID         int64       `json:"id" db:"id"`
	CustomerID int64       `json:"customer_id" db:"customer_id"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	Total      int64       `json:"total" db:"total"`
	Note       string      `json:"note,omitempty" db:"note"`
	Status     OrderStatus `json:"status" db:"status"`
}

// OrderLine is a persisted order line item
type OrderLine struct {
	ID         int64  `json:"id" db:"id"`
	OrderID    int64  `json:"order_id" db:"order_id"`
	MenuItemID int64  `json:"menu_item_id" db:"menu_item_id"`
	Name       string `json:"name" db:"name"`
	Quantity   int    `json:"quantity" db:"quantity"`
	UnitPrice  int64  `json:"unit_price" db:"unit_price"`
}

// PaymentRecord is the persisted settlement fact for a completed order
type PaymentRecord struct {
	ID        int64         `json:"id" db:"id"`
	OrderID   int64         `json:"order_id" db:"order_id"`
	CashierID int64         `json:"cashier_id" db:"cashier_id"`
	Method    PaymentMethod `json:"method" db:"method"`
	Amount    int64         `json:"amount" db:"amount"`
	Status    PaymentStatus `json:"status" db:"status"`
	PaidAt    time.Time     `json:"paid_at" db:"paid_at"`
}

// Receipt is the derived artifact issued after a successful payment
type Receipt struct {
	ID       int64         `json:"id" db:"id"`
	Number   string        `json:"number" db:"number"`
	OrderID  int64         `json:"order_id" db:"order_id"`
	IssuedAt time.Time     `json:"issued_at" db:"issued_at"`
	Amount   int64         `json:"amount" db:"amount"`
	Method   PaymentMethod `json:"method" db:"method"`
	Status   PaymentStatus `json:"status" db:"status"`
}

// CancellationRecord is the audit entry written when an order is cancelled
type CancellationRecord struct {
	OrderID     int64     `json:"order_id" db:"order_id"`
	CancelledAt time.Time `json:"cancelled_at" db:"cancelled_at"`
	Reason      string    `json:"reason" db:"reason"`
}
