package models

import (
	"fmt"
	"strings"
)

// AddItemRequest represents a request to add a menu item to the cart
type AddItemRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

// Validate validates the add item request
func (r *AddItemRequest) Validate() error {
	if r.MenuItemID <= 0 {
		return fmt.Errorf("menu_item_id must be positive")
	}
	return nil
}

// SetQuantityRequest represents a request to change a cart line quantity.
// A quantity of zero or less removes the line.
type SetQuantityRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

// Validate validates the set quantity request
func (r *SetQuantityRequest) Validate() error {
	if r.MenuItemID <= 0 {
		return fmt.Errorf("menu_item_id must be positive")
	}
	return nil
}

// CheckoutRequest represents a request to confirm the current cart as an order
type CheckoutRequest struct {
	CustomerID int64  `json:"customer_id"`
	Note       string `json:"note,omitempty"`
}

// Validate validates the checkout request
func (r *CheckoutRequest) Validate() error {
	if r.CustomerID <= 0 {
		return fmt.Errorf("customer_id must be positive")
	}
	if len(r.Note) > 500 {
		return fmt.Errorf("note must not exceed 500 characters")
	}
	return nil
}

// PaymentRequest represents a request to settle an order
type PaymentRequest struct {
	Method string `json:"method"`
}

// Validate validates the payment request
func (r *PaymentRequest) Validate() error {
	if !PaymentMethod(r.Method).Valid() {
		return fmt.Errorf("method must be one of: %s, %s", PaymentCash, PaymentQRIS)
	}
	return nil
}

// CancelRequest represents a request to cancel an order or discard a draft
type CancelRequest struct {
	Reason string `json:"reason"`
}

// Validate validates the cancel request
func (r *CancelRequest) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return fmt.Errorf("reason is required")
	}
	return nil
}
