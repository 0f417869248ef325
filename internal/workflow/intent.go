package workflow

import (
	"restaurant-pos/internal/cart"
	"restaurant-pos/internal/models"
)

// OrderIntent is the validated, immutable snapshot of a cart taken at
// checkout. Its total is always recomputed from the lines, never supplied
// by a caller. Settlement later renders the receipt from this snapshot, so
// the live cart can be cleared without aliasing the data.
type OrderIntent struct {
	lines []models.CartLine
	total int64
	note  string
}

// Assemble validates the cart and produces an order intent. It returns
// ErrEmptyCart for empty carts and InvalidQuantityError when a line carries
// a non-positive quantity.
func Assemble(c *cart.Cart, note string) (*OrderIntent, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	lines := c.Lines()
	var total int64
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, &InvalidQuantityError{MenuItemID: line.MenuItemID, Quantity: line.Quantity}
		}
		total += line.Subtotal()
	}

	return &OrderIntent{
		lines: lines,
		total: total,
		note:  note,
	}, nil
}

// Lines returns a copy of the snapshot lines in cart insertion order
func (i *OrderIntent) Lines() []models.CartLine {
	out := make([]models.CartLine, len(i.lines))
	copy(out, i.lines)
	return out
}

// Total returns the recomputed sum of all line subtotals
func (i *OrderIntent) Total() int64 {
	return i.total
}

// Note returns the optional free-form note attached at checkout
func (i *OrderIntent) Note() string {
	return i.note
}
