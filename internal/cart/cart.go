// Package cart holds a customer's selections before anything is persisted.
// A cart belongs to exactly one session and is never shared, so it carries
// no locking of its own.
package cart

import "restaurant-pos/internal/models"

// Cart is an insertion-ordered collection of (menu item, quantity) pairs
type Cart struct {
	lines []models.CartLine
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// Add puts qty of the item into the cart. If the item is already present its
// quantity is incremented, otherwise a new line is appended. A non-positive
// qty counts as one.
func (c *Cart) Add(item models.MenuItem, qty int) {
	if qty <= 0 {
		qty = 1
	}
	for i := range c.lines {
		if c.lines[i].MenuItemID == item.ID {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, models.CartLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   qty,
	})
}

// SetQuantity sets the quantity of the line for menuItemID. A quantity of
// zero or less removes the line entirely. Unknown items are ignored.
func (c *Cart) SetQuantity(menuItemID int64, qty int) {
	if qty <= 0 {
		c.Remove(menuItemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Remove deletes the line for menuItemID, keeping the remaining order intact
func (c *Cart) Remove(menuItemID int64) {
	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear removes all lines
func (c *Cart) Clear() {
	c.lines = nil
}

// Total returns the sum of unit price times quantity over all lines
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}
