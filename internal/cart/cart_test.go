package cart

import (
	"testing"

	"restaurant-pos/internal/models"
)

var (
	gudeg = models.MenuItem{ID: 1, Name: "Nasi Gudeg", Price: 15000, Available: true}
	esTeh = models.MenuItem{ID: 2, Name: "Es Teh Manis", Price: 5000, Available: true}
	sate  = models.MenuItem{ID: 3, Name: "Sate Ayam", Price: 20000, Available: true}
)

func TestAdd_IncrementsExistingLine(t *testing.T) {
	c := New()
	c.Add(gudeg, 1)
	c.Add(gudeg, 2)

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}
}

func TestAdd_NonPositiveQtyCountsAsOne(t *testing.T) {
	c := New()
	c.Add(gudeg, 0)
	c.Add(esTeh, -5)

	for _, line := range c.Lines() {
		if line.Quantity != 1 {
			t.Fatalf("expected quantity 1 for item %d, got %d", line.MenuItemID, line.Quantity)
		}
	}
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	c := New()
	c.Add(sate, 1)
	c.Add(gudeg, 1)
	c.Add(esTeh, 1)
	c.Add(gudeg, 1) // increments, must not reorder

	lines := c.Lines()
	want := []int64{3, 1, 2}
	for i, id := range want {
		if lines[i].MenuItemID != id {
			t.Fatalf("line %d: expected item %d, got %d", i, id, lines[i].MenuItemID)
		}
	}
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name      string
		qty       int
		wantLines int
		wantQty   int
	}{
		{name: "positive updates line", qty: 5, wantLines: 1, wantQty: 5},
		{name: "zero removes line", qty: 0, wantLines: 0},
		{name: "negative removes line", qty: -1, wantLines: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Add(gudeg, 2)
			c.SetQuantity(gudeg.ID, tt.qty)

			lines := c.Lines()
			if len(lines) != tt.wantLines {
				t.Fatalf("expected %d lines, got %d", tt.wantLines, len(lines))
			}
			if tt.wantLines > 0 && lines[0].Quantity != tt.wantQty {
				t.Fatalf("expected quantity %d, got %d", tt.wantQty, lines[0].Quantity)
			}
		})
	}
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	c.Add(gudeg, 1)
	c.Add(esTeh, 1)

	c.Remove(gudeg.ID)
	if len(c.Lines()) != 1 || c.Lines()[0].MenuItemID != esTeh.ID {
		t.Fatalf("expected only item %d to remain", esTeh.ID)
	}

	c.Clear()
	if !c.IsEmpty() {
		t.Fatalf("expected cart to be empty after Clear")
	}
}

func TestTotal(t *testing.T) {
	c := New()
	if c.Total() != 0 {
		t.Fatalf("expected empty cart total 0, got %d", c.Total())
	}

	c.Add(gudeg, 2)  // 30000
	c.Add(esTeh, 3)  // 15000
	if got := c.Total(); got != 45000 {
		t.Fatalf("expected total 45000, got %d", got)
	}
}

func TestLines_ReturnsCopy(t *testing.T) {
	c := New()
	c.Add(gudeg, 1)

	lines := c.Lines()
	lines[0].Quantity = 99

	if c.Lines()[0].Quantity != 1 {
		t.Fatalf("mutating the returned slice must not affect the cart")
	}
}
