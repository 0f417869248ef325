package printer

import (
	"strings"
	"testing"
	"time"

	"restaurant-pos/internal/models"
)

func TestRenderReceipt(t *testing.T) {
	job := &models.ReceiptPrintMessage{
		ReceiptNumber: "3F2A9B1C",
		OrderID:       42,
		Amount:        35000,
		Method:        models.PaymentQRIS,
		IssuedAt:      time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC),
		Lines: []models.CartLine{
			{MenuItemID: 1, Name: "Nasi Gudeg", UnitPrice: 15000, Quantity: 2},
			{MenuItemID: 2, Name: "Es Teh", UnitPrice: 5000, Quantity: 1},
		},
	}

	out := renderReceipt(job)

	for _, want := range []string{
		"RECEIPT 3F2A9B1C",
		"Order #42",
		"2026-03-14 12:30:00",
		"Nasi Gudeg",
		"Es Teh",
		"35000",
		"PAID BY QRIS",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("receipt missing %q:\n%s", want, out)
		}
	}

	// Line subtotals, not unit prices
	if !strings.Contains(out, "30000") {
		t.Errorf("receipt missing line subtotal:\n%s", out)
	}
}

func TestPrintDurationByMethod(t *testing.T) {
	if models.PrintDuration(models.PaymentQRIS) <= models.PrintDuration(models.PaymentCash) {
		t.Error("expected qris receipts to take longer than cash")
	}
}
