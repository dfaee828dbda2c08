package orders

import (
	"testing"
	"time"

	"munchmate/models"
)

func amt(v float64) *float64 { return &v }

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	invs := []models.Invoice{
		{InvoiceNumber: "INV-0001", CreatedAt: base},
		{InvoiceNumber: "INV-0003", CreatedAt: base.Add(2 * time.Hour)},
		{InvoiceNumber: "INV-0002", CreatedAt: base.Add(time.Hour)},
	}

	SortNewestFirst(invs)

	want := []string{"INV-0003", "INV-0002", "INV-0001"}
	for i, nr := range want {
		if invs[i].InvoiceNumber != nr {
			t.Fatalf("position %d: expected %s, got %s", i, nr, invs[i].InvoiceNumber)
		}
	}
}

func TestTotalTextGuardsMissingAmount(t *testing.T) {
	if got := TotalText(models.Invoice{TotalAmount: amt(250)}); got != "250.00" {
		t.Fatalf("expected 250.00, got %q", got)
	}
	if got := TotalText(models.Invoice{}); got != NotAvailable {
		t.Fatalf("expected %q for missing total, got %q", NotAvailable, got)
	}
}

func TestSubtotalText(t *testing.T) {
	stored := models.InvoiceItem{Price: 100, Quantity: 2, Subtotal: amt(200)}
	if got := SubtotalText(stored); got != "200.00" {
		t.Fatalf("expected stored subtotal 200.00, got %q", got)
	}

	// legacy record: no stored subtotal, recomputed for display
	legacy := models.InvoiceItem{Price: 50, Quantity: 3}
	if got := SubtotalText(legacy); got != "150.00" {
		t.Fatalf("expected recomputed 150.00, got %q", got)
	}

	broken := models.InvoiceItem{Price: 50}
	if got := SubtotalText(broken); got != NotAvailable {
		t.Fatalf("expected %q, got %q", NotAvailable, got)
	}
}

func TestItemCountSumsQuantities(t *testing.T) {
	inv := models.Invoice{Items: []models.InvoiceItem{
		{ID: "a", Quantity: 2},
		{ID: "b", Quantity: 1},
	}}
	if got := ItemCount(inv); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := ItemCount(models.Invoice{}); got != 0 {
		t.Fatalf("expected 0 for empty order, got %d", got)
	}
}

func TestSummarize(t *testing.T) {
	created := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
	inv := models.Invoice{
		ID:             "oid1",
		InvoiceNumber:  "INV-0042",
		CreatedAt:      created,
		DeliveryStatus: models.StatusPreparing,
		TotalAmount:    amt(99.5),
		Items:          []models.InvoiceItem{{Quantity: 4}},
	}

	s := Summarize(inv)
	if s.InvoiceNumber != "INV-0042" || s.Status != models.StatusPreparing {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.CreatedAt != "01/03/2026 14:30" {
		t.Fatalf("unexpected createdAt %q", s.CreatedAt)
	}
	if s.ItemCount != 4 || s.TotalText != "99.50" {
		t.Fatalf("unexpected summary %+v", s)
	}
}
