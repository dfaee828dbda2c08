package invoice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"munchmate/models"
)

type fakeWriter struct {
	fail    bool
	inserts int
	last    models.Invoice
}

func (f *fakeWriter) Insert(ctx context.Context, inv models.Invoice) (string, error) {
	if f.fail {
		return "", errors.New("mongo unavailable")
	}
	f.inserts++
	f.last = inv
	return "oid123", nil
}

type fakeLocal struct {
	fail bool
	data map[string]any
}

func newFakeLocal() *fakeLocal {
	return &fakeLocal{data: make(map[string]any)}
}

func (f *fakeLocal) Put(key string, v any) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.data[key] = v
	return nil
}

func lines() []models.LineItem {
	return []models.LineItem{
		{ID: "a", Name: "Samosa", Price: 100, Quantity: 2, Subtotal: 200},
		{ID: "b", Name: "Chai", Price: 50, Quantity: 1, Subtotal: 50},
	}
}

func guest() models.Customer {
	return SnapshotCustomer(nil, "u1", "Asha", "asha@example.com")
}

func TestFinalizeSavesRemoteOnce(t *testing.T) {
	w := &fakeWriter{}
	f := NewFinalizer(w, newFakeLocal())

	res, err := f.Finalize(context.Background(), lines(), guest(), 7, "pay_x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != SavedRemote {
		t.Fatalf("expected saved_remote, got %s", res.Outcome)
	}
	if res.Invoice.InvoiceNumber != "INV-0007" {
		t.Fatalf("unexpected invoice number %s", res.Invoice.InvoiceNumber)
	}
	if res.Invoice.TotalAmount == nil || *res.Invoice.TotalAmount != 250 {
		t.Fatalf("unexpected total %v", res.Invoice.TotalAmount)
	}
	if res.Invoice.Tax != 0 {
		t.Fatalf("expected zero tax, got %v", res.Invoice.Tax)
	}
	if res.Invoice.DeliveryStatus != models.StatusPending {
		t.Fatalf("expected pending status, got %s", res.Invoice.DeliveryStatus)
	}

	// second call must not insert again
	res2, err := f.Finalize(context.Background(), lines(), guest(), 99, "pay_y")
	if err != nil {
		t.Fatalf("unexpected error on repeat: %v", err)
	}
	if w.inserts != 1 {
		t.Fatalf("expected exactly 1 insert, got %d", w.inserts)
	}
	if res2.Invoice.InvoiceNumber != "INV-0007" {
		t.Fatalf("repeat call returned a different invoice: %s", res2.Invoice.InvoiceNumber)
	}

	st := f.State()
	if !st.InvoiceSaved || st.IsSaving || st.Err != nil {
		t.Fatalf("unexpected state %+v", st)
	}
}

// ctxWriter honors context cancellation the way a real driver does.
type ctxWriter struct {
	inserts int
}

func (c *ctxWriter) Insert(ctx context.Context, inv models.Invoice) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.inserts++
	return "oid456", nil
}

func TestFinalizeOutlivesCancelledRequest(t *testing.T) {
	w := &ctxWriter{}
	local := newFakeLocal()
	f := NewFinalizer(w, local)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.Finalize(ctx, lines(), guest(), 7, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != SavedRemote {
		t.Fatalf("expected saved_remote despite hung-up caller, got %s", res.Outcome)
	}
	if w.inserts != 1 {
		t.Fatalf("expected 1 remote insert, got %d", w.inserts)
	}
	if len(local.data) != 0 {
		t.Fatalf("healthy remote must not spill to fallback: %v", keysOf(local.data))
	}
}

func TestFinalizeFallsBackToLocal(t *testing.T) {
	local := newFakeLocal()
	f := NewFinalizer(&fakeWriter{fail: true}, local)

	res, err := f.Finalize(context.Background(), lines(), guest(), 3, "")
	if err != nil {
		t.Fatalf("local fallback should not be an error, got %v", err)
	}
	if res.Outcome != SavedLocal {
		t.Fatalf("expected saved_local, got %s", res.Outcome)
	}
	if res.Warning == "" {
		t.Fatal("expected a warning on local fallback")
	}
	if _, ok := local.data["invoice_INV-0003"]; !ok {
		t.Fatalf("expected local key invoice_INV-0003, have %v", keysOf(local.data))
	}
	if st := f.State(); !st.InvoiceSaved {
		t.Fatal("local fallback should still count as saved")
	}
}

func TestFinalizeEmergencyTier(t *testing.T) {
	local := newFakeLocal()
	local.fail = true
	f := NewFinalizer(&fakeWriter{fail: true}, local)

	res, err := f.Finalize(context.Background(), lines(), guest(), 5, "")
	if err == nil {
		t.Fatal("expected an error when every tier fails")
	}
	if res.Outcome != FailedEmergency {
		t.Fatalf("expected failed_emergency, got %s", res.Outcome)
	}
	if !strings.Contains(err.Error(), "your order may not be recorded") {
		t.Fatalf("unexpected error message: %v", err)
	}

	// terminal even in failure: a retry returns the recorded result
	_, err2 := f.Finalize(context.Background(), lines(), guest(), 6, "")
	if err2 == nil || err2.Error() != err.Error() {
		t.Fatalf("retry after failure should replay the recorded error, got %v", err2)
	}
}

func TestFinalizeRejectsEmptyCart(t *testing.T) {
	f := NewFinalizer(&fakeWriter{}, newFakeLocal())
	if _, err := f.Finalize(context.Background(), nil, guest(), 1, ""); err == nil {
		t.Fatal("expected error for empty cart")
	}
	if st := f.State(); st.InvoiceSaved {
		t.Fatal("empty cart should not mark the session saved")
	}
}

func TestSnapshotCustomerDefaults(t *testing.T) {
	p := &models.StudentProfile{UID: "u1", Name: "Asha", Email: "asha@example.com"}
	c := SnapshotCustomer(p, "u1", "", "")
	if c.ContactNumber != "Unknown" || c.RollNumber != "Unknown" || c.Department != "Unknown" {
		t.Fatalf("missing profile fields should read Unknown: %+v", c)
	}
	if c.Name != "Asha" {
		t.Fatalf("expected Asha, got %s", c.Name)
	}

	g := SnapshotCustomer(nil, "u2", "", "")
	if g.Name != "Guest User" {
		t.Fatalf("expected Guest User, got %s", g.Name)
	}
	if g.Email != "Unknown" {
		t.Fatalf("expected Unknown email, got %s", g.Email)
	}
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
