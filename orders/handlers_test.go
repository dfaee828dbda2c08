package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"munchmate/globals"
	"munchmate/models"
)

type fakeReader struct {
	queriedUID string
	invs       []models.Invoice
	err        error
}

func (f *fakeReader) ByUser(ctx context.Context, uid string) ([]models.Invoice, error) {
	f.queriedUID = uid
	return f.invs, f.err
}

func authedRequest(uid string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	return req.WithContext(context.WithValue(req.Context(), globals.UserIDKey, uid))
}

func TestListOrdersScopedToCallerNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeReader{invs: []models.Invoice{
		{InvoiceNumber: "INV-0001", CreatedAt: base, Customer: models.Customer{UID: "u1"}},
		{InvoiceNumber: "INV-0003", CreatedAt: base.Add(2 * time.Hour), Customer: models.Customer{UID: "u1"}},
		{InvoiceNumber: "INV-0002", CreatedAt: base.Add(time.Hour), Customer: models.Customer{UID: "u1"}},
	}}
	h := NewHandler(fake)

	rec := httptest.NewRecorder()
	h.ListOrders(rec, authedRequest("u1"), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if fake.queriedUID != "u1" {
		t.Fatalf("queried uid %q, want the caller's", fake.queriedUID)
	}

	var got []OrderSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	want := []string{"INV-0003", "INV-0002", "INV-0001"}
	if len(got) != len(want) {
		t.Fatalf("expected %d orders, got %d", len(want), len(got))
	}
	for i, nr := range want {
		if got[i].InvoiceNumber != nr {
			t.Fatalf("position %d: expected %s, got %s", i, nr, got[i].InvoiceNumber)
		}
	}
}

func TestListOrdersRequiresAuth(t *testing.T) {
	fake := &fakeReader{}
	h := NewHandler(fake)

	rec := httptest.NewRecorder()
	h.ListOrders(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil), nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if fake.queriedUID != "" {
		t.Fatal("store must not be queried without a signed-in user")
	}
}

func TestListOrdersReadError(t *testing.T) {
	h := NewHandler(&fakeReader{err: errors.New("connection reset")})

	rec := httptest.NewRecorder()
	h.ListOrders(rec, authedRequest("u1"), nil)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
