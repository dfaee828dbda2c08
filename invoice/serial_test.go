package invoice

import (
	"context"
	"errors"
	"testing"
)

type fakeSerialSource struct {
	latest int
	err    error
}

func (f fakeSerialSource) LatestSerial(ctx context.Context) (int, error) {
	return f.latest, f.err
}

func TestNextSerialIncrementsLatest(t *testing.T) {
	got := NextSerial(context.Background(), fakeSerialSource{latest: 41})
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestNextSerialEmptyStoreStartsAtOne(t *testing.T) {
	got := NextSerial(context.Background(), fakeSerialSource{err: ErrNoInvoices})
	if got != 1 {
		t.Fatalf("expected 1 for empty store, got %d", got)
	}
}

func TestNextSerialQueryErrorFallsBackToRandom(t *testing.T) {
	for i := 0; i < 20; i++ {
		got := NextSerial(context.Background(), fakeSerialSource{err: errors.New("connection reset")})
		if got < 1000 || got > 9999 {
			t.Fatalf("expected a four-digit fallback serial, got %d", got)
		}
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	cases := []struct {
		serial int
		want   string
	}{
		{1, "INV-0001"},
		{7, "INV-0007"},
		{42, "INV-0042"},
		{9999, "INV-9999"},
		{12345, "INV-12345"},
	}
	for _, c := range cases {
		if got := FormatInvoiceNumber(c.serial); got != c.want {
			t.Errorf("serial %d: expected %s, got %s", c.serial, c.want, got)
		}
	}
}

func TestFormatOrderNumber(t *testing.T) {
	if got := FormatOrderNumber(7); got != "ORD-0007" {
		t.Fatalf("expected ORD-0007, got %s", got)
	}
}

func TestRandomFallbackSerialRange(t *testing.T) {
	for i := 0; i < 20; i++ {
		n := RandomFallbackSerial()
		if n < 1000 || n > 9999 {
			t.Fatalf("fallback serial out of range: %d", n)
		}
		if got := FormatInvoiceNumber(n); len(got) != len("INV-0000") {
			t.Fatalf("fallback serial does not format to four digits: %q", got)
		}
	}
}
