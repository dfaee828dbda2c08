package fallback

import (
	"testing"
)

type record struct {
	Number string  `json:"number"`
	Total  float64 `json:"total"`
}

func TestPutGetRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	in := record{Number: "INV-0007", Total: 250}
	if err := s.Put("invoice_INV-0007", in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out record
	if err := s.Get("invoice_INV-0007", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestHas(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	if s.Has("missing") {
		t.Fatal("Has reported a missing key")
	}
	s.Put("present", record{})
	if !s.Has("present") {
		t.Fatal("Has missed a stored key")
	}
}

func TestKeysFiltersByPrefix(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	s.Put("invoice_INV-0002", record{})
	s.Put("invoice_INV-0001", record{})
	s.Put("invoice_emergency_1725000000000", record{})

	keys, err := s.Keys("invoice_INV-")
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "invoice_INV-0001" || keys[1] != "invoice_INV-0002" {
		t.Fatalf("unexpected keys %v", keys)
	}

	all, _ := s.Keys("invoice_")
	if len(all) != 3 {
		t.Fatalf("expected 3 keys, got %v", all)
	}
}

func TestPutSanitizesKey(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	if err := s.Put("weird/key with spaces", record{Number: "x"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var out record
	if err := s.Get("weird/key with spaces", &out); err != nil {
		t.Fatalf("Get after sanitized Put: %v", err)
	}
	if out.Number != "x" {
		t.Fatalf("unexpected value %+v", out)
	}
}

func TestPutOverwrites(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	s.Put("k", record{Number: "old"})
	s.Put("k", record{Number: "new"})

	var out record
	s.Get("k", &out)
	if out.Number != "new" {
		t.Fatalf("expected overwrite, got %+v", out)
	}
}
