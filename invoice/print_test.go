package invoice

import "testing"

func TestQRPayload(t *testing.T) {
	got := QRPayload("INV-0007", "01/03/2026")
	if got != "INV-0007|01/03/2026" {
		t.Fatalf("unexpected payload %q", got)
	}
}
