package db

import (
	"testing"
)

func TestFloat64ArrayRoundTrip(t *testing.T) {
	in := Float64Array{0.25, -0.5, 1, 0.000125}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var out Float64Array
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d elements, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("element %d: expected %v, got %v", i, in[i], out[i])
		}
	}
}

func TestFloat64ArrayScanNullAndEmpty(t *testing.T) {
	var a Float64Array
	if err := a.Scan(nil); err != nil {
		t.Fatalf("Scan nil: %v", err)
	}
	if a != nil {
		t.Fatalf("expected nil slice, got %v", a)
	}

	if err := a.Scan([]byte("{}")); err != nil {
		t.Fatalf("Scan empty: %v", err)
	}
	if a == nil || len(a) != 0 {
		t.Fatalf("expected empty slice, got %v", a)
	}
}

func TestFloat64ArrayScanRejectsGarbage(t *testing.T) {
	var a Float64Array
	if err := a.Scan("not-an-array"); err == nil {
		t.Fatal("expected error for malformed literal")
	}
	if err := a.Scan("{1,two}"); err == nil {
		t.Fatal("expected error for malformed element")
	}
}
