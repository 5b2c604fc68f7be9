package qprng

import "testing"

func TestNewSeededIsDeterministic(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 10; i++ {
		av := a.Float64()
		bv := b.Float64()
		if av != bv {
			t.Fatalf("draw %d diverged: %v != %v", i, av, bv)
		}
	}
}

func TestNewSeededFloat64InRange(t *testing.T) {
	r := NewSeeded(7)
	for i := 0; i < 1000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v, want value in [0, 1)", v)
		}
	}
}

func TestNewSeededIntNInRange(t *testing.T) {
	r := NewSeeded(7)
	for i := 0; i < 1000; i++ {
		v := r.IntN(5)
		if v < 0 || v >= 5 {
			t.Fatalf("IntN(5) = %d, want value in [0, 5)", v)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := NewSeeded(1)
	b := NewSeeded(2)

	same := true
	for i := 0; i < 20; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected two distinct seeds to eventually diverge")
	}
}
