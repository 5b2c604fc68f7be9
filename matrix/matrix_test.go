package matrix

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMulIdentity(t *testing.T) {
	identity := Matrix2x2{E00: 1, E01: 0, E10: 0, E11: 1}
	x := Matrix2x2{E00: 0, E01: 1, E10: 1, E11: 0}

	got := identity.Mul(x)
	if !AlmostEq(got, x, DefaultToleranceSq) {
		t.Fatalf("identity * X = %+v, want %+v", got, x)
	}
}

func TestConjugateTransposeInvolution(t *testing.T) {
	m := Matrix2x2{E00: complex(1, 2), E01: complex(3, -1), E10: complex(-2, 0.5), E11: complex(0, -4)}

	got := m.ConjugateTranspose().ConjugateTranspose()
	if !AlmostEq(got, m, DefaultToleranceSq) {
		t.Fatalf("dagger(dagger(m)) = %+v, want %+v", got, m)
	}
}

func TestSqrtOfIdentityIsIdentity(t *testing.T) {
	identity := Matrix2x2{E00: 1, E01: 0, E10: 0, E11: 1}

	got := identity.Sqrt()
	if !AlmostEq(got, identity, DefaultToleranceSq) {
		t.Fatalf("sqrt(I) = %+v, want I", got)
	}
}

func TestSqrtSquaresBackToOriginal(t *testing.T) {
	// a unitary rotation-like matrix, not diagonal
	theta := math.Pi / 3
	m := Matrix2x2{
		E00: complex(math.Cos(theta/2), 0),
		E01: complex(0, -math.Sin(theta/2)),
		E10: complex(0, -math.Sin(theta/2)),
		E11: complex(math.Cos(theta/2), 0),
	}

	root := m.Sqrt()
	squared := root.Mul(root)

	if !AlmostEq(squared, m, DefaultToleranceSq) {
		t.Fatalf("sqrt(m)^2 = %+v, want %+v", squared, m)
	}
}

func TestDeterminantOfUnitaryHasUnitMagnitude(t *testing.T) {
	h := Matrix2x2{
		E00: complex(1/math.Sqrt2, 0),
		E01: complex(1/math.Sqrt2, 0),
		E10: complex(1/math.Sqrt2, 0),
		E11: complex(-1/math.Sqrt2, 0),
	}

	det := h.Determinant()
	if math.Abs(cmplx.Abs(det)-1.0) > 1e-9 {
		t.Fatalf("|det(H)| = %v, want 1", cmplx.Abs(det))
	}
}

func TestAlmostEqToleratesSmallError(t *testing.T) {
	a := Matrix2x2{E00: 1, E01: 0, E10: 0, E11: 1}
	b := Matrix2x2{E00: complex(1+1e-9, 0), E01: 0, E10: 0, E11: 1}

	if !AlmostEq(a, b, DefaultToleranceSq) {
		t.Fatalf("expected near-identical matrices to compare almost-equal")
	}
}

func TestAlmostEqRejectsLargeError(t *testing.T) {
	a := Matrix2x2{E00: 1, E01: 0, E10: 0, E11: 1}
	b := Matrix2x2{E00: 0, E01: 1, E10: 1, E11: 0}

	if AlmostEq(a, b, DefaultToleranceSq) {
		t.Fatalf("expected distinct matrices not to compare almost-equal")
	}
}
