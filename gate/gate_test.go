package gate

import (
	"math"
	"testing"

	"qpesim/matrix"
)

func isUnitary(t *testing.T, m matrix.Matrix2x2) {
	t.Helper()
	product := m.ConjugateTranspose().Mul(m)
	identity := matrix.Matrix2x2{E00: 1, E01: 0, E10: 0, E11: 1}
	if !matrix.AlmostEq(product, identity, matrix.DefaultToleranceSq) {
		t.Errorf("m^dagger * m = %+v, want identity", product)
	}
}

func TestPrimitiveMatricesAreUnitary(t *testing.T) {
	for _, k := range []Kind{H, X, Y, Z, SX} {
		isUnitary(t, Matrix(k))
	}
}

func TestAngleMatricesAreUnitaryAcrossAngles(t *testing.T) {
	angles := []float64{0, math.Pi / 7, math.Pi / 2, math.Pi, 2 * math.Pi, -1.3}
	for _, k := range []Kind{RX, RY, RZ, P} {
		for _, theta := range angles {
			isUnitary(t, AngleMatrix(k, theta))
		}
	}
}

func TestZeroAngleRotationsAreIdentity(t *testing.T) {
	identity := matrix.Matrix2x2{E00: 1, E01: 0, E10: 0, E11: 1}
	for _, k := range []Kind{RX, RY, RZ} {
		got := AngleMatrix(k, 0)
		if !matrix.AlmostEq(got, identity, matrix.DefaultToleranceSq) {
			t.Errorf("%s(0) = %+v, want identity", k, got)
		}
	}
	gotP := AngleMatrix(P, 0)
	if !matrix.AlmostEq(gotP, identity, matrix.DefaultToleranceSq) {
		t.Errorf("P(0) = %+v, want identity", gotP)
	}
}

func TestHSquaredIsIdentity(t *testing.T) {
	h := Matrix(H)
	got := h.Mul(h)
	identity := matrix.Matrix2x2{E00: 1, E01: 0, E10: 0, E11: 1}
	if !matrix.AlmostEq(got, identity, matrix.DefaultToleranceSq) {
		t.Fatalf("H*H = %+v, want identity", got)
	}
}

func TestSXSquaredIsX(t *testing.T) {
	sx := Matrix(SX)
	got := sx.Mul(sx)
	x := Matrix(X)
	if !matrix.AlmostEq(got, x, matrix.DefaultToleranceSq) {
		t.Fatalf("SX*SX = %+v, want X = %+v", got, x)
	}
}

func TestPackUnpackOneTarget(t *testing.T) {
	info := PackOneTarget(H, 3)
	got, err := UnpackOneTarget(info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Errorf("UnpackOneTarget = %d, want 3", got)
	}
}

func TestPackUnpackOneTargetOneAngle(t *testing.T) {
	info := PackOneTargetOneAngle(RX, 2, math.Pi/4)
	qubit, angle, err := UnpackOneTargetOneAngle(info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qubit != 2 || angle != math.Pi/4 {
		t.Errorf("UnpackOneTargetOneAngle = (%d, %v), want (2, %v)", qubit, angle, math.Pi/4)
	}
}

func TestPackUnpackOneControlOneTarget(t *testing.T) {
	info := PackOneControlOneTarget(CX, 0, 1)
	control, target, err := UnpackOneControlOneTarget(info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if control != 0 || target != 1 {
		t.Errorf("UnpackOneControlOneTarget = (%d, %d), want (0, 1)", control, target)
	}
}

func TestPackUnpackOneControlOneTargetOneAngle(t *testing.T) {
	info := PackOneControlOneTargetOneAngle(CRZ, 4, 5, math.Pi)
	control, target, angle, err := UnpackOneControlOneTargetOneAngle(info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if control != 4 || target != 5 || angle != math.Pi {
		t.Errorf("UnpackOneControlOneTargetOneAngle = (%d, %d, %v), want (4, 5, %v)", control, target, angle, math.Pi)
	}
}

func TestPackUnpackU(t *testing.T) {
	info := PackU(6, MatrixPoolIndex(2))
	target, idx, err := UnpackU(info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target != 6 || idx != 2 {
		t.Errorf("UnpackU = (%d, %d), want (6, 2)", target, idx)
	}
}

func TestPackUnpackCU(t *testing.T) {
	info := PackCU(1, 2, MatrixPoolIndex(7))
	control, target, idx, err := UnpackCU(info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if control != 1 || target != 2 || idx != 7 {
		t.Errorf("UnpackCU = (%d, %d, %d), want (1, 2, 7)", control, target, idx)
	}
}

func TestPackUnpackM(t *testing.T) {
	info := PackM(3, 1)
	qubit, bit, err := UnpackM(info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qubit != 3 || bit != 1 {
		t.Errorf("UnpackM = (%d, %d), want (3, 1)", qubit, bit)
	}
}

func TestUnpackOneTargetRejectsWrongKind(t *testing.T) {
	info := PackOneControlOneTarget(CX, 0, 1)
	if _, err := UnpackOneTarget(info); err == nil {
		t.Fatal("expected error unpacking a controlled gate as a one-target gate")
	}
}

func TestControlKindRoundTrip(t *testing.T) {
	info := PackControl(1, 4)
	statementKind, bit, ok := ControlKind(info)
	if !ok {
		t.Fatal("ControlKind reported ok=false for a control marker")
	}
	if statementKind != 1 || bit != 4 {
		t.Errorf("ControlKind = (%d, %d), want (1, 4)", statementKind, bit)
	}
}

func TestControlKindRejectsOrdinaryGate(t *testing.T) {
	info := PackOneTarget(X, 0)
	if _, _, ok := ControlKind(info); ok {
		t.Fatal("ControlKind reported ok=true for a non-control gate")
	}
}

func TestIsPrimitiveCoversPrimitiveSet(t *testing.T) {
	primitives := []Kind{H, X, Y, Z, SX, RX, RY, RZ, P, CH, CX, CY, CZ, CSX, CRX, CRY, CRZ, CP}
	for _, k := range primitives {
		if !IsPrimitive(k) {
			t.Errorf("IsPrimitive(%s) = false, want true", k)
		}
	}
	for _, k := range []Kind{U, CU, M} {
		if IsPrimitive(k) {
			t.Errorf("IsPrimitive(%s) = true, want false", k)
		}
	}
}
