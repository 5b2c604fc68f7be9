package qtransform

import (
	"math"
	"testing"

	"qpesim/gate"
	"qpesim/matrix"
	"qpesim/qcircuit"
)

func TestExtendAppendsElementsAndMerge(t *testing.T) {
	left := qcircuit.New(2, 0)
	_ = left.AddOneTargetGate(gate.H, 0)

	right := qcircuit.New(2, 0)
	_ = right.AddOneTargetGate(gate.X, 1)

	if err := Extend(left, right); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(left.Elements) != 2 {
		t.Fatalf("len(Elements) = %d, want 2", len(left.Elements))
	}
}

func TestExtendRejectsMismatchedQubitCounts(t *testing.T) {
	left := qcircuit.New(2, 0)
	right := qcircuit.New(3, 0)
	if err := Extend(left, right); err == nil {
		t.Fatal("expected an error for mismatched qubit counts")
	}
}

func TestExtendRejectsGateOnMeasuredQubit(t *testing.T) {
	left := qcircuit.New(1, 1)
	_ = left.AddMeasurement(0, 0)

	right := qcircuit.New(1, 1)
	_ = right.AddOneTargetGate(gate.X, 0)

	if err := Extend(left, right); err == nil {
		t.Fatal("expected an error applying a gate to an already-measured qubit")
	}
}

func TestExtendRewritesMatrixPoolIndices(t *testing.T) {
	left := qcircuit.New(1, 0)
	_ = left.AddUGate(0, gate.Matrix(gate.X))

	right := qcircuit.New(1, 0)
	_ = right.AddUGate(0, gate.Matrix(gate.H))

	if err := Extend(left, right); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if left.NMatrices() != 2 {
		t.Fatalf("NMatrices() = %d, want 2", left.NMatrices())
	}
	_, idx, _ := gate.UnpackU(left.Elements[1].Gate)
	if !matrix.AlmostEq(left.Matrix(idx), gate.Matrix(gate.H), matrix.DefaultToleranceSq) {
		t.Fatalf("appended U gate refers to the wrong matrix")
	}
}

func TestAppendLeavesInputsUntouched(t *testing.T) {
	left := qcircuit.New(1, 0)
	_ = left.AddOneTargetGate(gate.H, 0)
	right := qcircuit.New(1, 0)
	_ = right.AddOneTargetGate(gate.X, 0)

	result, err := Append(left, right)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(left.Elements) != 1 || len(right.Elements) != 1 {
		t.Fatalf("Append mutated an input: left=%d right=%d", len(left.Elements), len(right.Elements))
	}
	if len(result.Elements) != 2 {
		t.Fatalf("len(result.Elements) = %d, want 2", len(result.Elements))
	}
}

func TestAppendDeepCopiesClassicalIfBody(t *testing.T) {
	left := qcircuit.New(1, 1)
	ifBody := []qcircuit.Element{{Kind: qcircuit.ElementGate, Gate: gate.PackOneTarget(gate.X, 0)}}
	left.AddClassicalIf(qcircuit.Predicate{BitIndices: []int{0}, ExpectedValue: 1}, ifBody)

	right := qcircuit.New(1, 1)

	result, err := Append(left, right)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Mutating the clone's if-body must not affect left's.
	result.Elements[0].IfBody[0].Gate = gate.PackOneTarget(gate.H, 0)
	if left.Elements[0].IfBody[0].Gate.Kind != gate.X {
		t.Fatal("Append's clone aliases left's classical-if body: mutating the clone changed left")
	}
}

func TestAlmostEqualIdentifiesEquivalentCircuits(t *testing.T) {
	a := qcircuit.New(1, 0)
	_ = a.AddOneTargetGate(gate.X, 0)
	_ = a.AddUGate(0, gate.Matrix(gate.H))

	nearH := gate.Matrix(gate.H)
	nearH.E00 += 1e-9
	b := qcircuit.New(1, 0)
	_ = b.AddOneTargetGate(gate.X, 0)
	_ = b.AddUGate(0, nearH)

	if !AlmostEqual(a, b, matrix.DefaultToleranceSq) {
		t.Fatal("expected matching X gates and U gates with almost-equal matrices to compare almost-equal")
	}
}

func TestAlmostEqualRejectsDifferentTargets(t *testing.T) {
	a := qcircuit.New(2, 0)
	_ = a.AddOneTargetGate(gate.X, 0)

	b := qcircuit.New(2, 0)
	_ = b.AddOneTargetGate(gate.X, 1)

	if AlmostEqual(a, b, matrix.DefaultToleranceSq) {
		t.Fatal("expected circuits acting on different qubits to compare unequal")
	}
}

func TestAlmostEqualComparesMeasurements(t *testing.T) {
	a := qcircuit.New(1, 1)
	_ = a.AddMeasurement(0, 0)

	b := qcircuit.New(1, 1)
	_ = b.AddMeasurement(0, 0)

	if !AlmostEqual(a, b, matrix.DefaultToleranceSq) {
		t.Fatal("expected matching measurement gates to compare equal")
	}
}

func TestAlmostEqualRejectsPrimitiveAgainstEquivalentUGate(t *testing.T) {
	a := qcircuit.New(1, 0)
	_ = a.AddOneTargetGate(gate.X, 0)

	b := qcircuit.New(1, 0)
	_ = b.AddUGate(0, gate.Matrix(gate.X))

	if AlmostEqual(a, b, matrix.DefaultToleranceSq) {
		t.Fatal("expected X and U(X-matrix) to compare unequal: the kind tags differ")
	}
}

func TestAlmostEqualRejectsControlledPrimitiveAgainstEquivalentCUGate(t *testing.T) {
	a := qcircuit.New(2, 0)
	_ = a.AddOneControlOneTargetGate(gate.CX, 0, 1)

	b := qcircuit.New(2, 0)
	_ = b.AddCUGate(0, 1, gate.Matrix(gate.X))

	if AlmostEqual(a, b, matrix.DefaultToleranceSq) {
		t.Fatal("expected CX and CU(X-matrix) to compare unequal: the kind tags differ")
	}
}

func TestMakeControlledTransformsOneTargetGate(t *testing.T) {
	sub := qcircuit.New(1, 0)
	_ = sub.AddOneTargetGate(gate.X, 0)

	controlled, err := MakeControlled(sub, 2, 0, []int{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(controlled.Elements) != 1 {
		t.Fatalf("len(Elements) = %d, want 1", len(controlled.Elements))
	}
	c, target, err := gate.UnpackOneControlOneTarget(controlled.Elements[0].Gate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if controlled.Elements[0].Gate.Kind != gate.CX || c != 0 || target != 1 {
		t.Fatalf("got kind=%s control=%d target=%d, want CX control=0 target=1", controlled.Elements[0].Gate.Kind, c, target)
	}
}

func TestMakeControlledRejectsOverlappingIndices(t *testing.T) {
	sub := qcircuit.New(1, 0)
	_ = sub.AddOneTargetGate(gate.X, 0)

	if _, err := MakeControlled(sub, 2, 1, []int{1}); err == nil {
		t.Fatal("expected an error when the control qubit overlaps a mapped qubit")
	}
}

func TestMakeControlledRejectsMeasurement(t *testing.T) {
	sub := qcircuit.New(1, 1)
	_ = sub.AddMeasurement(0, 0)

	if _, err := MakeControlled(sub, 2, 1, []int{0}); err == nil {
		t.Fatal("expected an error for a subcircuit containing a measurement")
	}
}

func TestMakeControlledDoublyControlsControlledGate(t *testing.T) {
	sub := qcircuit.New(2, 0)
	_ = sub.AddOneControlOneTargetGate(gate.CX, 0, 1)

	controlled, err := MakeControlled(sub, 3, 2, []int{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// doubly-controlled CX synthesis emits 5 gates (CU, CX, CU, CX, CU; see applyDoublyControlledGate)
	if len(controlled.Elements) != 5 {
		t.Fatalf("len(Elements) = %d, want 5", len(controlled.Elements))
	}
}

func TestTranspileToPrimitivePassesThroughPrimitives(t *testing.T) {
	c := qcircuit.New(1, 0)
	_ = c.AddOneTargetGate(gate.X, 0)

	transpiled, err := TranspileToPrimitive(c, matrix.DefaultToleranceSq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transpiled.Elements) != 1 || transpiled.Elements[0].Gate.Kind != gate.X {
		t.Fatalf("expected the X gate to pass through unchanged, got %+v", transpiled.Elements)
	}
}

func TestTranspileToPrimitiveDecomposesUGate(t *testing.T) {
	c := qcircuit.New(1, 0)
	_ = c.AddUGate(0, gate.Matrix(gate.H))

	transpiled, err := TranspileToPrimitive(c, matrix.DefaultToleranceSq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transpiled.Elements) != 1 || transpiled.Elements[0].Gate.Kind != gate.H {
		t.Fatalf("expected U(H) to decompose to a single H gate, got %+v", transpiled.Elements)
	}
}

func TestTranspileToPrimitiveDecomposesArbitraryRotation(t *testing.T) {
	c := qcircuit.New(1, 0)
	_ = c.AddUGate(0, gate.AngleMatrix(gate.RZ, math.Pi/5))

	transpiled, err := TranspileToPrimitive(c, matrix.DefaultToleranceSq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transpiled.Elements) == 0 {
		t.Fatal("expected at least one gate in the decomposition")
	}
	for _, el := range transpiled.Elements {
		if !gate.IsPrimitive(el.Gate.Kind) {
			t.Fatalf("decomposition produced a non-primitive gate %s", el.Gate.Kind)
		}
	}
}

func TestTranspileToPrimitiveRecursesIntoClassicalIf(t *testing.T) {
	c := qcircuit.New(1, 1)
	// Mint the U(H) gate's pool entry through AddUGate so its pool index
	// is valid against c's own pool, then move the resulting element
	// into a classical-if body instead of leaving it top-level.
	_ = c.AddUGate(0, gate.Matrix(gate.H))
	uGateElement := c.Elements[len(c.Elements)-1]
	c.Elements = c.Elements[:len(c.Elements)-1]
	_ = c.AddMeasurement(0, 0)
	c.AddClassicalIf(qcircuit.Predicate{BitIndices: []int{0}, ExpectedValue: 1}, []qcircuit.Element{uGateElement})

	transpiled, err := TranspileToPrimitive(c, matrix.DefaultToleranceSq)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(transpiled.Elements) != 2 {
		t.Fatalf("len(Elements) = %d, want 2 (measurement + classical-if)", len(transpiled.Elements))
	}
	ifElement := transpiled.Elements[1]
	if ifElement.Kind != qcircuit.ElementClassicalIf {
		t.Fatalf("expected a classical-if element, got %v", ifElement.Kind)
	}
	if len(ifElement.IfBody) != 1 || ifElement.IfBody[0].Gate.Kind != gate.H {
		t.Fatalf("expected the if-body's U(H) gate to decompose to a single H gate, got %+v", ifElement.IfBody)
	}
}
