// Package decompose implements the 2x2 unitary-to-primitive-gate
// decomposition used by qtransform.TranspileToPrimitive. It first
// tries to recognize the matrix as one of the named primitive gates
// (H, X, Y, Z, SX, RX, RY, RZ, P, in that order), then falls back to a
// ZYZ-style special-unitary decomposition, stripping a global phase
// first when needed. Ported from
// mini-qiskit/gates/matrix2x2_gate_decomposition.hpp, whose algorithm
// is itself ported from fedimser/quantum_decomp.
package decompose

import (
	"math"
	"math/cmplx"

	"qpesim/gate"
	"qpesim/matrix"
)

// PrimitiveGate names a single step of a decomposition: a primitive
// gate kind and, for angle gates, its parameter.
type PrimitiveGate struct {
	Kind  gate.Kind
	Angle float64
}

// ToPrimitiveGates decomposes unitary into an ordered sequence of
// primitive single-qubit gates whose product reproduces unitary up to
// the tolerances built into the single-gate matching step (the
// determinant phase stripped before the ZYZ step is re-applied as a
// trailing P gate).
func ToPrimitiveGates(unitary matrix.Matrix2x2, toleranceSq float64) []PrimitiveGate {
	if pg, ok := toSinglePrimitiveGate(unitary, toleranceSq); ok {
		return []PrimitiveGate{pg}
	}

	detAngle := determinantAngle(unitary)
	if math.Abs(detAngle) < toleranceSq {
		return toSpecialUnitaryPrimitiveGates(unitary, toleranceSq)
	}

	leftMat := gate.AngleMatrix(gate.P, -detAngle)
	output := toSpecialUnitaryPrimitiveGates(leftMat.Mul(unitary), toleranceSq)
	return append(output, PrimitiveGate{Kind: gate.P, Angle: detAngle})
}

func determinantAngle(m matrix.Matrix2x2) float64 {
	det := m.Determinant()
	return math.Atan2(imag(det), real(det))
}

func toSinglePrimitiveGate(unitary matrix.Matrix2x2, toleranceSq float64) (PrimitiveGate, bool) {
	for _, k := range []gate.Kind{gate.H, gate.X, gate.Y, gate.Z, gate.SX} {
		if matrix.AlmostEq(unitary, gate.Matrix(k), toleranceSq) {
			return PrimitiveGate{Kind: k}, true
		}
	}

	real11 := clamp(real(unitary.E11), -1, 1)
	imag11 := clamp(imag(unitary.E11), -1, 1)
	theta := math.Acos(real11)
	pTheta := math.Atan2(imag11, real11)

	if matrix.AlmostEq(unitary, gate.AngleMatrix(gate.RX, 2*theta), toleranceSq) {
		return PrimitiveGate{Kind: gate.RX, Angle: 2 * theta}, true
	}
	if matrix.AlmostEq(unitary, gate.AngleMatrix(gate.RY, 2*theta), toleranceSq) {
		return PrimitiveGate{Kind: gate.RY, Angle: 2 * theta}, true
	}
	if matrix.AlmostEq(unitary, gate.AngleMatrix(gate.RZ, 2*theta), toleranceSq) {
		return PrimitiveGate{Kind: gate.RZ, Angle: 2 * theta}, true
	}
	if matrix.AlmostEq(unitary, gate.AngleMatrix(gate.P, pTheta), toleranceSq) {
		return PrimitiveGate{Kind: gate.P, Angle: pTheta}, true
	}

	return PrimitiveGate{}, false
}

func toSpecialUnitaryPrimitiveGates(unitary matrix.Matrix2x2, toleranceSq float64) []PrimitiveGate {
	abs00 := clamp(cmplx.Abs(unitary.E00), 0, 1)

	theta := math.Acos(abs00)
	lambda := math.Atan2(imag(unitary.E00), real(unitary.E00))
	mu := math.Atan2(imag(unitary.E01), real(unitary.E01))

	var output []PrimitiveGate

	if math.Abs(lambda-mu) > toleranceSq {
		output = append(output, PrimitiveGate{Kind: gate.RZ, Angle: mu - lambda})
	}
	if math.Abs(2*theta) > toleranceSq {
		output = append(output, PrimitiveGate{Kind: gate.RY, Angle: -2 * theta})
	}
	if math.Abs(lambda+mu) > toleranceSq {
		output = append(output, PrimitiveGate{Kind: gate.RZ, Angle: -lambda - mu})
	}

	return output
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
