package gate

import (
	"math"

	"qpesim/matrix"
)

// Matrix returns the canonical 2x2 unitary for a non-angle primitive
// gate kind (H, X, Y, Z, SX). It panics if kind is not one of those.
func Matrix(kind Kind) matrix.Matrix2x2 {
	switch kind {
	case H:
		c := complex(1/math.Sqrt2, 0)
		return matrix.Matrix2x2{E00: c, E01: c, E10: c, E11: -c}
	case X:
		return matrix.Matrix2x2{E00: 0, E01: 1, E10: 1, E11: 0}
	case Y:
		return matrix.Matrix2x2{E00: 0, E01: complex(0, -1), E10: complex(0, 1), E11: 0}
	case Z:
		return matrix.Matrix2x2{E00: 1, E01: 0, E10: 0, E11: -1}
	case SX:
		half := complex(0.5, 0.5)
		return matrix.Matrix2x2{E00: half, E01: complex(0.5, -0.5), E10: complex(0.5, -0.5), E11: half}
	default:
		panic("gate: Matrix called on non-angle gate kind " + kind.String())
	}
}

// AngleMatrix returns the canonical 2x2 unitary for a one-angle
// primitive gate kind (RX, RY, RZ, P) at the given angle. It panics if
// kind is not one of those.
func AngleMatrix(kind Kind, angle float64) matrix.Matrix2x2 {
	switch kind {
	case RX:
		c := complex(math.Cos(angle/2), 0)
		s := complex(0, -math.Sin(angle/2))
		return matrix.Matrix2x2{E00: c, E01: s, E10: s, E11: c}
	case RY:
		c := complex(math.Cos(angle/2), 0)
		s := complex(math.Sin(angle/2), 0)
		return matrix.Matrix2x2{E00: c, E01: -s, E10: s, E11: c}
	case RZ:
		neg := complexExp(-angle / 2)
		pos := complexExp(angle / 2)
		return matrix.Matrix2x2{E00: neg, E01: 0, E10: 0, E11: pos}
	case P:
		return matrix.Matrix2x2{E00: 1, E01: 0, E10: 0, E11: complexExp(angle)}
	default:
		panic("gate: AngleMatrix called on non-angle gate kind " + kind.String())
	}
}

func complexExp(theta float64) complex128 {
	return complex(math.Cos(theta), math.Sin(theta))
}
