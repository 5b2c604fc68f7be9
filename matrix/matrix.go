// Package matrix implements the 2x2 complex matrix algebra used to
// represent quantum gates: multiplication, addition, conjugate
// transpose, square root, determinant, and tolerance-based equality.
package matrix

import "math/cmplx"

// DefaultToleranceSq is the default squared tolerance used by AlmostEq
// throughout the simulator. Comparisons are against this value, not its
// square root, matching the original implementation's (preserved)
// mismatch between the name "tolerance" and the magnitude actually
// compared.
const DefaultToleranceSq = 1e-6

// Matrix2x2 holds the four entries of a 2x2 complex matrix in row-major
// order: E00 top-left, E01 top-right, E10 bottom-left, E11 bottom-right.
type Matrix2x2 struct {
	E00, E01, E10, E11 complex128
}

// Mul returns m * other.
func (m Matrix2x2) Mul(other Matrix2x2) Matrix2x2 {
	return Matrix2x2{
		E00: m.E00*other.E00 + m.E01*other.E10,
		E01: m.E00*other.E01 + m.E01*other.E11,
		E10: m.E10*other.E00 + m.E11*other.E10,
		E11: m.E10*other.E01 + m.E11*other.E11,
	}
}

// Add returns m + other.
func (m Matrix2x2) Add(other Matrix2x2) Matrix2x2 {
	return Matrix2x2{
		E00: m.E00 + other.E00,
		E01: m.E01 + other.E01,
		E10: m.E10 + other.E10,
		E11: m.E11 + other.E11,
	}
}

// ConjugateTranspose returns m^dagger.
func (m Matrix2x2) ConjugateTranspose() Matrix2x2 {
	return Matrix2x2{
		E00: cmplx.Conj(m.E00),
		E01: cmplx.Conj(m.E10),
		E10: cmplx.Conj(m.E01),
		E11: cmplx.Conj(m.E11),
	}
}

// Determinant returns det(m).
func (m Matrix2x2) Determinant() complex128 {
	return m.E00*m.E11 - m.E01*m.E10
}

// Sqrt returns a matrix W such that W*W == m (within floating-point
// error), using the closed form from
// https://en.wikipedia.org/wiki/Square_root_of_a_2_by_2_matrix,
// taking the positive roots of s and t.
func (m Matrix2x2) Sqrt() Matrix2x2 {
	tau := m.E00 + m.E11
	delta := m.Determinant()

	s := cmplx.Sqrt(delta)
	t := cmplx.Sqrt(tau + 2*s)

	return Matrix2x2{
		E00: (m.E00 + s) / t,
		E01: m.E01 / t,
		E10: m.E10 / t,
		E11: (m.E11 + s) / t,
	}
}

// AlmostEqComplex reports whether two complex numbers are equal within
// toleranceSq, comparing squared magnitude of the difference.
func AlmostEqComplex(left, right complex128, toleranceSq float64) bool {
	diff := left - right
	return real(diff)*real(diff)+imag(diff)*imag(diff) < toleranceSq
}

// AlmostEq reports whether two matrices are element-wise equal within
// toleranceSq.
func AlmostEq(left, right Matrix2x2, toleranceSq float64) bool {
	return AlmostEqComplex(left.E00, right.E00, toleranceSq) &&
		AlmostEqComplex(left.E10, right.E10, toleranceSq) &&
		AlmostEqComplex(left.E01, right.E01, toleranceSq) &&
		AlmostEqComplex(left.E11, right.E11, toleranceSq)
}
