// Package pairgen provides forward-only enumerators of the pairs of
// state-vector indices affected by a single-qubit gate or by a gate
// with one control and one target qubit. Separating this index arithmetic from the simulation
// kernel keeps both pieces independently testable, following
// mini-qiskit's gate_pair_generator.hpp.
package pairgen

import "qpesim/bitutil"

// SingleQubit loops over all pairs of computational basis states which
// differ only on the bit at qubitIndex. It yields exactly
// 2^(nQubits-1) pairs, one at a time, via Next. Zero value is not
// usable; construct with NewSingleQubit.
type SingleQubit struct {
	i0Max uint64
	i1Max uint64
	i0    uint64
	i1    uint64
}

// NewSingleQubit builds a generator over the given qubit index within
// a state space of nQubits qubits.
func NewSingleQubit(qubitIndex, nQubits int) *SingleQubit {
	return &SingleQubit{
		i0Max: bitutil.Pow2(qubitIndex),
		i1Max: bitutil.Pow2(nQubits - qubitIndex - 1),
	}
}

// Size returns the total number of pairs this generator will yield.
func (g *SingleQubit) Size() uint64 {
	return g.i0Max * g.i1Max
}

// Next returns the next pair of state indices differing on the target
// qubit, with state0 having that bit clear and state1 having it set.
// Calling Next more than Size times yields unspecified indices.
func (g *SingleQubit) Next() (state0, state1 uint64) {
	currentI0 := g.i0
	currentI1 := g.i1

	g.i1++
	if g.i1 == g.i1Max {
		g.i0++
		g.i1 = 0
	}

	state0 = currentI0 + 2*currentI1*g.i0Max
	state1 = state0 + g.i0Max
	return state0, state1
}

// DoubleQubit loops over all pairs of computational basis states where
// the control qubit is set to 1 and the target qubit differs between
// the two states of the pair. It yields exactly 2^(nQubits-2) pairs.
type DoubleQubit struct {
	lowerShift  uint64
	upperShift  uint64
	sourceShift uint64
	targetShift uint64
	i0Max       uint64
	i1Max       uint64
	i2Max       uint64
	i0, i1, i2  uint64
}

// NewDoubleQubit builds a generator over a controlled gate with the
// given control (sourceIndex) and target (targetIndex) qubits, within
// a state space of nQubits qubits.
func NewDoubleQubit(sourceIndex, targetIndex, nQubits int) *DoubleQubit {
	lowerIndex := sourceIndex
	upperIndex := targetIndex
	if lowerIndex > upperIndex {
		lowerIndex, upperIndex = upperIndex, lowerIndex
	}

	return &DoubleQubit{
		lowerShift:  bitutil.Pow2(lowerIndex + 1),
		upperShift:  bitutil.Pow2(upperIndex + 1),
		sourceShift: bitutil.Pow2(sourceIndex),
		targetShift: bitutil.Pow2(targetIndex),
		i0Max:       bitutil.Pow2(lowerIndex),
		i1Max:       bitutil.Pow2(upperIndex - lowerIndex - 1),
		i2Max:       bitutil.Pow2(nQubits - upperIndex - 1),
	}
}

// Size returns the total number of pairs this generator will yield.
func (g *DoubleQubit) Size() uint64 {
	return g.i0Max * g.i1Max * g.i2Max
}

// Next returns the next pair of state indices with the control qubit
// set and the target qubit clear (state0) or set (state1).
func (g *DoubleQubit) Next() (state0, state1 uint64) {
	currentI0 := g.i0
	currentI1 := g.i1
	currentI2 := g.i2

	g.i2++
	if g.i2 == g.i2Max {
		g.i1++
		g.i2 = 0
		if g.i1 == g.i1Max {
			g.i0++
			g.i1 = 0
		}
	}

	state0 = currentI0 + currentI1*g.lowerShift + currentI2*g.upperShift + g.sourceShift
	state1 = state0 + g.targetShift
	return state0, state1
}
