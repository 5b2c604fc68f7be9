// Package qstate implements the dense state vector: a complex
// amplitude for every computational basis state, indexed in canonical
// little-endian order (bit k of the index corresponds to qubit k).
// Endianness only matters at the bitstring boundary, via bitutil.
package qstate

import (
	"math"

	"qpesim/bitutil"
	"qpesim/qerr"
)

// State is a dense state vector over NQubits qubits.
type State struct {
	Amplitudes []complex128
	NQubits    int
}

// NewZeroState returns the |0...0> state over nQubits qubits.
func NewZeroState(nQubits int) *State {
	amps := make([]complex128, bitutil.Pow2(nQubits))
	amps[0] = 1
	return &State{Amplitudes: amps, NQubits: nQubits}
}

// NewFromBitstring returns the computational basis state named by
// bitstring, interpreted under endian.
func NewFromBitstring(bitstring string, endian bitutil.Endian) (*State, error) {
	index, err := bitutil.BitstringToStateIndex(bitstring, endian)
	if err != nil {
		return nil, err
	}
	nQubits := len(bitstring)
	amps := make([]complex128, bitutil.Pow2(nQubits))
	amps[index] = 1
	return &State{Amplitudes: amps, NQubits: nQubits}, nil
}

// Dimension returns 2^NQubits, the length of Amplitudes.
func (s *State) Dimension() uint64 {
	return bitutil.Pow2(s.NQubits)
}

// ProbabilitiesRaw returns |amplitude|^2 for every computational basis
// state, indexed by the canonical little-endian state index.
func (s *State) ProbabilitiesRaw() []float64 {
	probs := make([]float64, len(s.Amplitudes))
	for i, amp := range s.Amplitudes {
		probs[i] = real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	return probs
}

// Probabilities returns a bitstring-keyed probability map under the
// given endian convention.
func (s *State) Probabilities(endian bitutil.Endian) map[string]float64 {
	raw := s.ProbabilitiesRaw()
	out := make(map[string]float64, len(raw))
	for index, p := range raw {
		bs := bitutil.StateIndexToBitstring(uint64(index), s.NQubits, endian)
		out[bs] = p
	}
	return out
}

// Norm returns the L2 norm of the state vector, which should be 1 for
// any properly evolved state.
func (s *State) Norm() float64 {
	var sumSq float64
	for _, amp := range s.Amplitudes {
		sumSq += real(amp)*real(amp) + imag(amp)*imag(amp)
	}
	return math.Sqrt(sumSq)
}

// Clone returns an independent copy of s.
func (s *State) Clone() *State {
	amps := make([]complex128, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &State{Amplitudes: amps, NQubits: s.NQubits}
}

// ValidateShape returns an error if len(Amplitudes) does not equal
// 2^NQubits.
func (s *State) ValidateShape() error {
	want := bitutil.Pow2(s.NQubits)
	if uint64(len(s.Amplitudes)) != want {
		return qerr.New(qerr.ShapeMismatch, "state has %d amplitudes, want 2^%d = %d", len(s.Amplitudes), s.NQubits, want)
	}
	return nil
}
