// Package statevecio persists qstate.State to and from a simple
// binary blob: an 8-byte little-endian qubit-count header followed by
// one little-endian complex128 (two float64s) per amplitude, written
// with encoding/binary.
package statevecio

import (
	"encoding/binary"
	"io"
	"math"

	"qpesim/bitutil"
	"qpesim/qerr"
	"qpesim/qstate"
)

// Save writes state's header and amplitudes to w.
func Save(w io.Writer, state *qstate.State) error {
	if err := state.ValidateShape(); err != nil {
		return err
	}

	header := make([]byte, 8)
	binary.LittleEndian.PutUint64(header, uint64(state.NQubits))
	if _, err := w.Write(header); err != nil {
		return qerr.Wrap(qerr.IOFailure, err, "writing statevector header")
	}

	entry := make([]byte, 16)
	for _, amp := range state.Amplitudes {
		binary.LittleEndian.PutUint64(entry[0:8], math.Float64bits(real(amp)))
		binary.LittleEndian.PutUint64(entry[8:16], math.Float64bits(imag(amp)))
		if _, err := w.Write(entry); err != nil {
			return qerr.Wrap(qerr.IOFailure, err, "writing statevector amplitude")
		}
	}
	return nil
}

// Load reads a header and amplitude sequence from r and returns the
// resulting state.
func Load(r io.Reader) (*qstate.State, error) {
	header := make([]byte, 8)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, qerr.Wrap(qerr.IOFailure, err, "reading statevector header")
	}
	nQubits := int(binary.LittleEndian.Uint64(header))

	dim := bitutil.Pow2(nQubits)
	amplitudes := make([]complex128, dim)

	entry := make([]byte, 16)
	for i := uint64(0); i < dim; i++ {
		if _, err := io.ReadFull(r, entry); err != nil {
			return nil, qerr.Wrap(qerr.IOFailure, err, "reading statevector amplitude %d", i)
		}
		re := math.Float64frombits(binary.LittleEndian.Uint64(entry[0:8]))
		im := math.Float64frombits(binary.LittleEndian.Uint64(entry[8:16]))
		amplitudes[i] = complex(re, im)
	}

	state := &qstate.State{Amplitudes: amplitudes, NQubits: nQubits}
	if err := state.ValidateShape(); err != nil {
		return nil, err
	}
	return state, nil
}
