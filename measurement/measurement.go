// Package measurement implements sampling from a state's probability
// distribution and tallying the results into counts, ported from
// mini-qiskit/calculations/measurements.hpp's cumulative-sum +
// binary-search scheme.
package measurement

import (
	"sort"

	"qpesim/bitutil"
	"qpesim/gate"
	"qpesim/qcircuit"
	"qpesim/qerr"
	"qpesim/qprng"
	"qpesim/qstate"
)

// IsMeasurable reports whether circuit measures every qubit exactly
// once, via an M gate at the top level or inside a classical-if body.
func IsMeasurable(circuit *qcircuit.Circuit) bool {
	counts := make([]int, circuit.NQubits)
	countMeasurements(circuit.Elements, counts)
	for _, c := range counts {
		if c != 1 {
			return false
		}
	}
	return true
}

func countMeasurements(elements []qcircuit.Element, counts []int) {
	for _, element := range elements {
		switch element.Kind {
		case qcircuit.ElementGate:
			if element.Gate.Kind == gate.M {
				qubit, _, err := gate.UnpackM(element.Gate)
				if err == nil {
					counts[qubit]++
				}
			}
		case qcircuit.ElementClassicalIf:
			countMeasurements(element.IfBody, counts)
		case qcircuit.ElementClassicalIfElse:
			countMeasurements(element.IfBody, counts)
			countMeasurements(element.ElseBody, counts)
		}
	}
}

func cumulativeSum(probabilities []float64) []float64 {
	cumulative := make([]float64, len(probabilities))
	var running float64
	for i, p := range probabilities {
		running += p
		cumulative[i] = running
	}
	return cumulative
}

// PerformMeasurements draws nShots samples from probabilities (raw,
// little-endian-indexed, as returned by qstate.State.ProbabilitiesRaw)
// using rng, returning the sampled state index for each shot. Sampling
// builds the cumulative distribution once and locates each draw with a
// binary search, matching std::lower_bound in the original.
func PerformMeasurements(probabilities []float64, nShots int, rng qprng.PRNG) ([]uint64, error) {
	if len(probabilities) == 0 {
		return nil, qerr.New(qerr.ShapeMismatch, "cannot sample from an empty probability distribution")
	}

	cumulative := cumulativeSum(probabilities)
	maxProb := cumulative[len(cumulative)-1]

	measurements := make([]uint64, nShots)
	for shot := 0; shot < nShots; shot++ {
		draw := rng.Float64() * maxProb
		index := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] >= draw })
		if index == len(cumulative) {
			return nil, qerr.New(qerr.LogicBug, "measurement sample landed past the end of the cumulative distribution")
		}
		measurements[shot] = uint64(index)
	}
	return measurements, nil
}

// Counts maps a sampled state index to how many shots landed on it.
type Counts map[uint64]uint64

// ToCounts tallies a slice of sampled state indices into Counts.
func ToCounts(measurements []uint64) Counts {
	counts := make(Counts, len(measurements))
	for _, index := range measurements {
		counts[index]++
	}
	return counts
}

// ToBitstringCounts renders ToCounts's keys as bitstrings under endian,
// for nQubits qubits.
func ToBitstringCounts(counts Counts, nQubits int, endian bitutil.Endian) map[string]uint64 {
	out := make(map[string]uint64, len(counts))
	for index, count := range counts {
		out[bitutil.StateIndexToBitstring(index, nQubits, endian)] = count
	}
	return out
}

// Sample draws nShots measurements directly from state's probability
// distribution and tallies them into Counts.
func Sample(state *qstate.State, nShots int, rng qprng.PRNG) (Counts, error) {
	measurements, err := PerformMeasurements(state.ProbabilitiesRaw(), nShots, rng)
	if err != nil {
		return nil, err
	}
	return ToCounts(measurements), nil
}
