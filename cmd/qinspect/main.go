// Command qinspect is a read-only terminal browser for a Tangelo
// circuit file: it loads the circuit, transpiles it to primitive
// gates, precomputes the state after every element via
// simulate.RunStepwise, and lets the user scrub through the
// resulting steps with the amplitudes rendered as a probability
// table alongside the circuit diagram.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"qpesim/bitutil"
	"qpesim/circuitio"
	"qpesim/qcircuit"
	"qpesim/qstate"
	"qpesim/qtransform"
	"qpesim/simulate"
)

func main() {
	circuitPath := flag.String("circuit", "", "path to a Tangelo circuit file")
	nQubits := flag.Int("qubits", 0, "number of qubits in the circuit")
	nSkip := flag.Int("skip", 0, "number of header lines to skip")
	bigEndian := flag.Bool("big-endian", false, "render bitstrings with qubit 0 leftmost")
	flag.Parse()

	if *circuitPath == "" || *nQubits <= 0 {
		fmt.Fprintln(os.Stderr, "usage: qinspect -circuit PATH -qubits N [-skip N] [-big-endian]")
		os.Exit(2)
	}

	endian := bitutil.Little
	if *bigEndian {
		endian = bitutil.Big
	}

	m, err := load(*circuitPath, *nQubits, *nSkip, endian)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qinspect:", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "qinspect:", err)
		os.Exit(1)
	}
}

func load(path string, nQubits, nSkip int, endian bitutil.Endian) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return Model{}, err
	}
	defer f.Close()

	raw, err := circuitio.ReadTangeloCircuit(nQubits, f, nSkip)
	if err != nil {
		return Model{}, err
	}

	circuit, err := qtransform.TranspileToPrimitive(raw, 1e-6)
	if err != nil {
		return Model{}, err
	}

	initial := qstate.NewZeroState(nQubits)
	register := make([]int, circuit.NBits)
	state := initial.Clone()

	steps := make([]step, 0, len(circuit.Elements))
	err = simulate.RunStepwise(circuit, state, register, simulate.Options{Mode: simulate.PureEvolution}, func(index int, element qcircuit.Element) error {
		steps = append(steps, step{element: element, state: state.Clone()})
		return nil
	})
	if err != nil {
		return Model{}, err
	}

	return newModel(circuit, initial, steps, endian), nil
}
