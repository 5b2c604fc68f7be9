// Command qpesim runs the quantum phase estimation driver described
// by qpe_tangelo_simulate_minimal.cpp: it loads (or starts) a
// statevector, applies the initial and QFT circuits, Trotterizes each
// controlled-unitary power for every ancilla qubit, applies the
// inverse QFT, and checkpoints the statevector after every step.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"qpesim/circuitio"
	"qpesim/qstate"
	"qpesim/simulate"
	"qpesim/statevecio"
)

const (
	nUnitaryQubitsTwoRotor   = 6
	nUnitaryQubitsThreeRotor = 9
	runFromStartKey          = -1
)

type commandLineArguments struct {
	nAncillaQubits   int
	nUnitaryQubits   int
	nTrotterSteps    int
	circuitsDir      string
	subcircuitPrefix string
	outputDir        string
	iContinue        int
}

func parseArguments(argv []string) (commandLineArguments, error) {
	if len(argv) != 7 {
		return commandLineArguments{}, fmt.Errorf(
			"usage: qpesim n_ancilla_qubits n_rotors n_trotter_steps circuits_dir subcircuit_prefix output_dir resume_index")
	}

	nAncillaQubits, err := strconv.Atoi(argv[0])
	if err != nil {
		return commandLineArguments{}, fmt.Errorf("n_ancilla_qubits: %w", err)
	}
	nRotors, err := strconv.Atoi(argv[1])
	if err != nil {
		return commandLineArguments{}, fmt.Errorf("n_rotors: %w", err)
	}
	nTrotterSteps, err := strconv.Atoi(argv[2])
	if err != nil {
		return commandLineArguments{}, fmt.Errorf("n_trotter_steps: %w", err)
	}
	iContinue, err := strconv.Atoi(argv[6])
	if err != nil {
		return commandLineArguments{}, fmt.Errorf("resume_index: %w", err)
	}
	if iContinue <= -2 {
		return commandLineArguments{}, fmt.Errorf("resume_index must be -1 (run from start) or a non-negative integer")
	}

	var nUnitaryQubits int
	switch nRotors {
	case 2:
		nUnitaryQubits = nUnitaryQubitsTwoRotor
	case 3:
		nUnitaryQubits = nUnitaryQubitsThreeRotor
	default:
		return commandLineArguments{}, fmt.Errorf("invalid number of rotors %d; allowed values are 2 and 3", nRotors)
	}

	return commandLineArguments{
		nAncillaQubits:   nAncillaQubits,
		nUnitaryQubits:   nUnitaryQubits,
		nTrotterSteps:    nTrotterSteps,
		circuitsDir:      argv[3],
		subcircuitPrefix: argv[4],
		outputDir:        argv[5],
		iContinue:        iContinue,
	}, nil
}

func statevectorFilename(i int) string {
	return fmt.Sprintf("statevector.dat%d", i)
}

func simulateSubcircuitFile(path string, nTotalQubits int, state *qstate.State) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	circuit, err := circuitio.ReadTangeloCircuit(nTotalQubits, f, 0)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	register := make([]int, circuit.NBits)
	return simulate.Run(circuit, state, register, simulate.Options{Mode: simulate.PureEvolution})
}

func simulateUnitary(args commandLineArguments, state *qstate.State, iControl int, count *int) error {
	nPowers := 1 << iControl
	nTotalQubits := args.nAncillaQubits + args.nUnitaryQubits

	circuitPath := filepath.Join(args.circuitsDir, fmt.Sprintf("%s%d", args.subcircuitPrefix, iControl))
	f, err := os.Open(circuitPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", circuitPath, err)
	}
	circuit, err := circuitio.ReadTangeloCircuit(nTotalQubits, f, 0)
	f.Close()
	if err != nil {
		return fmt.Errorf("reading %s: %w", circuitPath, err)
	}

	register := make([]int, circuit.NBits)
	for i := 0; i < nPowers; i++ {
		if args.iContinue != runFromStartKey && *count <= args.iContinue {
			*count++
			continue
		}

		for step := 0; step < args.nTrotterSteps; step++ {
			if err := simulate.Run(circuit, state, register, simulate.Options{Mode: simulate.PureEvolution}); err != nil {
				return err
			}
		}

		if err := saveStatevector(filepath.Join(args.outputDir, statevectorFilename(*count)), state); err != nil {
			return err
		}
		*count++
	}
	return nil
}

func saveStatevector(path string, state *qstate.State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	return statevecio.Save(f, state)
}

func loadStatevector(path string) (*qstate.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return statevecio.Load(f)
}

func run(argv []string) error {
	args, err := parseArguments(argv)
	if err != nil {
		return err
	}

	nTotalQubits := args.nAncillaQubits + args.nUnitaryQubits

	var state *qstate.State
	if args.iContinue == runFromStartKey {
		state = qstate.NewZeroState(nTotalQubits)
	} else {
		state, err = loadStatevector(filepath.Join(args.outputDir, statevectorFilename(args.iContinue)))
		if err != nil {
			return err
		}
	}

	if args.iContinue == runFromStartKey {
		if err := simulateSubcircuitFile(filepath.Join(args.circuitsDir, "initial_circuit.dat"), nTotalQubits, state); err != nil {
			return err
		}
		if err := simulateSubcircuitFile(filepath.Join(args.circuitsDir, "qft_circuit.dat"), nTotalQubits, state); err != nil {
			return err
		}
	}

	count := 0
	for iControl := 0; iControl < args.nAncillaQubits; iControl++ {
		if err := simulateUnitary(args, state, iControl, &count); err != nil {
			return err
		}
	}

	if err := simulateSubcircuitFile(filepath.Join(args.circuitsDir, "iqft_circuit.dat"), nTotalQubits, state); err != nil {
		return err
	}

	return saveStatevector(filepath.Join(args.outputDir, statevectorFilename(count)), state)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
