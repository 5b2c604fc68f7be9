package circuitio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"qpesim/matrix"
	"qpesim/qcircuit"
	"qpesim/qerr"
	"qpesim/qtransform"
)

// CommandState selects whether a DecompositionCommand's matrix is
// applied unconditionally to its qubit (SingleGate) or as a
// multiplicity-controlled unitary, controlled by every other qubit in
// the target circuit (AllControl).
type CommandState int

const (
	SingleGate CommandState = iota
	AllControl
)

func (s CommandState) String() string {
	if s == AllControl {
		return "ALLCONTROL"
	}
	return "SINGLEGATE"
}

// DecompositionCommand is one entry of a decomposition table: a 2x2
// matrix to apply to Qubit, either directly or multiplicity-controlled
// by every other qubit, per State.
type DecompositionCommand struct {
	State  CommandState
	Qubit  int
	Matrix matrix.Matrix2x2
}

// ReadDecompositionTable reads the `NUMBER_OF_COMMANDS : <N>` header
// followed by N five-line command blocks from r.
func ReadDecompositionTable(r io.Reader) ([]DecompositionCommand, error) {
	scanner := bufio.NewScanner(r)

	n, err := readCommandCount(scanner)
	if err != nil {
		return nil, err
	}

	commands := make([]DecompositionCommand, 0, n)
	for i := 0; i < n; i++ {
		cmd, err := readCommandBlock(scanner, i)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, qerr.Wrap(qerr.IOFailure, err, "reading decomposition table")
	}
	return commands, nil
}

func readCommandCount(scanner *bufio.Scanner) (int, error) {
	if !scanner.Scan() {
		return 0, qerr.New(qerr.IOFailure, "decomposition table is empty, expected a NUMBER_OF_COMMANDS header")
	}
	line := strings.TrimSpace(scanner.Text())
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != "NUMBER_OF_COMMANDS" {
		return 0, qerr.New(qerr.IOFailure, "expected a NUMBER_OF_COMMANDS header, got %q", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, qerr.Wrap(qerr.IOFailure, err, "malformed command count in %q", line)
	}
	return n, nil
}

func readCommandBlock(scanner *bufio.Scanner, index int) (DecompositionCommand, error) {
	if !scanner.Scan() {
		return DecompositionCommand{}, qerr.New(qerr.IOFailure, "command %d: expected a STATE line, got end of input", index)
	}
	header := strings.TrimSpace(scanner.Text())
	parts := strings.SplitN(header, ":", 2)
	if len(parts) != 2 {
		return DecompositionCommand{}, qerr.New(qerr.IOFailure, "command %d: malformed STATE line %q", index, header)
	}

	var state CommandState
	switch strings.TrimSpace(parts[0]) {
	case "ALLCONTROL":
		state = AllControl
	case "SINGLEGATE":
		state = SingleGate
	default:
		return DecompositionCommand{}, qerr.New(qerr.IOFailure, "command %d: unrecognized STATE %q", index, parts[0])
	}

	qubit, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return DecompositionCommand{}, qerr.Wrap(qerr.IOFailure, err, "command %d: malformed qubit index in %q", index, header)
	}

	var entries [4]complex128
	for i := 0; i < 4; i++ {
		if !scanner.Scan() {
			return DecompositionCommand{}, qerr.New(qerr.IOFailure, "command %d: expected 4 matrix-entry lines, got end of input", index)
		}
		entryLine := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(entryLine)
		if len(fields) != 2 {
			return DecompositionCommand{}, qerr.New(qerr.IOFailure, "command %d: malformed matrix entry %q", index, entryLine)
		}
		re, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return DecompositionCommand{}, qerr.Wrap(qerr.IOFailure, err, "command %d: malformed real part in %q", index, entryLine)
		}
		im, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return DecompositionCommand{}, qerr.Wrap(qerr.IOFailure, err, "command %d: malformed imaginary part in %q", index, entryLine)
		}
		entries[i] = complex(re, im)
	}

	return DecompositionCommand{
		State: state,
		Qubit: qubit,
		Matrix: matrix.Matrix2x2{
			E00: entries[0], E01: entries[1],
			E10: entries[2], E11: entries[3],
		},
	}, nil
}

// ApplyDecompositionTable extends circuit in place, command by command:
// a SingleGate command becomes one plain U gate on Qubit; an AllControl
// command becomes the gate sequence that applies the U gate on Qubit
// multiplicity-controlled by every other qubit in the circuit,
// synthesized via qtransform.MakeMultiplicityControlled.
func ApplyDecompositionTable(circuit *qcircuit.Circuit, commands []DecompositionCommand) error {
	for _, cmd := range commands {
		switch cmd.State {
		case SingleGate:
			if err := circuit.AddUGate(cmd.Qubit, cmd.Matrix); err != nil {
				return err
			}
		case AllControl:
			controls := make([]int, 0, circuit.NQubits-1)
			for q := 0; q < circuit.NQubits; q++ {
				if q != cmd.Qubit {
					controls = append(controls, q)
				}
			}
			sub := qcircuit.New(1, circuit.NBits)
			if err := sub.AddUGate(0, cmd.Matrix); err != nil {
				return err
			}
			controlled, err := qtransform.MakeMultiplicityControlled(sub, circuit.NQubits, controls, []int{cmd.Qubit})
			if err != nil {
				return err
			}
			if err := qtransform.Extend(circuit, controlled); err != nil {
				return err
			}
		default:
			return qerr.New(qerr.LogicBug, "ApplyDecompositionTable: unrecognized command state %d", cmd.State)
		}
	}
	return nil
}
