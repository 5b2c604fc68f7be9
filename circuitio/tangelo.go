// Package circuitio reads the two on-disk formats the simulator
// consumes: Tangelo-subset circuit files and 2x2-matrix decomposition
// tables. Lexing follows the teacher's circuit.go approach of
// precompiled regexp.MustCompile patterns dispatched by gate name,
// adapted from QASM token shapes to the Tangelo gate-record shape.
package circuitio

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"qpesim/gate"
	"qpesim/qcircuit"
	"qpesim/qerr"
)

var (
	oneTargetRecord           = regexp.MustCompile(`^(\w+)\s+(\d+)$`)
	oneTargetOneAngleRecord   = regexp.MustCompile(`^(\w+)\s+(\d+)\s+(` + anglePattern + `)$`)
	oneControlOneTargetRecord = regexp.MustCompile(`^(\w+)\s+(\d+)\s+(\d+)$`)
	controlledAngleRecord     = regexp.MustCompile(`^(\w+)\s+(\d+)\s+(\d+)\s+(` + anglePattern + `)$`)
	measureRecord             = regexp.MustCompile(`^MEASURE\s+(\d+)\s+(\d+)$`)
)

var oneTargetKinds = map[string]gate.Kind{
	"H": gate.H, "X": gate.X, "Y": gate.Y, "Z": gate.Z, "SX": gate.SX,
}

var oneTargetAngleKinds = map[string]gate.Kind{
	"RX": gate.RX, "RY": gate.RY, "RZ": gate.RZ, "P": gate.P,
}

var oneControlOneTargetKinds = map[string]gate.Kind{
	"CH": gate.CH, "CX": gate.CX, "CY": gate.CY, "CZ": gate.CZ, "CSX": gate.CSX,
}

var controlledAngleKinds = map[string]gate.Kind{
	"CRX": gate.CRX, "CRY": gate.CRY, "CRZ": gate.CRZ, "CP": gate.CP,
}

// ReadTangeloCircuit reads a Tangelo-subset circuit file over
// nTotalQubits qubits from r, skipping the first nSkip lines, and
// returns the resulting circuit. nBits is sized to nTotalQubits, wide
// enough for a MEASURE record targeting any qubit's own index as its
// classical bit.
func ReadTangeloCircuit(nTotalQubits int, r io.Reader, nSkip int) (*qcircuit.Circuit, error) {
	circuit := qcircuit.New(nTotalQubits, nTotalQubits)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo <= nSkip {
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := parseTangeloRecord(circuit, line, lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, qerr.Wrap(qerr.IOFailure, err, "reading tangelo circuit")
	}
	return circuit, nil
}

func parseTangeloRecord(circuit *qcircuit.Circuit, line string, lineNo int) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToUpper(fields[0])

	if matches := measureRecord.FindStringSubmatch(line); name == "MEASURE" && matches != nil {
		qubit, _ := strconv.Atoi(matches[1])
		bit, _ := strconv.Atoi(matches[2])
		return circuit.AddMeasurement(qubit, bit)
	}

	if kind, ok := oneTargetKinds[name]; ok {
		matches := oneTargetRecord.FindStringSubmatch(line)
		if matches == nil {
			return qerr.New(qerr.IOFailure, "line %d: malformed %s record %q", lineNo, name, line)
		}
		target, _ := strconv.Atoi(matches[2])
		return circuit.AddOneTargetGate(kind, target)
	}

	if kind, ok := oneTargetAngleKinds[name]; ok {
		matches := oneTargetOneAngleRecord.FindStringSubmatch(line)
		if matches == nil {
			return qerr.New(qerr.IOFailure, "line %d: malformed %s record %q", lineNo, name, line)
		}
		target, _ := strconv.Atoi(matches[2])
		angle, ok := parseAngle(matches[3])
		if !ok {
			return qerr.New(qerr.IOFailure, "line %d: malformed angle in %q", lineNo, line)
		}
		return circuit.AddOneTargetOneAngleGate(kind, target, angle)
	}

	if kind, ok := oneControlOneTargetKinds[name]; ok {
		matches := oneControlOneTargetRecord.FindStringSubmatch(line)
		if matches == nil {
			return qerr.New(qerr.IOFailure, "line %d: malformed %s record %q", lineNo, name, line)
		}
		control, _ := strconv.Atoi(matches[2])
		target, _ := strconv.Atoi(matches[3])
		return circuit.AddOneControlOneTargetGate(kind, control, target)
	}

	if kind, ok := controlledAngleKinds[name]; ok {
		matches := controlledAngleRecord.FindStringSubmatch(line)
		if matches == nil {
			return qerr.New(qerr.IOFailure, "line %d: malformed %s record %q", lineNo, name, line)
		}
		control, _ := strconv.Atoi(matches[2])
		target, _ := strconv.Atoi(matches[3])
		angle, ok := parseAngle(matches[4])
		if !ok {
			return qerr.New(qerr.IOFailure, "line %d: malformed angle in %q", lineNo, line)
		}
		return circuit.AddOneControlOneTargetOneAngleGate(kind, control, target, angle)
	}

	return qerr.New(qerr.IOFailure, "line %d: unrecognized gate name %q", lineNo, fields[0])
}

// WriteTangeloCircuit renders circuit back to the Tangelo-subset
// record format: primitive gates, plus M gates as MEASURE records
// (U/CU/classical-if are not representable in this format and are
// rejected).
func WriteTangeloCircuit(w io.Writer, circuit *qcircuit.Circuit) error {
	bw := bufio.NewWriter(w)
	for _, element := range circuit.Elements {
		if element.Kind != qcircuit.ElementGate {
			return qerr.New(qerr.LogicBug, "WriteTangeloCircuit: cannot render element kind %d", element.Kind)
		}
		if err := writeTangeloGate(bw, element.Gate); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeTangeloGate(w *bufio.Writer, info gate.Info) error {
	switch {
	case info.Kind == gate.M:
		qubit, bit, err := gate.UnpackM(info)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "MEASURE %d %d\n", qubit, bit)
		return err

	case gate.IsOneTarget(info.Kind):
		target, err := gate.UnpackOneTarget(info)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s %d\n", info.Kind, target)
		return err

	case gate.IsOneTargetOneAngle(info.Kind):
		target, angle, err := gate.UnpackOneTargetOneAngle(info)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s %d %s\n", info.Kind, target, formatAngle(angle))
		return err

	case gate.IsOneControlOneTarget(info.Kind):
		control, target, err := gate.UnpackOneControlOneTarget(info)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s %d %d\n", info.Kind, control, target)
		return err

	case gate.IsOneControlOneTargetOneAngle(info.Kind):
		control, target, angle, err := gate.UnpackOneControlOneTargetOneAngle(info)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s %d %d %s\n", info.Kind, control, target, formatAngle(angle))
		return err

	default:
		return qerr.New(qerr.LogicBug, "WriteTangeloCircuit: gate kind %s is not representable in the Tangelo subset", info.Kind)
	}
}
