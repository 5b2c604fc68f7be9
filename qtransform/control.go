package qtransform

import (
	"qpesim/gate"
	"qpesim/matrix"
	"qpesim/qcircuit"
	"qpesim/qerr"
)

func checkIndicesUnique(indices []int) error {
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if seen[idx] {
			return qerr.New(qerr.DuplicateIndex, "index %d appears more than once", idx)
		}
		seen[idx] = true
	}
	return nil
}

func checkNoOverlap(mapped, controls []int) error {
	controlSet := make(map[int]bool, len(controls))
	for _, c := range controls {
		controlSet[c] = true
	}
	for _, m := range mapped {
		if controlSet[m] {
			return qerr.New(qerr.OverlapBetweenControlsAndMapped, "mapped qubit %d overlaps with a control qubit", m)
		}
	}
	return nil
}

func checkFitOnNewCircuit(mapped, controls []int, nNewQubits int) error {
	if len(mapped)+len(controls) > nNewQubits {
		return qerr.New(qerr.IndexOutOfRange, "the mapped and control qubits (%d total) do not fit onto %d qubits", len(mapped)+len(controls), nNewQubits)
	}
	for _, c := range controls {
		if c < 0 || c >= nNewQubits {
			return qerr.New(qerr.IndexOutOfRange, "control qubit %d is outside the range of the new circuit's %d qubits", c, nNewQubits)
		}
	}
	for _, m := range mapped {
		if m < 0 || m >= nNewQubits {
			return qerr.New(qerr.IndexOutOfRange, "mapped qubit %d is outside the range of the new circuit's %d qubits", m, nNewQubits)
		}
	}
	return nil
}

// MakeControlled returns a new circuit of nNewQubits qubits in which
// every gate of subcircuit is controlled by control, with subcircuit's
// own qubit indices remapped through mappedQubits (mappedQubits[i] is
// the new index of subcircuit qubit i).
func MakeControlled(subcircuit *qcircuit.Circuit, nNewQubits, control int, mappedQubits []int) (*qcircuit.Circuit, error) {
	if len(mappedQubits) != subcircuit.NQubits {
		return nil, qerr.New(qerr.ShapeMismatch, "got %d mapped qubit indices, subcircuit has %d qubits", len(mappedQubits), subcircuit.NQubits)
	}
	if err := checkIndicesUnique(mappedQubits); err != nil {
		return nil, err
	}
	if err := checkNoOverlap(mappedQubits, []int{control}); err != nil {
		return nil, err
	}
	if err := checkFitOnNewCircuit(mappedQubits, []int{control}, nNewQubits); err != nil {
		return nil, err
	}

	newCircuit := qcircuit.New(nNewQubits, subcircuit.NBits)

	for _, element := range subcircuit.Elements {
		if element.Kind != qcircuit.ElementGate {
			return nil, qerr.New(qerr.LogicBug, "MakeControlled only supports flat gate sequences, found element kind %d", element.Kind)
		}
		info := element.Gate
		if info.Kind == gate.M {
			return nil, qerr.New(qerr.MeasurementInControlled, "cannot make a measurement gate controlled")
		}

		if err := addControlledGateFromInfo(newCircuit, subcircuit, info, mappedQubits, control); err != nil {
			return nil, err
		}
	}

	return newCircuit, nil
}

func addControlledGateFromInfo(newCircuit, subcircuit *qcircuit.Circuit, info gate.Info, mappedQubits []int, control int) error {
	switch {
	case gate.IsOneTarget(info.Kind):
		target, err := gate.UnpackOneTarget(info)
		if err != nil {
			return err
		}
		return newCircuit.AddOneControlOneTargetGate(oneTargetToControlled(info.Kind), control, mappedQubits[target])

	case gate.IsOneTargetOneAngle(info.Kind):
		target, angle, err := gate.UnpackOneTargetOneAngle(info)
		if err != nil {
			return err
		}
		return newCircuit.AddOneControlOneTargetOneAngleGate(oneTargetAngleToControlled(info.Kind), control, mappedQubits[target], angle)

	case gate.IsOneControlOneTarget(info.Kind):
		origControl, target, err := gate.UnpackOneControlOneTarget(info)
		if err != nil {
			return err
		}
		m := gate.Matrix(underlyingOneTargetKind(info.Kind))
		return applyDoublyControlledGate(newCircuit, m, control, mappedQubits[origControl], mappedQubits[target])

	case gate.IsOneControlOneTargetOneAngle(info.Kind):
		origControl, target, angle, err := gate.UnpackOneControlOneTargetOneAngle(info)
		if err != nil {
			return err
		}
		m := gate.AngleMatrix(underlyingOneTargetAngleKind(info.Kind), angle)
		return applyDoublyControlledGate(newCircuit, m, control, mappedQubits[origControl], mappedQubits[target])

	case info.Kind == gate.U:
		target, poolIdx, err := gate.UnpackU(info)
		if err != nil {
			return err
		}
		return newCircuit.AddCUGate(control, mappedQubits[target], subcircuit.Matrix(poolIdx))

	case info.Kind == gate.CU:
		origControl, target, poolIdx, err := gate.UnpackCU(info)
		if err != nil {
			return err
		}
		return applyDoublyControlledGate(newCircuit, subcircuit.Matrix(poolIdx), control, mappedQubits[origControl], mappedQubits[target])

	default:
		return qerr.New(qerr.LogicBug, "addControlledGateFromInfo: unsupported gate kind %s", info.Kind)
	}
}

func oneTargetToControlled(k gate.Kind) gate.Kind {
	switch k {
	case gate.H:
		return gate.CH
	case gate.X:
		return gate.CX
	case gate.Y:
		return gate.CY
	case gate.Z:
		return gate.CZ
	case gate.SX:
		return gate.CSX
	default:
		return k
	}
}

func oneTargetAngleToControlled(k gate.Kind) gate.Kind {
	switch k {
	case gate.RX:
		return gate.CRX
	case gate.RY:
		return gate.CRY
	case gate.RZ:
		return gate.CRZ
	case gate.P:
		return gate.CP
	default:
		return k
	}
}

// applyDoublyControlledGate adds gates to newCircuit implementing a
// unitary m controlled by both c0 and c1 acting on target, using the
// standard square-root-of-V construction (Nielsen & Chuang §4.3):
// C1(sqrt(m)) ; CX(c0,c1) ; C1(sqrt(m)^dagger) ; CX(c0,c1) ; C0(sqrt(m))
func applyDoublyControlledGate(newCircuit *qcircuit.Circuit, m matrix.Matrix2x2, c0, c1, target int) error {
	root := m.Sqrt()
	rootDagger := root.ConjugateTranspose()

	if err := newCircuit.AddCUGate(c1, target, root); err != nil {
		return err
	}
	if err := newCircuit.AddOneControlOneTargetGate(gate.CX, c0, c1); err != nil {
		return err
	}
	if err := newCircuit.AddCUGate(c1, target, rootDagger); err != nil {
		return err
	}
	if err := newCircuit.AddOneControlOneTargetGate(gate.CX, c0, c1); err != nil {
		return err
	}
	if err := newCircuit.AddCUGate(c0, target, root); err != nil {
		return err
	}
	return nil
}

// MakeMultiplicityControlled generalizes MakeControlled to an
// arbitrary number of control qubits.
func MakeMultiplicityControlled(subcircuit *qcircuit.Circuit, nNewQubits int, controlQubits, mappedQubits []int) (*qcircuit.Circuit, error) {
	if len(controlQubits) == 1 {
		return MakeControlled(subcircuit, nNewQubits, controlQubits[0], mappedQubits)
	}

	if len(mappedQubits) != subcircuit.NQubits {
		return nil, qerr.New(qerr.ShapeMismatch, "got %d mapped qubit indices, subcircuit has %d qubits", len(mappedQubits), subcircuit.NQubits)
	}
	if err := checkIndicesUnique(mappedQubits); err != nil {
		return nil, err
	}
	if err := checkIndicesUnique(controlQubits); err != nil {
		return nil, err
	}
	if err := checkNoOverlap(mappedQubits, controlQubits); err != nil {
		return nil, err
	}
	if err := checkFitOnNewCircuit(mappedQubits, controlQubits, nNewQubits); err != nil {
		return nil, err
	}

	newCircuit := qcircuit.New(nNewQubits, subcircuit.NBits)

	for _, element := range subcircuit.Elements {
		if element.Kind != qcircuit.ElementGate {
			return nil, qerr.New(qerr.LogicBug, "MakeMultiplicityControlled only supports flat gate sequences, found element kind %d", element.Kind)
		}
		info := element.Gate
		if info.Kind == gate.M {
			return nil, qerr.New(qerr.MeasurementInControlled, "cannot make a measurement gate controlled")
		}

		if err := addMultiplicityControlledGateFromInfo(newCircuit, subcircuit, info, mappedQubits, controlQubits); err != nil {
			return nil, err
		}
	}

	return newCircuit, nil
}

func addMultiplicityControlledGateFromInfo(newCircuit, subcircuit *qcircuit.Circuit, info gate.Info, mappedQubits, controlQubits []int) error {
	switch {
	case gate.IsOneTarget(info.Kind):
		target, err := gate.UnpackOneTarget(info)
		if err != nil {
			return err
		}
		return applyMultiplicityControlledUGate(newCircuit, gate.Matrix(info.Kind), mappedQubits[target], controlQubits)

	case gate.IsOneTargetOneAngle(info.Kind):
		target, angle, err := gate.UnpackOneTargetOneAngle(info)
		if err != nil {
			return err
		}
		return applyMultiplicityControlledUGate(newCircuit, gate.AngleMatrix(info.Kind, angle), mappedQubits[target], controlQubits)

	case gate.IsOneControlOneTarget(info.Kind):
		origControl, target, err := gate.UnpackOneControlOneTarget(info)
		if err != nil {
			return err
		}
		newControls := append(append([]int{}, controlQubits...), mappedQubits[origControl])
		return applyMultiplicityControlledUGate(newCircuit, gate.Matrix(underlyingOneTargetKind(info.Kind)), mappedQubits[target], newControls)

	case gate.IsOneControlOneTargetOneAngle(info.Kind):
		origControl, target, angle, err := gate.UnpackOneControlOneTargetOneAngle(info)
		if err != nil {
			return err
		}
		newControls := append(append([]int{}, controlQubits...), mappedQubits[origControl])
		return applyMultiplicityControlledUGate(newCircuit, gate.AngleMatrix(underlyingOneTargetAngleKind(info.Kind), angle), mappedQubits[target], newControls)

	case info.Kind == gate.U:
		target, poolIdx, err := gate.UnpackU(info)
		if err != nil {
			return err
		}
		return applyMultiplicityControlledUGate(newCircuit, subcircuit.Matrix(poolIdx), mappedQubits[target], controlQubits)

	case info.Kind == gate.CU:
		origControl, target, poolIdx, err := gate.UnpackCU(info)
		if err != nil {
			return err
		}
		newControls := append(append([]int{}, controlQubits...), mappedQubits[origControl])
		return applyMultiplicityControlledUGate(newCircuit, subcircuit.Matrix(poolIdx), mappedQubits[target], newControls)

	default:
		return qerr.New(qerr.LogicBug, "addMultiplicityControlledGateFromInfo: unsupported gate kind %s", info.Kind)
	}
}

// applyMultiplicityControlledUGate adds gates implementing m
// controlled by every qubit in controls, acting on target. It
// recurses on the square root of m, generalizing
// applyDoublyControlledGate to an arbitrary number of controls.
func applyMultiplicityControlledUGate(newCircuit *qcircuit.Circuit, m matrix.Matrix2x2, target int, controls []int) error {
	switch len(controls) {
	case 0:
		return newCircuit.AddUGate(target, m)
	case 1:
		return newCircuit.AddCUGate(controls[0], target, m)
	case 2:
		return applyDoublyControlledGate(newCircuit, m, controls[0], controls[1], target)
	default:
		outer := controls[len(controls)-1]
		inner := controls[:len(controls)-1]
		last := inner[len(inner)-1]

		root := m.Sqrt()
		rootDagger := root.ConjugateTranspose()

		if err := applyMultiplicityControlledUGate(newCircuit, root, target, inner); err != nil {
			return err
		}
		if err := newCircuit.AddOneControlOneTargetGate(gate.CX, outer, last); err != nil {
			return err
		}
		if err := applyMultiplicityControlledUGate(newCircuit, rootDagger, target, inner); err != nil {
			return err
		}
		if err := newCircuit.AddOneControlOneTargetGate(gate.CX, outer, last); err != nil {
			return err
		}
		outerInner := append(append([]int{}, inner[:len(inner)-1]...), outer)
		return applyMultiplicityControlledUGate(newCircuit, root, target, outerInner)
	}
}
