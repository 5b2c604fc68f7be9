package qtransform

import (
	"qpesim/decompose"
	"qpesim/gate"
	"qpesim/qcircuit"
	"qpesim/qerr"
)

// TranspileToPrimitive returns a new circuit in which every U gate has
// been decomposed into primitive single-qubit gates via
// decompose.ToPrimitiveGates, and every CU gate into the controlled
// forms of those gates; primitive gates, M gates, logger
// markers, and classical control-flow bodies (transpiled recursively)
// pass through unchanged. Nested classical-if/if-else bodies share
// circuit's matrix pool, since their U/CU gates' pool indices were
// minted against it.
func TranspileToPrimitive(circuit *qcircuit.Circuit, toleranceSq float64) (*qcircuit.Circuit, error) {
	newCircuit := qcircuit.New(circuit.NQubits, circuit.NBits)
	if err := transpileInto(newCircuit, circuit, circuit.Elements, toleranceSq); err != nil {
		return nil, err
	}
	return newCircuit, nil
}

// transpileInto appends the transpiled form of elements (which belong
// to poolSource's pool) onto newCircuit.Elements.
func transpileInto(newCircuit, poolSource *qcircuit.Circuit, elements []qcircuit.Element, toleranceSq float64) error {
	for _, element := range elements {
		switch element.Kind {
		case qcircuit.ElementLogger:
			newCircuit.AddLoggerMarker(element.LoggerLabel)

		case qcircuit.ElementClassicalIf:
			transpiledBody, err := transpileBody(poolSource, element.IfBody, toleranceSq)
			if err != nil {
				return err
			}
			newCircuit.AddClassicalIf(element.Predicate, transpiledBody)

		case qcircuit.ElementClassicalIfElse:
			transpiledIf, err := transpileBody(poolSource, element.IfBody, toleranceSq)
			if err != nil {
				return err
			}
			transpiledElse, err := transpileBody(poolSource, element.ElseBody, toleranceSq)
			if err != nil {
				return err
			}
			newCircuit.AddClassicalIfElse(element.Predicate, transpiledIf, transpiledElse)

		case qcircuit.ElementGate:
			if err := transpileGate(newCircuit, poolSource, element.Gate, toleranceSq); err != nil {
				return err
			}

		default:
			return qerr.New(qerr.LogicBug, "TranspileToPrimitive: unrecognized element kind %d", element.Kind)
		}
	}
	return nil
}

func transpileBody(poolSource *qcircuit.Circuit, body []qcircuit.Element, toleranceSq float64) ([]qcircuit.Element, error) {
	scratch := qcircuit.New(poolSource.NQubits, poolSource.NBits)
	if err := transpileInto(scratch, poolSource, body, toleranceSq); err != nil {
		return nil, err
	}
	return scratch.Elements, nil
}

func transpileGate(newCircuit, poolSource *qcircuit.Circuit, info gate.Info, toleranceSq float64) error {
	if gate.IsPrimitive(info.Kind) || info.Kind == gate.M {
		newCircuit.Elements = append(newCircuit.Elements, qcircuit.Element{Kind: qcircuit.ElementGate, Gate: info})
		if info.Kind == gate.M {
			qubit, _, err := gate.UnpackM(info)
			if err != nil {
				return err
			}
			newCircuit.MeasureBitmask[qubit] = true
		}
		return nil
	}

	switch info.Kind {
	case gate.U:
		target, poolIdx, err := gate.UnpackU(info)
		if err != nil {
			return err
		}
		steps := decompose.ToPrimitiveGates(poolSource.Matrix(poolIdx), toleranceSq)
		return addDecomposedOneTarget(newCircuit, target, steps)

	case gate.CU:
		control, target, poolIdx, err := gate.UnpackCU(info)
		if err != nil {
			return err
		}
		steps := decompose.ToPrimitiveGates(poolSource.Matrix(poolIdx), toleranceSq)
		return addDecomposedOneControlOneTarget(newCircuit, control, target, steps)

	default:
		return qerr.New(qerr.LogicBug, "transpileGate: unsupported gate kind %s", info.Kind)
	}
}

func addDecomposedOneTarget(circuit *qcircuit.Circuit, target int, steps []decompose.PrimitiveGate) error {
	for _, step := range steps {
		if gate.IsAngleGate(step.Kind) {
			if err := circuit.AddOneTargetOneAngleGate(step.Kind, target, step.Angle); err != nil {
				return err
			}
		} else {
			if err := circuit.AddOneTargetGate(step.Kind, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func addDecomposedOneControlOneTarget(circuit *qcircuit.Circuit, control, target int, steps []decompose.PrimitiveGate) error {
	for _, step := range steps {
		if gate.IsAngleGate(step.Kind) {
			if err := circuit.AddOneControlOneTargetOneAngleGate(oneTargetAngleToControlled(step.Kind), control, target, step.Angle); err != nil {
				return err
			}
		} else {
			if err := circuit.AddOneControlOneTargetGate(oneTargetToControlled(step.Kind), control, target); err != nil {
				return err
			}
		}
	}
	return nil
}
