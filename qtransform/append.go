// Package qtransform implements the circuit-to-circuit operations:
// extending one circuit with another, structural equality, multi-
// control synthesis, and decomposition to the primitive gate set.
// Ported from mini-qiskit/circuit_operations/{append_circuits,
// compare_circuits,make_controlled_circuit}.hpp and
// kettle_internal/circuit_operations/transpile_to_primitive.cpp.
package qtransform

import (
	"qpesim/gate"
	"qpesim/qcircuit"
	"qpesim/qerr"
)

// Extend appends right's elements onto left in place. U/CU gates are
// re-added through left's own Add*Gate calls so their matrices land
// in left's pool at freshly allocated indices, and left's measure
// bitmask absorbs right's. It is an error for right to operate on a
// qubit left has already measured.
func Extend(left, right *qcircuit.Circuit) error {
	if left.NQubits != right.NQubits {
		return qerr.New(qerr.ShapeMismatch, "cannot extend circuits with different numbers of qubits (%d vs %d)", left.NQubits, right.NQubits)
	}
	if left.NBits != right.NBits {
		return qerr.New(qerr.ShapeMismatch, "cannot extend circuits with different numbers of bits (%d vs %d)", left.NBits, right.NBits)
	}

	for _, element := range right.Elements {
		if element.Kind == qcircuit.ElementGate {
			if err := checkNotOperatingOnMeasuredQubit(element.Gate, left.MeasureBitmask); err != nil {
				return err
			}
		}

		switch {
		case element.Kind == qcircuit.ElementGate && element.Gate.Kind == gate.U:
			target, poolIdx, err := gate.UnpackU(element.Gate)
			if err != nil {
				return err
			}
			m := right.Matrix(poolIdx)
			if err := left.AddUGate(target, m); err != nil {
				return err
			}

		case element.Kind == qcircuit.ElementGate && element.Gate.Kind == gate.CU:
			control, target, poolIdx, err := gate.UnpackCU(element.Gate)
			if err != nil {
				return err
			}
			m := right.Matrix(poolIdx)
			if err := left.AddCUGate(control, target, m); err != nil {
				return err
			}

		default:
			left.Elements = append(left.Elements, deepCopyElement(element))
		}
	}

	for qubit := range left.MeasureBitmask {
		left.MeasureBitmask[qubit] = left.MeasureBitmask[qubit] || right.MeasureBitmask[qubit]
	}

	return nil
}

// Append returns a new circuit equal to left extended with right,
// leaving both inputs untouched.
func Append(left, right *qcircuit.Circuit) (*qcircuit.Circuit, error) {
	result := cloneCircuit(left)
	if err := Extend(result, right); err != nil {
		return nil, err
	}
	return result, nil
}

func cloneCircuit(c *qcircuit.Circuit) *qcircuit.Circuit {
	clone := qcircuit.New(c.NQubits, c.NBits)
	for _, element := range c.Elements {
		switch {
		case element.Kind == qcircuit.ElementGate && element.Gate.Kind == gate.U:
			target, poolIdx, _ := gate.UnpackU(element.Gate)
			_ = clone.AddUGate(target, c.Matrix(poolIdx))
		case element.Kind == qcircuit.ElementGate && element.Gate.Kind == gate.CU:
			control, target, poolIdx, _ := gate.UnpackCU(element.Gate)
			_ = clone.AddCUGate(control, target, c.Matrix(poolIdx))
		default:
			clone.Elements = append(clone.Elements, deepCopyElement(element))
		}
	}
	copy(clone.MeasureBitmask, c.MeasureBitmask)
	return clone
}

// deepCopyElement copies element, recursively deep-copying IfBody and
// ElseBody so a clone's nested bodies never alias the source's
// backing slices. Sub-circuits in classical-if are owned exclusively
// by their parent element.
func deepCopyElement(element qcircuit.Element) qcircuit.Element {
	switch element.Kind {
	case qcircuit.ElementClassicalIf:
		element.IfBody = deepCopyElements(element.IfBody)
		element.ElseBody = nil
	case qcircuit.ElementClassicalIfElse:
		element.IfBody = deepCopyElements(element.IfBody)
		element.ElseBody = deepCopyElements(element.ElseBody)
	}
	return element
}

func deepCopyElements(elements []qcircuit.Element) []qcircuit.Element {
	if elements == nil {
		return nil
	}
	copied := make([]qcircuit.Element, len(elements))
	for i, element := range elements {
		copied[i] = deepCopyElement(element)
	}
	return copied
}

func checkNotOperatingOnMeasuredQubit(info gate.Info, measureBitmask []bool) error {
	switch {
	case gate.IsSingleQubitTransform(info.Kind) || info.Kind == gate.M:
		target, err := singleQubitTargetOf(info)
		if err != nil {
			return err
		}
		if measureBitmask[target] {
			return qerr.New(qerr.MeasuredQubitReuse, "qubit %d has already been measured", target)
		}
	case gate.IsDoubleQubitTransform(info.Kind):
		control, target, err := doubleQubitTargetsOf(info)
		if err != nil {
			return err
		}
		if measureBitmask[control] || measureBitmask[target] {
			return qerr.New(qerr.MeasuredQubitReuse, "control or target qubit has already been measured")
		}
	default:
		return qerr.New(qerr.LogicBug, "checkNotOperatingOnMeasuredQubit: unexpected gate kind %s", info.Kind)
	}
	return nil
}

func singleQubitTargetOf(info gate.Info) (int, error) {
	switch {
	case info.Kind == gate.M:
		qubit, _, err := gate.UnpackM(info)
		return qubit, err
	case gate.IsOneTarget(info.Kind):
		return gate.UnpackOneTarget(info)
	case gate.IsOneTargetOneAngle(info.Kind):
		target, _, err := gate.UnpackOneTargetOneAngle(info)
		return target, err
	case info.Kind == gate.U:
		target, _, err := gate.UnpackU(info)
		return target, err
	default:
		return 0, qerr.New(qerr.LogicBug, "singleQubitTargetOf: unexpected gate kind %s", info.Kind)
	}
}

func doubleQubitTargetsOf(info gate.Info) (control, target int, err error) {
	switch {
	case gate.IsOneControlOneTarget(info.Kind):
		return gate.UnpackOneControlOneTarget(info)
	case gate.IsOneControlOneTargetOneAngle(info.Kind):
		control, target, _, err = gate.UnpackOneControlOneTargetOneAngle(info)
		return control, target, err
	case info.Kind == gate.CU:
		control, target, _, err = gate.UnpackCU(info)
		return control, target, err
	default:
		return 0, 0, qerr.New(qerr.LogicBug, "doubleQubitTargetsOf: unexpected gate kind %s", info.Kind)
	}
}
