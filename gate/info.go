package gate

import "qpesim/qerr"

// MatrixPoolIndex identifies an entry in a circuit's side pool of
// Matrix2x2 values, used by U and CU gates.
type MatrixPoolIndex int

// Info is the fixed-shape tagged tuple every circuit element of kind
// Gate carries: a Kind tag, up to three integer arguments (qubit
// indices, a classical bit index, or a matrix pool index depending on
// kind), and one angle. Callers must go through the pack/unpack
// helpers below rather than populating fields directly.
type Info struct {
	Kind  Kind
	Arg0  int
	Arg1  int
	Arg2  int
	Angle float64
}

// PackOneTarget builds a GateInfo for a one-target, no-parameter gate.
func PackOneTarget(kind Kind, targetQubit int) Info {
	if !IsOneTarget(kind) {
		panic("gate: PackOneTarget called with kind " + kind.String())
	}
	return Info{Kind: kind, Arg0: targetQubit}
}

// UnpackOneTarget returns the target qubit of a one-target gate.
func UnpackOneTarget(info Info) (targetQubit int, err error) {
	if !IsOneTarget(info.Kind) {
		return 0, qerr.New(qerr.LogicBug, "UnpackOneTarget called on kind %s", info.Kind)
	}
	return info.Arg0, nil
}

// PackOneTargetOneAngle builds a GateInfo for a one-target, one-angle gate.
func PackOneTargetOneAngle(kind Kind, targetQubit int, angle float64) Info {
	if !IsOneTargetOneAngle(kind) {
		panic("gate: PackOneTargetOneAngle called with kind " + kind.String())
	}
	return Info{Kind: kind, Arg0: targetQubit, Angle: angle}
}

// UnpackOneTargetOneAngle returns the target qubit and angle of a
// one-target one-angle gate.
func UnpackOneTargetOneAngle(info Info) (targetQubit int, angle float64, err error) {
	if !IsOneTargetOneAngle(info.Kind) {
		return 0, 0, qerr.New(qerr.LogicBug, "UnpackOneTargetOneAngle called on kind %s", info.Kind)
	}
	return info.Arg0, info.Angle, nil
}

// PackOneControlOneTarget builds a GateInfo for a controlled,
// no-parameter gate.
func PackOneControlOneTarget(kind Kind, controlQubit, targetQubit int) Info {
	if !IsOneControlOneTarget(kind) {
		panic("gate: PackOneControlOneTarget called with kind " + kind.String())
	}
	return Info{Kind: kind, Arg0: controlQubit, Arg1: targetQubit}
}

// UnpackOneControlOneTarget returns the control and target qubits of a
// controlled, no-parameter gate.
func UnpackOneControlOneTarget(info Info) (controlQubit, targetQubit int, err error) {
	if !IsOneControlOneTarget(info.Kind) {
		return 0, 0, qerr.New(qerr.LogicBug, "UnpackOneControlOneTarget called on kind %s", info.Kind)
	}
	return info.Arg0, info.Arg1, nil
}

// PackOneControlOneTargetOneAngle builds a GateInfo for a controlled,
// one-angle gate.
func PackOneControlOneTargetOneAngle(kind Kind, controlQubit, targetQubit int, angle float64) Info {
	if !IsOneControlOneTargetOneAngle(kind) {
		panic("gate: PackOneControlOneTargetOneAngle called with kind " + kind.String())
	}
	return Info{Kind: kind, Arg0: controlQubit, Arg1: targetQubit, Angle: angle}
}

// UnpackOneControlOneTargetOneAngle returns the control qubit, target
// qubit, and angle of a controlled, one-angle gate.
func UnpackOneControlOneTargetOneAngle(info Info) (controlQubit, targetQubit int, angle float64, err error) {
	if !IsOneControlOneTargetOneAngle(info.Kind) {
		return 0, 0, 0, qerr.New(qerr.LogicBug, "UnpackOneControlOneTargetOneAngle called on kind %s", info.Kind)
	}
	return info.Arg0, info.Arg1, info.Angle, nil
}

// PackU builds a GateInfo for a generic one-target unitary, referring
// to its matrix by pool index.
func PackU(targetQubit int, poolIndex MatrixPoolIndex) Info {
	return Info{Kind: U, Arg0: targetQubit, Arg1: int(poolIndex)}
}

// UnpackU returns the target qubit and matrix pool index of a U gate.
func UnpackU(info Info) (targetQubit int, poolIndex MatrixPoolIndex, err error) {
	if info.Kind != U {
		return 0, 0, qerr.New(qerr.LogicBug, "UnpackU called on kind %s", info.Kind)
	}
	return info.Arg0, MatrixPoolIndex(info.Arg1), nil
}

// PackCU builds a GateInfo for a generic controlled unitary, referring
// to its matrix by pool index.
func PackCU(controlQubit, targetQubit int, poolIndex MatrixPoolIndex) Info {
	return Info{Kind: CU, Arg0: controlQubit, Arg1: targetQubit, Arg2: int(poolIndex)}
}

// UnpackCU returns the control qubit, target qubit, and matrix pool
// index of a CU gate.
func UnpackCU(info Info) (controlQubit, targetQubit int, poolIndex MatrixPoolIndex, err error) {
	if info.Kind != CU {
		return 0, 0, 0, qerr.New(qerr.LogicBug, "UnpackCU called on kind %s", info.Kind)
	}
	return info.Arg0, info.Arg1, MatrixPoolIndex(info.Arg2), nil
}

// PackM builds a GateInfo for a measurement of a qubit into a classical bit.
func PackM(qubit, bit int) Info {
	return Info{Kind: M, Arg0: qubit, Arg1: bit}
}

// UnpackM returns the qubit and classical bit index of an M gate.
func UnpackM(info Info) (qubit, bit int, err error) {
	if info.Kind != M {
		return 0, 0, qerr.New(qerr.LogicBug, "UnpackM called on kind %s", info.Kind)
	}
	return info.Arg0, info.Arg1, nil
}

// packControl builds the internal control-flow marker GateInfo, keyed
// by statement kind and the classical bit it predicates on. Other
// packages reach it only through PackControl.
func packControl(statementKind, bit int) Info {
	return Info{Kind: control, Arg0: statementKind, Arg1: bit}
}

// ControlKind reports whether info is the internal control marker, and
// if so returns its statement kind and predicate bit.
func ControlKind(info Info) (statementKind, bit int, ok bool) {
	if info.Kind != control {
		return 0, 0, false
	}
	return info.Arg0, info.Arg1, true
}

// PackControl exposes packControl outside this package without adding
// CONTROL to the public gate catalog.
func PackControl(statementKind, bit int) Info {
	return packControl(statementKind, bit)
}
