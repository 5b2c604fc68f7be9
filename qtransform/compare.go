package qtransform

import (
	"qpesim/gate"
	"qpesim/matrix"
	"qpesim/qcircuit"
	"reflect"
)

// AlmostEqual reports whether two circuits are structurally equal:
// same qubit/bit counts, same number of top-level elements, and each
// gate element pair of the same kind, either both M gates unpacking to
// the same qubit/bit, or both convertible to an equivalent U/CU gate
// whose matrices compare almost-equal. Because the kinds must match, a
// primitive gate never equals a U/CU gate carrying the same matrix.
// Classical-if elements compare by recursing into their
// bodies and comparing predicates by value.
func AlmostEqual(left, right *qcircuit.Circuit, toleranceSq float64) bool {
	if left.NQubits != right.NQubits || left.NBits != right.NBits {
		return false
	}
	if len(left.Elements) != len(right.Elements) {
		return false
	}

	for i := range left.Elements {
		if !elementsAlmostEqual(left, left.Elements[i], right, right.Elements[i], toleranceSq) {
			return false
		}
	}
	return true
}

func elementsAlmostEqual(left *qcircuit.Circuit, leftElem qcircuit.Element, right *qcircuit.Circuit, rightElem qcircuit.Element, toleranceSq float64) bool {
	if leftElem.Kind != rightElem.Kind {
		return false
	}

	switch leftElem.Kind {
	case qcircuit.ElementGate:
		return gatesAlmostEqual(left, leftElem.Gate, right, rightElem.Gate, toleranceSq)
	case qcircuit.ElementClassicalIf:
		return predicatesEqual(leftElem.Predicate, rightElem.Predicate) && bodiesAlmostEqual(left, leftElem.IfBody, right, rightElem.IfBody, toleranceSq)
	case qcircuit.ElementClassicalIfElse:
		return predicatesEqual(leftElem.Predicate, rightElem.Predicate) &&
			bodiesAlmostEqual(left, leftElem.IfBody, right, rightElem.IfBody, toleranceSq) &&
			bodiesAlmostEqual(left, leftElem.ElseBody, right, rightElem.ElseBody, toleranceSq)
	case qcircuit.ElementLogger:
		return leftElem.LoggerLabel == rightElem.LoggerLabel
	default:
		return false
	}
}

func predicatesEqual(left, right qcircuit.Predicate) bool {
	return left.Kind == right.Kind && left.ExpectedValue == right.ExpectedValue && reflect.DeepEqual(left.BitIndices, right.BitIndices)
}

func bodiesAlmostEqual(left *qcircuit.Circuit, leftBody []qcircuit.Element, right *qcircuit.Circuit, rightBody []qcircuit.Element, toleranceSq float64) bool {
	if len(leftBody) != len(rightBody) {
		return false
	}
	for i := range leftBody {
		if !elementsAlmostEqual(left, leftBody[i], right, rightBody[i], toleranceSq) {
			return false
		}
	}
	return true
}

func gatesAlmostEqual(left *qcircuit.Circuit, leftInfo gate.Info, right *qcircuit.Circuit, rightInfo gate.Info, toleranceSq float64) bool {
	leftIsM := leftInfo.Kind == gate.M
	rightIsM := rightInfo.Kind == gate.M
	if leftIsM != rightIsM {
		return false
	}
	if leftIsM {
		leftQubit, leftBit, err1 := gate.UnpackM(leftInfo)
		rightQubit, rightBit, err2 := gate.UnpackM(rightInfo)
		return err1 == nil && err2 == nil && leftQubit == rightQubit && leftBit == rightBit
	}

	if leftInfo.Kind != rightInfo.Kind {
		return false
	}

	leftU, leftMat, okLeft := asUGate(left, leftInfo)
	rightU, rightMat, okRight := asUGate(right, rightInfo)
	if !okLeft || !okRight {
		return false
	}
	if !matchingUGateInfo(leftU, rightU) {
		return false
	}
	return matrix.AlmostEq(leftMat, rightMat, toleranceSq)
}

// asUGate normalizes any non-M gate to its (kind, U-or-CU-shaped info,
// matrix) form, so primitive gates and generic U/CU gates can be
// compared uniformly.
func asUGate(c *qcircuit.Circuit, info gate.Info) (gate.Info, matrix.Matrix2x2, bool) {
	switch {
	case info.Kind == gate.U:
		_, poolIdx, err := gate.UnpackU(info)
		if err != nil {
			return gate.Info{}, matrix.Matrix2x2{}, false
		}
		return info, c.Matrix(poolIdx), true

	case info.Kind == gate.CU:
		control, target, poolIdx, err := gate.UnpackCU(info)
		if err != nil {
			return gate.Info{}, matrix.Matrix2x2{}, false
		}
		return gate.PackCU(control, target, 0), c.Matrix(poolIdx), true

	case gate.IsOneTarget(info.Kind):
		target, err := gate.UnpackOneTarget(info)
		if err != nil {
			return gate.Info{}, matrix.Matrix2x2{}, false
		}
		return gate.PackU(target, 0), gate.Matrix(info.Kind), true

	case gate.IsOneTargetOneAngle(info.Kind):
		target, angle, err := gate.UnpackOneTargetOneAngle(info)
		if err != nil {
			return gate.Info{}, matrix.Matrix2x2{}, false
		}
		return gate.PackU(target, 0), gate.AngleMatrix(info.Kind, angle), true

	case gate.IsOneControlOneTarget(info.Kind):
		control, target, err := gate.UnpackOneControlOneTarget(info)
		if err != nil {
			return gate.Info{}, matrix.Matrix2x2{}, false
		}
		return gate.PackCU(control, target, 0), gate.Matrix(underlyingOneTargetKind(info.Kind)), true

	case gate.IsOneControlOneTargetOneAngle(info.Kind):
		control, target, angle, err := gate.UnpackOneControlOneTargetOneAngle(info)
		if err != nil {
			return gate.Info{}, matrix.Matrix2x2{}, false
		}
		return gate.PackCU(control, target, 0), gate.AngleMatrix(underlyingOneTargetAngleKind(info.Kind), angle), true

	default:
		return gate.Info{}, matrix.Matrix2x2{}, false
	}
}

func underlyingOneTargetKind(k gate.Kind) gate.Kind {
	switch k {
	case gate.CH:
		return gate.H
	case gate.CX:
		return gate.X
	case gate.CY:
		return gate.Y
	case gate.CZ:
		return gate.Z
	case gate.CSX:
		return gate.SX
	default:
		return k
	}
}

func underlyingOneTargetAngleKind(k gate.Kind) gate.Kind {
	switch k {
	case gate.CRX:
		return gate.RX
	case gate.CRY:
		return gate.RY
	case gate.CRZ:
		return gate.RZ
	case gate.CP:
		return gate.P
	default:
		return k
	}
}

func matchingUGateInfo(left, right gate.Info) bool {
	if left.Kind != right.Kind {
		return false
	}
	switch left.Kind {
	case gate.U:
		leftTarget, _, _ := gate.UnpackU(left)
		rightTarget, _, _ := gate.UnpackU(right)
		return leftTarget == rightTarget
	case gate.CU:
		leftControl, leftTarget, _, _ := gate.UnpackCU(left)
		rightControl, rightTarget, _, _ := gate.UnpackCU(right)
		return leftControl == rightControl && leftTarget == rightTarget
	default:
		return false
	}
}
