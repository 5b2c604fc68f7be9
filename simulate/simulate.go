// Package simulate implements the state-vector simulation kernel: a
// dispatch-by-kind loop that mutates a qstate.State in place, gate by
// gate, using pairgen's index enumerators. Primitive gates that admit
// a cheap update (X via swap, H via superposition, RX via rotation, CP
// via a single phase multiply, CX/CRX analogously on the controlled
// pair) use the specialized paths from mini-qiskit/operations.hpp and
// simulate.hpp; every other primitive goes through the generic 2x2
// transform.
package simulate

import (
	"math"
	"math/cmplx"

	"qpesim/gate"
	"qpesim/matrix"
	"qpesim/pairgen"
	"qpesim/qcircuit"
	"qpesim/qerr"
	"qpesim/qprng"
	"qpesim/qstate"
)

// Mode selects how M gates are handled during simulation.
type Mode int

const (
	// PureEvolution leaves the state in full superposition; M gates
	// change neither the state nor the classical register, and no
	// qubit-to-bit mapping is recorded.
	PureEvolution Mode = iota
	// CollapseOnMeasure draws from rng to collapse the state at each M
	// gate and writes the sampled outcome into the classical register.
	CollapseOnMeasure
)

// Options controls a single Run invocation.
type Options struct {
	Mode Mode
	RNG  qprng.PRNG // required when Mode == CollapseOnMeasure
}

// Run evolves state in place according to circuit's elements, using
// classicalRegister (length circuit.NBits) as the classical bit store
// read by predicates and written by measurement in CollapseOnMeasure
// mode.
func Run(circuit *qcircuit.Circuit, state *qstate.State, classicalRegister []int, opts Options) error {
	if circuit.NQubits != state.NQubits {
		return qerr.New(qerr.ShapeMismatch, "circuit has %d qubits, state has %d", circuit.NQubits, state.NQubits)
	}
	if len(classicalRegister) != circuit.NBits {
		return qerr.New(qerr.ShapeMismatch, "classical register has %d entries, circuit has %d bits", len(classicalRegister), circuit.NBits)
	}
	return runElements(circuit, circuit.Elements, state, classicalRegister, opts)
}

// RunStepwise behaves like Run but invokes onStep after each top-level
// element has been applied, for interactive step-by-step inspection.
// Elements nested inside a classical-if/if-else body are applied
// atomically within their enclosing top-level step; onStep is not
// called for them individually.
func RunStepwise(circuit *qcircuit.Circuit, state *qstate.State, classicalRegister []int, opts Options, onStep func(index int, element qcircuit.Element) error) error {
	if circuit.NQubits != state.NQubits {
		return qerr.New(qerr.ShapeMismatch, "circuit has %d qubits, state has %d", circuit.NQubits, state.NQubits)
	}
	if len(classicalRegister) != circuit.NBits {
		return qerr.New(qerr.ShapeMismatch, "classical register has %d entries, circuit has %d bits", len(classicalRegister), circuit.NBits)
	}

	for i, element := range circuit.Elements {
		if err := runElements(circuit, []qcircuit.Element{element}, state, classicalRegister, opts); err != nil {
			return err
		}
		if onStep != nil {
			if err := onStep(i, element); err != nil {
				return err
			}
		}
	}
	return nil
}

func runElements(circuit *qcircuit.Circuit, elements []qcircuit.Element, state *qstate.State, register []int, opts Options) error {
	for _, element := range elements {
		switch element.Kind {
		case qcircuit.ElementGate:
			if err := applyGate(circuit, element.Gate, state, register, opts); err != nil {
				return err
			}
		case qcircuit.ElementClassicalIf:
			if element.Predicate.Evaluate(register) {
				if err := runElements(circuit, element.IfBody, state, register, opts); err != nil {
					return err
				}
			}
		case qcircuit.ElementClassicalIfElse:
			if element.Predicate.Evaluate(register) {
				if err := runElements(circuit, element.IfBody, state, register, opts); err != nil {
					return err
				}
			} else {
				if err := runElements(circuit, element.ElseBody, state, register, opts); err != nil {
					return err
				}
			}
		case qcircuit.ElementLogger:
			// passed through untouched; the kernel has no logging sink of its own.
		default:
			return qerr.New(qerr.LogicBug, "unrecognized circuit element kind %d", element.Kind)
		}
	}
	return nil
}

func applyGate(circuit *qcircuit.Circuit, info gate.Info, state *qstate.State, register []int, opts Options) error {
	nQubits := state.NQubits

	switch info.Kind {
	case gate.M:
		return applyMeasurement(info, state, register, opts)

	case gate.X:
		return forEachSingle(info, nQubits, state, swapStates)
	case gate.H:
		return forEachSingle(info, nQubits, state, superposeStates)
	case gate.RX:
		qubit, theta, err := gate.UnpackOneTargetOneAngle(info)
		if err != nil {
			return err
		}
		return withSingleGenerator(qubit, nQubits, state, func(s *qstate.State, i0, i1 uint64) {
			turnStates(s, i0, i1, theta)
		})

	case gate.Y, gate.Z, gate.SX:
		qubit, err := gate.UnpackOneTarget(info)
		if err != nil {
			return err
		}
		m := gate.Matrix(info.Kind)
		return withSingleGenerator(qubit, nQubits, state, func(s *qstate.State, i0, i1 uint64) {
			generalGateTransform(s, i0, i1, m)
		})
	case gate.RY, gate.RZ, gate.P:
		qubit, theta, err := gate.UnpackOneTargetOneAngle(info)
		if err != nil {
			return err
		}
		m := gate.AngleMatrix(info.Kind, theta)
		return withSingleGenerator(qubit, nQubits, state, func(s *qstate.State, i0, i1 uint64) {
			generalGateTransform(s, i0, i1, m)
		})

	case gate.U:
		qubit, poolIdx, err := gate.UnpackU(info)
		if err != nil {
			return err
		}
		m := circuit.Matrix(poolIdx)
		return withSingleGenerator(qubit, nQubits, state, func(s *qstate.State, i0, i1 uint64) {
			generalGateTransform(s, i0, i1, m)
		})

	case gate.CX:
		return forEachDouble(info, nQubits, state, swapStates)
	case gate.CRX:
		control, target, theta, err := gate.UnpackOneControlOneTargetOneAngle(info)
		if err != nil {
			return err
		}
		return withDoubleGenerator(control, target, nQubits, state, func(s *qstate.State, i0, i1 uint64) {
			turnStates(s, i0, i1, theta)
		})
	case gate.CP:
		control, target, theta, err := gate.UnpackOneControlOneTargetOneAngle(info)
		if err != nil {
			return err
		}
		return withDoubleGenerator(control, target, nQubits, state, func(s *qstate.State, i0, i1 uint64) {
			controlledPhaseturnState(s, i1, theta)
		})

	case gate.CH, gate.CY, gate.CZ, gate.CSX:
		control, target, err := gate.UnpackOneControlOneTarget(info)
		if err != nil {
			return err
		}
		var m matrix.Matrix2x2
		switch info.Kind {
		case gate.CH:
			m = gate.Matrix(gate.H)
		case gate.CY:
			m = gate.Matrix(gate.Y)
		case gate.CZ:
			m = gate.Matrix(gate.Z)
		case gate.CSX:
			m = gate.Matrix(gate.SX)
		}
		return withDoubleGenerator(control, target, nQubits, state, func(s *qstate.State, i0, i1 uint64) {
			generalGateTransform(s, i0, i1, m)
		})
	case gate.CRY, gate.CRZ:
		control, target, theta, err := gate.UnpackOneControlOneTargetOneAngle(info)
		if err != nil {
			return err
		}
		var underlying gate.Kind
		if info.Kind == gate.CRY {
			underlying = gate.RY
		} else {
			underlying = gate.RZ
		}
		m := gate.AngleMatrix(underlying, theta)
		return withDoubleGenerator(control, target, nQubits, state, func(s *qstate.State, i0, i1 uint64) {
			generalGateTransform(s, i0, i1, m)
		})

	case gate.CU:
		control, target, poolIdx, err := gate.UnpackCU(info)
		if err != nil {
			return err
		}
		m := circuit.Matrix(poolIdx)
		return withDoubleGenerator(control, target, nQubits, state, func(s *qstate.State, i0, i1 uint64) {
			generalGateTransform(s, i0, i1, m)
		})

	default:
		return qerr.New(qerr.LogicBug, "simulate: unsupported gate kind %s; decompose before simulating", info.Kind)
	}
}

func withSingleGenerator(qubit, nQubits int, state *qstate.State, update func(*qstate.State, uint64, uint64)) error {
	if qubit < 0 || qubit >= nQubits {
		return qerr.New(qerr.IndexOutOfRange, "qubit index %d out of range [0, %d)", qubit, nQubits)
	}
	g := pairgen.NewSingleQubit(qubit, nQubits)
	for i := uint64(0); i < g.Size(); i++ {
		i0, i1 := g.Next()
		update(state, i0, i1)
	}
	return nil
}

func withDoubleGenerator(control, target, nQubits int, state *qstate.State, update func(*qstate.State, uint64, uint64)) error {
	if control < 0 || control >= nQubits || target < 0 || target >= nQubits {
		return qerr.New(qerr.IndexOutOfRange, "control/target qubit out of range [0, %d)", nQubits)
	}
	g := pairgen.NewDoubleQubit(control, target, nQubits)
	for i := uint64(0); i < g.Size(); i++ {
		i0, i1 := g.Next()
		update(state, i0, i1)
	}
	return nil
}

func forEachSingle(info gate.Info, nQubits int, state *qstate.State, update func(*qstate.State, uint64, uint64)) error {
	qubit, err := gate.UnpackOneTarget(info)
	if err != nil {
		return err
	}
	return withSingleGenerator(qubit, nQubits, state, update)
}

func forEachDouble(info gate.Info, nQubits int, state *qstate.State, update func(*qstate.State, uint64, uint64)) error {
	control, target, err := gate.UnpackOneControlOneTarget(info)
	if err != nil {
		return err
	}
	return withDoubleGenerator(control, target, nQubits, state, update)
}

func swapStates(state *qstate.State, i0, i1 uint64) {
	state.Amplitudes[i0], state.Amplitudes[i1] = state.Amplitudes[i1], state.Amplitudes[i0]
}

func superposeStates(state *qstate.State, i0, i1 uint64) {
	a0 := state.Amplitudes[i0]
	a1 := state.Amplitudes[i1]
	c := complex(1/math.Sqrt2, 0)
	state.Amplitudes[i0] = c * (a0 + a1)
	state.Amplitudes[i1] = c * (a0 - a1)
}

func turnStates(state *qstate.State, i0, i1 uint64, theta float64) {
	a0 := state.Amplitudes[i0]
	a1 := state.Amplitudes[i1]
	cost := complex(math.Cos(theta/2), 0)
	isint := complex(0, -math.Sin(theta/2))
	state.Amplitudes[i0] = a0*cost + a1*isint
	state.Amplitudes[i1] = a1*cost + a0*isint
}

func controlledPhaseturnState(state *qstate.State, i1 uint64, theta float64) {
	state.Amplitudes[i1] *= cmplx.Exp(complex(0, theta))
}

func generalGateTransform(state *qstate.State, i0, i1 uint64, m matrix.Matrix2x2) {
	a0 := state.Amplitudes[i0]
	a1 := state.Amplitudes[i1]
	state.Amplitudes[i0] = m.E00*a0 + m.E01*a1
	state.Amplitudes[i1] = m.E10*a0 + m.E11*a1
}

func applyMeasurement(info gate.Info, state *qstate.State, register []int, opts Options) error {
	qubit, bit, err := gate.UnpackM(info)
	if err != nil {
		return err
	}

	if opts.Mode == PureEvolution {
		// the state is left in superposition and the register is not
		// written; nothing records which qubit feeds which bit.
		return nil
	}

	if opts.RNG == nil {
		return qerr.New(qerr.LogicBug, "simulate: CollapseOnMeasure mode requires a PRNG")
	}

	nQubits := state.NQubits
	g := pairgen.NewSingleQubit(qubit, nQubits)
	var probOne float64
	for i := uint64(0); i < g.Size(); i++ {
		_, i1 := g.Next()
		amp := state.Amplitudes[i1]
		probOne += real(amp)*real(amp) + imag(amp)*imag(amp)
	}

	outcome := 0
	if opts.RNG.Float64() < probOne {
		outcome = 1
	}
	register[bit] = outcome

	var norm float64
	g = pairgen.NewSingleQubit(qubit, nQubits)
	for i := uint64(0); i < g.Size(); i++ {
		i0, i1 := g.Next()
		if outcome == 0 {
			state.Amplitudes[i1] = 0
			norm += real(state.Amplitudes[i0])*real(state.Amplitudes[i0]) + imag(state.Amplitudes[i0])*imag(state.Amplitudes[i0])
		} else {
			state.Amplitudes[i0] = 0
			norm += real(state.Amplitudes[i1])*real(state.Amplitudes[i1]) + imag(state.Amplitudes[i1])*imag(state.Amplitudes[i1])
		}
	}

	scale := complex(1/math.Sqrt(norm), 0)
	for idx := range state.Amplitudes {
		state.Amplitudes[idx] *= scale
	}
	return nil
}
