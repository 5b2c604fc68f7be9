// Package qcircuit implements the circuit intermediate representation:
// an ordered sequence of gates and classical control-flow elements, a
// side pool of 2x2 matrices for generic unitaries, and the bookkeeping
// needed to extend and append circuits safely. It generalizes the
// teacher's circuit.go (Circuit/Gate/Add*Gate) to the fuller gate
// catalog and control-flow elements described by
// mini-qiskit/circuit_operations/append_circuits.hpp.
package qcircuit

import (
	"qpesim/gate"
	"qpesim/matrix"
	"qpesim/qerr"
)

// ElementKind discriminates the payload carried by an Element.
type ElementKind int

const (
	ElementGate ElementKind = iota
	ElementClassicalIf
	ElementClassicalIfElse
	ElementLogger
)

// PredicateKind selects whether a classical-if branch fires on the
// predicate bits matching ExpectedValue or not matching it.
type PredicateKind int

const (
	IfTrue PredicateKind = iota
	IfNot
)

// Predicate is the classical condition guarding a ClassicalIf or
// ClassicalIfElse element: it reads BitIndices from the measurement
// register, packs them (index 0 is the least significant bit) into an
// integer, and compares against ExpectedValue according to Kind.
type Predicate struct {
	BitIndices    []int
	ExpectedValue int
	Kind          PredicateKind
}

// Evaluate reports whether the predicate holds given a classical
// register (register[i] is the measured value of classical bit i).
func (p Predicate) Evaluate(register []int) bool {
	var packed int
	for i, bit := range p.BitIndices {
		if register[bit] != 0 {
			packed |= 1 << uint(i)
		}
	}
	matches := packed == p.ExpectedValue
	if p.Kind == IfNot {
		return !matches
	}
	return matches
}

// Element is one instruction in a Circuit. Exactly one payload field
// is meaningful, selected by Kind.
type Element struct {
	Kind ElementKind

	Gate gate.Info

	Predicate   Predicate
	IfBody      []Element
	ElseBody    []Element // only meaningful when Kind == ElementClassicalIfElse

	LoggerLabel string
}

// Circuit is an ordered sequence of Elements over a fixed number of
// qubits and classical bits, plus the side pool of matrices referenced
// by U/CU gates and the bitmask of qubits that have been measured.
type Circuit struct {
	NQubits int
	NBits   int

	Elements       []Element
	pool           []matrix.Matrix2x2
	MeasureBitmask []bool
}

// New creates an empty circuit over nQubits qubits and nBits
// classical bits.
func New(nQubits, nBits int) *Circuit {
	return &Circuit{
		NQubits:        nQubits,
		NBits:          nBits,
		MeasureBitmask: make([]bool, nQubits),
	}
}

// Matrix returns the pool entry at idx.
func (c *Circuit) Matrix(idx gate.MatrixPoolIndex) matrix.Matrix2x2 {
	return c.pool[idx]
}

// NMatrices returns the number of matrices currently in the pool.
func (c *Circuit) NMatrices() int {
	return len(c.pool)
}

func (c *Circuit) addToPool(m matrix.Matrix2x2) gate.MatrixPoolIndex {
	c.pool = append(c.pool, m)
	return gate.MatrixPoolIndex(len(c.pool) - 1)
}

func (c *Circuit) checkQubitRange(qubit int) error {
	if qubit < 0 || qubit >= c.NQubits {
		return qerr.New(qerr.IndexOutOfRange, "qubit index %d out of range [0, %d)", qubit, c.NQubits)
	}
	return nil
}

func (c *Circuit) checkBitRange(bit int) error {
	if bit < 0 || bit >= c.NBits {
		return qerr.New(qerr.IndexOutOfRange, "classical bit index %d out of range [0, %d)", bit, c.NBits)
	}
	return nil
}

func (c *Circuit) checkNotMeasured(qubit int) error {
	if c.MeasureBitmask[qubit] {
		return qerr.New(qerr.MeasuredQubitReuse, "qubit %d has already been measured", qubit)
	}
	return nil
}

func (c *Circuit) pushGate(info gate.Info) {
	c.Elements = append(c.Elements, Element{Kind: ElementGate, Gate: info})
}

// AddOneTargetGate appends a one-target, no-parameter gate (H, X, Y, Z, SX).
func (c *Circuit) AddOneTargetGate(kind gate.Kind, targetQubit int) error {
	if err := c.checkQubitRange(targetQubit); err != nil {
		return err
	}
	if err := c.checkNotMeasured(targetQubit); err != nil {
		return err
	}
	c.pushGate(gate.PackOneTarget(kind, targetQubit))
	return nil
}

// AddOneTargetOneAngleGate appends a one-target, one-angle gate (RX, RY, RZ, P).
func (c *Circuit) AddOneTargetOneAngleGate(kind gate.Kind, targetQubit int, angle float64) error {
	if err := c.checkQubitRange(targetQubit); err != nil {
		return err
	}
	if err := c.checkNotMeasured(targetQubit); err != nil {
		return err
	}
	c.pushGate(gate.PackOneTargetOneAngle(kind, targetQubit, angle))
	return nil
}

// AddOneControlOneTargetGate appends a controlled, no-parameter gate
// (CH, CX, CY, CZ, CSX).
func (c *Circuit) AddOneControlOneTargetGate(kind gate.Kind, controlQubit, targetQubit int) error {
	if err := c.checkControlTargetPair(controlQubit, targetQubit); err != nil {
		return err
	}
	c.pushGate(gate.PackOneControlOneTarget(kind, controlQubit, targetQubit))
	return nil
}

// AddOneControlOneTargetOneAngleGate appends a controlled, one-angle
// gate (CRX, CRY, CRZ, CP).
func (c *Circuit) AddOneControlOneTargetOneAngleGate(kind gate.Kind, controlQubit, targetQubit int, angle float64) error {
	if err := c.checkControlTargetPair(controlQubit, targetQubit); err != nil {
		return err
	}
	c.pushGate(gate.PackOneControlOneTargetOneAngle(kind, controlQubit, targetQubit, angle))
	return nil
}

func (c *Circuit) checkControlTargetPair(controlQubit, targetQubit int) error {
	if err := c.checkQubitRange(controlQubit); err != nil {
		return err
	}
	if err := c.checkQubitRange(targetQubit); err != nil {
		return err
	}
	if controlQubit == targetQubit {
		return qerr.New(qerr.DuplicateIndex, "control and target qubit are both %d", controlQubit)
	}
	if err := c.checkNotMeasured(controlQubit); err != nil {
		return err
	}
	if err := c.checkNotMeasured(targetQubit); err != nil {
		return err
	}
	return nil
}

// AddUGate appends a generic one-target unitary, storing m in the
// circuit's matrix pool.
func (c *Circuit) AddUGate(targetQubit int, m matrix.Matrix2x2) error {
	if err := c.checkQubitRange(targetQubit); err != nil {
		return err
	}
	if err := c.checkNotMeasured(targetQubit); err != nil {
		return err
	}
	idx := c.addToPool(m)
	c.pushGate(gate.PackU(targetQubit, idx))
	return nil
}

// AddCUGate appends a generic controlled unitary, storing m in the
// circuit's matrix pool.
func (c *Circuit) AddCUGate(controlQubit, targetQubit int, m matrix.Matrix2x2) error {
	if err := c.checkControlTargetPair(controlQubit, targetQubit); err != nil {
		return err
	}
	idx := c.addToPool(m)
	c.pushGate(gate.PackCU(controlQubit, targetQubit, idx))
	return nil
}

// AddMeasurement appends an M gate measuring qubit into classical bit.
func (c *Circuit) AddMeasurement(qubit, bit int) error {
	if err := c.checkQubitRange(qubit); err != nil {
		return err
	}
	if err := c.checkBitRange(bit); err != nil {
		return err
	}
	if err := c.checkNotMeasured(qubit); err != nil {
		return err
	}
	c.pushGate(gate.PackM(qubit, bit))
	c.MeasureBitmask[qubit] = true
	return nil
}

// AddClassicalIf appends a conditionally-executed sub-circuit body.
func (c *Circuit) AddClassicalIf(predicate Predicate, body []Element) {
	c.Elements = append(c.Elements, Element{Kind: ElementClassicalIf, Predicate: predicate, IfBody: body})
}

// AddClassicalIfElse appends an if/else pair of conditionally-executed
// sub-circuit bodies.
func (c *Circuit) AddClassicalIfElse(predicate Predicate, ifBody, elseBody []Element) {
	c.Elements = append(c.Elements, Element{Kind: ElementClassicalIfElse, Predicate: predicate, IfBody: ifBody, ElseBody: elseBody})
}

// AddLoggerMarker appends a diagnostic marker element carrying an
// opaque label; the simulator passes it through untouched.
func (c *Circuit) AddLoggerMarker(label string) {
	c.Elements = append(c.Elements, Element{Kind: ElementLogger, LoggerLabel: label})
}
