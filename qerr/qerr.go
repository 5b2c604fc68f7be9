// Package qerr defines the error taxonomy shared across the simulator's
// core and ambient packages. Every package returns one of these kinds
// instead of an ad hoc error string, so callers can branch on failure
// class with errors.As.
package qerr

import "fmt"

// Kind identifies a class of failure, not a specific message.
type Kind int

const (
	// ShapeMismatch: qubit/bit counts don't match across operands.
	ShapeMismatch Kind = iota
	// IndexOutOfRange: a qubit or bit index is >= n_qubits/n_bits.
	IndexOutOfRange
	// DuplicateIndex: a mapped/control list contains repeats.
	DuplicateIndex
	// OverlapBetweenControlsAndMapped: control qubit indices overlap mapped qubit indices.
	OverlapBetweenControlsAndMapped
	// MeasuredQubitReuse: a gate acts on an already-measured qubit.
	MeasuredQubitReuse
	// MeasurementInControlled: an attempt to place M inside a controlled wrapper.
	MeasurementInControlled
	// MalformedBitstring: a character outside the allowed alphabet for the call.
	MalformedBitstring
	// IOFailure: a file cannot be opened or parsed.
	IOFailure
	// LogicBug: an invariant violated that should be impossible given valid input.
	LogicBug
)

func (k Kind) String() string {
	switch k {
	case ShapeMismatch:
		return "ShapeMismatch"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case DuplicateIndex:
		return "DuplicateIndex"
	case OverlapBetweenControlsAndMapped:
		return "OverlapBetweenControlsAndMapped"
	case MeasuredQubitReuse:
		return "MeasuredQubitReuse"
	case MeasurementInControlled:
		return "MeasurementInControlled"
	case MalformedBitstring:
		return "MalformedBitstring"
	case IOFailure:
		return "IOFailure"
	case LogicBug:
		return "LogicBug"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by this module's packages.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind that wraps an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}
