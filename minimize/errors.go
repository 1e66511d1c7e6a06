package minimize

import "fmt"

// Kind classifies a minimization failure, matching spec.md §7's
// Minimization error taxonomy.
type Kind int

const (
	// KindUnsupportedOperation means the host circuit cannot be
	// processed as given. Cut enumeration and region collection
	// (Enumerate, nodesOf) return it when a label they walk has no
	// gate in the circuit.
	KindUnsupportedOperation Kind = iota
	// KindFailedValidation means the optional post-pass equivalence
	// check disagreed with the original circuit.
	KindFailedValidation
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedOperation:
		return "UnsupportedOperation"
	case KindFailedValidation:
		return "FailedValidation"
	default:
		return "Unknown"
	}
}

// Error is minimize's typed error, in the same Op/Message/Kind shape
// as circuit.Error and synth.Error.
type Error struct {
	Kind    Kind
	Op      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("minimize: %s: %s: %s", e.Op, e.Kind, e.Message)
}

func newError(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}
