package synth

import "time"

// FixedGate pins one internal gate's predecessors and/or operator
// ahead of solving, the Go analogue of a caller adding unit clauses
// directly on s/f before handing the CNF to the solver (spec.md
// §4.E's "optional pre-fixed gate constraints"). Gate, A and B are
// global gate indices (inputs are 0..n-1, internal gates n..n+r-1).
// A zero-value FixedGate pins nothing; set HasPreds/HasType to opt in
// to each half independently.
type FixedGate struct {
	Gate     int
	A, B     int
	HasPreds bool
	Type     gateType4
	HasType  bool
}

// gateType4 is a 4-bit truth table, i.e. the same shape synth decodes
// gates from; fixing a gate's type means fixing its f[g,p,q]
// variables to these four bits.
type gateType4 = [4]bool

// ForbiddenWire forbids gate Gate from taking predecessors (A, B),
// the Go analogue of spec.md §4.E's "optional forbidden wires".
type ForbiddenWire struct {
	Gate, A, B int
}

// Options configures one Synthesize call.
type Options struct {
	// Basis restricts which operator a synthesized internal gate may
	// use. A nil Basis is rejected by Validate; callers pick one of
	// BasisAIG()/BasisXAIG()/BasisFULL() or build a custom one with
	// NewBasis.
	Basis Basis
	// TimeLimit bounds how long the solver may run; zero means no
	// limit.
	TimeLimit time.Duration
	// FixedGates and ForbiddenWires narrow the search space before
	// solving.
	FixedGates     []FixedGate
	ForbiddenWires []ForbiddenWire
}

// Validate checks option shape invariants that don't depend on the
// target size (order constraints on fixed gates and forbidden wires
// are checked once `size` is known, in encode.go, since they need the
// gate count to validate `A < B < Gate`).
func (o Options) Validate() error {
	if o.Basis == nil {
		return newError(KindBadBasis, "Options.Validate", "basis must not be nil")
	}
	if len(o.Basis) == 0 {
		return newError(KindBadBasis, "Options.Validate", "basis must not be empty")
	}
	for t := range o.Basis {
		if !encodable[t] {
			return newError(KindBadBasis, "Options.Validate", "basis contains non-encodable type %s", t)
		}
	}
	return nil
}
