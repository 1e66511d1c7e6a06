// Package sat defines the pluggable SAT solver contract the
// synthesizer encodes circuits against, plus two backends: a small
// self-contained CDCL-style solver adapted from the teacher's sat
// package, and a github.com/go-air/gini-backed one for larger
// instances.
package sat

import (
	"context"
	"time"

	"github.com/SPbSAT/cirbo-sub000/cnf"
)

// Status is the three-way outcome spec.md requires from a solve
// attempt: satisfiable, unsatisfiable, or aborted by the time limit.
type Status int

const (
	UNSAT Status = iota
	SAT
	TimedOut
)

func (s Status) String() string {
	switch s {
	case UNSAT:
		return "UNSAT"
	case SAT:
		return "SAT"
	case TimedOut:
		return "TimedOut"
	default:
		return "Unknown"
	}
}

// Result carries a solver's verdict and, when SAT, a model mapping
// every variable to its assigned value.
type Result struct {
	Status Status
	Model  map[cnf.Var]bool
}

// Solver is the external SAT collaborator contract: solve(cnf,
// time_limit) -> UNSAT | SAT | TimedOut, as spec.md's component E
// names it.
type Solver interface {
	Solve(ctx context.Context, formula *cnf.CNF, timeLimit time.Duration) (*Result, error)
}
