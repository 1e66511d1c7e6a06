package sat

import (
	"context"
	"time"

	"github.com/go-air/gini"
	giniz "github.com/go-air/gini/z"

	"github.com/SPbSAT/cirbo-sub000/cnf"
)

// GiniSolver adapts github.com/go-air/gini as an alternate Solver
// backend, for instances where the scaled-down CDCLSolver is too
// slow. It builds a gini.Sat incrementally from the CNF's clauses,
// mirroring how the example pack's OLM dependency resolver
// (pkg/controller/registry/resolver/solver) maps its own literals onto
// gini z.Lit values before calling Solve.
type GiniSolver struct{}

func NewGiniSolver() *GiniSolver { return &GiniSolver{} }

func toGiniLit(l cnf.Lit) giniz.Lit {
	v := giniz.Var(l.Var())
	lit := v.Pos()
	if l.Negated() {
		lit = v.Neg()
	}
	return lit
}

func (s *GiniSolver) Solve(ctx context.Context, formula *cnf.CNF, timeLimit time.Duration) (*Result, error) {
	entry := log.WithField("backend", "gini").WithField("vars", formula.NumVars)
	g := gini.New()

	for _, clause := range formula.Clauses {
		if len(clause) == 0 {
			return &Result{Status: UNSAT}, nil
		}
		for _, l := range clause {
			g.Add(toGiniLit(l))
		}
		g.Add(0)
	}

	resultCh := make(chan int, 1)
	go func() {
		resultCh <- g.Solve()
	}()

	runCtx := ctx
	var cancel context.CancelFunc
	if timeLimit > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeLimit)
		defer cancel()
	}

	select {
	case <-runCtx.Done():
		entry.Info("gini solve timed out")
		g.Try(0) // ask gini to stop searching
		return &Result{Status: TimedOut}, nil
	case outcome := <-resultCh:
		switch outcome {
		case 1: // gini.Sat
			model := make(map[cnf.Var]bool, formula.NumVars)
			for v := 1; v <= formula.NumVars; v++ {
				model[cnf.Var(v)] = g.Value(toGiniLit(cnf.Var(v).Pos()))
			}
			entry.Debug("gini solve found a model")
			return &Result{Status: SAT, Model: model}, nil
		case -1: // gini.Unsat
			return &Result{Status: UNSAT}, nil
		default:
			return &Result{Status: TimedOut}, nil
		}
	}
}
