package sat

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SPbSAT/cirbo-sub000/cnf"
)

var log = logrus.WithField("component", "sat")

// trailEntry records one assignment: the variable, its value, and
// whether it was a free decision (as opposed to a forced unit
// propagation), mirroring the teacher's DecisionTrail entries.
type trailEntry struct {
	v        cnf.Var
	value    bool
	decision bool
}

// CDCLSolver is a small, self-contained DPLL-with-unit-propagation
// solver, scaled down from the teacher's sat/cdcl.go: a watch-list-free
// clause scan, VSIDS-style activity-based decisions, and chronological
// backtracking. It has no clause learning, XOR support, or
// inprocessing — none of spec.md's encodings need them at the problem
// sizes this module targets (see DESIGN.md).
type CDCLSolver struct {
	variableActivity map[cnf.Var]float64
	activityInc      float64
	activityDecay    float64
	checkEvery       int
}

func NewCDCLSolver() *CDCLSolver {
	return &CDCLSolver{
		variableActivity: map[cnf.Var]float64{},
		activityInc:      1.0,
		activityDecay:    0.95,
		checkEvery:       2000,
	}
}

type solveState struct {
	formula    *cnf.CNF
	assignment map[cnf.Var]int8 // 0=unassigned, 1=true, -1=false
	trail      []trailEntry
	solver     *CDCLSolver
	deadline   time.Time
	decisions  int
}

func (s *solveState) litValue(l cnf.Lit) int8 {
	v := s.assignment[l.Var()]
	if v == 0 {
		return 0
	}
	if l.Negated() {
		return -v
	}
	return v
}

// propagate runs unit propagation to fixpoint. It returns false and
// the clause that fell empty on conflict.
func (s *solveState) propagate() (bool, cnf.Clause) {
	changed := true
	for changed {
		changed = false
		for _, clause := range s.formula.Clauses {
			unassignedCount := 0
			satisfied := false
			var unitLit cnf.Lit
			for _, l := range clause {
				v := s.litValue(l)
				if v == 1 {
					satisfied = true
					break
				}
				if v == 0 {
					unassignedCount++
					unitLit = l
				}
			}
			if satisfied {
				continue
			}
			if unassignedCount == 0 {
				return false, clause // conflict: every literal false
			}
			if unassignedCount == 1 {
				s.assign(unitLit.Var(), !unitLit.Negated(), false)
				changed = true
			}
		}
	}
	return true, nil
}

// onConflict bumps the activity of every variable in the conflicting
// clause and grows activityInc, the standard VSIDS move: rather than
// periodically rescale every stored activity, the increment itself
// grows so that older bumps decay relative to newer ones.
func (s *solveState) onConflict(conflict cnf.Clause) {
	s.bumpActivity(conflict)
	s.solver.activityInc /= s.solver.activityDecay
}

func (s *solveState) assign(v cnf.Var, value bool, decision bool) {
	iv := int8(-1)
	if value {
		iv = 1
	}
	s.assignment[v] = iv
	s.trail = append(s.trail, trailEntry{v: v, value: value, decision: decision})
}

func (s *solveState) undoTo(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		delete(s.assignment, s.trail[i].v)
	}
	s.trail = s.trail[:mark]
}

func (s *solveState) pickUnassigned() (cnf.Var, bool) {
	best := cnf.Var(0)
	bestActivity := -1.0
	for v := 1; v <= s.formula.NumVars; v++ {
		vv := cnf.Var(v)
		if s.assignment[vv] != 0 {
			continue
		}
		a := s.solver.variableActivity[vv]
		if a > bestActivity {
			bestActivity = a
			best = vv
		}
	}
	if best == 0 {
		return 0, false
	}
	return best, true
}

func (s *solveState) bumpActivity(clause cnf.Clause) {
	for _, l := range clause {
		s.solver.variableActivity[l.Var()] += s.solver.activityInc
	}
}

// search is iterative DPLL: decide, propagate, backtrack on conflict.
func (s *solveState) search(ctx context.Context) (bool, bool) { // (sat, timedOut)
	type choicePoint struct {
		mark      int
		v         cnf.Var
		triedBoth bool
	}
	var stack []choicePoint

	if ok, conflict := s.propagate(); !ok {
		s.onConflict(conflict)
		return false, false
	}

	for {
		s.decisions++
		if s.decisions%s.solver.checkEvery == 0 {
			select {
			case <-ctx.Done():
				return false, true
			default:
			}
		}

		v, ok := s.pickUnassigned()
		if !ok {
			return true, false // all variables assigned, no conflict
		}

		mark := len(s.trail)
		s.assign(v, true, true)
		stack = append(stack, choicePoint{mark: mark, v: v})

		for {
			ok, conflict := s.propagate()
			if ok {
				break // proceed to next decision
			}
			s.onConflict(conflict)
			// conflict: backtrack
			for {
				if len(stack) == 0 {
					return false, false // UNSAT
				}
				top := &stack[len(stack)-1]
				s.undoTo(top.mark)
				if !top.triedBoth {
					top.triedBoth = true
					s.assign(top.v, false, true)
					break
				}
				stack = stack[:len(stack)-1]
			}
		}
	}
}

func (s *CDCLSolver) Solve(ctx context.Context, formula *cnf.CNF, timeLimit time.Duration) (*Result, error) {
	entry := log.WithField("vars", formula.NumVars).WithField("clauses", len(formula.Clauses))
	entry.Debug("starting CDCL solve")

	runCtx := ctx
	var cancel context.CancelFunc
	if timeLimit > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeLimit)
		defer cancel()
	}

	for _, clause := range formula.Clauses {
		if len(clause) == 0 {
			entry.Debug("formula already contains an empty clause")
			return &Result{Status: UNSAT}, nil
		}
	}

	state := &solveState{
		formula:    formula,
		assignment: map[cnf.Var]int8{},
		solver:     s,
	}

	sat, timedOut := state.search(runCtx)
	if timedOut {
		entry.Info("CDCL solve timed out")
		return &Result{Status: TimedOut}, nil
	}
	if !sat {
		entry.Debug("CDCL solve returned UNSAT")
		return &Result{Status: UNSAT}, nil
	}

	model := make(map[cnf.Var]bool, formula.NumVars)
	for v := 1; v <= formula.NumVars; v++ {
		vv := cnf.Var(v)
		model[vv] = state.assignment[vv] == 1
	}
	entry.Info("CDCL solve found a model")
	return &Result{Status: SAT, Model: model}, nil
}
