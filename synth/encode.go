package synth

import (
	"fmt"

	"github.com/SPbSAT/cirbo-sub000/cnf"
	"github.com/SPbSAT/cirbo-sub000/gate"
	"github.com/SPbSAT/cirbo-sub000/ttable"
)

// encoder builds the fixed-size circuit-existence CNF of spec.md
// §4.E: "does there exist a circuit of size r over basis B realizing
// model tt?" Variable naming (s/x/f/h) and clause groups 1-7 are
// ported 1:1 from the reference CircuitFinder
// (_init_default_cnf_formula), adapted to Go's typed cnf.Pool/CNF
// instead of pysat's IDPool/CNF.
type encoder struct {
	tt   *ttable.Table
	n, m int // input count, output count
	r    int // number of internal gates requested
	g    int // total gate count, n+r

	basis Basis
	pool  *cnf.Pool
	cnf   *cnf.CNF

	dontCareInput []bool // per pattern t, whether every output is '*'
}

func newEncoder(tt *ttable.Table, r int, basis Basis) *encoder {
	n, m := tt.InputSize(), tt.OutputSize()
	e := &encoder{
		tt:    tt,
		n:     n,
		m:     m,
		r:     r,
		g:     n + r,
		basis: basis,
		pool:  cnf.NewPool(),
		cnf:   cnf.NewCNF(),
	}
	rows := tt.Rows()
	e.dontCareInput = make([]bool, rows)
	for t := 0; t < rows; t++ {
		e.dontCareInput[t] = e.isDontCareInput(t)
	}
	return e
}

func (e *encoder) isDontCareInput(t int) bool {
	for j := 0; j < e.m; j++ {
		if e.tt.Get(j, t) != gate.Undefined {
			return false
		}
	}
	return true
}

func (e *encoder) internalGates() []int {
	out := make([]int, e.r)
	for i := range out {
		out[i] = e.n + i
	}
	return out
}

func (e *encoder) sVar(g, a, b int) cnf.Var {
	return e.pool.ID(fmt.Sprintf("s_%d_%d_%d", g, a, b))
}

func (e *encoder) xVar(g, t int) cnf.Var {
	return e.pool.ID(fmt.Sprintf("x_%d_%d", g, t))
}

func (e *encoder) fVar(g, p, q int) cnf.Var {
	return e.pool.ID(fmt.Sprintf("f_%d_%d_%d", g, p, q))
}

func (e *encoder) hVar(j, g int) cnf.Var {
	return e.pool.ID(fmt.Sprintf("h_%d_%d", j, g))
}

// build emits every clause group and returns the finished CNF. It
// mutates e.cnf in place and also returns it for convenience.
func (e *encoder) build(opts Options) (*cnf.CNF, error) {
	internal := e.internalGates()

	if e.m > 0 && len(internal) == 0 {
		// No internal gate can possibly compute any output; "exactly
		// one" over an empty set is unsatisfiable, but cnf.ExactlyOne
		// silently no-ops on an empty literal list, so make the
		// contradiction explicit.
		e.cnf.AddEmptyClause()
		return e.cnf, nil
	}

	// 1. inputs pinned
	for i := 0; i < e.n; i++ {
		for t := 0; t < e.tt.Rows(); t++ {
			if e.dontCareInput[t] {
				continue
			}
			v := e.xVar(i, t)
			if ttable.Bit(t, i) == 1 {
				e.cnf.AddClause(v.Pos())
			} else {
				e.cnf.AddClause(v.Neg())
			}
		}
	}

	// 2. exactly one predecessor pair per internal gate
	for _, g := range internal {
		var lits []cnf.Lit
		for a := 0; a < g; a++ {
			for b := a + 1; b < g; b++ {
				lits = append(lits, e.sVar(g, a, b).Pos())
			}
		}
		cnf.ExactlyOne(e.cnf, lits)
	}

	// 3. exactly one output assignment per output
	for j := 0; j < e.m; j++ {
		lits := make([]cnf.Lit, len(internal))
		for i, g := range internal {
			lits[i] = e.hVar(j, g).Pos()
		}
		cnf.ExactlyOne(e.cnf, lits)
	}

	// 4. functional consistency
	for _, g := range internal {
		for a := 0; a < g; a++ {
			for b := a + 1; b < g; b++ {
				e.addFunctionalConsistency(g, a, b)
			}
		}
	}

	// 5. output correctness
	for j := 0; j < e.m; j++ {
		for t := 0; t < e.tt.Rows(); t++ {
			if e.tt.Get(j, t) == gate.Undefined {
				continue
			}
			want := e.tt.Get(j, t) == gate.True
			for _, g := range internal {
				lit := e.xVar(g, t).Pos()
				if !want {
					lit = lit.Negate()
				}
				e.cnf.AddClause(e.hVar(j, g).Neg(), lit)
			}
		}
	}

	// 6. basis restriction
	for _, g := range internal {
		for _, forbidden := range e.basis.forbidden() {
			e.forbidOperator(g, forbidden)
		}
	}

	// 7. user constraints
	if err := e.applyFixedGates(opts.FixedGates); err != nil {
		return nil, err
	}
	if err := e.applyForbiddenWires(opts.ForbiddenWires); err != nil {
		return nil, err
	}

	return e.cnf, nil
}

// addFunctionalConsistency emits, for internal gate g with candidate
// predecessors (a, b), the clause family of spec.md §4.E group 4: for
// every (A,B,C) in {0,1}^3 and every non-dont-care pattern t,
//
//	¬s[g,a,b] ∨ (A?¬x[g,t]:x[g,t]) ∨ (B?¬x[a,t]:x[a,t]) ∨ (C?¬x[b,t]:x[b,t]) ∨ (A?f[g,B,C]:¬f[g,B,C])
func (e *encoder) addFunctionalConsistency(g, a, b int) {
	s := e.sVar(g, a, b)
	for hypA := 0; hypA < 2; hypA++ {
		for hypB := 0; hypB < 2; hypB++ {
			for hypC := 0; hypC < 2; hypC++ {
				for t := 0; t < e.tt.Rows(); t++ {
					if e.dontCareInput[t] {
						continue
					}
					clause := make(cnf.Clause, 0, 5)
					clause = append(clause, s.Neg())
					clause = append(clause, litIf(hypA == 1, e.xVar(g, t)))
					clause = append(clause, litIf(hypB == 1, e.xVar(a, t)))
					clause = append(clause, litIf(hypC == 1, e.xVar(b, t)))
					f := e.fVar(g, hypB, hypC)
					if hypA == 1 {
						clause = append(clause, f.Pos())
					} else {
						clause = append(clause, f.Neg())
					}
					e.cnf.AddClause(clause...)
				}
			}
		}
	}
}

// litIf returns the negative literal of v when negate is true, the
// positive one otherwise — the "(X? ¬v : v)" shorthand spec.md's
// clause formulas use throughout group 4.
func litIf(negate bool, v cnf.Var) cnf.Lit {
	if negate {
		return v.Neg()
	}
	return v.Pos()
}

// forbidOperator excludes the f[g,*,*] assignment matching t's 4-bit
// truth table from gate g, matching group 6.
func (e *encoder) forbidOperator(g int, t gate.Type) {
	tt4 := gate.TruthTable4(t)
	clause := make(cnf.Clause, 0, 4)
	for k := 0; k < 4; k++ {
		p, q := k/2, k%2
		f := e.fVar(g, p, q)
		if tt4[k] {
			clause = append(clause, f.Neg())
		} else {
			clause = append(clause, f.Pos())
		}
	}
	e.cnf.AddClause(clause...)
}

func (e *encoder) applyFixedGates(fixed []FixedGate) error {
	for _, fg := range fixed {
		if fg.Gate < e.n || fg.Gate >= e.g {
			return newError(KindFixGateOrder, "FixedGate", "gate %d is not an internal gate (valid range [%d,%d))", fg.Gate, e.n, e.g)
		}
		if fg.HasPreds {
			if !(fg.A < fg.B && fg.B < fg.Gate) {
				return newError(KindFixGateOrder, "FixedGate", "predecessors must satisfy A < B < Gate, got A=%d B=%d Gate=%d", fg.A, fg.B, fg.Gate)
			}
			e.cnf.AddClause(e.sVar(fg.Gate, fg.A, fg.B).Pos())
		}
		if fg.HasType {
			for k := 0; k < 4; k++ {
				p, q := k/2, k%2
				f := e.fVar(fg.Gate, p, q)
				if fg.Type[k] {
					e.cnf.AddClause(f.Pos())
				} else {
					e.cnf.AddClause(f.Neg())
				}
			}
		}
	}
	return nil
}

func (e *encoder) applyForbiddenWires(forbidden []ForbiddenWire) error {
	for _, fw := range forbidden {
		if fw.Gate < e.n || fw.Gate >= e.g {
			return newError(KindForbidWireOrder, "ForbiddenWire", "gate %d is not an internal gate (valid range [%d,%d))", fw.Gate, e.n, e.g)
		}
		if !(fw.A < fw.B && fw.B < fw.Gate) {
			return newError(KindForbidWireOrder, "ForbiddenWire", "wires must satisfy A < B < Gate, got A=%d B=%d Gate=%d", fw.A, fw.B, fw.Gate)
		}
		e.cnf.AddClause(e.sVar(fw.Gate, fw.A, fw.B).Neg())
	}
	return nil
}
