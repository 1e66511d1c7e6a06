// Package cnf provides the small building blocks the synthesizer's
// SAT encoding is built from: a monotone string-keyed variable pool,
// a clause sink, and the "exactly one" clause gadget.
package cnf

import "fmt"

// Var is a 1-based CNF variable index.
type Var int

// Lit is a DIMACS-style signed literal: Var.Pos() for the positive
// occurrence, Var.Neg() for the negated one.
type Lit int

func (v Var) Pos() Lit { return Lit(v) }
func (v Var) Neg() Lit { return Lit(-v) }

func (l Lit) Var() Var {
	if l < 0 {
		return Var(-l)
	}
	return Var(l)
}

func (l Lit) Negated() bool { return l < 0 }

func (l Lit) Negate() Lit { return -l }

func (l Lit) String() string {
	if l < 0 {
		return fmt.Sprintf("-x%d", -l)
	}
	return fmt.Sprintf("x%d", l)
}

// Clause is a disjunction of literals.
type Clause []Lit

// CNF is a conjunction of clauses over a known number of variables.
type CNF struct {
	Clauses []Clause
	NumVars int
}

// ClauseSink is anything clauses can be appended to; both *CNF and
// higher-level encoders (which may additionally log or count clauses)
// satisfy it.
type ClauseSink interface {
	AddClause(lits ...Lit)
}

func NewCNF() *CNF {
	return &CNF{}
}

func (c *CNF) AddClause(lits ...Lit) {
	clause := make(Clause, len(lits))
	copy(clause, lits)
	c.Clauses = append(c.Clauses, clause)
	for _, l := range lits {
		if int(l.Var()) > c.NumVars {
			c.NumVars = int(l.Var())
		}
	}
}

// AddEmptyClause records an immediately-unsatisfiable formula; callers
// that detect a contradiction while building the encoding (e.g. a
// request for outputs with no internal gates) short-circuit through this rather
// than emitting ordinary clauses forever.
func (c *CNF) AddEmptyClause() {
	c.Clauses = append(c.Clauses, Clause{})
}

func (c *CNF) String() string {
	return fmt.Sprintf("CNF{vars=%d, clauses=%d}", c.NumVars, len(c.Clauses))
}

// Pool is a monotone, string-keyed variable pool: the same name
// always maps to the same Var, and each new name gets the next
// integer, mirroring the reference implementation's IDPool usage in
// circuit_search.py.
type Pool struct {
	next  Var
	names map[string]Var
}

func NewPool() *Pool {
	return &Pool{next: 1, names: map[string]Var{}}
}

func (p *Pool) ID(name string) Var {
	if v, ok := p.names[name]; ok {
		return v
	}
	v := p.next
	p.next++
	p.names[name] = v
	return v
}

// Len returns how many distinct variables have been minted so far.
func (p *Pool) Len() int { return int(p.next) - 1 }

// ExactlyOne emits the canonical "exactly one of these literals holds"
// gadget: one clause requiring at least one, plus a pairwise negative
// clause per pair forbidding two at once. This is the same gadget as
// the reference implementation's _add_exactly_one_of.
func ExactlyOne(sink ClauseSink, lits []Lit) {
	if len(lits) == 0 {
		return
	}
	sink.AddClause(lits...)
	for i := 0; i < len(lits); i++ {
		for j := i + 1; j < len(lits); j++ {
			sink.AddClause(lits[i].Negate(), lits[j].Negate())
		}
	}
}
