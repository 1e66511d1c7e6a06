package synth

import (
	"fmt"

	"github.com/SPbSAT/cirbo-sub000/circuit"
	"github.com/SPbSAT/cirbo-sub000/cnf"
	"github.com/SPbSAT/cirbo-sub000/gate"
)

// decode turns a satisfying model back into a concrete Circuit,
// following spec.md §4.E's decoding recipe: read each internal gate's
// predecessor pair and 4-bit truth table from the model, map the
// table back to a gate.Type, and assemble gates in increasing index
// order (which is already topological, since every predecessor index
// is strictly less than its gate's index).
func (e *encoder) decode(model map[cnf.Var]bool) (*circuit.Circuit, error) {
	val := func(v cnf.Var) bool { return model[v] }

	c := circuit.New()
	label := make([]circuit.Label, e.g)

	for i := 0; i < e.n; i++ {
		label[i] = circuit.Label(fmt.Sprintf("input_%d", i))
		if err := c.EmplaceGate(label[i], gate.INPUT); err != nil {
			return nil, err
		}
	}

	for _, g := range e.internalGates() {
		predA, predB, ok := e.decodePredecessors(g, val)
		if !ok {
			return nil, newError(KindNoSolution, "decode", "gate %d has no predecessor pair set in the model", g)
		}

		var tt4 [4]bool
		for k := 0; k < 4; k++ {
			p, q := k/2, k%2
			tt4[k] = val(e.fVar(g, p, q))
		}
		t, ok := gate.TypeFromTruthTable4(tt4, false)
		if !ok {
			return nil, newError(KindNoSolution, "decode", "gate %d's truth table %v matches no known operator", g, tt4)
		}

		gl := circuit.Label(fmt.Sprintf("gate_%d", g))
		label[g] = gl

		var operands []circuit.Label
		switch t.Arity() {
		case 0:
			operands = nil
		case 1:
			operands = []circuit.Label{label[predA]}
		default:
			operands = []circuit.Label{label[predA], label[predB]}
		}
		if err := c.EmplaceGate(gl, t, operands...); err != nil {
			return nil, err
		}
	}

	for j := 0; j < e.m; j++ {
		g, ok := e.decodeOutputGate(j, val)
		if !ok {
			return nil, newError(KindNoSolution, "decode", "output %d has no computing gate set in the model", j)
		}
		if err := c.MarkAsOutput(label[g]); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (e *encoder) decodePredecessors(g int, val func(cnf.Var) bool) (a, b int, ok bool) {
	for a := 0; a < g; a++ {
		for b := a + 1; b < g; b++ {
			if val(e.sVar(g, a, b)) {
				return a, b, true
			}
		}
	}
	return 0, 0, false
}

func (e *encoder) decodeOutputGate(j int, val func(cnf.Var) bool) (int, bool) {
	for _, g := range e.internalGates() {
		if val(e.hVar(j, g)) {
			return g, true
		}
	}
	return 0, false
}
