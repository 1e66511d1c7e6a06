package circuit

import (
	"github.com/SPbSAT/cirbo-sub000/gate"
	"github.com/SPbSAT/cirbo-sub000/ttable"
)

// EvaluateFull evaluates every gate reachable from the circuit's
// outputs under the given input assignment, returning a value for
// every visited gate. Inputs missing from `assignment` default to
// Undefined, following the reference implementation's behavior.
func (c *Circuit) EvaluateFull(assignment map[Label]gate.TriValue) (map[Label]gate.TriValue, error) {
	order, err := c.TopSort(false, false)
	if err != nil {
		return nil, err
	}
	values := make(map[Label]gate.TriValue, len(order))
	for _, label := range order {
		g := c.gates[label]
		if g.Type == gate.INPUT {
			if v, ok := assignment[label]; ok {
				values[label] = v
			} else {
				values[label] = gate.Undefined
			}
			continue
		}
		ops := make([]gate.TriValue, len(g.Operands))
		for i, op := range g.Operands {
			ops[i] = values[op]
		}
		values[label] = g.Type.Eval(ops...)
	}
	return values, nil
}

// Evaluate returns the value of each declared output, in output
// order, under the given assignment. Unlike the Python reference's
// evaluate_circuit (which folds all outputs together with AND), this
// returns one value per output.
func (c *Circuit) Evaluate(assignment map[Label]gate.TriValue) ([]gate.TriValue, error) {
	full, err := c.EvaluateFull(assignment)
	if err != nil {
		return nil, err
	}
	out := make([]gate.TriValue, len(c.outputs))
	for i, o := range c.outputs {
		out[i] = full[o]
	}
	return out, nil
}

// GetTruthTable enumerates every combination of the circuit's inputs
// (treated as boolean, i.e. not Undefined) and builds a ttable.Table
// of the resulting outputs.
func (c *Circuit) GetTruthTable() (*ttable.Table, error) {
	inputs := c.inputs
	n := len(inputs)
	m := len(c.outputs)
	table := ttable.New(n, m)
	for pattern := 0; pattern < (1 << uint(n)); pattern++ {
		assignment := make(map[Label]gate.TriValue, n)
		for i, in := range inputs {
			assignment[in] = gate.FromBool(ttable.Bit(pattern, i) == 1)
		}
		values, err := c.Evaluate(assignment)
		if err != nil {
			return nil, err
		}
		for o, v := range values {
			table.Set(o, pattern, v)
		}
	}
	return table, nil
}
