// Package circuit implements the mutable boolean-circuit DAG: gates,
// inputs, outputs, users (reverse edges), blocks, and the mutation,
// traversal and structural-query operations built on top of them.
package circuit

import (
	"github.com/sirupsen/logrus"

	"github.com/SPbSAT/cirbo-sub000/gate"
)

var log = logrus.WithField("component", "circuit")

// Circuit is a mutable DAG of Gate nodes. Invariants maintained by
// every exported mutator:
//
//  1. every gate's operands refer to gates already present;
//  2. the `users` map is the exact reverse of every gate's operands;
//  3. output labels always name gates present in the circuit;
//  4. the DAG is acyclic;
//  5. INPUT-typed gates and only INPUT-typed gates appear in `inputs`;
//  6. blocks only ever reference gates present in the circuit.
type Circuit struct {
	gates   map[Label]*Gate
	order   []Label // insertion order, for deterministic iteration
	inputs  []Label
	outputs []Label
	users   map[Label][]Label
	blocks  map[string]*Block
}

// New returns an empty circuit.
func New() *Circuit {
	return &Circuit{
		gates:  map[Label]*Gate{},
		users:  map[Label][]Label{},
		blocks: map[string]*Block{},
	}
}

func (c *Circuit) Gate(label Label) (*Gate, bool) {
	g, ok := c.gates[label]
	return g, ok
}

func (c *Circuit) GatesNumber() int { return len(c.gates) }

// GateLabels returns every gate label in insertion order.
func (c *Circuit) GateLabels() []Label {
	out := make([]Label, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Circuit) Inputs() []Label {
	out := make([]Label, len(c.inputs))
	copy(out, c.inputs)
	return out
}

func (c *Circuit) Outputs() []Label {
	out := make([]Label, len(c.outputs))
	copy(out, c.outputs)
	return out
}

// Users returns the labels of every gate that takes `label` as an
// operand.
func (c *Circuit) Users(label Label) []Label {
	out := make([]Label, len(c.users[label]))
	copy(out, c.users[label])
	return out
}

func (c *Circuit) hasGate(label Label) bool {
	_, ok := c.gates[label]
	return ok
}

func (c *Circuit) checkOperandsExist(operands []Label) error {
	for _, op := range operands {
		if !c.hasGate(op) {
			return newError(KindGateAbsent, "AddGate", "operand %q does not exist", op)
		}
	}
	return nil
}

func (c *Circuit) addUsers(g *Gate) {
	for _, op := range g.Operands {
		c.users[op] = append(c.users[op], g.Label)
	}
}

func (c *Circuit) removeUsers(g *Gate) {
	for _, op := range g.Operands {
		users := c.users[op]
		for i, u := range users {
			if u == g.Label {
				c.users[op] = append(users[:i], users[i+1:]...)
				break
			}
		}
	}
}

// AddGate inserts a fully-built gate, checking that its label is new
// and every operand already exists.
func (c *Circuit) AddGate(g *Gate) error {
	if c.hasGate(g.Label) {
		return newError(KindGateExists, "AddGate", "gate %q already exists", g.Label)
	}
	if err := c.checkOperandsExist(g.Operands); err != nil {
		return err
	}
	stored := newGate(g.Label, g.Type, g.Operands)
	c.gates[g.Label] = stored
	c.order = append(c.order, g.Label)
	c.addUsers(stored)
	if g.Type == gate.INPUT {
		c.inputs = append(c.inputs, g.Label)
	}
	return nil
}

// EmplaceGate builds and inserts a gate in one call.
func (c *Circuit) EmplaceGate(label Label, t gate.Type, operands ...Label) error {
	return c.AddGate(&Gate{Label: label, Type: t, Operands: operands})
}

// MarkAsOutput declares an existing gate as a circuit output. It
// always appends, so a gate marked twice appears twice in Outputs,
// each occurrence a separate output.
func (c *Circuit) MarkAsOutput(label Label) error {
	if !c.hasGate(label) {
		return newError(KindGateAbsent, "MarkAsOutput", "gate %q does not exist", label)
	}
	c.outputs = append(c.outputs, label)
	return nil
}

// SetOutputs replaces the output list wholesale.
func (c *Circuit) SetOutputs(labels []Label) error {
	for _, l := range labels {
		if !c.hasGate(l) {
			return newError(KindGateAbsent, "SetOutputs", "gate %q does not exist", l)
		}
	}
	c.outputs = append([]Label(nil), labels...)
	return nil
}

// OrderOutputs reorders the existing output list so it starts with
// `order`, appending any current outputs not mentioned in `order`
// afterwards. `order` must be a subset of the current outputs.
func (c *Circuit) OrderOutputs(order []Label) error {
	reordered, err := orderPreserving(order, c.outputs)
	if err != nil {
		return newError(KindGateAbsent, "OrderOutputs", "%v", err)
	}
	c.outputs = reordered
	return nil
}

// RenameGate renames a gate, rewriting every reference to it (its own
// label, any operand lists that mention it, and input/output lists).
func (c *Circuit) RenameGate(old, newLabel Label) error {
	g, ok := c.gates[old]
	if !ok {
		return newError(KindGateAbsent, "RenameGate", "gate %q does not exist", old)
	}
	if c.hasGate(newLabel) {
		return newError(KindGateExists, "RenameGate", "gate %q already exists", newLabel)
	}

	renamed := newGate(newLabel, g.Type, g.Operands)
	delete(c.gates, old)
	c.gates[newLabel] = renamed
	for i, l := range c.order {
		if l == old {
			c.order[i] = newLabel
		}
	}
	for _, other := range c.gates {
		for i, op := range other.Operands {
			if op == old {
				other.Operands[i] = newLabel
			}
		}
	}
	c.users[newLabel] = c.users[old]
	delete(c.users, old)
	for _, users := range c.users {
		for i, u := range users {
			if u == old {
				users[i] = newLabel
			}
		}
	}
	for i, l := range c.inputs {
		if l == old {
			c.inputs[i] = newLabel
		}
	}
	for i, l := range c.outputs {
		if l == old {
			c.outputs[i] = newLabel
		}
	}
	for _, b := range c.blocks {
		b.renameGate(old, newLabel)
	}
	return nil
}

// RemoveGate deletes a gate that has no users and is not an output.
func (c *Circuit) RemoveGate(label Label) error {
	g, ok := c.gates[label]
	if !ok {
		return newError(KindGateAbsent, "RemoveGate", "gate %q does not exist", label)
	}
	if len(c.users[label]) > 0 {
		return newError(KindGateHasUsers, "RemoveGate", "gate %q still has users", label)
	}
	for _, o := range c.outputs {
		if o == label {
			return newError(KindGateHasUsers, "RemoveGate", "gate %q is an output", label)
		}
	}
	c.removeUsers(g)
	delete(c.gates, label)
	delete(c.users, label)
	for i, l := range c.order {
		if l == label {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	if g.Type == gate.INPUT {
		for i, l := range c.inputs {
			if l == label {
				c.inputs = append(c.inputs[:i], c.inputs[i+1:]...)
				break
			}
		}
	}
	return nil
}

// ReplaceGate swaps a gate's type and operands in place, keeping its
// label, users and output status; it rolls back on the new operands
// introducing a cycle.
func (c *Circuit) ReplaceGate(label Label, t gate.Type, operands []Label) error {
	old, ok := c.gates[label]
	if !ok {
		return newError(KindGateAbsent, "ReplaceGate", "gate %q does not exist", label)
	}
	if err := c.checkOperandsExist(operands); err != nil {
		return err
	}
	c.removeUsers(old)
	replacement := newGate(label, t, operands)
	c.gates[label] = replacement
	c.addUsers(replacement)

	if err := c.CheckAcyclic(); err != nil {
		// roll back
		c.removeUsers(replacement)
		c.gates[label] = old
		c.addUsers(old)
		return err
	}
	return nil
}
