package circuit

import (
	"fmt"

	"github.com/SPbSAT/cirbo-sub000/gate"
)

// Copy returns a deep copy of the circuit, independent of the
// original. This is what callers performing a speculative mutation
// (the minimizer's cut-splice-then-verify loop) snapshot before
// calling ReplaceSubcircuit, so a cycle or equivalence failure can be
// rolled back by simply discarding the copy.
func (c *Circuit) Copy() *Circuit {
	out := New()
	for _, label := range c.order {
		g := c.gates[label]
		out.gates[label] = newGate(label, g.Type, g.Operands)
		out.order = append(out.order, label)
	}
	for label, users := range c.users {
		out.users[label] = append([]Label(nil), users...)
	}
	out.inputs = append([]Label(nil), c.inputs...)
	out.outputs = append([]Label(nil), c.outputs...)
	for name, b := range c.blocks {
		out.blocks[name] = &Block{
			name:    b.name,
			circuit: out,
			inputs:  append([]Label(nil), b.inputs...),
			gates:   append([]Label(nil), b.gates...),
			outputs: append([]Label(nil), b.outputs...),
		}
	}
	return out
}

func (c *Circuit) freshLabel(hint Label) Label {
	candidate := Label(fmt.Sprintf("__spliced_%s", hint))
	i := 0
	for c.hasGate(candidate) {
		candidate = Label(fmt.Sprintf("__spliced_%s_%d", hint, i))
		i++
	}
	return candidate
}

func (c *Circuit) redirectUsers(old, new Label) {
	if old == new {
		return
	}
	for i, o := range c.outputs {
		if o == old {
			c.outputs[i] = new
		}
	}
	for _, g := range c.gates {
		for i, op := range g.Operands {
			if op == old {
				c.removeUsers(g)
				g.Operands[i] = new
				c.addUsers(g)
			}
		}
	}
}

// ReplaceSubcircuit splices `sub` into the circuit. inputMapping maps
// each of sub's INPUT labels to an existing gate label in the host
// circuit that should feed that input. outputMapping maps each of
// sub's declared output labels to an existing host gate label whose
// users should be redirected to the spliced replacement. It returns a
// CycleIntroduced error (without mutating further) if the splice would
// create a cycle; callers that need a true rollback should operate on
// a Copy() and discard it on error.
func (c *Circuit) ReplaceSubcircuit(sub *Circuit, inputMapping, outputMapping map[Label]Label) error {
	for _, in := range sub.inputs {
		target, ok := inputMapping[in]
		if !ok {
			return newError(KindGateAbsent, "ReplaceSubcircuit", "no input mapping given for sub input %q", in)
		}
		if !c.hasGate(target) {
			return newError(KindGateAbsent, "ReplaceSubcircuit", "input mapping target %q does not exist", target)
		}
	}
	for _, out := range sub.outputs {
		target, ok := outputMapping[out]
		if !ok {
			return newError(KindGateAbsent, "ReplaceSubcircuit", "no output mapping given for sub output %q", out)
		}
		if !c.hasGate(target) {
			return newError(KindGateAbsent, "ReplaceSubcircuit", "output mapping target %q does not exist", target)
		}
	}

	order, err := sub.TopSort(false, false)
	if err != nil {
		return err
	}

	fresh := make(map[Label]Label, len(order))
	for in := range inputMapping {
		fresh[in] = inputMapping[in]
	}

	resolve := func(label Label) Label {
		if l, ok := fresh[label]; ok {
			return l
		}
		return label
	}

	for _, label := range order {
		g := sub.gates[label]
		if g.Type == gate.INPUT {
			continue // already resolved via inputMapping
		}
		newLabel := c.freshLabel(label)
		fresh[label] = newLabel
		operands := make([]Label, len(g.Operands))
		for i, op := range g.Operands {
			operands[i] = resolve(op)
		}
		if err := c.EmplaceGate(newLabel, g.Type, operands...); err != nil {
			return err
		}
	}

	for _, out := range sub.outputs {
		oldLabel := outputMapping[out]
		newDriver := resolve(out)
		c.redirectUsers(oldLabel, newDriver)
	}

	c.gcUnreachable()

	if err := c.CheckAcyclic(); err != nil {
		log.WithError(err).Debug("ReplaceSubcircuit introduced a cycle")
		return err
	}
	return nil
}

// gcUnreachable repeatedly removes non-input, non-output gates that
// have no users: once an output's old driver is redirected to its
// replacement, the chain of gates that used to compute it can be left
// with no users at all and should not linger in the circuit.
func (c *Circuit) gcUnreachable() {
	isOutput := make(map[Label]bool, len(c.outputs))
	for _, o := range c.outputs {
		isOutput[o] = true
	}
	for {
		removed := false
		for _, label := range c.order {
			g := c.gates[label]
			if g.Type == gate.INPUT || isOutput[label] {
				continue
			}
			if len(c.users[label]) > 0 {
				continue
			}
			_ = c.RemoveGate(label)
			removed = true
			break
		}
		if !removed {
			return
		}
	}
}

// ConnectCircuit imports every gate of `other` into the circuit under
// fresh labels, wiring other's declared inputs to existing host gates
// via `inputMapping`. It returns a mapping from every one of other's
// original labels to its new label in the host circuit, so the caller
// can mark imported outputs as outputs of the host circuit.
func (c *Circuit) ConnectCircuit(other *Circuit, inputMapping map[Label]Label) (map[Label]Label, error) {
	for _, in := range other.inputs {
		target, ok := inputMapping[in]
		if !ok {
			return nil, newError(KindGateAbsent, "ConnectCircuit", "no input mapping given for %q", in)
		}
		if !c.hasGate(target) {
			return nil, newError(KindGateAbsent, "ConnectCircuit", "input mapping target %q does not exist", target)
		}
	}

	order, err := other.TopSort(false, true)
	if err != nil {
		return nil, err
	}
	if len(order) == 0 {
		order = other.GateLabels()
	}

	labelMapping := make(map[Label]Label, len(order))
	for in, target := range inputMapping {
		labelMapping[in] = target
	}

	resolve := func(label Label) Label {
		if l, ok := labelMapping[label]; ok {
			return l
		}
		return label
	}

	for _, label := range order {
		g := other.gates[label]
		if g.Type == gate.INPUT {
			continue
		}
		newLabel := c.freshLabel(label)
		labelMapping[label] = newLabel
		operands := make([]Label, len(g.Operands))
		for i, op := range g.Operands {
			operands[i] = resolve(op)
		}
		if err := c.EmplaceGate(newLabel, g.Type, operands...); err != nil {
			return nil, err
		}
	}
	return labelMapping, nil
}
