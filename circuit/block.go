package circuit

// Block is a named, non-owning view into a region of a circuit: a
// subset of inputs, gates and outputs, with a back-reference to the
// owning circuit. Blocks never copy gates; they exist purely to give
// a name to a slice of an existing circuit (e.g. "this is the adder").
type Block struct {
	name    string
	circuit *Circuit
	inputs  []Label
	gates   []Label
	outputs []Label
}

func (b *Block) Name() string     { return b.name }
func (b *Block) Inputs() []Label  { return append([]Label(nil), b.inputs...) }
func (b *Block) Gates() []Label   { return append([]Label(nil), b.gates...) }
func (b *Block) Outputs() []Label { return append([]Label(nil), b.outputs...) }

func (b *Block) renameGate(old, newLabel Label) {
	rename := func(labels []Label) {
		for i, l := range labels {
			if l == old {
				labels[i] = newLabel
			}
		}
	}
	rename(b.inputs)
	rename(b.gates)
	rename(b.outputs)
}

// Block looks up a previously-created block by name.
func (c *Circuit) Block(name string) (*Block, bool) {
	b, ok := c.blocks[name]
	return b, ok
}

// MakeBlockFromSlice names a new block covering `gates`, with
// `inputs` declaring the block's boundary wires and `outputs`
// declaring which of those gates are externally visible, matching the
// reference implementation's
// `Block(name, circuit, inputs, gates, outputs)`. Every block gate
// that is neither a declared input nor one of `outputs` must have no
// users outside the block, and every operand of a non-input block gate must resolve to
// a declared input or another block gate, matching invariant 6.
func (c *Circuit) MakeBlockFromSlice(name string, inputs []Label, gates []Label, outputs []Label) (*Block, error) {
	if _, exists := c.blocks[name]; exists {
		return nil, newError(KindBlockExists, "MakeBlockFromSlice", "block %q already exists", name)
	}

	inputSet := make(map[Label]bool, len(inputs))
	for _, in := range inputs {
		if !c.hasGate(in) {
			return nil, newError(KindGateAbsent, "MakeBlockFromSlice", "input %q does not exist", in)
		}
		inputSet[in] = true
	}

	gateSet := make(map[Label]bool, len(gates))
	for _, g := range gates {
		if !c.hasGate(g) {
			return nil, newError(KindGateAbsent, "MakeBlockFromSlice", "gate %q does not exist", g)
		}
		gateSet[g] = true
	}

	outSet := make(map[Label]bool, len(outputs))
	for _, o := range outputs {
		if !gateSet[o] {
			return nil, newError(KindGateAbsent, "MakeBlockFromSlice", "output %q is not in the block's gate set", o)
		}
		outSet[o] = true
	}

	for _, g := range gates {
		if inputSet[g] {
			continue
		}
		for _, op := range c.gates[g].Operands {
			if !inputSet[op] && !gateSet[op] {
				return nil, newError(KindGateAbsent, "MakeBlockFromSlice",
					"gate %q operand %q is reachable from neither the block's declared inputs nor its gates", g, op)
			}
		}
		if !outSet[g] {
			for _, u := range c.users[g] {
				if !gateSet[u] {
					return nil, newError(KindBlockHasUsers, "MakeBlockFromSlice",
						"gate %q has an external user %q but is not declared as a block output", g, u)
				}
			}
		}
	}

	b := &Block{
		name:    name,
		circuit: c,
		inputs:  append([]Label(nil), inputs...),
		gates:   append([]Label(nil), gates...),
		outputs: append([]Label(nil), outputs...),
	}
	c.blocks[name] = b
	return b, nil
}

// RemoveBlock deletes a block's name without touching its gates.
func (c *Circuit) RemoveBlock(name string) error {
	if _, ok := c.blocks[name]; !ok {
		return newError(KindBlockAbsent, "RemoveBlock", "block %q does not exist", name)
	}
	delete(c.blocks, name)
	return nil
}
