package circuit

import "github.com/SPbSAT/cirbo-sub000/gate"

func (c *Circuit) outputIndex(output Label) (int, error) {
	for i, o := range c.outputs {
		if o == output {
			return i, nil
		}
	}
	return 0, newError(KindGateAbsent, "query", "%q is not a declared output", output)
}

func (c *Circuit) inputIndex(input Label) (int, error) {
	for i, in := range c.inputs {
		if in == input {
			return i, nil
		}
	}
	return 0, newError(KindGateAbsent, "query", "%q is not a declared input", input)
}

// IsConstantAt reports whether `output` is constant over every input
// assignment.
func (c *Circuit) IsConstantAt(output Label) (bool, gate.TriValue, error) {
	oi, err := c.outputIndex(output)
	if err != nil {
		return false, gate.Undefined, err
	}
	tt, err := c.GetTruthTable()
	if err != nil {
		return false, gate.Undefined, err
	}
	ok, v := tt.IsConstantAt(oi)
	return ok, v, nil
}

// IsMonotoneAt reports whether `output`, scanned over the truth-table
// rows in canonical order, never falls back to False once it has been
// True (or, with inverse, never returns to True once it has been
// False); see ttable.Table.IsMonotonicAt.
func (c *Circuit) IsMonotoneAt(output Label, inverse bool) (bool, error) {
	oi, err := c.outputIndex(output)
	if err != nil {
		return false, err
	}
	tt, err := c.GetTruthTable()
	if err != nil {
		return false, err
	}
	return tt.IsMonotonicAt(oi, inverse), nil
}

// IsSymmetricAt reports whether `output` depends only on the number of
// true inputs.
func (c *Circuit) IsSymmetricAt(output Label) (bool, error) {
	oi, err := c.outputIndex(output)
	if err != nil {
		return false, err
	}
	tt, err := c.GetTruthTable()
	if err != nil {
		return false, err
	}
	return tt.IsSymmetricAt(oi), nil
}

// IsDependentOnInputAt reports whether `output` depends on `input`.
func (c *Circuit) IsDependentOnInputAt(output, input Label) (bool, error) {
	oi, err := c.outputIndex(output)
	if err != nil {
		return false, err
	}
	ii, err := c.inputIndex(input)
	if err != nil {
		return false, err
	}
	tt, err := c.GetTruthTable()
	if err != nil {
		return false, err
	}
	return tt.IsDependentOnInputAt(oi, ii), nil
}

// IsOutputEqualToInput reports whether `output` always equals (or,
// with negation, always differs from) `input`.
func (c *Circuit) IsOutputEqualToInput(output, input Label, negation bool) (bool, error) {
	oi, err := c.outputIndex(output)
	if err != nil {
		return false, err
	}
	ii, err := c.inputIndex(input)
	if err != nil {
		return false, err
	}
	tt, err := c.GetTruthTable()
	if err != nil {
		return false, err
	}
	return tt.IsOutputEqualToInput(oi, ii, negation), nil
}

// GetSignificantInputsOf returns every input `output` actually
// depends on.
func (c *Circuit) GetSignificantInputsOf(output Label) ([]Label, error) {
	oi, err := c.outputIndex(output)
	if err != nil {
		return nil, err
	}
	tt, err := c.GetTruthTable()
	if err != nil {
		return nil, err
	}
	indices := tt.GetSignificantInputsOf(oi)
	out := make([]Label, len(indices))
	for i, idx := range indices {
		out[i] = c.inputs[idx]
	}
	return out, nil
}

// FindNegationsToMakeSymmetric searches for a per-input negation
// pattern under which every output in `outputs` becomes symmetric,
// returning it keyed by input label.
func (c *Circuit) FindNegationsToMakeSymmetric(outputs []Label) (map[Label]bool, bool, error) {
	indices := make([]int, len(outputs))
	for i, o := range outputs {
		oi, err := c.outputIndex(o)
		if err != nil {
			return nil, false, err
		}
		indices[i] = oi
	}
	tt, err := c.GetTruthTable()
	if err != nil {
		return nil, false, err
	}
	negations, ok := tt.GetSymmetricAndNegationsOf(indices)
	if !ok {
		return nil, false, nil
	}
	result := make(map[Label]bool, len(negations))
	for i, in := range c.inputs {
		result[in] = negations[i]
	}
	return result, true, nil
}
