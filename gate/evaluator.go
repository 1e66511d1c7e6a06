package gate

// Evaluator is a small fluent chain for composing three-valued
// operators without a circuit, handy in tests and for ad-hoc checks.
// Its shape follows the teacher's evaluator.go chaining style.
type Evaluator struct {
	value TriValue
}

func Eval(v TriValue) *Evaluator {
	return &Evaluator{value: v}
}

func (e *Evaluator) And(v TriValue) *Evaluator {
	e.value = And(e.value, v)
	return e
}

func (e *Evaluator) Or(v TriValue) *Evaluator {
	e.value = Or(e.value, v)
	return e
}

func (e *Evaluator) Xor(v TriValue) *Evaluator {
	e.value = Xor(e.value, v)
	return e
}

func (e *Evaluator) Not() *Evaluator {
	e.value = Not(e.value)
	return e
}

func (e *Evaluator) Result() TriValue {
	return e.value
}
