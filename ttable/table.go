// Package ttable implements the dense truth-table model: a
// 2^inputSize x outputSize matrix of three-valued cells, with
// don't-care support and the structural queries circuits and the
// synthesizer rely on (constant, monotone, symmetric, dependent on a
// given input, equal to an input, significant inputs).
package ttable

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/SPbSAT/cirbo-sub000/gate"
)

// Table stores, per output column, two dense bitsets over the 2^n
// input patterns: `value` (the bit, meaningful only where `care` is
// set) and `care` (1 = defined, 0 = don't-care/Undefined). This is the
// Go analogue of the reference implementation's big-int bitmask rows,
// generalized from two-valued to three-valued cells.
type Table struct {
	inputSize  int
	outputSize int
	value      []*bitset.BitSet
	care       []*bitset.BitSet
}

// New creates a Table with every cell Undefined.
func New(inputSize, outputSize int) *Table {
	if inputSize < 0 || outputSize < 0 {
		panic("ttable: negative size")
	}
	rows := uint(1) << uint(inputSize)
	t := &Table{
		inputSize:  inputSize,
		outputSize: outputSize,
		value:      make([]*bitset.BitSet, outputSize),
		care:       make([]*bitset.BitSet, outputSize),
	}
	for o := 0; o < outputSize; o++ {
		t.value[o] = bitset.New(rows)
		t.care[o] = bitset.New(rows)
	}
	return t
}

func (t *Table) InputSize() int  { return t.inputSize }
func (t *Table) OutputSize() int { return t.outputSize }
func (t *Table) Rows() int       { return 1 << uint(t.inputSize) }

func (t *Table) checkOutput(output int) {
	if output < 0 || output >= t.outputSize {
		panic(fmt.Sprintf("ttable: output index %d out of range [0,%d)", output, t.outputSize))
	}
}

func (t *Table) checkPattern(pattern int) {
	if pattern < 0 || pattern >= t.Rows() {
		panic(fmt.Sprintf("ttable: pattern %d out of range [0,%d)", pattern, t.Rows()))
	}
}

// Set assigns the value of one cell. pattern is the row index, with
// bit i of pattern giving input i's value (input 0 is the
// least-significant bit).
func (t *Table) Set(output, pattern int, v gate.TriValue) {
	t.checkOutput(output)
	t.checkPattern(pattern)
	u := uint(pattern)
	if v == gate.Undefined {
		t.care[output].Clear(u)
		return
	}
	t.care[output].Set(u)
	if v == gate.True {
		t.value[output].Set(u)
	} else {
		t.value[output].Clear(u)
	}
}

func (t *Table) Get(output, pattern int) gate.TriValue {
	t.checkOutput(output)
	t.checkPattern(pattern)
	u := uint(pattern)
	if !t.care[output].Test(u) {
		return gate.Undefined
	}
	if t.value[output].Test(u) {
		return gate.True
	}
	return gate.False
}

// Bit returns input i's value (0 or 1) within the given pattern.
func Bit(pattern, i int) int {
	return (pattern >> uint(i)) & 1
}

// IsConstantAt reports whether output never varies across all
// defined rows, returning the constant value when so.
func (t *Table) IsConstantAt(output int) (bool, gate.TriValue) {
	t.checkOutput(output)
	seen := gate.Undefined
	for p := 0; p < t.Rows(); p++ {
		v := t.Get(output, p)
		if v == gate.Undefined {
			continue
		}
		if seen == gate.Undefined {
			seen = v
			continue
		}
		if seen != v {
			return false, gate.Undefined
		}
	}
	return true, seen
}

// IsMonotonicAt reports whether output is monotonically non-decreasing
// (or, with inverse, non-increasing) as more input bits become set, in
// canonical row order, following the reference implementation's
// single-pass "ones_started" scan over defined rows only.
func (t *Table) IsMonotonicAt(output int, inverse bool) bool {
	t.checkOutput(output)
	onesStarted := false
	for p := 0; p < t.Rows(); p++ {
		v := t.Get(output, p)
		if v == gate.Undefined {
			continue
		}
		want := gate.True
		if inverse {
			want = gate.False
		}
		if v == want {
			onesStarted = true
		} else if onesStarted {
			return false
		}
	}
	return true
}

func popcount(p int) int {
	n := 0
	for p > 0 {
		n += p & 1
		p >>= 1
	}
	return n
}

// IsSymmetricAt reports whether output's value depends only on the
// number of true inputs, not their identity, grouping defined rows by
// popcount as the reference implementation does.
func (t *Table) IsSymmetricAt(output int) bool {
	t.checkOutput(output)
	byPopcount := map[int]gate.TriValue{}
	for p := 0; p < t.Rows(); p++ {
		v := t.Get(output, p)
		if v == gate.Undefined {
			continue
		}
		k := popcount(p)
		if existing, ok := byPopcount[k]; ok {
			if existing != v {
				return false
			}
		} else {
			byPopcount[k] = v
		}
	}
	return true
}

// IsDependentOnInputAt reports whether flipping input bit `input`
// ever changes output's value, holding all other defined bits fixed.
func (t *Table) IsDependentOnInputAt(output, input int) bool {
	t.checkOutput(output)
	if input < 0 || input >= t.inputSize {
		panic("ttable: input index out of range")
	}
	mask := 1 << uint(input)
	for p := 0; p < t.Rows(); p++ {
		if p&mask != 0 {
			continue
		}
		v0 := t.Get(output, p)
		v1 := t.Get(output, p|mask)
		if v0 == gate.Undefined || v1 == gate.Undefined {
			continue
		}
		if v0 != v1 {
			return true
		}
	}
	return false
}

// IsOutputEqualToInput reports whether output's defined rows always
// equal (or, with negation, always differ from) input's bit.
func (t *Table) IsOutputEqualToInput(output, input int, negation bool) bool {
	t.checkOutput(output)
	if input < 0 || input >= t.inputSize {
		panic("ttable: input index out of range")
	}
	for p := 0; p < t.Rows(); p++ {
		v := t.Get(output, p)
		if v == gate.Undefined {
			continue
		}
		want := Bit(p, input) == 1
		if negation {
			want = !want
		}
		if v.Bool() != want {
			return false
		}
	}
	return true
}

// GetSignificantInputsOf returns every input index output actually
// depends on.
func (t *Table) GetSignificantInputsOf(output int) []int {
	t.checkOutput(output)
	var out []int
	for i := 0; i < t.inputSize; i++ {
		if t.IsDependentOnInputAt(output, i) {
			out = append(out, i)
		}
	}
	return out
}

// GetSymmetricAndNegationsOf searches, by brute force over all 2^n
// negation patterns, for an assignment of per-input negations under
// which every output in `outputs` becomes symmetric. It returns the
// first such pattern found, matching the reference implementation's
// itertools.product enumeration order (input 0 varies slowest).
func (t *Table) GetSymmetricAndNegationsOf(outputs []int) ([]bool, bool) {
	for _, o := range outputs {
		t.checkOutput(o)
	}
	n := t.inputSize
	total := 1 << uint(n)
	for pattern := 0; pattern < total; pattern++ {
		negations := make([]bool, n)
		for i := 0; i < n; i++ {
			negations[i] = pattern&(1<<uint(n-1-i)) != 0
		}
		if t.isSymmetricUnderNegations(outputs, negations) {
			return negations, true
		}
	}
	return nil, false
}

func (t *Table) isSymmetricUnderNegations(outputs []int, negations []bool) bool {
	type key struct {
		popcount int
		output   int
	}
	seen := map[key]gate.TriValue{}
	for p := 0; p < t.Rows(); p++ {
		negP := 0
		for i, neg := range negations {
			bit := Bit(p, i)
			if neg {
				bit ^= 1
			}
			negP |= bit << uint(i)
		}
		k := popcount(negP)
		for _, o := range outputs {
			v := t.Get(o, p)
			if v == gate.Undefined {
				continue
			}
			kk := key{k, o}
			if existing, ok := seen[kk]; ok {
				if existing != v {
					return false
				}
			} else {
				seen[kk] = v
			}
		}
	}
	return true
}

func (t *Table) String() string {
	var b strings.Builder
	for i := 0; i < t.inputSize; i++ {
		fmt.Fprintf(&b, "x%d ", i)
	}
	for o := 0; o < t.outputSize; o++ {
		fmt.Fprintf(&b, "| y%d ", o)
	}
	b.WriteString("\n")
	for p := 0; p < t.Rows(); p++ {
		for i := 0; i < t.inputSize; i++ {
			fmt.Fprintf(&b, "%d  ", Bit(p, i))
		}
		for o := 0; o < t.outputSize; o++ {
			fmt.Fprintf(&b, "| %s  ", t.Get(o, p))
		}
		b.WriteString("\n")
	}
	return b.String()
}
