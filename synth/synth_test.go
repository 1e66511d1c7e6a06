package synth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SPbSAT/cirbo-sub000/circuit"
	"github.com/SPbSAT/cirbo-sub000/gate"
	"github.com/SPbSAT/cirbo-sub000/sat"
	"github.com/SPbSAT/cirbo-sub000/ttable"
)

func countNonInput(t *testing.T, c *circuit.Circuit) int {
	t.Helper()
	n := 0
	for _, l := range c.GateLabels() {
		g, ok := c.Gate(l)
		require.True(t, ok)
		if g.Type != gate.INPUT {
			n++
		}
	}
	return n
}

// assertMatchesModel checks that c's truth table agrees with tt on
// every defined cell (spec.md §8's synthesizer-soundness property).
func assertMatchesModel(t *testing.T, c *circuit.Circuit, tt *ttable.Table) {
	t.Helper()
	require.Len(t, c.Inputs(), tt.InputSize())
	got, err := c.GetTruthTable()
	require.NoError(t, err)
	for j := 0; j < tt.OutputSize(); j++ {
		for p := 0; p < tt.Rows(); p++ {
			want := tt.Get(j, p)
			if want == gate.Undefined {
				continue
			}
			require.Equal(t, want, got.Get(j, p), "output %d pattern %d", j, p)
		}
	}
}

func xaigOpts() Options {
	return Options{Basis: BasisXAIG(), TimeLimit: 10 * time.Second}
}

// TestSynthesizeParity3 mirrors spec.md §8 scenario 1: the 3-input
// parity function synthesizes to a 2-gate XOR tree in basis XAIG, and
// is unrealizable at size 1.
func TestSynthesizeParity3(t *testing.T) {
	tt := ttable.New(3, 1)
	for p := 0; p < 8; p++ {
		parity := ttable.Bit(p, 0) ^ ttable.Bit(p, 1) ^ ttable.Bit(p, 2)
		tt.Set(0, p, gate.FromBool(parity == 1))
	}

	solver := sat.NewCDCLSolver()

	c, err := Synthesize(context.Background(), solver, tt, 2, xaigOpts())
	require.NoError(t, err)
	require.Equal(t, 2, countNonInput(t, c))
	assertMatchesModel(t, c, tt)

	_, err = Synthesize(context.Background(), solver, tt, 1, xaigOpts())
	require.Error(t, err)
	require.True(t, IsNoSolution(err))
}

// TestSynthesizeAdder mirrors spec.md §8 scenario 2: a 3-input 1-bit
// full adder (sum and majority outputs) synthesizes at size 5 in
// basis XAIG, and is unrealizable at size 4.
func TestSynthesizeAdder(t *testing.T) {
	tt := ttable.New(3, 2)
	for p := 0; p < 8; p++ {
		a, b, cIn := ttable.Bit(p, 0), ttable.Bit(p, 1), ttable.Bit(p, 2)
		sum := a ^ b ^ cIn
		maj := 0
		if a+b+cIn >= 2 {
			maj = 1
		}
		tt.Set(0, p, gate.FromBool(sum == 1))
		tt.Set(1, p, gate.FromBool(maj == 1))
	}

	solver := sat.NewCDCLSolver()

	c, err := Synthesize(context.Background(), solver, tt, 5, xaigOpts())
	require.NoError(t, err)
	require.Equal(t, 5, countNonInput(t, c))
	assertMatchesModel(t, c, tt)

	_, err = Synthesize(context.Background(), solver, tt, 4, xaigOpts())
	require.Error(t, err)
	require.True(t, IsNoSolution(err))
}

// TestSynthesizeDontCare mirrors spec.md §8 scenario 3: a 2-input
// function with one don't-care row synthesizes to a single OR gate in
// basis {OR}.
func TestSynthesizeDontCare(t *testing.T) {
	tt := ttable.New(2, 1)
	for p := 0; p < 4; p++ {
		if ttable.Bit(p, 0) == 1 && ttable.Bit(p, 1) == 1 {
			continue // leave Undefined
		}
		tt.Set(0, p, gate.FromBool(ttable.Bit(p, 0) == 1 || ttable.Bit(p, 1) == 1))
	}

	basis, err := NewBasis(gate.OR)
	require.NoError(t, err)

	solver := sat.NewCDCLSolver()
	c, err := Synthesize(context.Background(), solver, tt, 1, Options{Basis: basis, TimeLimit: 10 * time.Second})
	require.NoError(t, err)
	require.Equal(t, 1, countNonInput(t, c))

	labels := c.GateLabels()
	require.Len(t, labels, 3) // two inputs, one OR gate
	g, ok := c.Gate(labels[2])
	require.True(t, ok)
	require.Equal(t, gate.OR, g.Type)
}

// TestSynthesizeBadBasisRejected checks Options.Validate rejects a nil
// basis before any solving happens.
func TestSynthesizeBadBasisRejected(t *testing.T) {
	tt := ttable.New(1, 1)
	tt.Set(0, 0, gate.False)
	tt.Set(0, 1, gate.True)

	solver := sat.NewCDCLSolver()
	_, err := Synthesize(context.Background(), solver, tt, 1, Options{})
	require.Error(t, err)
	var serr *Error
	require.ErrorAs(t, err, &serr)
	require.Equal(t, KindBadBasis, serr.Kind)
}
