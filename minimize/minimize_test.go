package minimize

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SPbSAT/cirbo-sub000/circuit"
	"github.com/SPbSAT/cirbo-sub000/gate"
	"github.com/SPbSAT/cirbo-sub000/sat"
	"github.com/SPbSAT/cirbo-sub000/synth"
)

func assertSameFunction(t *testing.T, a, b *circuit.Circuit) {
	t.Helper()
	ta, err := a.GetTruthTable()
	require.NoError(t, err)
	tb, err := b.GetTruthTable()
	require.NoError(t, err)
	require.Equal(t, ta.InputSize(), tb.InputSize())
	require.Equal(t, ta.OutputSize(), tb.OutputSize())
	for o := 0; o < ta.OutputSize(); o++ {
		for p := 0; p < ta.Rows(); p++ {
			require.Equal(t, ta.Get(o, p), tb.Get(o, p), "output %d pattern %d", o, p)
		}
	}
}

func countNonInput(c *circuit.Circuit) int {
	n := 0
	for _, l := range c.GateLabels() {
		g, ok := c.Gate(l)
		if ok && g.Type != gate.INPUT {
			n++
		}
	}
	return n
}

// redundantMajority builds a 3-input majority circuit as
// maj(a,b,c) = (a AND b) OR (c AND (a OR b)), four non-input gates.
// Its cuts give the minimizer several multi-gate candidates to try.
func redundantMajority(t *testing.T) *circuit.Circuit {
	t.Helper()
	c := circuit.New()
	require.NoError(t, c.EmplaceGate("a", gate.INPUT))
	require.NoError(t, c.EmplaceGate("b", gate.INPUT))
	require.NoError(t, c.EmplaceGate("cc", gate.INPUT))
	require.NoError(t, c.EmplaceGate("ab_and", gate.AND, "a", "b"))
	require.NoError(t, c.EmplaceGate("ab_or", gate.OR, "a", "b"))
	require.NoError(t, c.EmplaceGate("c_and_abor", gate.AND, "cc", "ab_or"))
	require.NoError(t, c.EmplaceGate("maj", gate.OR, "ab_and", "c_and_abor"))
	require.NoError(t, c.MarkAsOutput("maj"))
	return c
}

// TestRunReplacesRedundantRegion mirrors spec.md §8 scenario 4: after
// one pass over the majority circuit, at least one candidate has been
// considered, the result computes the same function, and it has no
// more gates than the host.
func TestRunReplacesRedundantRegion(t *testing.T) {
	host := redundantMajority(t)
	before := countNonInput(host)

	solver := sat.NewCDCLSolver()
	opts := Options{
		Basis:     synth.BasisFULL(),
		TimeLimit: 10 * time.Second,
	}

	out, stats, err := Run(context.Background(), solver, host, opts)
	require.NoError(t, err)
	require.Greater(t, stats.CandidatesConsidered, 0)
	assertSameFunction(t, host, out)
	require.LessOrEqual(t, countNonInput(out), before)
}

// TestRunLeavesMinimalCircuitAlone mirrors spec.md §8 scenario 5: a
// circuit that is already minimal (a single AND gate) is returned
// unchanged, and every candidate attempt is correctly reported as
// having found no smaller realization.
func TestRunLeavesMinimalCircuitAlone(t *testing.T) {
	host := circuit.New()
	require.NoError(t, host.EmplaceGate("a", gate.INPUT))
	require.NoError(t, host.EmplaceGate("b", gate.INPUT))
	require.NoError(t, host.EmplaceGate("g", gate.AND, "a", "b"))
	require.NoError(t, host.MarkAsOutput("g"))

	solver := sat.NewCDCLSolver()
	opts := Options{Basis: synth.BasisFULL(), TimeLimit: 5 * time.Second}

	out, stats, err := Run(context.Background(), solver, host, opts)
	require.NoError(t, err)
	require.Equal(t, 0, stats.Replaced)
	assertSameFunction(t, host, out)
}

// TestRunValidateAcceptsEquivalentResult checks the optional post-pass
// equivalence check does not fire a false positive on a genuinely
// faithful minimization.
func TestRunValidateAcceptsEquivalentResult(t *testing.T) {
	host := redundantMajority(t)
	solver := sat.NewCDCLSolver()
	opts := Options{
		Basis:     synth.BasisFULL(),
		TimeLimit: 10 * time.Second,
		Validate:  true,
	}

	_, _, err := Run(context.Background(), solver, host, opts)
	require.NoError(t, err)
}
