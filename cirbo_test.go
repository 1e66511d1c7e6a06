package cirbo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestFacadeSynthesizesAndMinimizes exercises the facade end-to-end: a
// truth table goes in, a circuit comes out, and Minimize runs over a
// hand-built majority circuit, considering at least one candidate and
// keeping the output count.
func TestFacadeSynthesizesAndMinimizes(t *testing.T) {
	tt := NewTable(2, 1)
	for p := 0; p < 4; p++ {
		a, b := p&1, (p>>1)&1
		tt.Set(0, p, FromBool(a == 1 || b == 1))
	}

	solver := NewCDCLSolver()
	c, err := Synthesize(context.Background(), solver, tt, 1, SynthOptions{Basis: BasisAIG(), TimeLimit: 5 * time.Second})
	require.NoError(t, err)
	require.Len(t, c.Outputs(), 1)

	host := NewCircuit()
	mustAdd(t, host, "a", INPUT)
	mustAdd(t, host, "b", INPUT)
	mustAdd(t, host, "cc", INPUT)
	mustAdd(t, host, "ab_and", AND, "a", "b")
	mustAdd(t, host, "ab_or", OR, "a", "b")
	mustAdd(t, host, "c_and_abor", AND, "cc", "ab_or")
	mustAdd(t, host, "maj", OR, "ab_and", "c_and_abor")
	require.NoError(t, host.MarkAsOutput("maj"))

	out, stats, err := Minimize(context.Background(), solver, host, MinimizeOptions{Basis: BasisFULL(), TimeLimit: 5 * time.Second})
	require.NoError(t, err)
	require.NotZero(t, stats.CandidatesConsidered, "expected at least one candidate to be considered")
	require.Len(t, out.Outputs(), len(host.Outputs()))
}

func mustAdd(t *testing.T, c *Circuit, label Label, gt GateType, operands ...Label) {
	t.Helper()
	require.NoError(t, c.EmplaceGate(label, gt, operands...))
}

func TestBenchmarkRunsAndTimesOperations(t *testing.T) {
	b := NewBenchmark()
	b.Add("always-sat", func(ctx context.Context) error {
		return nil
	})
	b.Run(context.Background())

	require.Len(t, b.Results, 1)
	require.NoError(t, b.Results[0].Err)
}
