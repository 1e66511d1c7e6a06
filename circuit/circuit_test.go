package circuit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SPbSAT/cirbo-sub000/gate"
)

func buildParity3(t *testing.T) *Circuit {
	t.Helper()
	c := New()
	require.NoError(t, c.EmplaceGate("x0", gate.INPUT))
	require.NoError(t, c.EmplaceGate("x1", gate.INPUT))
	require.NoError(t, c.EmplaceGate("x2", gate.INPUT))
	require.NoError(t, c.EmplaceGate("g1", gate.XOR, "x0", "x1"))
	require.NoError(t, c.EmplaceGate("g2", gate.XOR, "g1", "x2"))
	require.NoError(t, c.MarkAsOutput("g2"))
	return c
}

func TestEmplaceAndEvaluateParity(t *testing.T) {
	c := buildParity3(t)
	for p := 0; p < 8; p++ {
		bit := func(i int) gate.TriValue { return gate.FromBool((p>>uint(i))&1 == 1) }
		assignment := map[Label]gate.TriValue{"x0": bit(0), "x1": bit(1), "x2": bit(2)}
		out, err := c.Evaluate(assignment)
		require.NoError(t, err)
		require.Len(t, out, 1)
		want := gate.FromBool(((p>>0)&1)^((p>>1)&1)^((p>>2)&1) == 1)
		require.Equal(t, want, out[0])
	}
}

func TestAddGateRejectsMissingOperand(t *testing.T) {
	c := New()
	err := c.EmplaceGate("g", gate.NOT, "missing")
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, KindGateAbsent, cerr.Kind)
}

func TestAddGateRejectsDuplicateLabel(t *testing.T) {
	c := New()
	require.NoError(t, c.EmplaceGate("x0", gate.INPUT))
	err := c.EmplaceGate("x0", gate.INPUT)
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, KindGateExists, cerr.Kind)
}

func TestCycleRejected(t *testing.T) {
	c := New()
	require.NoError(t, c.EmplaceGate("x0", gate.INPUT))
	require.NoError(t, c.EmplaceGate("a", gate.NOT, "x0"))
	require.NoError(t, c.EmplaceGate("b", gate.NOT, "a"))
	require.NoError(t, c.MarkAsOutput("b"))

	// Attempt to rewire `a` to depend on `b`, which would close a
	// cycle a -> b -> a.
	err := c.ReplaceGate("a", gate.NOT, []Label{"b"})
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, KindCycleIntroduced, cerr.Kind)

	// The circuit must still evaluate correctly after the rejected
	// mutation (rollback took effect).
	out, err := c.Evaluate(map[Label]gate.TriValue{"x0": gate.True})
	require.NoError(t, err)
	require.Equal(t, gate.True, out[0])
}

func TestRemoveGateRejectsWhileUsed(t *testing.T) {
	c := New()
	require.NoError(t, c.EmplaceGate("x0", gate.INPUT))
	require.NoError(t, c.EmplaceGate("a", gate.NOT, "x0"))
	require.NoError(t, c.MarkAsOutput("a"))

	err := c.RemoveGate("x0")
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, KindGateHasUsers, cerr.Kind)
}

func TestRenameGateRewritesReferences(t *testing.T) {
	c := New()
	require.NoError(t, c.EmplaceGate("x0", gate.INPUT))
	require.NoError(t, c.EmplaceGate("a", gate.NOT, "x0"))
	require.NoError(t, c.MarkAsOutput("a"))

	require.NoError(t, c.RenameGate("x0", "in0"))
	g, ok := c.Gate("a")
	require.True(t, ok)
	require.Equal(t, []Label{"in0"}, g.Operands)
	require.Contains(t, c.Inputs(), Label("in0"))
}

func TestOrderOutputsIsSubsetPreserving(t *testing.T) {
	c := New()
	require.NoError(t, c.EmplaceGate("x0", gate.INPUT))
	require.NoError(t, c.EmplaceGate("a", gate.NOT, "x0"))
	require.NoError(t, c.EmplaceGate("b", gate.IFF, "x0"))
	require.NoError(t, c.SetOutputs([]Label{"a", "b"}))
	require.NoError(t, c.OrderOutputs([]Label{"b"}))
	require.Equal(t, []Label{"b", "a"}, c.Outputs())
}

func TestReplaceSubcircuitRoundTrip(t *testing.T) {
	// Host circuit: out = NOT(NOT(x0)) (a redundant double negation).
	host := New()
	require.NoError(t, host.EmplaceGate("x0", gate.INPUT))
	require.NoError(t, host.EmplaceGate("n1", gate.NOT, "x0"))
	require.NoError(t, host.EmplaceGate("n2", gate.NOT, "n1"))
	require.NoError(t, host.MarkAsOutput("n2"))

	// Replacement subcircuit: a single IFF gate, functionally
	// equivalent to the n1->n2 double negation.
	sub := New()
	require.NoError(t, sub.EmplaceGate("in", gate.INPUT))
	require.NoError(t, sub.EmplaceGate("out", gate.IFF, "in"))
	require.NoError(t, sub.MarkAsOutput("out"))

	err := host.ReplaceSubcircuit(sub,
		map[Label]Label{"in": "x0"},
		map[Label]Label{"out": "n2"},
	)
	require.NoError(t, err)

	for _, v := range []gate.TriValue{gate.False, gate.True} {
		out, err := host.Evaluate(map[Label]gate.TriValue{"x0": v})
		require.NoError(t, err)
		require.Equal(t, v, out[0])
	}
}

func TestMakeBlockFromSlice(t *testing.T) {
	c := New()
	require.NoError(t, c.EmplaceGate("x0", gate.INPUT))
	require.NoError(t, c.EmplaceGate("x1", gate.INPUT))
	require.NoError(t, c.EmplaceGate("a", gate.AND, "x0", "x1"))
	require.NoError(t, c.MarkAsOutput("a"))

	b, err := c.MakeBlockFromSlice("and2", []Label{"x0", "x1"}, []Label{"x0", "x1", "a"}, []Label{"a"})
	require.NoError(t, err)
	require.Equal(t, "and2", b.Name())
	require.ElementsMatch(t, []Label{"x0", "x1"}, b.Inputs())
}

func TestTopSortOrdersOperandsBeforeUsers(t *testing.T) {
	c := buildParity3(t)
	order, err := c.TopSort(false, false)
	require.NoError(t, err)
	pos := map[Label]int{}
	for i, l := range order {
		pos[l] = i
	}
	require.Less(t, pos["x0"], pos["g1"])
	require.Less(t, pos["g1"], pos["g2"])
}

func TestTopSortInverseOrdersUsersBeforeOperands(t *testing.T) {
	c := buildParity3(t)
	order, err := c.TopSort(true, false)
	require.NoError(t, err)
	pos := map[Label]int{}
	for i, l := range order {
		pos[l] = i
	}
	require.Less(t, pos["g2"], pos["g1"])
	require.Less(t, pos["g1"], pos["x0"])
}

func TestTopSortUnvisitedCoversDisconnectedGates(t *testing.T) {
	c := buildParity3(t)
	require.NoError(t, c.EmplaceGate("stray", gate.INPUT))

	order, err := c.TopSort(false, false)
	require.NoError(t, err)
	require.NotContains(t, order, Label("stray"))

	order, err = c.TopSort(false, true)
	require.NoError(t, err)
	require.Contains(t, order, Label("stray"))
	require.Len(t, order, c.GatesNumber())
}

func TestDFSUnvisitedHookReportsUnreachedGates(t *testing.T) {
	c := buildParity3(t)
	require.NoError(t, c.EmplaceGate("stray", gate.INPUT))

	var unvisited []Label
	err := c.DFS([]Label{"g2"}, false, DFSHooks{
		UnvisitedHook: func(l Label) {
			unvisited = append(unvisited, l)
		},
	})
	require.NoError(t, err)
	require.Equal(t, []Label{"stray"}, unvisited)
}

func TestBFSVisitsOperandsBeforeDescendants(t *testing.T) {
	c := buildParity3(t)
	var entered []Label
	err := c.BFS([]Label{"g2"}, false, DFSHooks{
		OnEnter: func(l Label) {
			entered = append(entered, l)
		},
	})
	require.NoError(t, err)
	require.Equal(t, []Label{"g2", "g1", "x2", "x0", "x1"}, entered)
}

func TestBFSInverseWalksUsers(t *testing.T) {
	c := buildParity3(t)
	var entered []Label
	err := c.BFS([]Label{"x0"}, true, DFSHooks{
		OnEnter: func(l Label) {
			entered = append(entered, l)
		},
	})
	require.NoError(t, err)
	require.Equal(t, []Label{"x0", "g1", "g2"}, entered)
}
