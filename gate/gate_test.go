package gate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAndUndefinedDominated(t *testing.T) {
	require.Equal(t, False, And(False, Undefined))
	require.Equal(t, Undefined, And(True, Undefined))
}

func TestOrUndefinedDominated(t *testing.T) {
	require.Equal(t, True, Or(True, Undefined))
	require.Equal(t, Undefined, Or(False, Undefined))
}

func TestXorUndefinedAlwaysPropagates(t *testing.T) {
	for _, v := range []TriValue{False, True} {
		require.Equal(t, Undefined, Xor(v, Undefined))
	}
}

func TestNandNorNxorAreNegations(t *testing.T) {
	cases := []TriValue{False, True, Undefined}
	for _, a := range cases {
		for _, b := range cases {
			require.Equal(t, Not(And(a, b)), Nand(a, b))
			require.Equal(t, Not(Or(a, b)), Nor(a, b))
			require.Equal(t, Not(Xor(a, b)), Nxor(a, b))
		}
	}
}

func TestTypeEvalBasic(t *testing.T) {
	require.Equal(t, True, AND.Eval(True, True))
	require.Equal(t, False, XOR.Eval(True, True))
	require.Equal(t, True, LNOT.Eval(False, True), "LNOT(0,1) depends only on left")
	require.Equal(t, True, RIFF.Eval(False, True), "RIFF(0,1) depends only on right")
}

func TestTruthTable4RoundTrip(t *testing.T) {
	for _, ty := range []Type{AND, OR, NAND, NOR, XOR, NXOR, GEQ, GT, LEQ, LT, LNOT, RNOT, LIFF, RIFF} {
		tt := TruthTable4(ty)
		got, ok := TypeFromTruthTable4(tt, false)
		require.True(t, ok, "TypeFromTruthTable4 could not decode %v's table %v", ty, tt)
		require.Equal(t, ty, got)
	}
}

func TestTypeFromTruthTable4CollapsesUnary(t *testing.T) {
	got, ok := TypeFromTruthTable4(TruthTable4(LNOT), true)
	require.True(t, ok)
	require.Equal(t, NOT, got)

	got, ok = TypeFromTruthTable4(TruthTable4(LIFF), true)
	require.True(t, ok)
	require.Equal(t, IFF, got)
}

func TestEvaluatorChain(t *testing.T) {
	result := Eval(True).And(True).Xor(False).Not().Result()
	require.Equal(t, False, result)
}
