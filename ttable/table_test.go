package ttable

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SPbSAT/cirbo-sub000/gate"
)

// buildAND3 builds the 3-input AND truth table (single output).
func buildAND3(t *testing.T) *Table {
	t.Helper()
	tt := New(3, 1)
	for p := 0; p < 8; p++ {
		v := gate.True
		for i := 0; i < 3; i++ {
			if Bit(p, i) == 0 {
				v = gate.False
			}
		}
		tt.Set(0, p, v)
	}
	return tt
}

func TestIsConstantAt(t *testing.T) {
	tt := New(2, 1)
	for p := 0; p < 4; p++ {
		tt.Set(0, p, gate.True)
	}
	ok, v := tt.IsConstantAt(0)
	require.True(t, ok)
	require.Equal(t, gate.True, v)
}

func TestIsMonotonicAt(t *testing.T) {
	tt := buildAND3(t)
	require.True(t, tt.IsMonotonicAt(0, false))
}

func TestIsSymmetricAt(t *testing.T) {
	tt := buildAND3(t)
	require.True(t, tt.IsSymmetricAt(0))
}

func TestIsDependentOnInputAt(t *testing.T) {
	tt := buildAND3(t)
	for i := 0; i < 3; i++ {
		require.True(t, tt.IsDependentOnInputAt(0, i))
	}
}

func TestGetSignificantInputsOf(t *testing.T) {
	tt := New(3, 1)
	// output = x0 only
	for p := 0; p < 8; p++ {
		tt.Set(0, p, gate.FromBool(Bit(p, 0) == 1))
	}
	sig := tt.GetSignificantInputsOf(0)
	require.Equal(t, []int{0}, sig)
}

func TestIsOutputEqualToInput(t *testing.T) {
	tt := New(2, 1)
	for p := 0; p < 4; p++ {
		tt.Set(0, p, gate.FromBool(Bit(p, 1) == 1))
	}
	require.True(t, tt.IsOutputEqualToInput(0, 1, false))
	require.False(t, tt.IsOutputEqualToInput(0, 1, true))
}

func TestDontCareRowsAreSkipped(t *testing.T) {
	tt := New(1, 1)
	tt.Set(0, 0, gate.True)
	// pattern 1 left Undefined
	require.Equal(t, gate.Undefined, tt.Get(0, 1))
	ok, v := tt.IsConstantAt(0)
	require.True(t, ok)
	require.Equal(t, gate.True, v)
}

func TestGetSymmetricAndNegationsOf(t *testing.T) {
	// f(x0,x1) = x0 AND NOT(x1) is not symmetric, but becomes
	// symmetric AND(x0,x1) under negation of x1.
	tt := New(2, 1)
	for p := 0; p < 4; p++ {
		x0 := Bit(p, 0) == 1
		x1 := Bit(p, 1) == 1
		tt.Set(0, p, gate.FromBool(x0 && !x1))
	}
	require.False(t, tt.IsSymmetricAt(0))
	negations, ok := tt.GetSymmetricAndNegationsOf([]int{0})
	require.True(t, ok)
	require.Equal(t, []bool{false, true}, negations)
}
