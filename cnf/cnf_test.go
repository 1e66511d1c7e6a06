package cnf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolIsMonotoneAndStable(t *testing.T) {
	p := NewPool()
	a := p.ID("s_1_0_1")
	b := p.ID("s_1_0_2")
	require.NotEqual(t, a, b, "distinct names got the same variable")
	require.Equal(t, a, p.ID("s_1_0_1"), "same name did not return the same variable")
	require.Equal(t, 2, p.Len())
}

func TestExactlyOne(t *testing.T) {
	c := NewCNF()
	ExactlyOne(c, []Lit{1, 2, 3})
	require.Len(t, c.Clauses, 1+3) // 1 at-least-one clause + C(3,2) pairwise
}
