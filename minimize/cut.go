package minimize

import (
	"sort"

	"github.com/SPbSAT/cirbo-sub000/circuit"
)

// Cut is a bounded set of gate labels that dominates some target gate
// (every path from a circuit input to the target crosses the set),
// always kept sorted so two cuts with the same elements compare
// equal.
type Cut []circuit.Label

func newCut(labels []circuit.Label) Cut {
	c := make(Cut, len(labels))
	copy(c, labels)
	sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	return c
}

func (c Cut) key() string {
	// Cuts are small (bounded by K) so a joined string is a cheap,
	// readable map key; avoids pulling in a generic set type for one
	// use site.
	s := ""
	for i, l := range c {
		if i > 0 {
			s += "\x00"
		}
		s += string(l)
	}
	return s
}

func (c Cut) has(l circuit.Label) bool {
	for _, x := range c {
		if x == l {
			return true
		}
	}
	return false
}

// subsetOf reports whether every element of c is also in other.
func (c Cut) subsetOf(other Cut) bool {
	for _, l := range c {
		if !other.has(l) {
			return false
		}
	}
	return true
}

func unionCuts(cuts ...Cut) Cut {
	seen := map[circuit.Label]bool{}
	var all []circuit.Label
	for _, c := range cuts {
		for _, l := range c {
			if !seen[l] {
				seen[l] = true
				all = append(all, l)
			}
		}
	}
	return newCut(all)
}

// nodesOf computes nodes(cut) for a cut dominating root: every gate
// reachable from root by walking operands backward, stopping at (but
// including) elements of cut, as spec.md §4.F step 2 requires. Inputs
// not in cut are never reached, since cut dominates root by
// construction.
func nodesOf(c *circuit.Circuit, root circuit.Label, cut Cut) (map[circuit.Label]bool, error) {
	visited := map[circuit.Label]bool{root: true}
	stack := []circuit.Label{root}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cut.has(u) {
			continue
		}
		g, ok := c.Gate(u)
		if !ok {
			return nil, newError(KindUnsupportedOperation, "nodesOf", "gate %q vanished mid-enumeration", u)
		}
		for _, op := range g.Operands {
			if !visited[op] {
				visited[op] = true
				stack = append(stack, op)
			}
		}
	}
	return visited, nil
}
