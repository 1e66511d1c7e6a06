package minimize

import (
	"sort"

	"github.com/SPbSAT/cirbo-sub000/circuit"
)

// CutEnumerator is the external collaborator spec.md §1 names: for
// each gate, a bounded list of cuts (gate sets that dominate it).
// minimize.Run treats this as pluggable so a production-grade
// enumerator (the spec's `mockturtle_wrapper`, out of scope here) can
// be swapped in without touching the rest of the driver.
type CutEnumerator interface {
	Enumerate(c *circuit.Circuit, maxSize int) (map[circuit.Label][]Cut, error)
}

// DefaultEnumerator is a bounded reference cut enumerator: bottom-up
// cartesian-product cut merging capped at Enumerate's maxSize elements
// and MaxCutsPerGate cuts retained per gate, keeping the smallest cuts
// when the cap is exceeded. It is not a production-grade
// implementation (real cut enumeration uses priority heuristics over
// cut cost); it exists so the package is usable without an external
// collaborator wired in.
type DefaultEnumerator struct {
	MaxCutsPerGate int
}

func NewDefaultEnumerator() *DefaultEnumerator {
	return &DefaultEnumerator{MaxCutsPerGate: 8}
}

func (e *DefaultEnumerator) capPerGate() int {
	if e.MaxCutsPerGate > 0 {
		return e.MaxCutsPerGate
	}
	return 8
}

func (e *DefaultEnumerator) Enumerate(c *circuit.Circuit, maxSize int) (map[circuit.Label][]Cut, error) {
	order, err := c.TopSort(false, false)
	if err != nil {
		return nil, err
	}

	result := make(map[circuit.Label][]Cut, len(order))
	for _, v := range order {
		g, ok := c.Gate(v)
		if !ok {
			return nil, newError(KindUnsupportedOperation, "Enumerate", "gate %q vanished mid-enumeration", v)
		}

		trivial := newCut([]circuit.Label{v})
		if len(g.Operands) == 0 {
			result[v] = []Cut{trivial}
			continue
		}

		combos := cartesianCuts(result, g.Operands)
		seen := map[string]bool{trivial.key(): true}
		cuts := []Cut{trivial}
		for _, combo := range combos {
			u := unionCuts(combo...)
			if len(u) > maxSize {
				continue
			}
			if k := u.key(); !seen[k] {
				seen[k] = true
				cuts = append(cuts, u)
			}
		}
		sort.Slice(cuts, func(i, j int) bool { return len(cuts[i]) < len(cuts[j]) })
		if len(cuts) > e.capPerGate() {
			cuts = cuts[:e.capPerGate()]
		}
		result[v] = cuts
	}
	return result, nil
}

// cartesianCuts returns every way of picking one cut per operand, the
// cartesian product of result[operands[0]] x result[operands[1]] x ...
func cartesianCuts(result map[circuit.Label][]Cut, operands []circuit.Label) [][]Cut {
	combos := [][]Cut{{}}
	for _, op := range operands {
		opCuts := result[op]
		var next [][]Cut
		for _, combo := range combos {
			for _, oc := range opCuts {
				extended := make([]Cut, len(combo)+1)
				copy(extended, combo)
				extended[len(combo)] = oc
				next = append(next, extended)
			}
		}
		combos = next
	}
	return combos
}
