package minimize

import (
	"sort"

	"github.com/SPbSAT/cirbo-sub000/circuit"
)

// Candidate is one surviving, canonicalized cut: the region it
// dominates, which of that region's gates must keep their value
// (Outputs), and how many non-cut gates it costs (Size) — the number
// the minimizer will try to synthesize a smaller replacement for.
type Candidate struct {
	Root    circuit.Label
	Cut     Cut
	Nodes   []circuit.Label // non-cut gates in the dominated region, host-topological order
	Outputs []circuit.Label // subset of Nodes whose value must be preserved
	Size    int             // len(Nodes)
}

// buildCandidates canonicalizes every enumerated cut (spec.md §4.F
// step 2): per root, drop cuts nested inside an already-accepted
// smaller cut covering the same region, and drop cuts whose dominated
// region has two gates or fewer. The survivors are flattened across
// every root and returned sorted ascending by cut size, matching the
// reference implementation's `sorted(cut_nodes.keys(), key=len)`
// single-pass order (spec.md §4.F step 7).
func buildCandidates(c *circuit.Circuit, raw map[circuit.Label][]Cut, topoPos map[circuit.Label]int) ([]Candidate, error) {
	hostOutputs := map[circuit.Label]bool{}
	for _, o := range c.Outputs() {
		hostOutputs[o] = true
	}

	var out []Candidate
	for root, cuts := range raw {
		sorted := append([]Cut(nil), cuts...)
		sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) < len(sorted[j]) })

		type accepted struct {
			cut   Cut
			nodes map[circuit.Label]bool
		}
		var acceptedCuts []accepted

		for _, cut := range sorted {
			nodes, err := nodesOf(c, root, cut)
			if err != nil {
				return nil, err
			}
			if len(nodes) <= 2 {
				continue
			}
			nested := false
			for _, a := range acceptedCuts {
				if len(a.cut) < len(cut) && a.cut.subsetOf(cut) && coversAll(a.nodes, nodes) {
					nested = true
					break
				}
			}
			if nested {
				continue
			}
			acceptedCuts = append(acceptedCuts, accepted{cut: cut, nodes: nodes})

			internal := make([]circuit.Label, 0, len(nodes))
			for l := range nodes {
				if !cut.has(l) {
					internal = append(internal, l)
				}
			}
			sort.Slice(internal, func(i, j int) bool { return topoPos[internal[i]] < topoPos[internal[j]] })

			var outputs []circuit.Label
			for _, u := range internal {
				if isCandidateOutput(c, u, nodes, hostOutputs) {
					outputs = append(outputs, u)
				}
			}

			out = append(out, Candidate{
				Root:    root,
				Cut:     cut,
				Nodes:   internal,
				Outputs: outputs,
				Size:    len(internal),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Cut) < len(out[j].Cut) })
	return out, nil
}

func coversAll(subset, all map[circuit.Label]bool) bool {
	for l := range all {
		if !subset[l] {
			return false
		}
	}
	return true
}

func isCandidateOutput(c *circuit.Circuit, u circuit.Label, nodes map[circuit.Label]bool, hostOutputs map[circuit.Label]bool) bool {
	if hostOutputs[u] {
		return true
	}
	for _, user := range c.Users(u) {
		if !nodes[user] {
			return true
		}
	}
	return false
}
