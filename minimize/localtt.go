package minimize

import (
	"github.com/SPbSAT/cirbo-sub000/circuit"
	"github.com/SPbSAT/cirbo-sub000/gate"
	"github.com/SPbSAT/cirbo-sub000/ttable"
)

// dedupMatch records how one of a candidate's outputs was resolved
// during internal-duplicate detection (spec.md §4.F step 3, last
// sentence): either it is one of the outputs actually handed to the
// synthesizer (Matched == false), or it is equivalent (or negated-
// equivalent) to a cut boundary wire or to another, earlier output,
// and can be wired directly instead.
type dedupMatch struct {
	Matched bool
	IsInput bool // Ref indexes cand.Cut instead of cand.Outputs
	Ref     int
	Negate  bool
}

// localTruthTable evaluates the host circuit on every global input
// pattern (using the caller-supplied cache, built once per pass per
// spec.md §5's resource discipline) and rolls up the candidate's
// local function: a `len(cand.Cut)`-input, `len(cand.Outputs)`-output
// table whose cells are Undefined for any local input combination
// that never actually occurs, and the candidate's dedup resolution.
func localTruthTable(cand Candidate, fullEval []map[circuit.Label]gate.TriValue) (*ttable.Table, []int, []dedupMatch, error) {
	n := len(cand.Cut)
	m := len(cand.Outputs)
	tt := ttable.New(n, m)

	reachable := map[int]bool{}
	for _, assignment := range fullEval {
		pattern := 0
		for i, l := range cand.Cut {
			if assignment[l] == gate.True {
				pattern |= 1 << uint(i)
			}
		}
		reachable[pattern] = true
		for j, o := range cand.Outputs {
			tt.Set(j, pattern, assignment[o])
		}
	}

	var patterns []int
	for p := range reachable {
		patterns = append(patterns, p)
	}
	sortInts(patterns)

	rowKey := func(row int) string {
		buf := make([]byte, len(patterns))
		for i, p := range patterns {
			if tt.Get(row, p) == gate.True {
				buf[i] = '1'
			} else {
				buf[i] = '0'
			}
		}
		return string(buf)
	}
	negKey := func(key string) string {
		buf := []byte(key)
		for i, b := range buf {
			if b == '1' {
				buf[i] = '0'
			} else {
				buf[i] = '1'
			}
		}
		return string(buf)
	}
	cutInputKey := func(i int) string {
		buf := make([]byte, len(patterns))
		for k, p := range patterns {
			if (p>>uint(i))&1 == 1 {
				buf[k] = '1'
			} else {
				buf[k] = '0'
			}
		}
		return string(buf)
	}

	type ref struct {
		isInput bool
		idx     int
	}
	found := map[string]ref{}
	for i := range cand.Cut {
		found[cutInputKey(i)] = ref{isInput: true, idx: i}
	}

	matches := make([]dedupMatch, m)
	var filteredIdx []int
	for i := range cand.Outputs {
		key := rowKey(i)
		if r, ok := found[key]; ok {
			matches[i] = dedupMatch{Matched: true, IsInput: r.isInput, Ref: r.idx, Negate: false}
			continue
		}
		if r, ok := found[negKey(key)]; ok {
			matches[i] = dedupMatch{Matched: true, IsInput: r.isInput, Ref: r.idx, Negate: true}
			continue
		}
		found[key] = ref{isInput: false, idx: i}
		filteredIdx = append(filteredIdx, i)
		matches[i] = dedupMatch{Matched: false}
	}

	return tt, filteredIdx, matches, nil
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
