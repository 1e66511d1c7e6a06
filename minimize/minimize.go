// Package minimize implements cut-based subcircuit minimization: for
// every candidate cut of the host circuit, try to resynthesize its
// dominated region with one fewer internal gate and splice the result
// back in, rolling back on any cycle or failed synthesis attempt.
// Grounded 1:1 on the reference implementation's subcircuit.py.
package minimize

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/SPbSAT/cirbo-sub000/circuit"
	"github.com/SPbSAT/cirbo-sub000/gate"
	"github.com/SPbSAT/cirbo-sub000/sat"
	"github.com/SPbSAT/cirbo-sub000/synth"
	"github.com/SPbSAT/cirbo-sub000/ttable"
)

var log = logrus.WithField("component", "minimize")

// Options configures one Run call.
type Options struct {
	// Enumerator supplies cuts; NewDefaultEnumerator() is used if nil.
	Enumerator CutEnumerator
	// MaxCutSize bounds how many boundary wires a cut may have; 6 is
	// used if zero or negative.
	MaxCutSize int
	// Basis restricts which operator a resynthesized gate may use;
	// synth.BasisFULL() is used if nil.
	Basis synth.Basis
	// TimeLimit bounds each resynthesis attempt; zero means no limit.
	TimeLimit time.Duration
	// Validate runs an O(2^n) equivalence check against the original
	// circuit after the pass and returns a KindFailedValidation error
	// if it disagrees. Expensive; opt-in.
	Validate bool
}

// Stats reports what a Run call did, for callers that want to log or
// assert on minimizer behavior without re-deriving it from the
// returned circuit.
type Stats struct {
	CandidatesConsidered int
	Replaced             int
	SkippedModified      int
	SkippedNoSolution    int
}

// Run performs a single pass over every candidate cut of host,
// replacing each one whose dominated region can be resynthesized with
// fewer gates, and returns the resulting circuit (host itself is left
// untouched). Candidates are tried smallest-cut-first; once a
// candidate's region is spliced, any later candidate that touches one
// of its internal gates is skipped, matching the reference
// implementation's single-pass, no-overlap sweep.
func Run(ctx context.Context, solver sat.Solver, host *circuit.Circuit, opts Options) (*circuit.Circuit, Stats, error) {
	enumerator := opts.Enumerator
	if enumerator == nil {
		enumerator = NewDefaultEnumerator()
	}
	maxCutSize := opts.MaxCutSize
	if maxCutSize <= 0 {
		maxCutSize = 6
	}
	basis := opts.Basis
	if basis == nil {
		basis = synth.BasisFULL()
	}

	current := host.Copy()

	raw, err := enumerator.Enumerate(current, maxCutSize)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "minimize: enumerating cuts")
	}

	order, err := current.TopSort(false, false)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "minimize: topologically sorting host circuit")
	}
	topoPos := make(map[circuit.Label]int, len(order))
	for i, l := range order {
		topoPos[l] = i
	}

	candidates, err := buildCandidates(current, raw, topoPos)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "minimize: canonicalizing candidate cuts")
	}

	fullEval, err := evaluateAllPatterns(current)
	if err != nil {
		return nil, Stats{}, errors.Wrap(err, "minimize: evaluating host circuit over all input patterns")
	}

	var stats Stats
	touched := map[circuit.Label]bool{}

	for _, cand := range candidates {
		stats.CandidatesConsidered++
		if len(cand.Outputs) == 0 {
			continue
		}
		if touches(cand, touched) {
			stats.SkippedModified++
			continue
		}

		tt, filteredIdx, matches, err := localTruthTable(cand, fullEval)
		if err != nil {
			return nil, stats, errors.Wrapf(err, "minimize: computing local truth table for candidate rooted at %s", cand.Root)
		}

		var sub *circuit.Circuit
		if len(filteredIdx) == 0 {
			sub = inputSkeleton(len(cand.Cut))
		} else {
			filteredTT := projectOutputs(tt, filteredIdx)
			target := cand.Size - 1
			s, err := synth.Synthesize(ctx, solver, filteredTT, target, synth.Options{Basis: basis, TimeLimit: opts.TimeLimit})
			if err != nil {
				if synth.IsNoSolution(err) || synth.IsTimedOut(err) {
					log.WithField("root", cand.Root).WithField("size", cand.Size).Debug("no smaller realization found for candidate")
					stats.SkippedNoSolution++
					continue
				}
				return nil, stats, errors.Wrapf(err, "minimize: synthesizing replacement for candidate rooted at %s", cand.Root)
			}
			sub = s
		}

		trial := current.Copy()
		inputMapping, outputMapping, err := wireCandidate(sub, cand, filteredIdx, matches)
		if err != nil {
			return nil, stats, errors.Wrapf(err, "minimize: wiring synthesized replacement for candidate rooted at %s", cand.Root)
		}
		if err := trial.ReplaceSubcircuit(sub, inputMapping, outputMapping); err != nil {
			log.WithError(errors.Wrapf(err, "minimize: splicing candidate rooted at %s", cand.Root)).
				Debug("splice introduced a cycle, skipping candidate")
			stats.SkippedModified++
			continue
		}

		current = trial
		for _, l := range cand.Nodes {
			touched[l] = true
		}
		stats.Replaced++
		log.WithField("root", cand.Root).WithField("old_size", cand.Size).WithField("new_size", cand.Size-1).Info("replaced candidate with a smaller realization")
	}

	if opts.Validate {
		if err := checkEquivalent(host, current); err != nil {
			return nil, stats, err
		}
	}

	return current, stats, nil
}

func touches(cand Candidate, touched map[circuit.Label]bool) bool {
	for _, l := range cand.Cut {
		if touched[l] {
			return true
		}
	}
	for _, l := range cand.Nodes {
		if touched[l] {
			return true
		}
	}
	return false
}

// inputSkeleton builds a bare circuit of n INPUT gates named the way
// synth.decode names them, for the case where every one of a
// candidate's outputs resolved to a direct (or negated) reference to
// a boundary wire or another output and no SAT call is needed at all.
func inputSkeleton(n int) *circuit.Circuit {
	c := circuit.New()
	for i := 0; i < n; i++ {
		_ = c.EmplaceGate(circuit.Label(fmt.Sprintf("input_%d", i)), gate.INPUT)
	}
	return c
}

// wireCandidate builds the input/output mappings ReplaceSubcircuit
// needs, adding a buffer or NOT gate to sub for every output that
// dedup resolved to an existing driver (spec.md §4.F step 3) so every
// one of the candidate's original outputs ends up backed by its own
// sub label.
func wireCandidate(sub *circuit.Circuit, cand Candidate, filteredIdx []int, matches []dedupMatch) (inputMapping, outputMapping map[circuit.Label]circuit.Label, err error) {
	subInputs := sub.Inputs()
	subOutputs := sub.Outputs()

	inputMapping = make(map[circuit.Label]circuit.Label, len(subInputs))
	for i, l := range subInputs {
		inputMapping[l] = cand.Cut[i]
	}

	driverForOutputIdx := make([]circuit.Label, len(cand.Outputs))
	for k, origIdx := range filteredIdx {
		driverForOutputIdx[origIdx] = subOutputs[k]
	}

	outputMapping = make(map[circuit.Label]circuit.Label, len(cand.Outputs))
	fresh := 0
	for i, o := range cand.Outputs {
		m := matches[i]
		if !m.Matched {
			outputMapping[driverForOutputIdx[i]] = o
			continue
		}

		var base circuit.Label
		if m.IsInput {
			base = subInputs[m.Ref]
		} else {
			base = driverForOutputIdx[m.Ref]
		}
		label := circuit.Label(fmt.Sprintf("__dedup_%d", fresh))
		fresh++
		t := gate.IFF
		if m.Negate {
			t = gate.NOT
		}
		if err := sub.EmplaceGate(label, t, base); err != nil {
			return nil, nil, err
		}
		if err := sub.MarkAsOutput(label); err != nil {
			return nil, nil, err
		}
		outputMapping[label] = o
	}

	return inputMapping, outputMapping, nil
}

// projectOutputs builds a new table containing only the given output
// columns of tt, in order — the function the synthesizer is actually
// asked to realize once duplicate/negated-duplicate outputs have been
// filtered out.
func projectOutputs(tt *ttable.Table, idx []int) *ttable.Table {
	out := ttable.New(tt.InputSize(), len(idx))
	for j, orig := range idx {
		for p := 0; p < tt.Rows(); p++ {
			out.Set(j, p, tt.Get(orig, p))
		}
	}
	return out
}

// evaluateAllPatterns caches circuit-wide gate values over every
// global input pattern once per pass, the Go analogue of
// eval_dont_cares's single enumeration shared by every candidate.
func evaluateAllPatterns(c *circuit.Circuit) ([]map[circuit.Label]gate.TriValue, error) {
	inputs := c.Inputs()
	n := len(inputs)
	out := make([]map[circuit.Label]gate.TriValue, 1<<uint(n))
	for pattern := 0; pattern < len(out); pattern++ {
		assignment := make(map[circuit.Label]gate.TriValue, n)
		for i, in := range inputs {
			assignment[in] = gate.FromBool(ttable.Bit(pattern, i) == 1)
		}
		values, err := c.EvaluateFull(assignment)
		if err != nil {
			return nil, err
		}
		out[pattern] = values
	}
	return out, nil
}

// checkEquivalent compares original and candidate over every global
// input pattern, returning a KindFailedValidation error at the first
// disagreement.
func checkEquivalent(original, candidate *circuit.Circuit) error {
	before, err := original.GetTruthTable()
	if err != nil {
		return err
	}
	after, err := candidate.GetTruthTable()
	if err != nil {
		return err
	}
	if before.InputSize() != after.InputSize() || before.OutputSize() != after.OutputSize() {
		return newError(KindFailedValidation, "Run", "minimized circuit's shape does not match the original")
	}
	for o := 0; o < before.OutputSize(); o++ {
		for p := 0; p < before.Rows(); p++ {
			if before.Get(o, p) != after.Get(o, p) {
				return newError(KindFailedValidation, "Run", "minimized circuit disagrees with the original at output %d, pattern %d", o, p)
			}
		}
	}
	return nil
}
