// Package synth implements component E: the fixed-size SAT encoding
// of "does a circuit of size r over basis B realize truth-table model
// T exist?", the external solver call, and decoding a satisfying
// model back into a circuit.Circuit. Grounded 1:1 on the reference
// implementation's CircuitFinder (circuit_search.py).
package synth

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/SPbSAT/cirbo-sub000/circuit"
	"github.com/SPbSAT/cirbo-sub000/sat"
	"github.com/SPbSAT/cirbo-sub000/ttable"
)

var log = logrus.WithField("component", "synth")

// Synthesize searches for a circuit with exactly `size` internal
// (non-input) gates, drawn from opts.Basis, whose truth table agrees
// with `tt` on every non-don't-care cell. It returns a synth.Error of
// KindNoSolution if the solver proves UNSAT, or KindSolverTimedOut if
// the time limit elapses first.
func Synthesize(ctx context.Context, solver sat.Solver, tt *ttable.Table, size int, opts Options) (*circuit.Circuit, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, newError(KindBadBasis, "Synthesize", "size must be non-negative, got %d", size)
	}

	entry := log.WithField("inputs", tt.InputSize()).WithField("outputs", tt.OutputSize()).WithField("size", size)
	entry.Info("synthesis attempt starting")

	enc := newEncoder(tt, size, opts.Basis)
	formula, err := enc.build(opts)
	if err != nil {
		return nil, errors.Wrap(err, "synth: building CNF encoding")
	}

	result, err := solver.Solve(ctx, formula, opts.TimeLimit)
	if err != nil {
		return nil, errors.Wrap(err, "synth: solver invocation")
	}

	switch result.Status {
	case sat.UNSAT:
		entry.Debug("synthesis attempt: UNSAT")
		return nil, newError(KindNoSolution, "Synthesize", "no circuit of size %d over the given basis realizes this model", size)
	case sat.TimedOut:
		entry.Info("synthesis attempt: solver timed out")
		return nil, newError(KindSolverTimedOut, "Synthesize", "solver exceeded time limit %s", opts.TimeLimit)
	}

	c, err := enc.decode(result.Model)
	if err != nil {
		return nil, errors.Wrap(err, "synth: decoding model")
	}
	entry.Info("synthesis attempt: SAT, circuit decoded")
	return c, nil
}
