package cirbo

import (
	"context"
	"time"
)

// Operation is one named, timeable unit of work — typically a single
// Synthesize or Minimize call — the way logic.go's Benchmark grouped
// arbitrary boolean closures; here each closure performs real solver
// work instead of evaluating a boolean expression.
type Operation struct {
	// Name is a descriptive label for the operation being benchmarked.
	Name string
	// Func runs the operation and reports whether it succeeded.
	Func func(ctx context.Context) error
}

// Result is one operation's outcome: how long it took and whether it
// returned an error.
type Result struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Benchmark runs a sequence of synthesis/minimization attempts and
// records how long each one took, for comparing basis choices, time
// limits, or cut enumerator settings against each other.
type Benchmark struct {
	operations []Operation

	// Results holds one entry per added operation after Run.
	Results []Result
}

func NewBenchmark() *Benchmark {
	return &Benchmark{
		operations: make([]Operation, 0),
		Results:    make([]Result, 0),
	}
}

// Add registers an operation to be run and timed when Run is called.
func (b *Benchmark) Add(name string, fn func(ctx context.Context) error) {
	b.operations = append(b.operations, Operation{Name: name, Func: fn})
}

// Run executes every added operation in order, against ctx, recording
// each one's wall-clock duration and outcome in Results.
func (b *Benchmark) Run(ctx context.Context) {
	b.Results = make([]Result, len(b.operations))
	for i, op := range b.operations {
		start := time.Now()
		err := op.Func(ctx)
		b.Results[i] = Result{Name: op.Name, Duration: time.Since(start), Err: err}
	}
}
