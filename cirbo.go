// Package cirbo is the library's facade: it re-exports the main types
// and entry points of circuit, gate, ttable, sat, synth and minimize
// under one import, the way a caller who just wants "build a
// circuit, synthesize one, minimize one" would reach for it without
// learning the package layout first.
package cirbo

import (
	"github.com/SPbSAT/cirbo-sub000/circuit"
	"github.com/SPbSAT/cirbo-sub000/gate"
	"github.com/SPbSAT/cirbo-sub000/minimize"
	"github.com/SPbSAT/cirbo-sub000/sat"
	"github.com/SPbSAT/cirbo-sub000/synth"
	"github.com/SPbSAT/cirbo-sub000/ttable"
)

// Circuit model.
type (
	Circuit = circuit.Circuit
	Label   = circuit.Label
	Gate    = circuit.Gate
)

var NewCircuit = circuit.New

// Gate catalog and three-valued values.
type (
	GateType = gate.Type
	TriValue = gate.TriValue
)

const (
	False     = gate.False
	True      = gate.True
	Undefined = gate.Undefined
)

const (
	INPUT        = gate.INPUT
	NOT          = gate.NOT
	IFF          = gate.IFF
	LNOT         = gate.LNOT
	RNOT         = gate.RNOT
	LIFF         = gate.LIFF
	RIFF         = gate.RIFF
	AND          = gate.AND
	OR           = gate.OR
	NAND         = gate.NAND
	NOR          = gate.NOR
	XOR          = gate.XOR
	NXOR         = gate.NXOR
	GEQ          = gate.GEQ
	GT           = gate.GT
	LEQ          = gate.LEQ
	LT           = gate.LT
	ALWAYS_TRUE  = gate.ALWAYS_TRUE
	ALWAYS_FALSE = gate.ALWAYS_FALSE
)

var FromBool = gate.FromBool

// Truth-table model.
type Table = ttable.Table

var NewTable = ttable.New

// SAT backends.
type Solver = sat.Solver

var (
	NewCDCLSolver = sat.NewCDCLSolver
	NewGiniSolver = sat.NewGiniSolver
)

// Exact synthesis.
type (
	Basis         = synth.Basis
	SynthOptions  = synth.Options
	FixedGate     = synth.FixedGate
	ForbiddenWire = synth.ForbiddenWire
)

var (
	Synthesize     = synth.Synthesize
	NewBasis       = synth.NewBasis
	BasisAIG       = synth.BasisAIG
	BasisXAIG      = synth.BasisXAIG
	BasisFULL      = synth.BasisFULL
	IsNoSolution   = synth.IsNoSolution
	IsSynthTimeout = synth.IsTimedOut
)

// Subcircuit minimization.
type (
	MinimizeOptions = minimize.Options
	MinimizeStats   = minimize.Stats
	Cut             = minimize.Cut
	CutEnumerator   = minimize.CutEnumerator
)

var (
	Minimize             = minimize.Run
	NewDefaultEnumerator = minimize.NewDefaultEnumerator
)
