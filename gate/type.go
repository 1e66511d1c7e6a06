package gate

// Type enumerates every gate operator the circuit model supports.
//
// INPUT, ALWAYS_TRUE and ALWAYS_FALSE are nullary (no operands).
// NOT and IFF are genuinely unary. LNOT/RNOT/LIFF/RIFF are the
// degenerate binary forms that keep both predecessor wires (for DAG
// edge/users bookkeeping) while depending functionally on only the
// left or right operand; the synthesizer decodes into these forms
// when a synthesized gate's truth table shows that shape (see
// DESIGN.md, Open Question 1). Everything else is genuinely binary.
type Type int

const (
	INPUT Type = iota
	NOT
	IFF
	LNOT
	RNOT
	LIFF
	RIFF
	AND
	OR
	NAND
	NOR
	XOR
	NXOR
	GEQ
	GT
	LEQ
	LT
	ALWAYS_TRUE
	ALWAYS_FALSE
)

var typeNames = map[Type]string{
	INPUT:        "INPUT",
	NOT:          "NOT",
	IFF:          "IFF",
	LNOT:         "LNOT",
	RNOT:         "RNOT",
	LIFF:         "LIFF",
	RIFF:         "RIFF",
	AND:          "AND",
	OR:           "OR",
	NAND:         "NAND",
	NOR:          "NOR",
	XOR:          "XOR",
	NXOR:         "NXOR",
	GEQ:          "GEQ",
	GT:           "GT",
	LEQ:          "LEQ",
	LT:           "LT",
	ALWAYS_TRUE:  "ALWAYS_TRUE",
	ALWAYS_FALSE: "ALWAYS_FALSE",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "UNKNOWN"
}

// Arity returns the number of operand slots the gate structurally
// carries. This is the DAG edge count, not necessarily the number of
// operands the truth table functionally depends on (see LNOT/RNOT).
func (t Type) Arity() int {
	switch t {
	case INPUT, ALWAYS_TRUE, ALWAYS_FALSE:
		return 0
	case NOT, IFF:
		return 1
	default:
		return 2
	}
}

// IsSymmetric reports whether the gate's output is invariant under
// any permutation of its operands.
func (t Type) IsSymmetric() bool {
	switch t {
	case AND, OR, NAND, NOR, XOR, NXOR:
		return true
	default:
		return false
	}
}

// Eval evaluates the gate's operator given its operands' current
// values, under the three-valued algebra of trivalue.go.
func (t Type) Eval(operands ...TriValue) TriValue {
	switch t {
	case ALWAYS_TRUE:
		return True
	case ALWAYS_FALSE:
		return False
	case NOT:
		return Not(operands[0])
	case IFF:
		return Iff(operands[0])
	case LNOT:
		return Not(operands[0])
	case RNOT:
		return Not(operands[1])
	case LIFF:
		return operands[0]
	case RIFF:
		return operands[1]
	case AND:
		return And(operands[0], operands[1])
	case OR:
		return Or(operands[0], operands[1])
	case NAND:
		return Nand(operands[0], operands[1])
	case NOR:
		return Nor(operands[0], operands[1])
	case XOR:
		return Xor(operands[0], operands[1])
	case NXOR:
		return Nxor(operands[0], operands[1])
	case GEQ:
		return Or(operands[0], Not(operands[1]))
	case GT:
		return And(operands[0], Not(operands[1]))
	case LEQ:
		return Or(Not(operands[0]), operands[1])
	case LT:
		return And(Not(operands[0]), operands[1])
	case INPUT:
		panic("gate: INPUT has no operator, its value comes from the assignment")
	default:
		panic("gate: unknown gate type")
	}
}

// TruthTable4 returns the gate's truth table over the four boolean
// (non-undefined) input combinations (a,b) in order (0,0),(0,1),(1,0),
// (1,1). It is only meaningful for arity-2 gate types and is used by
// the synthesizer to build basis-restriction clauses and to decode a
// SAT model back into a concrete gate type.
func TruthTable4(t Type) [4]bool {
	b := func(v TriValue) bool { return v == True }
	tt := [4]bool{}
	pairs := [4][2]TriValue{{False, False}, {False, True}, {True, False}, {True, True}}
	for i, p := range pairs {
		switch t {
		case LNOT, NOT:
			tt[i] = b(Not(p[0]))
		case RNOT:
			tt[i] = b(Not(p[1]))
		case LIFF, IFF:
			tt[i] = b(p[0])
		case RIFF:
			tt[i] = b(p[1])
		case AND:
			tt[i] = b(And(p[0], p[1]))
		case OR:
			tt[i] = b(Or(p[0], p[1]))
		case NAND:
			tt[i] = b(Nand(p[0], p[1]))
		case NOR:
			tt[i] = b(Nor(p[0], p[1]))
		case XOR:
			tt[i] = b(Xor(p[0], p[1]))
		case NXOR:
			tt[i] = b(Nxor(p[0], p[1]))
		case GEQ:
			tt[i] = b(Or(p[0], Not(p[1])))
		case GT:
			tt[i] = b(And(p[0], Not(p[1])))
		case LEQ:
			tt[i] = b(Or(Not(p[0]), p[1]))
		case LT:
			tt[i] = b(And(Not(p[0]), p[1]))
		case ALWAYS_TRUE:
			tt[i] = true
		case ALWAYS_FALSE:
			tt[i] = false
		default:
			panic("gate: TruthTable4 undefined for " + t.String())
		}
	}
	return tt
}

// binaryByTT4 lists every binary gate type keyed by its TruthTable4,
// used by TypeFromTruthTable4 to invert the mapping above. NOT/IFF are
// intentionally absent here: their unary forms collapse from LNOT/LIFF
// only when the caller asks for that (see TypeFromTruthTable4).
var binaryByTT4 = func() map[[4]bool]Type {
	m := map[[4]bool]Type{}
	for _, t := range []Type{LNOT, RNOT, LIFF, RIFF, AND, OR, NAND, NOR, XOR, NXOR, GEQ, GT, LEQ, LT, ALWAYS_TRUE, ALWAYS_FALSE} {
		m[TruthTable4(t)] = t
	}
	return m
}()

// TypeFromTruthTable4 inverts TruthTable4. When collapseUnary is true
// and the table matches a degenerate single-operand shape (LNOT/LIFF,
// i.e. the table only depends on the first bit), the unary NOT/IFF
// form is returned instead; RNOT/RIFF never collapse because the
// circuit's operand-order convention keeps the first slot canonical.
func TypeFromTruthTable4(tt [4]bool, collapseUnary bool) (Type, bool) {
	t, ok := binaryByTT4[tt]
	if !ok {
		return 0, false
	}
	if collapseUnary {
		switch t {
		case LNOT:
			return NOT, true
		case LIFF:
			return IFF, true
		}
	}
	return t, true
}
