package synth

import (
	"sort"

	"github.com/SPbSAT/cirbo-sub000/gate"
)

// Basis restricts which gate types the synthesizer may emit for an
// internal gate. It is expressed over the 16 types whose 4-bit truth
// table is meaningful at encoding time (see gate.TruthTable4): the
// binary-shaped operators plus the two nullary constants. NOT/IFF
// never appear in a Basis directly — they are the post-decode
// collapse of LNOT/LIFF (see DESIGN.md, Open Question 1) — so basis
// membership is always checked against a gate's binary form.
type Basis map[gate.Type]bool

// NewBasis builds a Basis from an explicit type list, validating that
// every type is one of the 16 the encoding understands.
func NewBasis(types ...gate.Type) (Basis, error) {
	b := make(Basis, len(types))
	for _, t := range types {
		if !encodable[t] {
			return nil, newError(KindBadBasis, "NewBasis", "type %s is not a valid basis member", t)
		}
		b[t] = true
	}
	return b, nil
}

// encodable lists every gate.Type a Basis may legally mention: the 14
// binary-shaped operators (LNOT/RNOT standing in for NOT's two wire
// orientations, likewise LIFF/RIFF for IFF) plus the two nullary
// constants.
var encodable = map[gate.Type]bool{
	gate.LNOT: true, gate.RNOT: true, gate.LIFF: true, gate.RIFF: true,
	gate.AND: true, gate.OR: true, gate.NAND: true, gate.NOR: true,
	gate.XOR: true, gate.NXOR: true,
	gate.GEQ: true, gate.GT: true, gate.LEQ: true, gate.LT: true,
	gate.ALWAYS_TRUE: true, gate.ALWAYS_FALSE: true,
}

func allEncodable() []gate.Type {
	out := make([]gate.Type, 0, len(encodable))
	for t := range encodable {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BasisAIG is the "and-inverter graph" preset: AND/OR/NAND/NOR, the
// four comparison gates, and NOT in its left-reading wire orientation
// only (LNOT; RNOT is not in the basis, so the encoding forbids it).
func BasisAIG() Basis {
	b, _ := NewBasis(gate.LNOT, gate.AND, gate.OR, gate.NAND, gate.NOR, gate.GEQ, gate.GT, gate.LEQ, gate.LT)
	return b
}

// BasisXAIG extends BasisAIG with XOR/NXOR.
func BasisXAIG() Basis {
	b, _ := NewBasis(gate.LNOT, gate.AND, gate.OR, gate.NAND, gate.NOR, gate.GEQ, gate.GT, gate.LEQ, gate.LT, gate.XOR, gate.NXOR)
	return b
}

// BasisFULL allows every encodable operator, both wire orientations of
// NOT/IFF included.
func BasisFULL() Basis {
	b, _ := NewBasis(allEncodable()...)
	return b
}

// forbidden returns every encodable type not present in b, in a
// deterministic order so repeated encodes of the same basis produce
// byte-identical CNF.
func (b Basis) forbidden() []gate.Type {
	var out []gate.Type
	for _, t := range allEncodable() {
		if !b[t] {
			out = append(out, t)
		}
	}
	return out
}
