package circuit

import (
	"fmt"
	"strings"

	"github.com/SPbSAT/cirbo-sub000/gate"
)

// Label names a gate within a circuit.
type Label string

// Gate is one node of the circuit DAG: a type and an ordered list of
// operand labels (its predecessors). A gate's type never changes in
// place: ReplaceGate and RenameGate store a new Gate value. Operand
// lists of stored gates are rewritten in place when an operand is
// renamed (RenameGate) or redirected (ReplaceSubcircuit).
type Gate struct {
	Label    Label
	Type     gate.Type
	Operands []Label
}

func newGate(label Label, t gate.Type, operands []Label) *Gate {
	ops := make([]Label, len(operands))
	copy(ops, operands)
	return &Gate{Label: label, Type: t, Operands: ops}
}

func (g *Gate) String() string {
	if g.Type == gate.INPUT {
		return fmt.Sprintf("INPUT(%s)", g.Label)
	}
	ops := make([]string, len(g.Operands))
	for i, o := range g.Operands {
		ops[i] = string(o)
	}
	return fmt.Sprintf("%s := %s(%s)", g.Label, g.Type, strings.Join(ops, ", "))
}
