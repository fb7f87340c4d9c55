package cxpr

import (
	"strings"
)

// node is a node in the compiled tree of an expression. Exactly one of the
// three kinds of payload is meaningful: value for nodeConst, bound for
// nodeVar, and fn/pure/args for nodeCall. A call holds exactly as many
// argument subtrees as its function's arity, fixed at construction.
type node struct {
	kind nodeKind

	// name is the identifier or operator the node was parsed from. It is
	// only used for rendering.
	name string

	// value is the constant's value.
	value complex128
	// bound points into caller-owned variable storage. The node reads
	// through it on every evaluation and never copies the value.
	bound *complex128

	// fn is the function or closure to invoke.
	fn Func
	// pure marks fn as eligible for constant folding.
	pure bool
	// args are the owned argument subtrees, one per arity.
	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeConst // push value
	nodeVar   // read through bound
	nodeCall  // evaluate args left to right, invoke fn
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node

func (n *node) String() string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt renders the node into b, alternating round and square brackets with
// nesting depth.
func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeConst:
		b.WriteString(FormatComplex(n.value))
	case nodeVar:
		b.WriteString(n.name)
	case nodeCall:
		switch {
		case len(n.args) == 1 && n.name == "-":
			b.WriteByte('-')
			n.args[0].fmt(b, !square)
		case len(n.args) == 2 && isOperator(n.name):
			n.args[0].fmt(b, !square)
			b.WriteString(" " + n.name + " ")
			n.args[1].fmt(b, !square)
		default:
			b.WriteString(n.name)
			n.fmtargs(b, !square)
		}
	default:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		b.WriteString(n.kind.String())
		b.WriteByte('$')
	}
}

func (n *node) fmtargs(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	for i, a := range n.args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.fmt(b, !square)
	}
}

// isOperator reports whether name is an infix operator or the list
// separator, both of which render infix.
func isOperator(name string) bool {
	return name == "," || (len(name) == 1 && strings.Contains(Operators, name))
}
