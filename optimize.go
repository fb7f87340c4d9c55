package cxpr

// optimize folds pure calls whose arguments are all constants into constant
// nodes, discarding the argument subtrees. One bottom-up pass suffices:
// children fold before their parent is inspected. Variable nodes are never
// touched; a variable must stay dynamic. Impure calls are never invoked at
// compile time, but their constant subexpressions still fold.
func optimize(n *node) {
	if n.kind != nodeCall {
		return
	}
	known := true
	for _, a := range n.args {
		optimize(a)
		if a.kind != nodeConst {
			known = false
		}
	}
	if !known || !n.pure {
		return
	}
	v := n.eval()
	*n = node{kind: nodeConst, value: v}
}
