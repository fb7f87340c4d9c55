package cxpr

import (
	"math/cmplx"
)

// Eval computes the current value of the compiled expression. Variable nodes
// read through the caller-owned storage they were bound to at compile time,
// so the result reflects whatever the host has written there most recently.
// Eval never fails: division by zero, domain violations, and the like
// propagate as NaN or infinite values per complex floating-point
// convention. A nil expression evaluates to NaN.
func (e *Expr) Eval() complex128 {
	if e == nil || e.n == nil {
		return cmplx.NaN()
	}
	return e.n.eval()
}

func (n *node) eval() complex128 {
	switch n.kind {
	case nodeConst:
		return n.value
	case nodeVar:
		return *n.bound
	case nodeCall:
		var args [6]complex128
		for i, a := range n.args {
			args[i] = a.eval()
		}
		return invoke(n.fn, args[:len(n.args)])
	default:
		return cmplx.NaN()
	}
}

// invoke dispatches a call across the Func arity sum. len(args) always
// equals the function's arity; the parser fixes both at construction.
func invoke(fn Func, args []complex128) complex128 {
	switch f := fn.(type) {
	case Func0:
		return f()
	case Func1:
		return f(args[0])
	case Func2:
		return f(args[0], args[1])
	case Func3:
		return f(args[0], args[1], args[2])
	case Func4:
		return f(args[0], args[1], args[2], args[3])
	case Func5:
		return f(args[0], args[1], args[2], args[3], args[4])
	case Func6:
		return f(args[0], args[1], args[2], args[3], args[4], args[5])
	case Closure0:
		return f.Fn(f.Ctx)
	case Closure1:
		return f.Fn(f.Ctx, args[0])
	case Closure2:
		return f.Fn(f.Ctx, args[0], args[1])
	case Closure3:
		return f.Fn(f.Ctx, args[0], args[1], args[2])
	case Closure4:
		return f.Fn(f.Ctx, args[0], args[1], args[2], args[3])
	case Closure5:
		return f.Fn(f.Ctx, args[0], args[1], args[2], args[3], args[4])
	case Closure6:
		return f.Fn(f.Ctx, args[0], args[1], args[2], args[3], args[4], args[5])
	default:
		return cmplx.NaN()
	}
}
