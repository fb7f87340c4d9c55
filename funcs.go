package cxpr

import (
	"math"
	"math/cmplx"
	"sort"
)

// Func is a function over complex numbers callable from an expression. It is
// a closed sum over arities 0 through 6: Func0 through Func6 for plain
// functions, and Closure0 through Closure6 for functions carrying an opaque
// host context that is passed on every invocation. The evaluator dispatches
// by type, so a call site always invokes with exactly Arity arguments.
type Func interface {
	// Arity returns the number of arguments the function consumes.
	Arity() int
}

// Plain functions of each arity.
type (
	Func0 func() complex128
	Func1 func(a complex128) complex128
	Func2 func(a, b complex128) complex128
	Func3 func(a, b, c complex128) complex128
	Func4 func(a, b, c, d complex128) complex128
	Func5 func(a, b, c, d, e complex128) complex128
	Func6 func(a, b, c, d, e, f complex128) complex128
)

func (Func0) Arity() int { return 0 }
func (Func1) Arity() int { return 1 }
func (Func2) Arity() int { return 2 }
func (Func3) Arity() int { return 3 }
func (Func4) Arity() int { return 4 }
func (Func5) Arity() int { return 5 }
func (Func6) Arity() int { return 6 }

// Closures of each arity. Ctx is supplied by the host at registration time
// and handed back to Fn on every invocation.
type (
	Closure0 struct {
		Ctx any
		Fn  func(ctx any) complex128
	}
	Closure1 struct {
		Ctx any
		Fn  func(ctx any, a complex128) complex128
	}
	Closure2 struct {
		Ctx any
		Fn  func(ctx any, a, b complex128) complex128
	}
	Closure3 struct {
		Ctx any
		Fn  func(ctx any, a, b, c complex128) complex128
	}
	Closure4 struct {
		Ctx any
		Fn  func(ctx any, a, b, c, d complex128) complex128
	}
	Closure5 struct {
		Ctx any
		Fn  func(ctx any, a, b, c, d, e complex128) complex128
	}
	Closure6 struct {
		Ctx any
		Fn  func(ctx any, a, b, c, d, e, f complex128) complex128
	}
)

func (Closure0) Arity() int { return 0 }
func (Closure1) Arity() int { return 1 }
func (Closure2) Arity() int { return 2 }
func (Closure3) Arity() int { return 3 }
func (Closure4) Arity() int { return 4 }
func (Closure5) Arity() int { return 5 }
func (Closure6) Arity() int { return 6 }

// Variable binds a name in an expression to host-owned storage or to a host
// function. Bindings are searched in order before the builtin table, so an
// entry may shadow a builtin name. The first entry with a matching name
// wins.
type Variable struct {
	// Name is the identifier the expression refers to.
	Name string
	// Addr is the storage a plain variable reads. It must outlive every
	// evaluation of any expression compiled against it; the compiled tree
	// reads through the pointer on each evaluation and never copies the
	// value. Reads are unsynchronized, so a host that writes the storage
	// concurrently with evaluation must provide its own synchronization.
	Addr *complex128
	// Fn, if non-nil, makes the entry a function or closure binding instead
	// of a plain variable. Addr is ignored in that case.
	Fn Func
	// Pure marks Fn as deterministic and side effect free. Calls of pure
	// functions on constant arguments are folded at compile time.
	Pure bool
}

// Arithmetic primitives bound to the infix operators.
func add(a, b complex128) complex128 { return a + b }
func sub(a, b complex128) complex128 { return a - b }
func mul(a, b complex128) complex128 { return a * b }
func div(a, b complex128) complex128 { return a / b }
func neg(a complex128) complex128   { return -a }

// comma discards its left operand. It backs the list separator.
func comma(a, b complex128) complex128 { return b }

// builtin is an entry in the builtin constant and function table.
type builtin struct {
	name string
	fn   Func
	pure bool
}

// builtins must stay sorted by name; lookupBuiltin binary searches it.
// TestBuiltinsSorted enforces the order. Factorial, ncr, and npr are
// deliberately absent: they are undefined over complex numbers. log is the
// natural logarithm, as is usual in complex analysis.
var builtins = []builtin{
	{"I", Func0(func() complex128 { return 1i }), true},
	{"abs", Func1(func(a complex128) complex128 { return complex(cmplx.Abs(a), 0) }), true},
	{"acos", Func1(cmplx.Acos), true},
	{"acosh", Func1(cmplx.Acosh), true},
	{"arg", Func1(func(a complex128) complex128 { return complex(cmplx.Phase(a), 0) }), true},
	{"asin", Func1(cmplx.Asin), true},
	{"asinh", Func1(cmplx.Asinh), true},
	{"atan", Func1(cmplx.Atan), true},
	{"atanh", Func1(cmplx.Atanh), true},
	{"conj", Func1(cmplx.Conj), true},
	{"cos", Func1(cmplx.Cos), true},
	{"cosh", Func1(cmplx.Cosh), true},
	{"e", Func0(func() complex128 { return complex(math.E, 0) }), true},
	{"exp", Func1(cmplx.Exp), true},
	{"imag", Func1(func(a complex128) complex128 { return complex(imag(a), 0) }), true},
	{"inf", Func0(func() complex128 { return complex(math.Inf(1), 0) }), true},
	{"log", Func1(cmplx.Log), true},
	{"pi", Func0(func() complex128 { return complex(math.Pi, 0) }), true},
	{"pow", Func2(cmplx.Pow), true},
	{"real", Func1(func(a complex128) complex128 { return complex(real(a), 0) }), true},
	{"sin", Func1(cmplx.Sin), true},
	{"sinh", Func1(cmplx.Sinh), true},
	{"sqrt", Func1(cmplx.Sqrt), true},
	{"tan", Func1(cmplx.Tan), true},
	{"tanh", Func1(cmplx.Tanh), true},
}

// lookupBuiltin binary searches the builtin table. Whole names compare, so
// sin never matches sinh and vice versa.
func lookupBuiltin(name string) (builtin, bool) {
	i := sort.Search(len(builtins), func(i int) bool { return builtins[i].name >= name })
	if i < len(builtins) && builtins[i].name == name {
		return builtins[i], true
	}
	return builtin{}, false
}
