// Package cxpr compiles arithmetic expressions over complex numbers and
// evaluates them against runtime-bound variables.
//
// An expression like "e^(I*pi)+1" or "3+2I" is compiled once into a tree.
// Variables are bound by pointer, so the host can rewrite the storage a name
// refers to and evaluate the same tree again without recompiling:
//
//	x := complex(2, 0)
//	a, _ := cxpr.Compile("x+1", cxpr.Variable{Name: "x", Addr: &x})
//	a.Eval() // 3
//	x = 5
//	a.Eval() // 6
//
// The builtin library covers the usual complex constants and functions: e,
// pi, I, inf, abs, arg, real, imag, conj, sqrt, exp, log (natural), pow, and
// the trigonometric and hyperbolic families. Factorial and combinatorics are
// absent because they are undefined over complex numbers. Hosts may register
// their own functions and closures through the binding table.
//
// Subtrees built only from pure functions and constants are folded at
// compile time, so evaluation cost scales with the dynamic parts of an
// expression.
package cxpr
