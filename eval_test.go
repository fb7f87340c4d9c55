package cxpr_test

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/corvatic/cxpr"
)

func near(a, b complex128) bool {
	if cmplx.IsNaN(a) || cmplx.IsNaN(b) {
		return cmplx.IsNaN(a) == cmplx.IsNaN(b)
	}
	return cmplx.Abs(a-b) < 1e-12
}

func TestInterp(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want complex128
	}{
		{"num", "1", 1},
		{"real", "2.5", 2.5},
		{"imag", "2I", 2i},
		{"sum-literal", "3+2I", 3 + 2i},
		{"exp-literal", "1.5e2", 150},
		{"add", "4+5+6", 15},
		{"sub", "4-5-6", -7},
		{"mul", "4*5*6", 120},
		{"div", "4/5/6", 4.0 / 5.0 / 6.0},
		{"precedence", "2+3*4", 14},
		{"pow-left-assoc", "2^3^2", 64},
		{"neg-even", "--5", 5},
		{"neg-odd", "-+-5", 5},
		{"neg-mixed", "+-5", -5},
		{"neg-pow", "-2^2", 4},
		{"comma", "1,2", 2},
		{"comma-group", "(1,2)+1", 3},
		{"pi", "pi", complex(math.Pi, 0)},
		{"e", "e", complex(math.E, 0)},
		{"unit", "I", 1i},
		{"unit-squared", "I*I", -1},
		{"euler", "exp(I*pi)+1", 0},
		{"euler-pow", "e^(I*pi)+1", 0},
		{"sin", "sin(pi/2)", 1},
		{"sin-bare", "sin pi", 0},
		{"cos", "cos 0", 1},
		{"tan", "tan 0", 0},
		{"log", "log(e)", 1},
		{"sqrt", "sqrt 4", 2},
		// Negation gives -1 a negative-zero imaginary part, and Sqrt's
		// branch cut follows its sign.
		{"sqrt-neg", "sqrt(-1)", -1i},
		{"abs", "abs(3+4I)", 5},
		{"arg", "arg(I)", complex(math.Pi/2, 0)},
		{"conj", "conj(1+2I)", 1 - 2i},
		{"real-part", "real(3+2I)", 3},
		{"imag-part", "imag(3+2I)", 2},
		{"pow-fn", "pow(2,10)", 1024},
		{"hyperbolic", "cosh 0", 1},
		{"inverse-trig", "asin 1", complex(math.Pi/2, 0)},
		{"parens", "2*(3+4)", 14},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := cxpr.Interp(c.src)
			if err != nil {
				t.Fatalf("%q failed to compile: %v", c.src, err)
			}
			if !near(got, c.want) {
				t.Errorf("%q = %v, want %v", c.src, got, c.want)
			}
		})
	}
}

func TestPowAgreesWithOperator(t *testing.T) {
	args := []complex128{2, -3, 0.5, 1i, 2 - 3i, complex(math.Pi, math.E)}
	for _, a := range args {
		x := a
		op, err := cxpr.Compile("x^2", cxpr.Variable{Name: "x", Addr: &x})
		if err != nil {
			t.Fatal(err)
		}
		fn, err := cxpr.Compile("pow(x,2)", cxpr.Variable{Name: "x", Addr: &x})
		if err != nil {
			t.Fatal(err)
		}
		if u, v := op.Eval(), fn.Eval(); u != v {
			t.Errorf("x^2 = %v but pow(x,2) = %v for x = %v", u, v, a)
		}
	}
}

func TestRebinding(t *testing.T) {
	x := complex(2, 0)
	a, err := cxpr.Compile("x+1", cxpr.Variable{Name: "x", Addr: &x})
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Eval(); got != 3 {
		t.Errorf("x+1 = %v with x = 2, want 3", got)
	}
	x = 5
	if got := a.Eval(); got != 6 {
		t.Errorf("x+1 = %v with x = 5, want 6", got)
	}
	x = 1i
	if got := a.Eval(); got != 1+1i {
		t.Errorf("x+1 = %v with x = I, want 1+I", got)
	}
}

func TestShadowBuiltin(t *testing.T) {
	pi := complex(3, 0)
	a, err := cxpr.Compile("pi*2", cxpr.Variable{Name: "pi", Addr: &pi})
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Eval(); got != 6 {
		t.Errorf("shadowed pi*2 = %v, want 6", got)
	}
}

func TestClosures(t *testing.T) {
	scale := complex(10, 0)
	vars := []cxpr.Variable{
		{Name: "answer", Fn: cxpr.Closure0{Ctx: complex128(42), Fn: func(ctx any) complex128 {
			return ctx.(complex128)
		}}},
		{Name: "scaled", Fn: cxpr.Closure1{Ctx: &scale, Fn: func(ctx any, a complex128) complex128 {
			return *ctx.(*complex128) * a
		}}},
		{Name: "wsum", Fn: cxpr.Closure2{Ctx: complex128(2), Fn: func(ctx any, a, b complex128) complex128 {
			return a + ctx.(complex128)*b
		}}},
	}
	cases := []struct {
		src  string
		want complex128
	}{
		{"answer", 42},
		{"answer()", 42},
		{"scaled 3", 30},
		{"wsum(1,2)", 5},
	}
	for _, c := range cases {
		a, err := cxpr.Compile(c.src, vars...)
		if err != nil {
			t.Fatalf("%q failed to compile: %v", c.src, err)
		}
		if got := a.Eval(); got != c.want {
			t.Errorf("%q = %v, want %v", c.src, got, c.want)
		}
	}
	// The closure context is a live pointer: rebinding it changes results
	// without recompiling.
	a, err := cxpr.Compile("scaled 3", vars...)
	if err != nil {
		t.Fatal(err)
	}
	scale = 100
	if got := a.Eval(); got != 300 {
		t.Errorf("scaled 3 = %v after rebinding, want 300", got)
	}
}

func TestHostFuncs(t *testing.T) {
	sum6 := cxpr.Func6(func(a, b, c, d, e, f complex128) complex128 {
		return a + b + c + d + e + f
	})
	a, err := cxpr.Compile("total(1,2,3,4,5,6I)", cxpr.Variable{Name: "total", Fn: sum6, Pure: true})
	if err != nil {
		t.Fatal(err)
	}
	if got := a.Eval(); got != 15+6i {
		t.Errorf("total = %v, want 15+6I", got)
	}
}

func TestEvalAnomalies(t *testing.T) {
	cases := []string{
		"1/0",
		"0/0",
		"log 0",
		"inf-inf",
		"inf/inf",
	}
	for _, src := range cases {
		got, err := cxpr.Interp(src)
		if err != nil {
			t.Fatalf("%q failed to compile: %v", src, err)
		}
		if !cmplx.IsNaN(got) && !cmplx.IsInf(got) {
			t.Errorf("%q = %v, want a NaN or infinite value", src, got)
		}
	}
}

func TestInterpError(t *testing.T) {
	got, err := cxpr.Interp("(1+2")
	if err == nil {
		t.Fatal("no error for unclosed bracket")
	}
	var ie cxpr.InputError
	if !errors.As(err, &ie) {
		t.Fatalf("error %#v is not an InputError", err)
	}
	if ie.Pos() < 1 {
		t.Errorf("non-positive error position %d", ie.Pos())
	}
	if !cmplx.IsNaN(got) {
		t.Errorf("failed interp returned %v, want NaN", got)
	}
}

func TestNilExpr(t *testing.T) {
	var a *cxpr.Expr
	if got := a.Eval(); !cmplx.IsNaN(got) {
		t.Errorf("nil expression evaluated to %v, want NaN", got)
	}
	if got := a.Vars(); got != nil {
		t.Errorf("nil expression has variables %q", got)
	}
}

func BenchmarkEval(b *testing.B) {
	x := complex(2, 0)
	b.Run("const", func(b *testing.B) {
		b.ReportAllocs()
		a, err := cxpr.Compile("2+3*4")
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval()
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		a, err := cxpr.Compile("x^2+x+1", cxpr.Variable{Name: "x", Addr: &x})
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval()
		}
	})
}

func Example() {
	x := complex(2, 0)
	a, _ := cxpr.Compile("x^2+1", cxpr.Variable{Name: "x", Addr: &x})
	fmt.Println(cxpr.FormatComplex(a.Eval()))
	x = 3
	fmt.Println(cxpr.FormatComplex(a.Eval()))

	// Output:
	// 5
	// 10
}
