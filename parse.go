package cxpr

import (
	"io"
	"math/cmplx"
	"sort"
	"strconv"
	"strings"
)

// list   = expr {"," expr}             comma discards the left value
// expr   = term {("+" | "-") term}
// term   = factor {("*" | "/") factor}
// factor = power {"^" power}           a^b^c folds left: (a^b)^c
// power  = {"+" | "-"} base            a sign run collapses to one sign
// base   = NUMBER | VARIABLE
//        | FUNCTION0 ["(" ")"]
//        | FUNCTION1 power
//        | FUNCTIONn "(" expr {"," expr} ")"   exactly n arguments
//        | "(" list ")"

// Expr is a compiled expression. It is read-only after compilation and may
// be evaluated repeatedly, and concurrently as long as nothing writes the
// bound variable storage during evaluation.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// parsectx holds general data for parsing.
type parsectx struct {
	// lookup is the host binding table, searched in order before the
	// builtin table.
	lookup []Variable
}

// resolve finds the meaning of an identifier: the first binding with the
// name, or the builtin entry. Both lookups are case sensitive.
func (p *parsectx) resolve(name string) (Variable, bool) {
	for _, v := range p.lookup {
		if v.Name == name && (v.Addr != nil || v.Fn != nil) {
			return v, true
		}
	}
	if b, ok := lookupBuiltin(name); ok {
		return Variable{Name: b.name, Fn: b.fn, Pure: b.pure}, true
	}
	return Variable{}, false
}

// Parse compiles an expression read from src against the given variable
// bindings. The whole input must be consumed. Every error from invalid
// input implements InputError, carrying the 1-based rune offset of the
// offending token.
func Parse(src io.RuneScanner, vars ...Variable) (*Expr, error) {
	scan := lex(src)
	p := parsectx{lookup: vars}
	n, err := parselist(scan, &p)
	if err != nil {
		return nil, err
	}
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenEOF:
	case tokenClose:
		return nil, &BracketError{Col: tok.pos, Right: tok.text}
	default:
		return nil, &TokenError{Col: tok.pos, Token: tok.text}
	}
	optimize(n)
	return &Expr{n: n}, nil
}

// Compile is a shortcut to parse a string expression.
func Compile(expression string, vars ...Variable) (*Expr, error) {
	return Parse(strings.NewReader(expression), vars...)
}

// Interp compiles an expression with no variable bindings, evaluates it
// once, and discards the tree. On a parse error the value is NaN.
func Interp(expression string) (complex128, error) {
	a, err := Compile(expression)
	if err != nil {
		return cmplx.NaN(), err
	}
	return a.Eval(), nil
}

func parselist(scan *lexer, p *parsectx) (*node, error) {
	n, err := parseexpr(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenSep {
			scan.push(tok)
			return n, nil
		}
		rhs, err := parseexpr(scan, p)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeCall, name: ",", fn: Func2(comma), pure: true, args: []*node{n, rhs}}
	}
}

func parseexpr(scan *lexer, p *parsectx) (*node, error) {
	n, err := parseterm(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || (tok.text != "+" && tok.text != "-") {
			scan.push(tok)
			return n, nil
		}
		fn := add
		if tok.text == "-" {
			fn = sub
		}
		rhs, err := parseterm(scan, p)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeCall, name: tok.text, fn: Func2(fn), pure: true, args: []*node{n, rhs}}
	}
}

func parseterm(scan *lexer, p *parsectx) (*node, error) {
	n, err := parsefactor(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || (tok.text != "*" && tok.text != "/") {
			scan.push(tok)
			return n, nil
		}
		fn := mul
		if tok.text == "/" {
			fn = div
		}
		rhs, err := parsefactor(scan, p)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeCall, name: tok.text, fn: Func2(fn), pure: true, args: []*node{n, rhs}}
	}
}

func parsefactor(scan *lexer, p *parsectx) (*node, error) {
	n, err := parsepower(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != "^" {
			scan.push(tok)
			return n, nil
		}
		rhs, err := parsepower(scan, p)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeCall, name: "^", fn: Func2(cmplx.Pow), pure: true, args: []*node{n, rhs}}
	}
}

func parsepower(scan *lexer, p *parsectx) (*node, error) {
	sign := 1
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenOp && (tok.text == "+" || tok.text == "-") {
			if tok.text == "-" {
				sign = -sign
			}
			continue
		}
		scan.push(tok)
		break
	}
	n, err := parsebase(scan, p)
	if err != nil {
		return nil, err
	}
	if sign < 0 {
		n = &node{kind: nodeCall, name: "-", fn: Func1(neg), pure: true, args: []*node{n}}
	}
	return n, nil
}

func parsebase(scan *lexer, p *parsectx) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum, tokenImag:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
		c := complex(v, 0)
		if tok.kind == tokenImag {
			c = complex(0, v)
		}
		return &node{kind: nodeConst, value: c}, nil
	case tokenIdent:
		v, ok := p.resolve(tok.text)
		if !ok {
			return nil, &NameError{Col: tok.pos, Name: tok.text}
		}
		if v.Fn == nil {
			return &node{kind: nodeVar, name: tok.text, bound: v.Addr}, nil
		}
		return parsecall(scan, p, tok, v)
	case tokenOpen:
		n, err := parselist(scan, p)
		if err != nil {
			return nil, err
		}
		end, err := scan.next()
		if err != nil {
			return nil, err
		}
		if err := expectclose(end); err != nil {
			return nil, err
		}
		return n, nil
	case tokenClose, tokenSep:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	default:
		return nil, &TokenError{Col: tok.pos, Token: tok.text}
	}
}

// parsecall parses the arguments to a call of the function bound to fntok.
func parsecall(scan *lexer, p *parsectx, fntok lexToken, v Variable) (*node, error) {
	n := &node{kind: nodeCall, name: fntok.text, fn: v.Fn, pure: v.Pure}
	arity := v.Fn.Arity()
	switch arity {
	case 0:
		// A bare name is a complete call; parentheses, if present, must be
		// empty.
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOpen {
			scan.push(tok)
			return n, nil
		}
		end, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch end.kind {
		case tokenClose:
			return n, nil
		case tokenEOF:
			return nil, expectclose(end)
		default:
			return nil, &CallError{Col: end.pos, Func: fntok.text, Arity: 0, Len: 1}
		}
	case 1:
		arg, err := parsepower(scan, p)
		if err != nil {
			return nil, err
		}
		n.args = []*node{arg}
		return n, nil
	default:
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOpen {
			return nil, &TokenError{Col: tok.pos, Token: tok.text, Want: `"("`}
		}
		args := make([]*node, 0, arity)
		for {
			arg, err := parseexpr(scan, p)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			sep, err := scan.next()
			if err != nil {
				return nil, err
			}
			switch sep.kind {
			case tokenSep:
				if len(args) == arity {
					return nil, &CallError{Col: sep.pos, Func: fntok.text, Arity: arity, Len: arity + 1}
				}
			case tokenClose:
				if len(args) != arity {
					return nil, &CallError{Col: sep.pos, Func: fntok.text, Arity: arity, Len: len(args)}
				}
				n.args = args
				return n, nil
			default:
				return nil, expectclose(sep)
			}
		}
	}
}

// expectclose checks that tok closes a parenthesized group.
func expectclose(tok lexToken) error {
	switch tok.kind {
	case tokenClose:
		return nil
	case tokenEOF:
		return &BracketError{Col: tok.pos, Left: "("}
	default:
		return &TokenError{Col: tok.pos, Token: tok.text, Want: `")"`}
	}
}

// Vars returns the sorted names of the variables the expression reads.
func (e *Expr) Vars() []string {
	if e == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	e.n.walkvars(func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	sort.Strings(names)
	return names
}

func (n *node) walkvars(f func(string)) {
	if n == nil {
		return
	}
	if n.kind == nodeVar {
		f(n.name)
	}
	for _, a := range n.args {
		a.walkvars(f)
	}
}

// String creates a string representation of the compiled expression, with
// alternating round and square brackets grouping each term.
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	return e.n.String()
}
