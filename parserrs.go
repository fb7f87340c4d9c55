package cxpr

import "strconv"

// NameError is an error indicating an identifier that resolves to neither a
// bound variable nor a builtin. It implements InputError.
type NameError struct {
	// Col is the position of the identifier.
	Col int
	// Name is the identifier that did not resolve.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined name "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the mismatch.
	Col int
	// Left is the opening parenthesis, or empty if there was none.
	Left string
	// Right is the closing parenthesis, or empty if input ended first.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the token that revealed the mismatch.
	Col int
	// Func is the function name that was called.
	Func string
	// Arity is the number of arguments the function requires.
	Arity int
	// Len is the number of arguments the call supplied.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" ("+strconv.Itoa(err.Arity)+" arguments) with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token where the grammar required a
// different one, including trailing input after a complete expression. It
// implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the text of the offending token, or empty at end of input.
	Token string
	// Want describes what the parser required instead, if known.
	Want string
}

func (err *TokenError) Error() string {
	tok := "end of input"
	if err.Token != "" {
		tok = strconv.Quote(err.Token)
	}
	if err.Want == "" {
		return errpos(err.Col, "unexpected "+tok)
	}
	return errpos(err.Col, "expected "+err.Want+", found "+tok)
}

func (err *TokenError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid input implements InputError. Pos returns the number of runes
// up to and including the start of the token that caused the error, so it is
// never less than 1.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*NameError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
