// Package diag defines the errors reported by the lexer, parser and interpreter.
//
// Every failure is fatal: the stage that detects it returns a *Error and the
// caller stops. An Error carries its Kind, the source position of the
// offending token when one is known, and a message.
package diag

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	// LexicalError: unterminated comment, unrecognised character, malformed numeral.
	LexicalError Kind = iota + 1
	// SyntaxError: unexpected or missing token, trailing input after the final DOT.
	SyntaxError
	// DeclarationError: a variable declared twice.
	DeclarationError
	// NameError: an undeclared or uninitialised variable reference.
	NameError
	// TypeError: an assigned value whose type differs from the declared type.
	TypeError
	// ArithmeticError: division by zero, integer out of range.
	ArithmeticError
)

func (k Kind) String() string {
	switch k {
	case LexicalError:
		return "LexicalError"
	case SyntaxError:
		return "SyntaxError"
	case DeclarationError:
		return "DeclarationError"
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case ArithmeticError:
		return "ArithmeticError"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pos is a 1-based source position. The zero value means "unknown".
type Pos struct {
	Line int
	Col  int
}

// Known reports whether the position was recorded.
func (p Pos) Known() bool { return p.Line > 0 }

func (p Pos) String() string {
	return fmt.Sprintf("line %d col %d", p.Line, p.Col)
}

// Error is a classified, positioned failure.
type Error struct {
	Kind Kind
	Pos  Pos
	Msg  string
}

// Errorf builds an *Error with a formatted message.
func Errorf(kind Kind, pos Pos, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Pos.Known() {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}

// Is reports whether err's chain contains an *Error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
