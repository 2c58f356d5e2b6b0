// Package ast defines the token vocabulary and the syntax tree shared by the
// pas lexer, parser and interpreter.
//
// Tokens are the smallest meaningful units of a program text. Every token
// carries its type, the payload that type needs (operator character, literal
// value or keyword text), the exact source text it was scanned from and its
// source position. Position is 1-based: the first character of a program is
// Line 1, Col 1.
//
// The same Token type is used to tag tree nodes, so a few variants (UNARY and
// TAG) are produced only by the parser and never by the lexer.
package ast

import (
	"fmt"
	"strconv"
)

// TokenType identifies the variant of a token.
type TokenType int

const (
	// ── Special ────────────────────────────────────────────────────────────────

	// EOF marks the end of the input. The lexer keeps returning it once reached.
	EOF TokenType = iota

	// ── Operators ──────────────────────────────────────────────────────────────

	// OP1 is an additive operator. Op holds '+' or '-'.
	OP1
	// OP2 is a multiplicative operator. Op holds '*' or '/'.
	// Integer division is spelled with the DIV keyword, not with OP2.
	OP2
	// UNARY is a prefix sign applied to a factor. Op holds '+' or '-'.
	// Only the parser creates UNARY tokens, when it sees OP1 in factor position.
	UNARY
	// ASSIGN is the assignment marker :=
	ASSIGN

	// ── Literals ───────────────────────────────────────────────────────────────

	// INTEGER_CONST is an unsigned decimal literal. Int holds its value.
	INTEGER_CONST
	// REAL_CONST is a decimal literal containing exactly one '.'. Real holds its value.
	REAL_CONST
	// ID is an identifier: [A-Za-z][A-Za-z0-9]*. Text holds the raw, case-sensitive name.
	ID
	// KEYWORD is a reserved word. Text holds its canonical spelling, see [Keywords].
	KEYWORD

	// ── Delimiters ─────────────────────────────────────────────────────────────

	// LPAREN is (
	LPAREN
	// RPAREN is )
	RPAREN
	// DOT terminates a program: END.
	DOT
	// SEMI separates statements and declarations.
	SEMI
	// COMMA separates names in a variable declaration.
	COMMA
	// COLON separates declared names from their type.
	COLON

	// ── Tree tags ──────────────────────────────────────────────────────────────

	// TAG labels a synthetic tree node (PROGRAM, BLOCK, VARDEC, COMP, Empty).
	// Text holds the label. The lexer never emits TAG.
	TAG
)

// Keyword spellings. Keyword matching is case-sensitive.
const (
	KwProgram = "PROGRAM"
	KwVar     = "VAR"
	KwBegin   = "BEGIN"
	KwEnd     = "END"
	KwInteger = "INTEGER"
	KwReal    = "REAL"
	KwDiv     = "DIV"
)

// Labels carried by TAG tokens on synthetic nodes.
const (
	TagProgram  = "PROGRAM"
	TagBlock    = "BLOCK"
	TagVarDecl  = "VARDEC"
	TagCompound = "COMP"
	TagEmpty    = "Empty"
)

// keywords holds every reserved word. It is filled once at package
// initialisation and only read afterwards.
var keywords = map[string]struct{}{
	KwProgram: {},
	KwVar:     {},
	KwBegin:   {},
	KwEnd:     {},
	KwInteger: {},
	KwReal:    {},
	KwDiv:     {},
}

// IsKeyword reports whether ident is a reserved word.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

// Keywords returns the reserved words in a fixed order.
func Keywords() []string {
	return []string{KwProgram, KwVar, KwBegin, KwEnd, KwInteger, KwReal, KwDiv}
}

// LookupIdent classifies a scanned word: KEYWORD when it is reserved, ID otherwise.
func LookupIdent(ident string) TokenType {
	if IsKeyword(ident) {
		return KEYWORD
	}
	return ID
}

// String returns the name of the token type.
func (tt TokenType) String() string {
	switch tt {
	case EOF:
		return "EOF"
	case OP1:
		return "OP1"
	case OP2:
		return "OP2"
	case UNARY:
		return "UNARY"
	case ASSIGN:
		return "ASSIGN"
	case INTEGER_CONST:
		return "INTEGER_CONST"
	case REAL_CONST:
		return "REAL_CONST"
	case ID:
		return "ID"
	case KEYWORD:
		return "KEYWORD"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case DOT:
		return "DOT"
	case SEMI:
		return "SEMI"
	case COMMA:
		return "COMMA"
	case COLON:
		return "COLON"
	case TAG:
		return "TAG"
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit, or the tag of a tree node.
//
// Payload fields are meaningful only for the variants that use them:
//   - Op:   OP1, OP2, UNARY
//   - Int:  INTEGER_CONST
//   - Real: REAL_CONST
//   - Text: ID (raw name), KEYWORD (canonical spelling), TAG (label)
type Token struct {
	Type    TokenType
	Op      byte
	Int     uint64
	Real    float64
	Text    string
	Literal string // exact source text; empty for parser-made tokens
	Line    int
	Col     int
}

// Pos returns the token's 1-based source position.
func (t Token) Pos() (line, col int) { return t.Line, t.Col }

// Matches reports whether t satisfies the expectation want. Tokens of the same
// type match regardless of payload, except KEYWORD and TAG tokens which also
// need the same Text.
func (t Token) Matches(want Token) bool {
	if t.Type != want.Type {
		return false
	}
	switch t.Type {
	case KEYWORD, TAG:
		return t.Text == want.Text
	}
	return true
}

// IsKeyword reports whether t is the keyword kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Type == KEYWORD && t.Text == kw
}

// String returns a short human-readable form used in dumps and error messages.
func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "EOF"
	case OP1, OP2:
		return "operation: " + string(t.Op)
	case UNARY:
		return "UNARY: " + string(t.Op)
	case ASSIGN:
		return "ASSIGN"
	case INTEGER_CONST:
		return "INTEGER: " + strconv.FormatUint(t.Int, 10)
	case REAL_CONST:
		return "REAL: " + strconv.FormatFloat(t.Real, 'g', -1, 64)
	case ID:
		return "variable: " + t.Text
	case KEYWORD:
		return t.Text
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case DOT:
		return "DOT"
	case SEMI:
		return "SEMI"
	case COMMA:
		return "COMMA"
	case COLON:
		return "COLON"
	case TAG:
		return t.Text
	}
	return t.Type.String()
}

// Source returns source text that scans back to an equivalent token.
func (t Token) Source() string {
	switch t.Type {
	case EOF:
		return ""
	case OP1, OP2, UNARY:
		return string(t.Op)
	case ASSIGN:
		return ":="
	case INTEGER_CONST:
		return strconv.FormatUint(t.Int, 10)
	case REAL_CONST:
		s := strconv.FormatFloat(t.Real, 'f', -1, 64)
		for _, c := range s {
			if c == '.' {
				return s
			}
		}
		return s + ".0"
	case ID, KEYWORD, TAG:
		return t.Text
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case DOT:
		return "."
	case SEMI:
		return ";"
	case COMMA:
		return ","
	case COLON:
		return ":"
	}
	return ""
}

// ── Constructors ──────────────────────────────────────────────────────────────

// Keyword returns an expectation token for the reserved word kw.
func Keyword(kw string) Token { return Token{Type: KEYWORD, Text: kw} }

// Tag returns a synthetic tag token with the given label.
func Tag(label string) Token { return Token{Type: TAG, Text: label} }

// Ident returns an identifier token.
func Ident(name string) Token { return Token{Type: ID, Text: name} }

// Of returns a payload-free token of type tt, useful as an expectation.
func Of(tt TokenType) Token { return Token{Type: tt} }
