// Package lexer implements the pas tokeniser.
//
// The lexer converts a program text into a stream of [ast.Token] values on
// demand. Call [New] to create a lexer and then call [Lexer.NextToken]
// repeatedly until you receive a token with Type == [ast.EOF]; every call after
// that returns EOF again.
//
// Design notes:
//   - Single-pass, byte-by-byte scanning using a read position cursor.
//   - No mutable global state; every [Lexer] is independent.
//   - Line and column numbers are tracked for every token (1-based).
//   - Comments ({ … }) are consumed silently, braces included.
//   - Identifiers are scanned first and then classified as keywords via
//     [ast.LookupIdent]; keyword matching is case-sensitive.
//   - The first malformed input stops the lexer: NextToken returns a
//     [diag.LexicalError] and the caller is expected to give up.
package lexer

import (
	"strconv"

	"github.com/metaphox/pas-lang/ast"
	"github.com/metaphox/pas-lang/diag"
)

// Lexer holds all state required to tokenise a single program text.
// Create one with [New]; never copy a Lexer after first use.
type Lexer struct {
	input   string // the full source text
	pos     int    // current read position (index of ch)
	readPos int    // next read position (pos + 1)
	ch      byte   // current character under examination

	line int // current 1-based line number
	col  int // 1-based column of ch
}

// New creates a [Lexer] over input, positioned at its first character.
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar() // prime: set l.ch = input[0]
	return l
}

// Tokenize scans the whole input and returns every token including the
// trailing EOF, or the first lexical error.
func Tokenize(input string) ([]ast.Token, error) {
	l := New(input)
	var toks []ast.Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == ast.EOF {
			return toks, nil
		}
	}
}

// NextToken returns the next token from the input.
//
// Whitespace and comments are skipped before each token. When the input is
// exhausted NextToken returns a token with Type == [ast.EOF].
func (l *Lexer) NextToken() (ast.Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return ast.Token{}, err
	}

	if l.atEOF() {
		return l.makeToken(ast.EOF, ""), nil
	}

	var tok ast.Token
	switch l.ch {
	// ── Operators ───────────────────────────────────────────────────────────
	case '+', '-':
		tok = l.makeToken(ast.OP1, string(l.ch))
		tok.Op = l.ch
	case '*', '/':
		tok = l.makeToken(ast.OP2, string(l.ch))
		tok.Op = l.ch

	// ── Colon: COLON or ASSIGN (:=) ─────────────────────────────────────────
	case ':':
		if l.peekChar() == '=' {
			tok = l.makeToken(ast.ASSIGN, ":=")
			l.readChar() // consume ':'; the trailing readChar consumes '='
		} else {
			tok = l.makeToken(ast.COLON, ":")
		}

	// ── Single-character delimiters ─────────────────────────────────────────
	case '(':
		tok = l.makeToken(ast.LPAREN, "(")
	case ')':
		tok = l.makeToken(ast.RPAREN, ")")
	case '.':
		tok = l.makeToken(ast.DOT, ".")
	case ';':
		tok = l.makeToken(ast.SEMI, ";")
	case ',':
		tok = l.makeToken(ast.COMMA, ",")

	// ── Identifiers, keywords and numerals ──────────────────────────────────
	default:
		if isLetter(l.ch) {
			return l.readIdentifier(), nil
		}
		if isDigit(l.ch) {
			return l.readNumber()
		}
		return ast.Token{}, diag.Errorf(diag.LexicalError, l.here(),
			"unrecognized character %q", l.ch)
	}

	l.readChar() // advance past the last character of this token
	return tok, nil
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// readChar advances the lexer by one character.
// When the input is exhausted l.ch is set to 0 and pos stays at len(input).
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input)
		l.readPos = len(l.input) + 1
		return
	}
	l.ch = l.input[l.readPos]
	l.pos = l.readPos
	l.readPos++

	// Newlines bump the line counter and reset the column.
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// atEOF reports whether every character has been consumed. A NUL byte inside
// the input is not end of input; it is an unrecognized character.
func (l *Lexer) atEOF() bool { return l.pos >= len(l.input) }

// peekChar returns the next character without consuming it, or 0 at the end.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// here is the position of the current character.
func (l *Lexer) here() diag.Pos {
	return diag.Pos{Line: l.line, Col: l.col}
}

// makeToken builds a token at the current position. It does not advance.
func (l *Lexer) makeToken(tt ast.TokenType, literal string) ast.Token {
	return ast.Token{Type: tt, Literal: literal, Line: l.line, Col: l.col}
}

// skipWhitespaceAndComments advances past whitespace and { … } comments.
// A comment still open at end of input is a lexical error.
func (l *Lexer) skipWhitespaceAndComments() error {
	for !l.atEOF() {
		switch l.ch {
		case ' ', '\t', '\r', '\n':
			l.readChar()
		case '{':
			start := l.here()
			for !l.atEOF() && l.ch != '}' {
				l.readChar()
			}
			if l.atEOF() {
				return diag.Errorf(diag.LexicalError, start, "unterminated comment")
			}
			l.readChar() // consume '}'
		default:
			return nil
		}
	}
	return nil
}

// readIdentifier scans an identifier or keyword. Like readNumber it returns
// with the cursor already on the first character after the word, so NextToken
// must not advance again.
func (l *Lexer) readIdentifier() ast.Token {
	startCol, startLine, start := l.col, l.line, l.pos

	for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}

	literal := l.input[start:l.pos]
	return ast.Token{
		Type:    ast.LookupIdent(literal),
		Text:    literal,
		Literal: literal,
		Line:    startLine,
		Col:     startCol,
	}
}

// readNumber scans the maximal run of digits and decimal points. No point
// yields INTEGER_CONST, one point yields REAL_CONST, more is an error.
func (l *Lexer) readNumber() (ast.Token, error) {
	startCol, startLine, start := l.col, l.line, l.pos
	pos := diag.Pos{Line: startLine, Col: startCol}
	dots := 0

	for !l.atEOF() && (isDigit(l.ch) || l.ch == '.') {
		if l.ch == '.' {
			dots++
		}
		l.readChar()
	}

	literal := l.input[start:l.pos]
	tok := ast.Token{Literal: literal, Line: startLine, Col: startCol}
	switch dots {
	case 0:
		v, err := strconv.ParseUint(literal, 10, 64)
		if err != nil {
			return ast.Token{}, diag.Errorf(diag.LexicalError, pos, "integer literal %s out of range", literal)
		}
		tok.Type, tok.Int = ast.INTEGER_CONST, v
	case 1:
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return ast.Token{}, diag.Errorf(diag.LexicalError, pos, "malformed real literal %s", literal)
		}
		tok.Type, tok.Real = ast.REAL_CONST, v
	default:
		return ast.Token{}, diag.Errorf(diag.LexicalError, pos, "multiple decimal points in numeral %s", literal)
	}
	return tok, nil
}

// isLetter reports whether b is an ASCII letter.
func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// isDigit reports whether b is an ASCII decimal digit (0–9).
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
