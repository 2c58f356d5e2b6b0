// Package parser implements the pas recursive-descent parser.
//
// The parser pulls tokens from a [lexer.Lexer] one at a time and builds an
// [ast.Node] tree. Every grammar production has its own method:
//
//	program              := PROGRAM ID SEMI block DOT
//	block                := declarations compound_statement
//	declarations         := ( VAR (variable_declaration SEMI)+ )?
//	variable_declaration := ID (COMMA ID)* COLON type_spec
//	type_spec            := INTEGER | REAL
//	compound_statement   := BEGIN statement_list END
//	statement_list       := statement (SEMI statement)*
//	statement            := compound_statement | assignment_statement | empty
//	assignment_statement := ID ASSIGN expr
//	expr                 := term (OP1 term)*
//	term                 := factor ((OP2 | DIV) factor)*
//	factor               := OP1 factor | INTEGER_CONST | REAL_CONST | LPAREN expr RPAREN | ID
//
// Usage:
//
//	tree, err := parser.New(lexer.New(source)).Parse()
//
// There is no error recovery: the first lexical or grammar error aborts the
// parse and is returned as a [diag.Error].
package parser

import (
	"github.com/metaphox/pas-lang/ast"
	"github.com/metaphox/pas-lang/diag"
	"github.com/metaphox/pas-lang/lexer"
)

// Parser holds the lexer and the one-token lookahead.
// Create one with [New] and call [Parser.Parse] once.
type Parser struct {
	l      *lexer.Lexer
	cur    ast.Token // current lookahead token
	primed bool
}

// New creates a Parser that reads tokens from l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{l: l}
}

// ParseProgram parses a complete program text.
func ParseProgram(src string) (*ast.Node, error) {
	return New(lexer.New(src)).Parse()
}

// ParseExpression parses a standalone expression that must span the whole input.
func ParseExpression(src string) (*ast.Node, error) {
	p := New(lexer.New(src))
	if err := p.prime(); err != nil {
		return nil, err
	}
	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return node, nil
}

// Parse builds the tree for a whole program and requires the input to end
// right after the final DOT.
func (p *Parser) Parse() (*ast.Node, error) {
	if err := p.prime(); err != nil {
		return nil, err
	}
	node, err := p.program()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return node, nil
}

// ── Internal token management ─────────────────────────────────────────────────

// prime loads the first lookahead token.
func (p *Parser) prime() error {
	if p.primed {
		return nil
	}
	p.primed = true
	return p.advance()
}

// advance replaces the lookahead with the lexer's next token.
func (p *Parser) advance() error {
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// expect consumes the lookahead if it matches want (see [ast.Token.Matches])
// and returns the consumed token; otherwise it fails without advancing.
func (p *Parser) expect(want ast.Token) (ast.Token, error) {
	tok := p.cur
	if !tok.Matches(want) {
		return tok, p.unexpected(describe(want))
	}
	return tok, p.advance()
}

// expectEOF fails when anything follows the parsed construct.
func (p *Parser) expectEOF() error {
	if p.cur.Type != ast.EOF {
		return diag.Errorf(diag.SyntaxError, p.pos(), "unexpected %s after end of program", p.cur)
	}
	return nil
}

// curIs reports whether the lookahead has the given type.
func (p *Parser) curIs(tt ast.TokenType) bool { return p.cur.Type == tt }

func (p *Parser) pos() diag.Pos {
	line, col := p.cur.Pos()
	return diag.Pos{Line: line, Col: col}
}

// unexpected reports the lookahead as a mismatch for what the grammar wanted.
func (p *Parser) unexpected(wanted string) error {
	return diag.Errorf(diag.SyntaxError, p.pos(), "expected %s, got %s", wanted, p.cur)
}

// describe names an expectation in error messages.
func describe(want ast.Token) string {
	switch want.Type {
	case ast.KEYWORD, ast.TAG:
		return want.Text
	}
	return want.Type.String()
}

// ── Program structure ─────────────────────────────────────────────────────────

// program := PROGRAM ID SEMI block DOT
func (p *Parser) program() (*ast.Node, error) {
	if _, err := p.expect(ast.Keyword(ast.KwProgram)); err != nil {
		return nil, err
	}
	name, err := p.expect(ast.Of(ast.ID))
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.Of(ast.SEMI)); err != nil {
		return nil, err
	}
	block, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.Of(ast.DOT)); err != nil {
		return nil, err
	}
	return ast.Tagged(ast.TagProgram, ast.Leaf(name), block), nil
}

// block := declarations compound_statement
func (p *Parser) block() (*ast.Node, error) {
	decls, err := p.declarations()
	if err != nil {
		return nil, err
	}
	comp, err := p.compoundStatement()
	if err != nil {
		return nil, err
	}
	return ast.Tagged(ast.TagBlock, append(decls, comp)...), nil
}

// declarations := ( VAR (variable_declaration SEMI)+ )?
func (p *Parser) declarations() ([]*ast.Node, error) {
	if !p.cur.IsKeyword(ast.KwVar) {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var decls []*ast.Node
	for {
		group, err := p.variableDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, group...)
		if _, err := p.expect(ast.Of(ast.SEMI)); err != nil {
			return nil, err
		}
		if !p.curIs(ast.ID) {
			return decls, nil
		}
	}
}

// variable_declaration := ID (COMMA ID)* COLON type_spec
//
// One VARDEC node is produced per declared name, each owning its own copy of
// the type leaf.
func (p *Parser) variableDeclaration() ([]*ast.Node, error) {
	first, err := p.expect(ast.Of(ast.ID))
	if err != nil {
		return nil, err
	}
	names := []ast.Token{first}
	for p.curIs(ast.COMMA) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expect(ast.Of(ast.ID))
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if _, err := p.expect(ast.Of(ast.COLON)); err != nil {
		return nil, err
	}
	typ, err := p.typeSpec()
	if err != nil {
		return nil, err
	}

	decls := make([]*ast.Node, 0, len(names))
	for _, name := range names {
		decls = append(decls, ast.Tagged(ast.TagVarDecl, ast.Leaf(name), ast.Leaf(typ)))
	}
	return decls, nil
}

// type_spec := INTEGER | REAL
func (p *Parser) typeSpec() (ast.Token, error) {
	tok := p.cur
	if !tok.IsKeyword(ast.KwInteger) && !tok.IsKeyword(ast.KwReal) {
		return tok, p.unexpected("INTEGER or REAL")
	}
	return tok, p.advance()
}

// ── Statements ────────────────────────────────────────────────────────────────

// compound_statement := BEGIN statement_list END
func (p *Parser) compoundStatement() (*ast.Node, error) {
	if _, err := p.expect(ast.Keyword(ast.KwBegin)); err != nil {
		return nil, err
	}
	stmts, err := p.statementList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ast.Keyword(ast.KwEnd)); err != nil {
		return nil, err
	}
	return ast.Tagged(ast.TagCompound, stmts...), nil
}

// statement_list := statement (SEMI statement)*
func (p *Parser) statementList() ([]*ast.Node, error) {
	first, err := p.statement()
	if err != nil {
		return nil, err
	}
	stmts := []*ast.Node{first}
	for p.curIs(ast.SEMI) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// statement := compound_statement | assignment_statement | empty
func (p *Parser) statement() (*ast.Node, error) {
	switch {
	case p.cur.IsKeyword(ast.KwBegin):
		return p.compoundStatement()
	case p.curIs(ast.ID):
		return p.assignmentStatement()
	}
	return ast.Tagged(ast.TagEmpty), nil
}

// assignment_statement := ID ASSIGN expr
func (p *Parser) assignmentStatement() (*ast.Node, error) {
	target, err := p.expect(ast.Of(ast.ID))
	if err != nil {
		return nil, err
	}
	assign, err := p.expect(ast.Of(ast.ASSIGN))
	if err != nil {
		return nil, err
	}
	value, err := p.expr()
	if err != nil {
		return nil, err
	}
	return ast.NewNode(assign, ast.Leaf(target), value), nil
}

// ── Expressions ───────────────────────────────────────────────────────────────

// expr := term (OP1 term)*
func (p *Parser) expr() (*ast.Node, error) {
	node, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.curIs(ast.OP1) {
		op := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		node = ast.NewNode(op, node, right)
	}
	return node, nil
}

// term := factor ((OP2 | DIV) factor)*
func (p *Parser) term() (*ast.Node, error) {
	node, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.curIs(ast.OP2) || p.cur.IsKeyword(ast.KwDiv) {
		op := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		node = ast.NewNode(op, node, right)
	}
	return node, nil
}

// factor := OP1 factor | INTEGER_CONST | REAL_CONST | LPAREN expr RPAREN | ID
func (p *Parser) factor() (*ast.Node, error) {
	tok := p.cur
	switch tok.Type {
	case ast.OP1:
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		unary := ast.Token{Type: ast.UNARY, Op: tok.Op, Literal: tok.Literal, Line: tok.Line, Col: tok.Col}
		return ast.NewNode(unary, operand), nil

	case ast.INTEGER_CONST, ast.REAL_CONST, ast.ID:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.Leaf(tok), nil

	case ast.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ast.Of(ast.RPAREN)); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.unexpected("expression")
}
