// Package interp executes pas programs by walking their syntax tree.
//
// Evaluation has two phases driven by the program's block: every declaration
// is entered into a [Table] first, then the trailing compound statement is
// executed. Expressions are evaluated post-order; an operation on two
// Integer values stays Integer, anything involving a Real is computed as Real.
// Assignments must match the variable's declared type exactly.
//
// The first failure stops evaluation and is returned as a [diag.Error].
package interp

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/metaphox/pas-lang/ast"
	"github.com/metaphox/pas-lang/diag"
	"github.com/metaphox/pas-lang/parser"
)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger routes debug events (declarations, assignments) to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		if logger != nil {
			in.log = logger
		}
	}
}

// Interpreter evaluates one program tree. It is not safe for concurrent use
// and must not be reused across programs.
type Interpreter struct {
	log   *slog.Logger
	table *Table
}

// New returns an Interpreter with an empty symbol table.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		table: NewTable(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Run parses and evaluates src, returning the final bindings.
func Run(src string, opts ...Option) (*Table, error) {
	tree, err := parser.ParseProgram(src)
	if err != nil {
		return nil, err
	}
	return New(opts...).Run(tree)
}

// EvalExpr evaluates a standalone expression against table. A nil table
// behaves as an empty one, so any variable reference fails.
func EvalExpr(expr *ast.Node, table *Table) (Value, error) {
	in := New()
	if table != nil {
		in.table = table
	}
	return in.eval(expr)
}

// Run evaluates a program (or bare block) tree and returns the symbol table
// holding the final value of every declared variable.
func (in *Interpreter) Run(tree *ast.Node) (*Table, error) {
	block := tree
	if tree.Kind() == ast.KindProgram {
		if len(tree.Children) != 2 {
			return nil, malformed(tree)
		}
		in.log.Debug("run program", "name", tree.Child(0).Token.Text)
		block = tree.Child(1)
	}
	if block.Kind() != ast.KindBlock || len(block.Children) == 0 {
		return nil, malformed(block)
	}

	last := len(block.Children) - 1
	for _, decl := range block.Children[:last] {
		if err := in.declare(decl); err != nil {
			return nil, err
		}
	}
	if err := in.exec(block.Children[last]); err != nil {
		return nil, err
	}
	return in.table, nil
}

// ── Declarations ──────────────────────────────────────────────────────────────

func (in *Interpreter) declare(decl *ast.Node) error {
	if decl.Kind() != ast.KindVarDecl || len(decl.Children) != 2 {
		return malformed(decl)
	}
	nameTok := decl.Child(0).Token
	typ, ok := typeOf(decl.Child(1).Token)
	if !ok {
		return malformed(decl.Child(1))
	}
	if !in.table.Declare(nameTok.Text, typ) {
		return diag.Errorf(diag.DeclarationError, posOf(nameTok),
			"duplicate declaration of %s", nameTok.Text)
	}
	in.log.Debug("declare", "name", nameTok.Text, "type", typ.String())
	return nil
}

// ── Statements ────────────────────────────────────────────────────────────────

func (in *Interpreter) exec(n *ast.Node) error {
	switch n.Kind() {
	case ast.KindCompound:
		for _, stmt := range n.Children {
			if err := in.exec(stmt); err != nil {
				return err
			}
		}
		return nil
	case ast.KindEmpty:
		return nil
	case ast.KindAssign:
		return in.assign(n)
	case ast.KindProgram, ast.KindBlock, ast.KindVarDecl, ast.KindBinOp,
		ast.KindUnaryOp, ast.KindIntLit, ast.KindRealLit, ast.KindVar,
		ast.KindTypeSpec, ast.KindInvalid:
	}
	return malformed(n)
}

func (in *Interpreter) assign(n *ast.Node) error {
	if len(n.Children) != 2 || n.Child(0).Kind() != ast.KindVar {
		return malformed(n)
	}
	target := n.Child(0).Token
	entry, ok := in.table.Lookup(target.Text)
	if !ok {
		return diag.Errorf(diag.NameError, posOf(target), "%s not declared", target.Text)
	}
	v, err := in.eval(n.Child(1))
	if err != nil {
		return err
	}
	if v.Type != entry.Type {
		return diag.Errorf(diag.TypeError, posOf(target),
			"cannot assign %s value to %s variable %s", v.Type, entry.Type, target.Text)
	}
	in.table.set(target.Text, v)
	in.log.Debug("assign", "name", target.Text, "value", v.String())
	return nil
}

// ── Expressions ───────────────────────────────────────────────────────────────

func (in *Interpreter) eval(n *ast.Node) (Value, error) {
	if n == nil {
		return Value{}, malformed(n)
	}
	tok := n.Token
	switch n.Kind() {
	case ast.KindIntLit:
		// Literals are unsigned, so MinInt64 is only reachable as an expression.
		if tok.Int > math.MaxInt64 {
			return Value{}, diag.Errorf(diag.ArithmeticError, posOf(tok),
				"integer literal %d out of range", tok.Int)
		}
		return IntValue(int64(tok.Int)), nil

	case ast.KindRealLit:
		return RealValue(tok.Real), nil

	case ast.KindVar:
		entry, ok := in.table.Lookup(tok.Text)
		if !ok {
			return Value{}, diag.Errorf(diag.NameError, posOf(tok), "%s not declared", tok.Text)
		}
		if entry.Value == nil {
			return Value{}, diag.Errorf(diag.NameError, posOf(tok), "%s not initialized", tok.Text)
		}
		return *entry.Value, nil

	case ast.KindUnaryOp:
		if len(n.Children) != 1 {
			return Value{}, malformed(n)
		}
		v, err := in.eval(n.Child(0))
		if err != nil {
			return Value{}, err
		}
		if tok.Op == '-' {
			if v.Type == Integer {
				if v.Int == math.MinInt64 {
					return Value{}, overflow(tok)
				}
				return IntValue(-v.Int), nil
			}
			return RealValue(-v.Real), nil
		}
		return v, nil

	case ast.KindBinOp:
		if len(n.Children) != 2 {
			return Value{}, malformed(n)
		}
		left, err := in.eval(n.Child(0))
		if err != nil {
			return Value{}, err
		}
		right, err := in.eval(n.Child(1))
		if err != nil {
			return Value{}, err
		}
		if tok.IsKeyword(ast.KwDiv) {
			return intDiv(tok, left, right)
		}
		return arith(tok, left, right)

	case ast.KindProgram, ast.KindBlock, ast.KindVarDecl, ast.KindCompound,
		ast.KindEmpty, ast.KindAssign, ast.KindTypeSpec, ast.KindInvalid:
	}
	return Value{}, malformed(n)
}

// intDiv implements DIV: both operands truncated to Integer, integer quotient.
func intDiv(op ast.Token, left, right Value) (Value, error) {
	l, lok := left.AsInt()
	r, rok := right.AsInt()
	if !lok || !rok {
		return Value{}, diag.Errorf(diag.ArithmeticError, posOf(op), "DIV operand out of integer range")
	}
	if r == 0 {
		return Value{}, diag.Errorf(diag.ArithmeticError, posOf(op), "division by zero")
	}
	if l == math.MinInt64 && r == -1 {
		return Value{}, overflow(op)
	}
	return IntValue(l / r), nil
}

// arith implements + - * /. Two Integers give an Integer; otherwise both
// operands are widened to Real.
func arith(op ast.Token, left, right Value) (Value, error) {
	if left.Type == Integer && right.Type == Integer {
		if op.Op == '/' && right.Int == 0 {
			return Value{}, diag.Errorf(diag.ArithmeticError, posOf(op), "division by zero")
		}
		res, ok, known := exact(op.Op, left.Int, right.Int)
		if !known {
			return Value{}, fmt.Errorf("interp: unknown operator %q", op.Op)
		}
		if !ok {
			return Value{}, overflow(op)
		}
		return IntValue(res), nil
	}

	l, r := left.AsReal(), right.AsReal()
	switch op.Op {
	case '+':
		return RealValue(l + r), nil
	case '-':
		return RealValue(l - r), nil
	case '*':
		return RealValue(l * r), nil
	case '/':
		if r == 0 {
			return Value{}, diag.Errorf(diag.ArithmeticError, posOf(op), "division by zero")
		}
		return RealValue(l / r), nil
	}
	return Value{}, fmt.Errorf("interp: unknown operator %q", op.Op)
}

// exact applies an Integer operator. ok is false when the result does not
// fit in int64; known is false for an unknown operator. r must be non-zero
// for '/'.
func exact(op byte, l, r int64) (res int64, ok, known bool) {
	switch op {
	case '+':
		res = l + r
		return res, (r >= 0) == (res >= l), true
	case '-':
		res = l - r
		return res, (r >= 0) == (res <= l), true
	case '*':
		if l == 0 || r == 0 {
			return 0, true, true
		}
		res = l * r
		if (l == -1 && r == math.MinInt64) || (r == -1 && l == math.MinInt64) {
			return res, false, true
		}
		return res, res/r == l, true
	case '/':
		return l / r, !(l == math.MinInt64 && r == -1), true
	}
	return 0, false, false
}

func overflow(op ast.Token) error {
	return diag.Errorf(diag.ArithmeticError, posOf(op), "integer overflow")
}

func posOf(tok ast.Token) diag.Pos {
	line, col := tok.Pos()
	return diag.Pos{Line: line, Col: col}
}

// malformed reports a tree shape the parser never produces.
func malformed(n *ast.Node) error {
	if n == nil {
		return fmt.Errorf("interp: missing node")
	}
	return fmt.Errorf("interp: unexpected %s node %v", n.Kind(), n.Token)
}
