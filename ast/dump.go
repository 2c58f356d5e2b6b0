package ast

import (
	"fmt"
	"strings"
)

// Dump renders the tree level by level, one line per depth. Each node is
// printed as |<token>(<child count>)|, so the root line of a program reads
//
//	  |PROGRAM(2)|
func Dump(root *Node) string {
	if root == nil {
		return ""
	}
	var b strings.Builder
	level := []*Node{root}
	for len(level) > 0 {
		var next []*Node
		for _, n := range level {
			fmt.Fprintf(&b, "  |%s(%d)|  ", n.Token, len(n.Children))
			for _, c := range n.Children {
				if c != nil {
					next = append(next, c)
				}
			}
		}
		b.WriteByte('\n')
		level = next
	}
	return b.String()
}

// Tokens reconstructs the token sequence of a program tree, ending with EOF.
// Feeding the result back through the parser yields an equal tree.
// Missing children of an incomplete tree are skipped.
func Tokens(program *Node) []Token {
	var out []Token
	emit := func(t Token) { out = append(out, t) }
	leaf := func(n *Node) {
		if n != nil {
			emit(n.Token)
		}
	}
	var walk func(n *Node, parentPrec int)
	walk = func(n *Node, parentPrec int) {
		if n == nil {
			return
		}
		switch n.Kind() {
		case KindProgram:
			emit(Keyword(KwProgram))
			leaf(n.Child(0))
			emit(Of(SEMI))
			walk(n.Child(1), 0)
			emit(Of(DOT))
		case KindBlock:
			if len(n.Children) == 0 {
				return
			}
			decls := n.Children[:len(n.Children)-1]
			if len(decls) > 0 {
				emit(Keyword(KwVar))
				for _, d := range decls {
					leaf(d.Child(0))
					emit(Of(COLON))
					leaf(d.Child(1))
					emit(Of(SEMI))
				}
			}
			walk(n.Children[len(n.Children)-1], 0)
		case KindCompound:
			emit(Keyword(KwBegin))
			for i, s := range n.Children {
				if i > 0 {
					emit(Of(SEMI))
				}
				walk(s, 0)
			}
			emit(Keyword(KwEnd))
		case KindEmpty:
		case KindAssign:
			leaf(n.Child(0))
			emit(Of(ASSIGN))
			walk(n.Child(1), 0)
		case KindBinOp:
			prec := precedence(n.Token)
			if prec < parentPrec {
				emit(Of(LPAREN))
			}
			walk(n.Child(0), prec)
			emit(n.Token)
			// The right operand binds tighter than its parent so that a
			// right-nested tree of equal precedence keeps its parentheses.
			walk(n.Child(1), prec+1)
			if prec < parentPrec {
				emit(Of(RPAREN))
			}
		case KindUnaryOp:
			emit(Token{Type: OP1, Op: n.Token.Op})
			walk(n.Child(0), 3)
		default:
			emit(n.Token)
		}
	}
	walk(program, 0)
	emit(Of(EOF))
	return out
}

// precedence of a binary operator node: 1 for + -, 2 for * / DIV.
func precedence(t Token) int {
	if t.Type == OP1 {
		return 1
	}
	return 2
}

// Source renders a token sequence as program text separated by single spaces.
func Source(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if s := t.Source(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
