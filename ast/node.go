package ast

import (
	"fmt"
	"strings"
)

// Node is one vertex of the syntax tree: a tag token plus the node's children.
// Every child is owned by exactly one parent; the tree is built bottom-up by the
// parser and never mutated afterwards.
//
// Child count and order are fixed per shape:
//
//	program      TAG(PROGRAM)  [ID(name), BLOCK]
//	block        TAG(BLOCK)    [VARDEC..., COMP]
//	declaration  TAG(VARDEC)   [ID(name), KEYWORD(INTEGER|REAL)]
//	compound     TAG(COMP)     [statement...]
//	empty        TAG(Empty)    []
//	assignment   ASSIGN        [ID(target), expr]
//	binary       OP1|OP2|DIV   [left, right]
//	unary        UNARY         [operand]
//	leaf         ID|INTEGER_CONST|REAL_CONST  []
type Node struct {
	Token    Token
	Children []*Node
}

// NodeKind is the closed set of tree shapes. The interpreter switches on it.
type NodeKind int

const (
	KindInvalid NodeKind = iota
	KindProgram
	KindBlock
	KindVarDecl
	KindCompound
	KindEmpty
	KindAssign
	KindBinOp
	KindUnaryOp
	KindIntLit
	KindRealLit
	KindVar
	KindTypeSpec
)

func (k NodeKind) String() string {
	switch k {
	case KindProgram:
		return "Program"
	case KindBlock:
		return "Block"
	case KindVarDecl:
		return "VarDecl"
	case KindCompound:
		return "Compound"
	case KindEmpty:
		return "Empty"
	case KindAssign:
		return "Assign"
	case KindBinOp:
		return "BinOp"
	case KindUnaryOp:
		return "UnaryOp"
	case KindIntLit:
		return "IntLit"
	case KindRealLit:
		return "RealLit"
	case KindVar:
		return "Var"
	case KindTypeSpec:
		return "TypeSpec"
	}
	return "Invalid"
}

// Leaf returns a childless node.
func Leaf(tok Token) *Node { return &Node{Token: tok} }

// NewNode returns a node tagged with tok owning the given children.
func NewNode(tok Token, children ...*Node) *Node {
	return &Node{Token: tok, Children: children}
}

// Tagged returns a synthetic node labelled with one of the Tag* constants.
func Tagged(label string, children ...*Node) *Node {
	return NewNode(Tag(label), children...)
}

// Kind classifies the node by its tag token.
func (n *Node) Kind() NodeKind {
	if n == nil {
		return KindInvalid
	}
	tok := n.Token
	switch tok.Type {
	case TAG:
		switch tok.Text {
		case TagProgram:
			return KindProgram
		case TagBlock:
			return KindBlock
		case TagVarDecl:
			return KindVarDecl
		case TagCompound:
			return KindCompound
		case TagEmpty:
			return KindEmpty
		}
	case ASSIGN:
		return KindAssign
	case OP1, OP2:
		return KindBinOp
	case KEYWORD:
		switch tok.Text {
		case KwDiv:
			return KindBinOp
		case KwInteger, KwReal:
			return KindTypeSpec
		}
	case UNARY:
		return KindUnaryOp
	case INTEGER_CONST:
		return KindIntLit
	case REAL_CONST:
		return KindRealLit
	case ID:
		return KindVar
	}
	return KindInvalid
}

// Child returns the i-th child or nil when out of range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// String renders the subtree as a compact s-expression, e.g.
// (ASSIGN b (OP1+ (OP2* 10 a) (DIV 10 4))). Intended for tests and debugging.
func (n *Node) String() string {
	var b strings.Builder
	n.writeSexpr(&b)
	return b.String()
}

func (n *Node) writeSexpr(b *strings.Builder) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	label := sexprLabel(n.Token)
	if len(n.Children) == 0 && n.Kind() != KindEmpty && n.Token.Type != TAG {
		b.WriteString(label)
		return
	}
	b.WriteByte('(')
	b.WriteString(label)
	for _, c := range n.Children {
		b.WriteByte(' ')
		c.writeSexpr(b)
	}
	b.WriteByte(')')
}

func sexprLabel(t Token) string {
	switch t.Type {
	case OP1, OP2, UNARY:
		return fmt.Sprintf("%s%c", t.Type, t.Op)
	case ID, KEYWORD, TAG:
		return t.Text
	case ASSIGN:
		return "ASSIGN"
	}
	return t.Source()
}

// Equal reports whether two trees have the same shape and the same token
// payloads. Source positions and literal text are ignored.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !sameToken(a.Token, b.Token) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

func sameToken(a, b Token) bool {
	return a.Type == b.Type && a.Op == b.Op && a.Int == b.Int &&
		a.Real == b.Real && a.Text == b.Text
}
