// Package render formats interpreter results and diagnostics for the terminal.
//
// Every function takes a color flag; with color off the output is plain text
// and stable enough to compare in tests.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/metaphox/pas-lang/ast"
	"github.com/metaphox/pas-lang/diag"
	"github.com/metaphox/pas-lang/interp"
)

// Uninitialized is printed for a declared variable that was never assigned.
const Uninitialized = "<uninitialized>"

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles
var (
	NameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	TypeStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	ValueStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	ErrorKindStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)
)

func paint(style lipgloss.Style, text string, color bool) string {
	if !color {
		return text
	}
	return style.Render(text)
}

// Bindings renders the final variable bindings in declaration order,
// one per line as "name : TYPE = value".
func Bindings(table *interp.Table, color bool) string {
	entries := table.Bindings()
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Name))
	}

	var b strings.Builder
	for _, e := range entries {
		name := fmt.Sprintf("%-*s", width, e.Name)
		typ := fmt.Sprintf("%-7s", e.Type)
		val := paint(MutedStyle, Uninitialized, color)
		if e.Value != nil {
			val = paint(ValueStyle, e.Value.String(), color)
		}
		fmt.Fprintf(&b, "%s : %s = %s\n",
			paint(NameStyle, name, color), paint(TypeStyle, typ, color), val)
	}
	return b.String()
}

// Tokens renders a token stream one token per line, prefixed by its position.
func Tokens(tokens []ast.Token, color bool) string {
	var b strings.Builder
	for _, tok := range tokens {
		pos := fmt.Sprintf("%4d:%-4d", tok.Line, tok.Col)
		fmt.Fprintf(&b, "%s %s\n", paint(MutedStyle, pos, color), tok)
	}
	return b.String()
}

// Dump renders a level-order AST dump produced by [ast.Dump], highlighting
// the node labels.
func Dump(text string, color bool) string {
	if !color {
		return text
	}
	var b strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		for _, cell := range strings.SplitAfter(line, "|  ") {
			label, rest, ok := strings.Cut(cell, "|")
			if !ok {
				b.WriteString(cell)
				continue
			}
			b.WriteString(label)
			b.WriteString("|")
			if i := strings.LastIndexByte(rest, '('); i > 0 {
				b.WriteString(NameStyle.Render(rest[:i]))
				rest = rest[i:]
			}
			b.WriteString(rest)
		}
	}
	return b.String()
}

// Error renders err with its diagnostic kind highlighted. Context added by
// wrapping, such as a file name, is kept in front of the diagnostic. Errors
// that are not diagnostics are printed as "error: msg".
func Error(err error, color bool) string {
	var de *diag.Error
	if !errors.As(err, &de) {
		return paint(ErrorKindStyle, "error", color) + ": " + err.Error()
	}
	prefix, ok := strings.CutSuffix(err.Error(), de.Error())
	if !ok {
		prefix = ""
	}
	head := prefix + paint(ErrorKindStyle, de.Kind.String(), color)
	if de.Pos.Known() {
		head += " at " + de.Pos.String()
	}
	return head + ": " + paint(ErrorMessageStyle, de.Msg, color)
}
