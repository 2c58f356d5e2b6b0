package render_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/metaphox/pas-lang/ast"
	"github.com/metaphox/pas-lang/diag"
	"github.com/metaphox/pas-lang/interp"
	"github.com/metaphox/pas-lang/lexer"
	"github.com/metaphox/pas-lang/render"
)

func TestBindings(t *testing.T) {
	table, err := interp.Run("PROGRAM P; VAR count, b : INTEGER; y : REAL; BEGIN count := 2; y := 0.5 END.")
	if err != nil {
		t.Fatal(err)
	}
	got := render.Bindings(table, false)
	want := "count : INTEGER = 2\n" +
		"b     : INTEGER = <uninitialized>\n" +
		"y     : REAL    = 0.5\n"
	if got != want {
		t.Errorf("Bindings:\n got %q\nwant %q", got, want)
	}
}

func TestTokens(t *testing.T) {
	toks, err := lexer.Tokenize("a := 1")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(render.Tokens(toks, false), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), lines)
	}
	if lines[0] != "   1:1    variable: a" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], " ASSIGN") || !strings.HasSuffix(lines[3], " EOF") {
		t.Errorf("lines = %q", lines)
	}
}

func TestDump(t *testing.T) {
	tree := ast.Tagged(ast.TagCompound, ast.Tagged(ast.TagEmpty))
	text := ast.Dump(tree)
	if got := render.Dump(text, false); got != text {
		t.Errorf("plain Dump changed the text: %q", got)
	}
	colored := render.Dump(text, true)
	for _, want := range []string{"COMP", "(1)", "Empty", "(0)"} {
		if !strings.Contains(colored, want) {
			t.Errorf("colored dump %q missing %q", colored, want)
		}
	}
}

func TestError(t *testing.T) {
	de := diag.Errorf(diag.SyntaxError, diag.Pos{Line: 3, Col: 8}, "expected SEMI, got EOF")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"diagnostic", de, "SyntaxError at line 3 col 8: expected SEMI, got EOF"},
		{"wrapped", fmt.Errorf("prog.pas: %w", de), "prog.pas: SyntaxError at line 3 col 8: expected SEMI, got EOF"},
		{"wrapped twice", fmt.Errorf("run: %w", fmt.Errorf("prog.pas: %w", de)), "run: prog.pas: SyntaxError at line 3 col 8: expected SEMI, got EOF"},
		{"no position", diag.Errorf(diag.NameError, diag.Pos{}, "x not declared"), "NameError: x not declared"},
		{"plain", errors.New("boom"), "error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render.Error(tt.err, false); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}
