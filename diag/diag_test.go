package diag_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/metaphox/pas-lang/diag"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *diag.Error
		want string
	}{
		{
			name: "with position",
			err:  diag.Errorf(diag.SyntaxError, diag.Pos{Line: 3, Col: 7}, "expected %s", "SEMI"),
			want: "SyntaxError at line 3 col 7: expected SEMI",
		},
		{
			name: "without position",
			err:  diag.Errorf(diag.NameError, diag.Pos{}, "x not declared"),
			want: "NameError: x not declared",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	base := diag.Errorf(diag.TypeError, diag.Pos{Line: 1, Col: 1}, "mismatch")
	wrapped := fmt.Errorf("running prog.pas: %w", base)

	k, ok := diag.KindOf(wrapped)
	if !ok || k != diag.TypeError {
		t.Fatalf("KindOf = %v, %v; want TypeError, true", k, ok)
	}
	if !diag.Is(wrapped, diag.TypeError) {
		t.Error("Is(wrapped, TypeError) = false")
	}
	if diag.Is(wrapped, diag.NameError) {
		t.Error("Is(wrapped, NameError) = true")
	}
}

func TestKindOf_Foreign(t *testing.T) {
	if _, ok := diag.KindOf(errors.New("plain")); ok {
		t.Error("KindOf(plain error) reported a kind")
	}
	if diag.Is(nil, diag.LexicalError) {
		t.Error("Is(nil) = true")
	}
}

func TestKind_String(t *testing.T) {
	kinds := map[diag.Kind]string{
		diag.LexicalError:     "LexicalError",
		diag.SyntaxError:      "SyntaxError",
		diag.DeclarationError: "DeclarationError",
		diag.NameError:        "NameError",
		diag.TypeError:        "TypeError",
		diag.ArithmeticError:  "ArithmeticError",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(k), k.String(), want)
		}
	}
}
