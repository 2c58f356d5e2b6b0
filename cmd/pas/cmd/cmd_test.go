package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metaphox/pas-lang/config"
	"github.com/metaphox/pas-lang/diag"
)

const scenario = `PROGRAM P;
VAR a, b : INTEGER;
    y    : REAL;
BEGIN
    a := 2;
    b := 10 * a + 10 * a DIV 4;
    y := 20 / 7 + 3.14
END.
`

// execute runs the command tree with fresh flag state and captured output.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return invoke(t, rootCmd.Execute, stdin, args)
}

// executeReported is like execute but goes through Execute, which prints
// failures to stderr.
func executeReported(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	return invoke(t, Execute, stdin, args)
}

func invoke(t *testing.T, run func() error, stdin string, args []string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	cfgFile, verbose, noColor = "", false, false
	showAST, astFormat = false, ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err = run()
	return out.String(), errOut.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_File(t *testing.T) {
	out, _, err := execute(t, "", "run", "--no-color", writeTemp(t, "p.pas", scenario))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"a : INTEGER = 2\n", "b : INTEGER = 25\n", "y : REAL    = 5.14"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_Stdin(t *testing.T) {
	out, _, err := execute(t, "PROGRAM P; VAR x, z : REAL; BEGIN x := 1.5 END.", "run", "--no-color", "-")
	if err != nil {
		t.Fatal(err)
	}
	want := "x : REAL    = 1.5\nz : REAL    = <uninitialized>\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestRun_ShowAST(t *testing.T) {
	out, _, err := execute(t, "PROGRAM P; BEGIN END.", "run", "--no-color", "--ast", "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "  |PROGRAM(2)|  \n") {
		t.Errorf("dump missing:\n%s", out)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind diag.Kind
	}{
		{"lexical", "PROGRAM P; BEGIN x := @ END.", diag.LexicalError},
		{"syntax", "PROGRAM P; BEGIN END", diag.SyntaxError},
		{"undeclared", "PROGRAM P; BEGIN x := 1 END.", diag.NameError},
		{"type", "PROGRAM P; VAR x : INTEGER; BEGIN x := 1.0 END.", diag.TypeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.src, "run", "-")
			if !diag.Is(err, tt.kind) {
				t.Errorf("err = %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestRun_ErrorNamesFile(t *testing.T) {
	path := writeTemp(t, "p.pas", "PROGRAM P; BEGIN x := 1 END.")
	_, stderr, err := executeReported(t, "", "run", "--no-color", path)
	if !diag.Is(err, diag.NameError) {
		t.Fatalf("err = %v, want NameError", err)
	}
	want := path + ": NameError at line 1 col 18: x not declared\n"
	if stderr != want {
		t.Errorf("stderr = %q, want %q", stderr, want)
	}
}

func TestRun_MissingFile(t *testing.T) {
	_, _, err := execute(t, "", "run", filepath.Join(t.TempDir(), "absent.pas"))
	if err == nil || !strings.Contains(err.Error(), "read source") {
		t.Errorf("err = %v", err)
	}
}

func TestParse_Formats(t *testing.T) {
	src := "PROGRAM P; VAR x : INTEGER; BEGIN x := 1 END."

	out, _, err := execute(t, src, "parse", "--no-color", "--format", "sexpr", "-")
	if err != nil {
		t.Fatal(err)
	}
	if want := "(PROGRAM P (BLOCK (VARDEC x INTEGER) (COMP (ASSIGN x 1))))\n"; out != want {
		t.Errorf("sexpr = %q, want %q", out, want)
	}

	out, _, err = execute(t, src, "parse", "--no-color", "-")
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Split(strings.TrimRight(out, "\n"), "\n"); len(lines) != 5 {
		t.Errorf("levels dump has %d lines, want 5:\n%s", len(lines), out)
	}

	if _, _, err := execute(t, src, "parse", "--format", "tree", "-"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestTokens(t *testing.T) {
	out, _, err := execute(t, "x := 1", "tokens", "--no-color", "-")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 || !strings.HasSuffix(lines[0], "variable: x") || !strings.HasSuffix(lines[3], "EOF") {
		t.Errorf("tokens:\n%s", out)
	}
}

func TestCalc(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"1 + 2 * 3"}, "7\n"},
		{[]string{"7", "DIV", "2.9"}, "3\n"},
		{[]string{"1 / 4.0"}, "0.25\n"},
		{[]string{"(1 + 2) * 3"}, "9\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := execute(t, "", append([]string{"calc"}, tt.args...)...)
			if err != nil {
				t.Fatal(err)
			}
			if out != tt.want {
				t.Errorf("calc = %q, want %q", out, tt.want)
			}
		})
	}

	if _, _, err := execute(t, "", "calc", "1 DIV 0"); !diag.Is(err, diag.ArithmeticError) {
		t.Errorf("1 DIV 0: err = %v", err)
	}
	if _, _, err := execute(t, "", "calc", "1 +"); !diag.Is(err, diag.SyntaxError) {
		t.Errorf("1 +: err = %v", err)
	}
}

func TestConfigFile(t *testing.T) {
	cfg := writeTemp(t, "pas.yaml", "output:\n  color: false\n  show_ast: true\n  ast_format: sexpr\n")
	out, _, err := execute(t, "PROGRAM P; BEGIN END.", "run", "--config", cfg, "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "(PROGRAM P (BLOCK (COMP (Empty))))\n") {
		t.Errorf("output:\n%s", out)
	}

	bad := writeTemp(t, "bad.toml", "[log]\nlevel = \"loud\"\n")
	if _, _, err := execute(t, "", "version", "--config", bad); err == nil {
		t.Error("expected an error for an invalid config")
	}
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := execute(t, "PROGRAM P; VAR i : INTEGER; BEGIN i := 2 END.", "run", "-v", "--no-color", "-")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"run_id=", "msg=declare", "msg=assign", "msg=\"program finished\""} {
		if !strings.Contains(stderr, want) {
			t.Errorf("log output missing %q:\n%s", want, stderr)
		}
	}
}

func TestJSONLogging(t *testing.T) {
	cfg := writeTemp(t, "pas.toml", "[log]\nlevel = \"info\"\nformat = \"json\"\n")
	_, stderr, err := execute(t, "PROGRAM P; BEGIN END.", "run", "--config", cfg, "-")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, `"msg":"program finished"`) || !strings.Contains(stderr, `"run_id":`) {
		t.Errorf("json log:\n%s", stderr)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "pas v"+Version+"\n") {
		t.Errorf("version output:\n%s", out)
	}
}
