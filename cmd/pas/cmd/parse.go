package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/pas-lang/ast"
	"github.com/metaphox/pas-lang/parser"
	"github.com/metaphox/pas-lang/render"
)

var astFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Print the syntax tree of a program",
	Long: `Parse a program and print its syntax tree without evaluating it.

Formats:
  levels  - one line per tree depth, each node as |label(children)|
  sexpr   - a single s-expression`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&astFormat, "format", "", "tree format: levels or sexpr (default from config)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	format := astFormat
	if format == "" {
		format = settings.Output.ASTFormat
	}

	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	tree, err := parser.ParseProgram(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	text, err := formatTree(tree, format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Dump(text, useColor()))
	return nil
}

// formatTree renders tree in the named format.
func formatTree(tree *ast.Node, format string) (string, error) {
	switch format {
	case "levels":
		return ast.Dump(tree), nil
	case "sexpr":
		return tree.String() + "\n", nil
	}
	return "", fmt.Errorf("unknown tree format %q (want levels or sexpr)", format)
}
