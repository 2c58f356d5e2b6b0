package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metaphox/pas-lang/interp"
	"github.com/metaphox/pas-lang/parser"
)

var calcCmd = &cobra.Command{
	Use:   "calc <expr>",
	Short: "Evaluate an arithmetic expression",
	Long: `Evaluate a single expression of integer and real literals with
+ - * / DIV and parentheses. Multiple arguments are joined with spaces.

Example:
  pas calc "(1 + 2) * 3"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	src := strings.Join(args, " ")
	expr, err := parser.ParseExpression(src)
	if err != nil {
		return err
	}
	v, err := interp.EvalExpr(expr, nil)
	if err != nil {
		return err
	}
	logger.Debug("calc", "expr", expr.String(), "type", v.Type.String())
	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
