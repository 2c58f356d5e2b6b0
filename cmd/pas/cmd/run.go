package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/pas-lang/interp"
	"github.com/metaphox/pas-lang/parser"
	"github.com/metaphox/pas-lang/render"
)

var showAST bool

var runCmd = &cobra.Command{
	Use:   "run <file|->",
	Short: "Evaluate a program and print the final bindings",
	Long: `Evaluate a program and print every declared variable with its
final value, in declaration order. Variables that were never assigned
are shown as <uninitialized>.

Use - to read the program from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	runCmd.Flags().BoolVar(&showAST, "ast", false, "also print the syntax tree")
	rootCmd.AddCommand(runCmd)
}

func runProgram(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	tree, err := parser.ParseProgram(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	if showAST || settings.Output.ShowAST {
		text, err := formatTree(tree, settings.Output.ASTFormat)
		if err != nil {
			return err
		}
		fmt.Fprint(out, render.Dump(text, useColor()))
		fmt.Fprintln(out)
	}

	table, err := interp.New(interp.WithLogger(logger)).Run(tree)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	logger.Info("program finished", "variables", table.Len())
	fmt.Fprint(out, render.Bindings(table, useColor()))
	return nil
}
