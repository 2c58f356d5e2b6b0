package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metaphox/pas-lang/lexer"
	"github.com/metaphox/pas-lang/render"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file|->",
	Short: "Print the token stream of a program",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Tokens(toks, useColor()))
	return nil
}
