package main

import (
	"fmt"

	"github.com/dhamidi/mjc/format"
	"github.com/dhamidi/mjc/minijava/compiler"
	"github.com/dhamidi/mjc/minijava/diag"
	"github.com/dhamidi/mjc/minijava/parser"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var includeComments bool

	cmd := &cobra.Command{
		Use:   "scan [file]",
		Short: "List the tokens of a miniJava file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := loadUnit(args)
			if err != nil {
				return err
			}

			opts := []parser.LexerOption{parser.WithLexerReporter(unit.Reporter)}
			if includeComments {
				opts = append(opts, parser.WithCommentTokens())
			}
			tokens := parser.Tokenize([]byte(unit.Content), unit.Filepath, opts...)

			if err := format.NewTokenEncoder(cmd.OutOrStdout()).Encode(tokens); err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}
			if unit.HasErrors() {
				unit.DisplayErrors(cmd.ErrOrStderr())
				return &compiler.PhaseError{Phase: diag.PhaseSyntax, Err: unit.Reporter.Err()}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&includeComments, "comments", "c", false, "include comment tokens")

	return cmd
}
