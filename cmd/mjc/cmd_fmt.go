package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/mjc/format"
	"github.com/dhamidi/mjc/minijava/compiler"
	"github.com/dhamidi/mjc/minijava/diag"
	"github.com/dhamidi/mjc/minijava/parser"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Print a miniJava file in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := loadUnit(args)
			if err != nil {
				return err
			}

			pkg, err := parser.Parse(bytes.NewReader([]byte(unit.Content)),
				parser.WithFile(unit.Filepath),
				parser.WithReporter(unit.Reporter))
			if err != nil {
				unit.DisplayErrors(cmd.ErrOrStderr())
				return &compiler.PhaseError{Phase: diag.PhaseSyntax, Err: err}
			}

			var buf bytes.Buffer
			if err := format.NewSourceEncoder(&buf).Encode(pkg); err != nil {
				return fmt.Errorf("format: %w", err)
			}

			if write && unit.AbsolutePath != "" {
				if err := os.WriteFile(unit.AbsolutePath, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", unit.Filepath, err)
				}
				return nil
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")

	return cmd
}
