package main

import (
	"fmt"

	"github.com/dhamidi/mjc/minijava/compiler"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func runCompile(cmd *cobra.Command, args []string, dump, trace bool) error {
	unit, err := loadUnit(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := []compiler.Option{compiler.WithProgress(out)}
	if dump {
		opts = append(opts, compiler.WithDump(out))
	}
	if trace {
		opts = append(opts, compiler.WithTrace(commonlog.GetLogger("mjc.parser")))
	}

	if err := unit.Compile(opts...); err != nil {
		unit.DisplayErrors(cmd.ErrOrStderr())
		fmt.Fprintln(out, "Invalid miniJava program")
		return err
	}
	fmt.Fprintln(out, "Valid miniJava program")
	return nil
}
