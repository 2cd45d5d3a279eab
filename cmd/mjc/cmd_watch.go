package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dhamidi/mjc/minijava/codebase"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Recompile miniJava files whenever they change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runWatch(cmd.Context(), root, cmd.OutOrStdout())
		},
	}
}

func runWatch(ctx context.Context, root string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cb := codebase.New(root)
	if err := cb.ScanAll(); err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}
	for _, path := range cb.Paths() {
		report(out, path, cb.GetFile(path))
	}

	w, err := codebase.NewWatcher(cb, codebase.OnUpdate(func(path string, f *codebase.FileInfo) {
		report(out, path, f)
	}))
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(out, "watching %s\n", root)
	return w.Run(ctx)
}

func report(out io.Writer, path string, f *codebase.FileInfo) {
	switch {
	case f == nil:
		fmt.Fprintf(out, "%s: removed\n", path)
	case f.Err == nil:
		fmt.Fprintf(out, "%s: ok\n", path)
	default:
		fmt.Fprintf(out, "%s: %d errors\n", path, f.Unit.Reporter.Count())
		f.Unit.DisplayErrors(out)
	}
}
