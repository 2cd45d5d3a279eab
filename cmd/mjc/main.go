package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dhamidi/mjc/minijava/compiler"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

func main() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var phaseErr *compiler.PhaseError
		if !errors.As(err, &phaseErr) {
			fmt.Fprintf(os.Stderr, "mjc: %s\n", err)
		}
		os.Exit(compiler.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	var verbose int
	var logPath string
	var dump bool
	var trace bool

	rootCmd := &cobra.Command{
		Use:           "mjc [file]",
		Short:         "A miniJava compiler front end",
		Long:          "Scan, parse and identify a miniJava program. Reads standard input when no file is given.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logPath == "" {
				logPath = os.Getenv("MJC_LOG")
			}
			var path *string
			if logPath != "" {
				path = &logPath
			}
			// trace lines are logged at debug level
			if trace && verbose < 2 {
				verbose = 2
			}
			commonlog.Configure(verbose, path)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, dump, trace)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write logs to this file instead of stderr (default $MJC_LOG)")
	rootCmd.Flags().BoolVar(&dump, "dump", false, "print the AST after a successful parse")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "log every token the parser accepts")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newWatchCmd())

	return rootCmd
}
