package main

import (
	"os"

	"github.com/dhamidi/mjc/minijava/compiler"
)

// loadUnit reads the file named by the only argument, or standard input when
// there is none.
func loadUnit(args []string) (*compiler.Unit, error) {
	if len(args) == 0 || args[0] == "-" {
		return compiler.ReadUnit("", os.Stdin)
	}
	return compiler.LoadUnit(args[0])
}
