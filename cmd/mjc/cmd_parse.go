package main

import (
	"fmt"

	"github.com/dhamidi/mjc/format"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool
	var includeBindings bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a miniJava file and print its AST",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := loadUnit(args)
			if err != nil {
				return err
			}

			// identification errors do not prevent printing the tree
			if err := unit.Compile(); err != nil && unit.AST == nil {
				unit.DisplayErrors(cmd.ErrOrStderr())
				return err
			}

			var encoder format.Encoder
			switch outputFormat {
			case "tree":
				var opts []format.TreeOption
				if includePositions {
					opts = append(opts, format.WithPositions())
				}
				if includeBindings {
					opts = append(opts, format.WithBindings(unit.Result))
				}
				encoder = format.NewTreeEncoder(cmd.OutOrStdout(), opts...)
			case "json":
				encoder = format.NewJSONEncoder(cmd.OutOrStdout())
			case "java":
				encoder = format.NewSourceEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(unit.AST); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, java)")
	cmd.Flags().BoolVarP(&includePositions, "positions", "p", false, "include source positions in tree output")
	cmd.Flags().BoolVarP(&includeBindings, "bindings", "b", false, "annotate names with their declarations in tree output")

	return cmd
}
