package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"evalkit/pkg/eval"
	"evalkit/pkg/value"
)

// newEvalCommand implements `evalkit eval -e "<expr>"` (SPEC_FULL.md §4.8):
// evaluate an inline expression and print its result.
func newEvalCommand() *cobra.Command {
	var expr string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate an inline expression",
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging()
			configureRandomSource(cmd)
			if expr == "" {
				return fmt.Errorf("eval: -e/--expr is required")
			}

			ctx := eval.NewContext(newRootScope(), value.EvaluationConfig{})
			v, packet, parseErrs := evalSource(ctx, expr, nil, newConfig(""))
			if len(parseErrs) > 0 {
				for _, e := range parseErrs {
					fmt.Fprintln(os.Stderr, e.Error())
				}
				os.Exit(65)
			}
			if !displayOutcome(expr, v, packet) {
				os.Exit(70)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "the expression to evaluate")
	return cmd
}
