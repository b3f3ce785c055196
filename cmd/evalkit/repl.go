package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"evalkit/pkg/eval"
	"evalkit/pkg/source"
	"evalkit/pkg/value"
)

// newReplCommand implements `evalkit repl` (SPEC_FULL.md §4.8-§4.9): a
// persistent session reusing one root frame across lines, mirroring the
// teacher CLI's read-eval-print loop (cmd/paserati's runRepl) but stamping
// each submission with a fresh UUID scriptId rather than the in-process
// façade's monotonic counter — a long-lived REPL benefits from globally
// unique correlation ids when its trace log is aggregated elsewhere.
func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start a persistent read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging()
			configureRandomSource(cmd)
			runRepl()
			return nil
		},
	}
}

func runRepl() {
	reader := bufio.NewReader(os.Stdin)
	scope := newRootScope()
	ctx := eval.NewContext(scope, value.EvaluationConfig{})

	fmt.Println("evalkit (Ctrl+D to exit)")
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Fprintf(os.Stderr, "evalkit: error reading input: %v\n", err)
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		v, packet, parseErrs := evalFile(ctx, source.NewReplSource(line), scope, newConfig(uuid.NewString()))
		if len(parseErrs) > 0 {
			for _, e := range parseErrs {
				fmt.Fprintln(os.Stderr, e.Error())
			}
			continue
		}
		displayOutcome(line, v, packet)
	}
}
