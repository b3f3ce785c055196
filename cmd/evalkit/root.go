package main

import (
	"math/rand/v2"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"evalkit/pkg/host"
)

var (
	traceFlag   bool
	verboseFlag bool
	seedFlag    int64
)

// newRootCommand assembles the evalkit CLI (C11, SPEC_FULL.md §4.8): three
// subcommands over the shared C7 evaluation context, plus the --trace/-v
// flags every subcommand inherits.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "evalkit",
		Short:         "A metacircular CPS interpreter driver",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().BoolVar(&traceFlag, "trace", envBool("EVALKIT_TRACE"), "log an enter/exit line for every evaluated node")
	root.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", envBool("EVALKIT_VERBOSE"), "raise the log level to debug")
	root.PersistentFlags().Int64Var(&seedFlag, "seed", 0, "seed Math.random for a reproducible --trace run")

	root.AddCommand(newRunCommand())
	root.AddCommand(newEvalCommand())
	root.AddCommand(newReplCommand())
	return root
}

func envBool(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// configureLogging applies -v/--verbose the way the teacher CLI's own
// verbosity flag does (cmd/paserati's -bytecode/-ast debug flags, adapted
// to logrus's level API rather than a scattering of bool prints).
func configureLogging() {
	log.SetLevel(log.InfoLevel)
	if verboseFlag {
		log.SetLevel(log.DebugLevel)
	}
}

// configureRandomSource wires --seed into Math.random (pkg/host.SetRandomSource)
// so a --trace run can be replayed deterministically; the flag is
// intentionally optional (cmd.Flags().Changed, not a zero check — a seed of
// 0 is a legitimate seed) and defaults to the process-wide math/rand/v2
// source when unset.
func configureRandomSource(cmd *cobra.Command) {
	if !cmd.Flags().Changed("seed") {
		return
	}
	seeded := rand.New(rand.NewPCG(uint64(seedFlag), uint64(seedFlag)))
	host.SetRandomSource(seeded.Float64)
}
