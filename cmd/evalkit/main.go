package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is not an error; SPEC_FULL.md §4.9 treats it as an
	// optional local-development convenience (EVALKIT_TRACE=1 and friends).
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "evalkit: warning: %v\n", err)
	}

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(70)
	}
}
