// Command aptk is a thin demonstration of the library, not a deliverable
// in its own right (no PDDL parsing or domain plugins — see
// SPEC_FULL.md §9 Non-goals): it builds one hardcoded example problem and
// runs the requested search engine against it, printing the plan and
// search statistics. Mirrors the teacher's cmd/saturday shape (parse
// flags, run, print stats) on top of cobra instead of the stdlib flag
// package.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
