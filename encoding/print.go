// Package encoding provides plain-text debug printers for problems and
// plans — output-only, mirroring the original toolkit's
// STRIPS_Problem::print*/print_plan helpers. No bit-exact format is
// specified (spec.md §4.1/§6), so this is for humans reading logs, not a
// wire format a caller should parse back.
package encoding

import (
	"fmt"
	"io"

	"github.com/ericr/aptk/problem"
)

// PrintProblem writes a human-readable summary of prob's fluents,
// actions, and init/goal states to w.
func PrintProblem(w io.Writer, prob *problem.Problem) {
	fmt.Fprintf(w, "problem %s.%s\n", prob.DomainName(), prob.ProblemName())

	fmt.Fprintf(w, "fluents (%d):\n", prob.NumFluents())
	for _, f := range prob.Fluents() {
		fmt.Fprintf(w, "  %d: %s\n", f.Index(), f.Signature())
	}

	fmt.Fprintf(w, "actions (%d):\n", prob.NumActions())
	for _, a := range prob.Actions() {
		fmt.Fprintf(w, "  %d: %s (cost %.2f)\n", a.Index(), a.Signature(), a.Cost())
	}

	fmt.Fprint(w, "init:")
	printFluentSet(w, prob, prob.Init())
	fmt.Fprint(w, "goal:")
	printFluentSet(w, prob, prob.Goal())
}

func printFluentSet(w io.Writer, prob *problem.Problem, fs []problem.FluentIdx) {
	fluents := prob.Fluents()
	for _, f := range fs {
		fmt.Fprintf(w, " %s", fluents[f].Signature())
	}
	fmt.Fprint(w, "\n")
}

// PrintPlan writes the action sequence plan (as returned by a search
// engine's FindSolution) to w, one action signature per line, along with
// its total cost under prob.
func PrintPlan(w io.Writer, prob *problem.Problem, plan []problem.ActionIdx) {
	actions := prob.Actions()
	total := 0.0
	for i, idx := range plan {
		a := actions[idx]
		fmt.Fprintf(w, "%d: %s\n", i, a.Signature())
		total += a.Cost()
	}
	fmt.Fprintf(w, "plan length: %d, cost: %.2f\n", len(plan), total)
}
