// Package succgen implements the successor generator: given a state, it
// enumerates the ground actions whose precondition the state entails,
// without ever scanning the full action vector. It mirrors the teacher's
// watched-clause propagation idiom (solver/solver_propagation.go's
// watches-keyed-by-literal loop) but keyed by fluent instead of literal:
// each fluent watches the actions that require it, and a state only ever
// touches the actions watched by the fluents it actually holds.
package succgen

import (
	"github.com/ericr/aptk/bitset"
	"github.com/ericr/aptk/problem"
)

// Generator enumerates the actions applicable in a given state. It is built
// once, after problem.Problem.MakeActionTables, and is read-only thereafter;
// a single Generator may be shared across concurrent readers since Applicable
// and Each never mutate Generator state — only a scratch bitset that Each
// allocates on every call.
type Generator struct {
	prob *problem.Problem

	// emptyPrec holds the actions with no precondition at all: always
	// applicable, regardless of state.
	emptyPrec []*problem.Action
}

// New builds a Generator over prob. prob must already have had
// MakeActionTables called on it.
func New(prob *problem.Problem) *Generator {
	return &Generator{
		prob:      prob,
		emptyPrec: prob.EmptyPrecActions(),
	}
}

// Each enumerates, in a stable but otherwise unspecified order, every action
// applicable in s, calling yield once per action. Iteration stops early if
// yield returns false. Each never allocates a result slice, unlike
// Applicable, and is the enumeration entry point search engines use on their
// hot expansion path.
func (g *Generator) Each(s *problem.State, yield func(problem.ActionIdx) bool) {
	seen := bitset.New(g.prob.NumActions())

	for _, a := range g.emptyPrec {
		if !seen.IsSet(int(a.Index())) {
			seen.Set(int(a.Index()))
			if !yield(a.Index()) {
				return
			}
		}
	}

	for _, f := range s.Fluents() {
		for _, a := range g.prob.ActionsRequiring(f) {
			if seen.IsSet(int(a.Index())) {
				continue
			}
			seen.Set(int(a.Index()))
			if !s.EntailsVec(a.Prec()) {
				continue
			}
			if !yield(a.Index()) {
				return
			}
		}
	}
}

// Applicable returns every action applicable in s, in the same order Each
// would yield them. Convenience wrapper for tests and the CLI; prefer Each
// on any hot path.
func (g *Generator) Applicable(s *problem.State) []problem.ActionIdx {
	var out []problem.ActionIdx
	g.Each(s, func(a problem.ActionIdx) bool {
		out = append(out, a)
		return true
	})
	return out
}
