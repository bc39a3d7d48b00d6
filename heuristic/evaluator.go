package heuristic

import "github.com/ericr/aptk/problem"

// Evaluator is the capability every heuristic in this package exposes to a
// search engine: a single float64 estimate of the remaining cost to the
// goal from s. This corresponds to the original toolkit's
// Heuristic<State>::eval(s, h_val) entry point, generalized to a Go
// interface per spec.md §9's guidance to use capability interfaces rather
// than a base class.
type Evaluator interface {
	Eval(s *problem.State) float64
}

// h_1.hxx's own eval(s, h_val, pref_ops) overload leaves pref_ops
// unpopulated; PreferredOperators implements the actual "helpful actions"
// construction a dual-queue engine needs to have a meaningfully distinct
// preferred bucket: starting from every currently-unsatisfied goal fluent,
// it follows best supporters recursively through their unsatisfied
// preconditions and returns the supporters found that are applicable in s,
// deduplicated.
func PreferredOperators(h *H1, prob *problem.Problem, s *problem.State) []problem.ActionIdx {
	h.Eval(s)

	seen := map[problem.ActionIdx]bool{}
	visited := map[problem.FluentIdx]bool{}
	var ops []problem.ActionIdx
	pending := append([]problem.FluentIdx(nil), prob.Goal()...)
	for len(pending) > 0 {
		f := pending[0]
		pending = pending[1:]
		if visited[f] || s.Entails(f) {
			continue
		}
		visited[f] = true
		supp := h.BestSupporter(f)
		if supp == nil || seen[supp.Index()] {
			continue
		}
		seen[supp.Index()] = true
		if !s.EntailsVec(supp.Prec()) {
			pending = append(pending, supp.Prec()...)
			continue
		}
		ops = append(ops, supp.Index())
	}
	return ops
}
