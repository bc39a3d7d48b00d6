package search

import (
	"github.com/ericr/aptk/heuristic"
	"github.com/ericr/aptk/problem"
)

// GreedyBestFirst is the degenerate, single-open-list best-first engine:
// the dual-queue skeleton of spec.md §4.7 with one heuristic and no
// preferred-operator split, added per SPEC_FULL.md §4.7 as the natural
// "one open list, one heuristic" baseline the original toolkit's
// Heuristic<State>/search separation implies. f(n) = g(n) + h(n).
type GreedyBestFirst struct {
	*Skeleton
	H heuristic.Evaluator

	open   *OpenList
	closed *StateIndex
}

// NewGreedyBestFirst returns a greedy best-first engine over prob guided
// by h.
func NewGreedyBestFirst(prob *problem.Problem, h heuristic.Evaluator) *GreedyBestFirst {
	e := &GreedyBestFirst{
		Skeleton: NewSkeleton(prob),
		H:        h,
	}
	e.closed = NewStateIndex(e.Arena)
	e.open = NewOpenList(func(id NodeID) float64 {
		n := e.Arena.Get(id)
		return n.G + n.H1
	})
	return e
}

// FindSolution runs search to completion or until the time budget expires.
// ok is false iff the budget expired before a solution was found or proven
// unreachable; NotFound is folded into ok==false with an empty plan, per
// spec.md §7's "NotFound is a normal, non-error outcome."
func (e *GreedyBestFirst) FindSolution() (plan []problem.ActionIdx, ok bool) {
	e.newRun()
	e.open = NewOpenList(func(id NodeID) float64 {
		n := e.Arena.Get(id)
		return n.G + n.H1
	})
	e.closed.Reset()

	root := e.root()
	e.Arena.Get(root).H1 = e.H.Eval(e.Prob.InitState())
	e.Evaluations++
	e.open.Push(root)
	e.closed.Insert(root)

	for e.open.Len() > 0 {
		if e.expired() {
			return nil, false
		}

		head := e.open.Pop()
		if e.goal(head) {
			return e.Arena.Plan(head), true
		}

		e.noteExpansion()
		state := e.Arena.Get(head).State
		g := e.Arena.Get(head).G

		e.Gen.Each(state, func(a problem.ActionIdx) bool {
			succ := state.Apply(e.Prob, a)
			cost := e.Prob.Actions()[a].Cost()
			childG := g + cost

			if childG >= e.Bound() {
				e.PrunedByBound++
				return true
			}

			existing, hadExisting := e.closed.Lookup(succ)
			if hadExisting && childG >= e.Arena.Get(existing).G {
				return true
			}

			id := e.Arena.NewNode(head, a, succ, childG)
			e.Arena.Get(id).H1 = e.H.Eval(succ)
			e.Evaluations++
			e.Generated++

			if !e.closed.InsertOrImproveG(id) {
				return true
			}
			if hadExisting {
				e.ReplacedInOpen++
			}
			e.open.Push(id)
			return true
		})
	}

	return nil, false
}
