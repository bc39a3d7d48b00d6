package search

import (
	"github.com/ericr/aptk/heuristic"
	"github.com/ericr/aptk/problem"
)

// IteratedWidth is breadth-first search gated by a novelty admission test:
// a successor is only enqueued if some tuple of at most k true fluents in
// its state has never been seen by any earlier-admitted node, for the
// smallest k for which such a search exhausts all admissible nodes without
// finding the goal; k is then incremented and the whole search restarts
// from scratch with a fresh novelty table, per spec.md §4.7's "breadth-first
// admission gated by novelty ≤ k, incrementing k on exhaustion." No
// dedicated original_source header for IW survived distillation (iw.hxx is
// only ever referenced from serialized_search.hxx's includes, never
// present in the retrieved tree); grounded instead on novelty.hxx's
// Eval/EvalNode contract plus spec.md's prose description.
type IteratedWidth struct {
	*Skeleton

	MaxArity    int
	MaxMemoryMB int
}

// NewIteratedWidth returns an IW engine over prob, trying novelty arities
// from 1 up to maxArity (inclusive) before giving up. maxMemoryMB bounds
// each arity's novelty table per heuristic.Novelty's own downgrade rule;
// pass heuristic.DefaultNoveltyMemoryMB for the original's default.
func NewIteratedWidth(prob *problem.Problem, maxArity, maxMemoryMB int) *IteratedWidth {
	return &IteratedWidth{
		Skeleton:    NewSkeleton(prob),
		MaxArity:    maxArity,
		MaxMemoryMB: maxMemoryMB,
	}
}

// FindSolution runs IW(1), IW(2), ... up to MaxArity, returning the first
// plan found by any iteration. ok is false if every iteration exhausts its
// frontier (or the budget expires) without reaching the goal.
func (e *IteratedWidth) FindSolution() (plan []problem.ActionIdx, ok bool) {
	for k := 1; k <= e.MaxArity; k++ {
		plan, ok := e.runIteration(k)
		if ok {
			return plan, true
		}
		if e.expired() {
			return nil, false
		}
	}
	return nil, false
}

// runIteration runs one breadth-first novelty-k search to exhaustion (or
// goal, or time budget).
func (e *IteratedWidth) runIteration(k int) (plan []problem.ActionIdx, ok bool) {
	e.newRun()

	novelty, downgraded := heuristic.NewNovelty(e.Prob, k, e.MaxMemoryMB)
	if downgraded {
		e.Logger.Printf("novelty arity downgraded: requested k=%d, using arity=%d (memory budget %dMB)", k, novelty.Arity(), e.MaxMemoryMB)
	}
	closed := NewStateIndex(e.Arena)

	root := e.root()
	closed.Insert(root)
	if novelty.Eval(e.Arena.Get(root).State) > float64(k) {
		return nil, false
	}

	queue := []NodeID{root}
	for len(queue) > 0 {
		if e.expired() {
			return nil, false
		}

		head := queue[0]
		queue = queue[1:]

		if e.goal(head) {
			return e.Arena.Plan(head), true
		}

		e.noteExpansion()
		state := e.Arena.Get(head).State
		g := e.Arena.Get(head).G

		e.Gen.Each(state, func(a problem.ActionIdx) bool {
			succ := state.Apply(e.Prob, a)
			if _, seen := closed.Lookup(succ); seen {
				return true
			}

			action := e.Prob.Actions()[a]
			if novelty.EvalNode(succ, action.Add()) > float64(k) {
				closed.Insert(e.Arena.NewNode(head, a, succ, g+action.Cost()))
				return true
			}

			id := e.Arena.NewNode(head, a, succ, g+action.Cost())
			e.Generated++
			closed.Insert(id)
			queue = append(queue, id)
			return true
		})
	}

	return nil, false
}
