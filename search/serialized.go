package search

import (
	"github.com/ericr/aptk/heuristic"
	"github.com/ericr/aptk/problem"
)

// Serialized is goal-atom-at-a-time search, grounded on
// serialized_search.hxx: rather than searching directly for a state
// entailing the full goal, it repeatedly searches (with the same
// underlying best-first loop GreedyBestFirst uses) for a state entailing
// every goal fluent achieved so far plus at least one new goal fluent
// whose achievement does not strand the rest of the goal unreachable,
// then resumes search from that state in pursuit of the remaining goal
// candidates. The final plan is the concatenation of every partial plan
// found along the way — find_solution's do-while loop.
type Serialized struct {
	*Skeleton
	H            heuristic.Evaluator
	reachability *heuristic.H1

	open   *OpenList
	closed *StateIndex

	goalsAchieved  []problem.FluentIdx
	goalCandidates []problem.FluentIdx
}

// NewSerialized returns a serialized-search engine over prob guided by h,
// using h1 reachability (h_max, per the original's H1_Reachability
// typedef) to test whether a tentatively achieved goal atom still leaves
// the rest of the goal reachable.
func NewSerialized(prob *problem.Problem, h heuristic.Evaluator) *Serialized {
	e := &Serialized{
		Skeleton:     NewSkeleton(prob),
		H:            h,
		reachability: heuristic.NewH1(prob, heuristic.MaxAggregator(), heuristic.UseCosts),
	}
	e.closed = NewStateIndex(e.Arena)
	return e
}

// isGoal reports whether s has newly entailed at least one more goal
// candidate (moving it into goalsAchieved) without making the remainder
// of the task's goal unreachable. Matches is_goal: every already-achieved
// goal fluent must still hold, and entailing a new candidate is only
// accepted if EvalReachability(s, goalsAchieved) comes back finite once
// the candidate is tentatively added — otherwise the candidate stays
// unachieved and the tentative addition is rolled back.
func (e *Serialized) isGoal(s *problem.State) bool {
	for _, f := range e.goalsAchieved {
		if !s.Entails(f) {
			return false
		}
	}

	newGoalAchieved := false
	var unachieved []problem.FluentIdx
	for _, f := range e.goalCandidates {
		if !s.Entails(f) {
			unachieved = append(unachieved, f)
			continue
		}

		e.goalsAchieved = append(e.goalsAchieved, f)
		val := e.reachability.EvalReachability(s, e.goalsAchieved)
		if val != Infty {
			newGoalAchieved = true
		} else {
			unachieved = append(unachieved, f)
			e.goalsAchieved = e.goalsAchieved[:len(e.goalsAchieved)-1]
		}
	}

	if !newGoalAchieved {
		return false
	}
	e.goalCandidates = unachieved
	return true
}

// runOnce runs one greedy best-first search from init, stopping the first
// time isGoal accepts a node, rather than at the problem's actual goal.
func (e *Serialized) runOnce(init *problem.State) (plan []problem.ActionIdx, final *problem.State, ok bool) {
	e.open = NewOpenList(func(id NodeID) float64 {
		n := e.Arena.Get(id)
		return n.G + n.H1
	})
	e.closed.Reset()

	root := e.Arena.NewNode(NoNode, -1, init, 0.0)
	e.Arena.Get(root).H1 = e.H.Eval(init)
	e.Evaluations++
	e.open.Push(root)
	e.closed.Insert(root)

	for e.open.Len() > 0 {
		if e.expired() {
			return nil, nil, false
		}

		head := e.open.Pop()
		state := e.Arena.Get(head).State
		if e.isGoal(state) {
			return e.Arena.Plan(head), state, true
		}

		e.noteExpansion()
		g := e.Arena.Get(head).G

		e.Gen.Each(state, func(a problem.ActionIdx) bool {
			succ := state.Apply(e.Prob, a)
			cost := e.Prob.Actions()[a].Cost()
			childG := g + cost

			_, hadExisting := e.closed.Lookup(succ)

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

	return nil, nil, false
}

// FindSolution runs serialized search to completion: repeatedly asking for
// a plan to the next isGoal-accepting state, resuming from where the last
// segment left off, until the accumulated state entails the problem's
// actual goal. Matches find_solution's do-while loop.
func (e *Serialized) FindSolution() (plan []problem.ActionIdx, ok bool) {
	e.newRun()
	e.goalsAchieved = nil
	e.goalCandidates = append([]problem.FluentIdx(nil), e.Prob.Goal()...)

	state := e.Prob.InitState()
	for {
		partial, final, found := e.runOnce(state)
		if !found {
			return nil, false
		}
		plan = append(plan, partial...)
		state = final

		if e.Prob.GoalEntailed(state) {
			return plan, true
		}
	}
}
