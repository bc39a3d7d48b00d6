package search

import (
	"github.com/ericr/aptk/heuristic"
	"github.com/ericr/aptk/problem"
)

// bucket indexes the open-list buckets a dual-queue engine keeps. Matches
// at_rwbfs_dq_mh.hxx's open_node(n, is_po_1, is_po_2) call, which files a
// node under whichever preferred-operator partition its generating action
// satisfies; every bucket orders by the same f(n) = g(n) + W*h1(n) (the
// surviving header only ever reads h1n() when computing fn(), never h2n()
// — h2 contributes a second, independent preferred-operator partition, not
// a second priority metric).
type bucket int

const (
	bucketPreferred1 bucket = iota
	bucketPreferred2
	bucketPlain
	numBuckets
)

// DualQueueBestFirst is the anytime restarting weighted best-first engine,
// grounded directly on at_rwbfs_dq_mh.hxx: two heuristics, three open-list
// buckets (preferred by h1, preferred by h2, plain), deferred child evaluation (a child inherits its parent's
// heuristic values until it is itself expanded), W-decay on every solution
// found, and a restart that moves closed into a seen table rather than
// discarding it, so a later re-opening of an already-closed state resumes
// from its previously computed node instead of re-evaluating from scratch.
//
// The surviving header (at_rwbfs_dq_mh.hxx) subclasses a base
// AT_BFS_DQ_MH that did not survive distillation into the retrieved
// source tree; bucket selection order (preferred over non-preferred,
// alternating which preferred partition goes first) is this module's own reconstruction
// of that base class's get_node, not a literal translation — see
// DESIGN.md.
type DualQueueBestFirst struct {
	*Skeleton
	H1 *heuristic.H1
	H2 heuristic.Evaluator

	open      [numBuckets]*OpenList
	openIndex *StateIndex // O(1) membership across every open bucket, see lookupOpen
	closed    *StateIndex
	seen      *StateIndex
	rootID    NodeID

	W     float64
	Decay float64
}

// NewDualQueueBestFirst returns a restarting weighted best-first engine
// over prob, with h1 as the primary (preferred-operator-producing)
// heuristic and h2 as the secondary. W is the initial weight (the original
// defaults to 5.0) and decay the per-solution multiplicative decay (the
// original defaults to 0.75, floored at 1.0 — unweighted A*).
func NewDualQueueBestFirst(prob *problem.Problem, h1 *heuristic.H1, h2 heuristic.Evaluator, w, decay float64) *DualQueueBestFirst {
	e := &DualQueueBestFirst{
		Skeleton: NewSkeleton(prob),
		H1:       h1,
		H2:       h2,
		W:        w,
		Decay:    decay,
	}
	e.closed = NewStateIndex(e.Arena)
	e.seen = NewStateIndex(e.Arena)
	e.openIndex = NewStateIndex(e.Arena)
	return e
}

func (e *DualQueueBestFirst) f(id NodeID) float64 {
	n := e.Arena.Get(id)
	return n.G + e.W*n.H1
}

func (e *DualQueueBestFirst) newOpenLists() {
	for b := bucket(0); b < numBuckets; b++ {
		e.open[b] = NewOpenList(e.f)
	}
}

func (e *DualQueueBestFirst) openNode(id NodeID, preferred1, preferred2 bool) {
	switch {
	case preferred1:
		e.open[bucketPreferred1].Push(id)
	case preferred2:
		e.open[bucketPreferred2].Push(id)
	default:
		e.open[bucketPlain].Push(id)
	}
	e.openIndex.Insert(id)
}

// getNode pops from whichever bucket is non-empty, preferring preferred
// buckets over the plain one and alternating which preferred partition
// goes first each call to interleave exploration between the two
// preferred-operator sources.
func (e *DualQueueBestFirst) getNode(round *int) (NodeID, bool) {
	order := [numBuckets]bucket{bucketPreferred1, bucketPreferred2, bucketPlain}
	if *round%2 == 1 {
		order = [numBuckets]bucket{bucketPreferred2, bucketPreferred1, bucketPlain}
	}
	*round++

	for _, b := range order {
		if e.open[b].Len() > 0 {
			id := e.open[b].Pop()
			e.openIndex.Remove(id)
			return id, true
		}
	}
	return NoNode, false
}

// FindSolution resumes the anytime search (building the root on the first
// call) until either a solution is found (ok=true) or the time budget
// expires or open is exhausted (ok=false). Each successive call after a
// found solution continues from a tightened bound and a decayed weight,
// so repeated calls trace out an improving sequence of plans — the
// "anytime" in anytime weighted best-first search.
//
// Matches at_rwbfs_dq_mh.hxx's do_search/restart_search: on finding a
// goal, the bound is tightened to the solution's g, W is decayed (floored
// at 1.0), closed is folded into seen (smaller-g dominates, the root
// bypasses re-evaluation per spec.md §9's restart Open Question), and the
// root is re-opened so the next FindSolution call continues the anytime
// search from scratch with a tighter bound and a cooler weight.
func (e *DualQueueBestFirst) FindSolution() (plan []problem.ActionIdx, ok bool) {
	if e.Arena.Len() == 0 {
		e.start()
	}

	round := 0
	for {
		head, found := e.getNode(&round)
		if !found {
			return nil, false
		}

		n := e.Arena.Get(head)
		if n.G >= e.Bound() {
			e.PrunedByBound++
			e.closed.Insert(head)
			continue
		}

		if e.goal(head) {
			e.closed.Insert(head)
			e.SetBound(n.G)
			e.W *= e.Decay
			if e.W < 1.0 {
				e.W = 1.0
			}
			result := e.Arena.Plan(head)
			e.restart()
			return result, true
		}

		if e.expired() {
			return nil, false
		}

		e.evalNode(head)
		e.process(head)
		e.closed.Insert(head)
	}
}

func (e *DualQueueBestFirst) start() {
	e.newRun()
	e.newOpenLists()
	e.closed.Reset()
	e.seen.Reset()
	e.openIndex.Reset()

	e.rootID = e.root()
	e.evalNode(e.rootID)
	e.openNode(e.rootID, false, false)
}

// evalNode computes h1/h2 for n, unless it has already been evaluated once
// — deferred evaluation means a node is normally only evaluated the first
// time it reaches the head of a queue, not at generation time, and a node
// already evaluated before a restart never needs to pay for it again since
// h1/h2 depend only on State.
func (e *DualQueueBestFirst) evalNode(id NodeID) {
	n := e.Arena.Get(id)
	if n.Evaluated {
		return
	}
	s := n.State
	n.H1 = e.H1.Eval(s)
	n.H2 = e.H2.Eval(s)
	n.Evaluated = true
	e.Evaluations++
}

func (e *DualQueueBestFirst) process(headID NodeID) {
	head := e.Arena.Get(headID)
	state := head.State

	isPreferred1 := map[problem.ActionIdx]bool{}
	for _, a := range heuristic.PreferredOperators(e.H1, e.Prob, state) {
		isPreferred1[a] = true
	}

	// Preferred operators from the secondary heuristic only exist when it
	// is itself best-supporter-tracking (an *heuristic.H1 under a
	// different CostOption/aggregator, e.g. h_add alongside h_max); a
	// non-H1 secondary (h²) contributes no distinct preferred-operator
	// partition, leaving bucketPreferred2 unused for that pairing.
	isPreferred2 := map[problem.ActionIdx]bool{}
	if h1secondary, ok := e.H2.(*heuristic.H1); ok {
		for _, a := range heuristic.PreferredOperators(h1secondary, e.Prob, state) {
			isPreferred2[a] = true
		}
	}

	e.noteExpansion()
	e.Gen.Each(state, func(a problem.ActionIdx) bool {
		succ := state.Apply(e.Prob, a)
		cost := e.Prob.Actions()[a].Cost()
		childG := head.G + cost

		if existing, closed := e.closed.Lookup(succ); closed {
			if cn := e.Arena.Get(existing); childG < cn.G {
				cn.Parent = headID
				cn.Action = a
				cn.G = childG
			}
			return true
		}
		if existing, open := e.lookupOpen(succ); open {
			if childG < e.Arena.Get(existing).G {
				e.Arena.Get(existing).Parent = headID
				e.Arena.Get(existing).Action = a
				e.Arena.Get(existing).G = childG
				e.fixOpen(existing)
				e.ReplacedInOpen++
			}
			return true
		}
		if existing, seen := e.seen.Lookup(succ); seen {
			sn := e.Arena.Get(existing)
			if childG < sn.G {
				sn.G = childG
				sn.Parent = headID
				sn.Action = a
			}
			e.seen.Remove(existing)
			e.openNode(existing, isPreferred1[a], isPreferred2[a])
			e.Generated++
			return true
		}

		id := e.Arena.NewNode(headID, a, succ, childG)
		child := e.Arena.Get(id)
		// Deferred evaluation: inherit the parent's heuristic values; the
		// child is only actually evaluated once it reaches the head of a
		// queue.
		child.H1 = head.H1
		child.H2 = head.H2
		child.Preferred = isPreferred1[a] || isPreferred2[a]
		e.Generated++

		e.openNode(id, isPreferred1[a], isPreferred2[a])
		return true
	})
}

// lookupOpen reports whether s is currently represented by some node across
// any open bucket, via the hash-keyed openIndex rather than a linear scan
// of every bucket's items — the same O(1)/O(bucket) membership pattern
// closed and seen use (see StateIndex).
func (e *DualQueueBestFirst) lookupOpen(s *problem.State) (NodeID, bool) {
	return e.openIndex.Lookup(s)
}

func (e *DualQueueBestFirst) fixOpen(id NodeID) {
	for _, list := range e.open {
		if list.Contains(id) {
			list.Fix(id)
			return
		}
	}
}

// restart moves every closed node into seen (smaller-g dominates an
// existing seen entry for the same state), clears closed and every open
// bucket, and re-opens the root without re-evaluating it — exactly
// restart_search's behavior, including the spec.md §9 Open Question
// decision that the root bypasses re-evaluation on restart.
func (e *DualQueueBestFirst) restart() {
	for h, bucketIDs := range e.closed.buckets {
		for _, id := range bucketIDs {
			if id == e.rootID {
				continue
			}
			if existing, ok := e.seen.Lookup(e.Arena.Get(id).State); ok {
				if e.Arena.Get(existing).G <= e.Arena.Get(id).G {
					continue
				}
				e.seen.Remove(existing)
			}
			e.seen.buckets[h] = append(e.seen.buckets[h], id)
		}
	}
	e.closed.Reset()
	e.newOpenLists()
	e.openIndex.Reset()

	// The root is already Evaluated from the first run; reopening it here
	// never re-triggers evalNode, matching spec.md §9's restart Open
	// Question decision that the root bypasses re-evaluation.
	e.openNode(e.rootID, false, false)

	e.Logger.Printf("restart: bound=%.2f weight=%.3f", e.Bound(), e.W)
}
