// Package search implements the shared best-first search skeleton and the
// four concrete engines: greedy best-first, dual-queue (restarting)
// weighted best-first, iterated-width, and serialized (goal-atom-at-a-time)
// search, grounded on the original toolkit's at_rwbfs_dq_mh.hxx,
// serialized_search.hxx, and the shared Heuristic<State>/search-node design
// implied by h_1.hxx/h_2.hxx/novelty.hxx.
package search

import (
	"github.com/ericr/aptk/problem"
)

// Infty is this module's single "unreachable"/"no bound" sentinel,
// re-exported from problem.Infty (the lowest common package both
// heuristic and search depend on) so search callers never need to import
// problem just to name it.
var Infty = problem.Infty

// NodeID indexes a Node inside an Arena. NoNode (-1) never refers to a
// real node.
type NodeID int32

// NoNode is the backpointer value used for "no parent" (the root) and for
// "not yet expanded from".
const NoNode NodeID = -1

// Node is one state in the search tree: its State, the g-cost to reach it,
// cached heuristic values, and an id-based parent backpointer rather than a
// pointer, so the arena can be a flat growable slice with no cycles for the
// garbage collector to chase.
type Node struct {
	ID     NodeID
	Parent NodeID
	Action problem.ActionIdx // action that generated this node; -1 for the root

	State *problem.State
	G     float64

	// H1, H2 cache the two heuristics a dual-queue engine evaluates this
	// node under; a single-heuristic engine only ever populates H1.
	H1, H2 float64

	// Preferred marks a node the dual-queue engine generated through a
	// preferred-operator edge. The open-list bucket is chosen from the
	// preferred-operator sets at generation time, not from this field.
	Preferred bool

	// Evaluated marks a node whose heuristic values have actually been
	// computed at least once (as opposed to inherited, under deferred
	// evaluation, from its parent). Since h1/h2 depend only on State, a
	// once-evaluated node's cached values stay correct forever, so a
	// restart reopening an already-evaluated node can skip recomputing
	// them — matching at_rwbfs_dq_mh.hxx's eval() short-circuiting on
	// candidate->seen().
	Evaluated bool

	// Novelty holds a width-heuristic value for this node. No engine in
	// this package sets it; IteratedWidth uses the novelty value directly.
	Novelty float64
}

// Arena is a slice-backed, append-only node pool: Node values are never
// freed mid-search (the spec's single-threaded, one-run-at-a-time model
// makes a freelist unnecessary — see DESIGN.md), only ever reset between
// independent search runs via Reset.
type Arena struct {
	nodes []Node
}

// NewArena returns an empty node arena.
func NewArena() *Arena {
	return &Arena{}
}

// Reset discards every node, readying the arena for a new search run.
func (a *Arena) Reset() {
	a.nodes = a.nodes[:0]
}

// NewNode allocates a new node and returns its id.
func (a *Arena) NewNode(parent NodeID, action problem.ActionIdx, s *problem.State, g float64) NodeID {
	id := NodeID(len(a.nodes))
	a.nodes = append(a.nodes, Node{
		ID:     id,
		Parent: parent,
		Action: action,
		State:  s,
		G:      g,
	})
	return id
}

// Get returns a pointer to the node stored at id. The pointer is only
// valid until the next NewNode call may reallocate the backing slice;
// callers needing a stable reference across allocations should re-fetch by
// id.
func (a *Arena) Get(id NodeID) *Node { return &a.nodes[id] }

// Len returns the number of nodes allocated so far.
func (a *Arena) Len() int { return len(a.nodes) }

// Plan walks the parent chain from id back to the root and returns the
// sequence of actions that reaches it, in execution order.
func (a *Arena) Plan(id NodeID) []problem.ActionIdx {
	var rev []problem.ActionIdx
	for id != NoNode {
		n := a.Get(id)
		if n.Action >= 0 {
			rev = append(rev, n.Action)
		}
		id = n.Parent
	}
	plan := make([]problem.ActionIdx, len(rev))
	for i, a := range rev {
		plan[len(rev)-1-i] = a
	}
	return plan
}
