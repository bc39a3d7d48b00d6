package heuristic

import "github.com/ericr/aptk/problem"

// DefaultNoveltyMemoryMB is the memory budget novelty.hxx hardcodes as its
// default max_MB constructor parameter.
const DefaultNoveltyMemoryMB = 600

// Novelty is the width heuristic: the novelty of a state (or of the state
// reached by applying a generating action) is the size of the smallest
// tuple of jointly-true fluents not yet seen by any earlier-evaluated
// state, up to a configured max arity k. A tuple table of size F^k is
// allocated per arity level 1..k; IsBetter in the original always returns
// false (dead code, since a tuple is only ever recorded as "seen" or
// "not seen" and never replaced), so this table is realized directly as a
// covered-bit array rather than a State-pointer table.
type Novelty struct {
	prob       *problem.Problem
	arity      int
	numFluents int

	// covered[k-1] is the seen-tuple bitset for arity k, sized
	// numFluents^k.
	covered [][]bool
}

// NewNovelty returns a Novelty heuristic with the requested max arity,
// downgrading to arity 1 if the F^arity table would exceed maxMemoryMB
// (the same budget check as novelty.hxx's set_arity). The returned bool
// reports whether that downgrade happened; callers should log it (the
// original prints to stdout unconditionally — IteratedWidth logs it
// through its engine's logger instead).
func NewNovelty(prob *problem.Problem, maxArity, maxMemoryMB int) (*Novelty, bool) {
	if maxMemoryMB <= 0 {
		maxMemoryMB = DefaultNoveltyMemoryMB
	}
	n := &Novelty{prob: prob, numFluents: prob.NumFluents()}
	return n, n.setArity(maxArity, maxMemoryMB)
}

const bytesPerTableEntry = 8 // one bool per slot; sized like a pointer table for budget purposes

func (n *Novelty) tableSizeMB(arity int) float64 {
	size := 1.0
	for k := 0; k < arity; k++ {
		size *= float64(n.numFluents)
	}
	return (size / 1024000.0) * bytesPerTableEntry
}

func (n *Novelty) setArity(maxArity, maxMemoryMB int) bool {
	downgraded := false
	arity := maxArity
	if n.tableSizeMB(arity) > float64(maxMemoryMB) {
		arity = 1
		downgraded = true
	}
	n.arity = arity

	n.covered = make([][]bool, arity)
	size := 1
	for k := 1; k <= arity; k++ {
		size *= n.numFluents
		n.covered[k-1] = make([]bool, size)
	}
	return downgraded
}

// Arity returns the heuristic's effective max arity (post-downgrade).
func (n *Novelty) Arity() int { return n.arity }

// Reset clears every covered-tuple table, starting a fresh width search
// (e.g. on an IW(k) restart with an incremented k).
func (n *Novelty) Reset() {
	for _, level := range n.covered {
		for i := range level {
			level[i] = false
		}
	}
}

// Eval returns the novelty of s: the smallest tuple size, from 1 up to the
// configured arity, containing at least one fluent combination not seen by
// any state evaluated so far. Returns Arity()+1 if every tuple up to the
// max arity was already covered (s is "not novel").
func (n *Novelty) Eval(s *problem.State) float64 {
	novelty := n.arity + 1
	for k := 1; k <= n.arity; k++ {
		if n.coverState(s, k) && k < novelty {
			novelty = k
		}
	}
	return float64(novelty)
}

// EvalNode is the fast path novelty.hxx's Node-typed eval overload
// describes: rather than scanning every k-combination of s's fluents, only
// tuples with their last slot fixed to one of add's fluents are checked —
// the combinations that could newly become covered by actually applying
// the generating action. add is the generating action's Add(); s is the
// resulting state.
func (n *Novelty) EvalNode(s *problem.State, add []problem.FluentIdx) float64 {
	novelty := n.arity + 1
	for k := 1; k <= n.arity; k++ {
		if n.coverNode(s, add, k) && k < novelty {
			novelty = k
		}
	}
	return float64(novelty)
}

func (n *Novelty) tupleIndex(tuple []problem.FluentIdx) int {
	idx := 0
	dim := 1
	for i := len(tuple) - 1; i >= 0; i-- {
		idx += int(tuple[i]) * dim
		dim *= n.numFluents
	}
	return idx
}

// decodeCombination returns the arity-digit base-`base` representation of
// idx, most significant digit first — used to enumerate every ordered
// combination (with repetition) of `arity` positions into a state's
// fluent vector.
func decodeCombination(idx, arity, base int) []int {
	positions := make([]int, arity)
	for i := arity - 1; i >= 0; i-- {
		positions[i] = idx % base
		idx /= base
	}
	return positions
}

func intPow(base, exp int) int {
	v := 1
	for i := 0; i < exp; i++ {
		v *= base
	}
	return v
}

func (n *Novelty) coverState(s *problem.State, arity int) bool {
	atoms := s.Fluents()
	nAtoms := len(atoms)
	if nAtoms == 0 {
		return false
	}

	table := n.covered[arity-1]
	combos := intPow(nAtoms, arity)
	newCovers := false

	tuple := make([]problem.FluentIdx, arity)
	for idx := 0; idx < combos; idx++ {
		positions := decodeCombination(idx, arity, nAtoms)
		for i, pos := range positions {
			tuple[i] = atoms[pos]
		}
		tIdx := n.tupleIndex(tuple)
		if !table[tIdx] {
			table[tIdx] = true
			newCovers = true
		}
	}
	return newCovers
}

func (n *Novelty) coverNode(s *problem.State, add []problem.FluentIdx, arity int) bool {
	atomsArity := arity - 1
	atoms := s.Fluents()
	nAtoms := len(atoms)
	if atomsArity > 0 && nAtoms == 0 {
		return false
	}

	table := n.covered[arity-1]
	combos := intPow(nAtoms, atomsArity)
	newCovers := false

	tuple := make([]problem.FluentIdx, arity)
	for _, last := range add {
		tuple[atomsArity] = last
		for idx := 0; idx < combos; idx++ {
			if atomsArity > 0 {
				positions := decodeCombination(idx, atomsArity, nAtoms)
				for i, pos := range positions {
					tuple[i] = atoms[pos]
				}
			}
			tIdx := n.tupleIndex(tuple)
			if !table[tIdx] {
				table[tIdx] = true
				newCovers = true
			}
		}
	}
	return newCovers
}
