package search

import "github.com/ericr/aptk/problem"

// StateIndex maps states to the node that currently represents them in
// closed, open, or seen, keyed by hash with an Equal fallback for
// collisions — used for closed-set membership, open-list duplicate
// detection with smaller-g domination, and the restart engine's seen set.
type StateIndex struct {
	buckets map[uint64][]NodeID
	arena   *Arena
}

// NewStateIndex returns an empty index backed by arena (used to resolve a
// NodeID back to its State for Equal comparisons).
func NewStateIndex(arena *Arena) *StateIndex {
	return &StateIndex{
		buckets: map[uint64][]NodeID{},
		arena:   arena,
	}
}

// Reset empties the index.
func (si *StateIndex) Reset() {
	si.buckets = map[uint64][]NodeID{}
}

// Lookup returns the node id currently indexed for s, if any.
func (si *StateIndex) Lookup(s *problem.State) (NodeID, bool) {
	for _, id := range si.buckets[s.Hash()] {
		if si.arena.Get(id).State.Equal(s) {
			return id, true
		}
	}
	return NoNode, false
}

// Insert indexes id under its state's hash. Does not check for an existing
// entry for the same state; callers that need replace-on-improved-g
// semantics should Remove the old entry first.
func (si *StateIndex) Insert(id NodeID) {
	s := si.arena.Get(id).State
	h := s.Hash()
	si.buckets[h] = append(si.buckets[h], id)
}

// Remove drops id from the index. A no-op if id is not indexed.
func (si *StateIndex) Remove(id NodeID) {
	s := si.arena.Get(id).State
	h := s.Hash()
	bucket := si.buckets[h]
	for i, other := range bucket {
		if other == id {
			si.buckets[h] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// InsertOrImproveG indexes the node at id, replacing and returning true for
// an existing entry over the same state only if id's g is strictly lower
// (open/closed-list domination: a later path to an already-seen state is
// only worth keeping if it is cheaper). Returns false (and leaves the
// existing entry untouched) when an existing entry dominates.
func (si *StateIndex) InsertOrImproveG(id NodeID) bool {
	s := si.arena.Get(id).State
	existing, ok := si.Lookup(s)
	if !ok {
		si.Insert(id)
		return true
	}
	if si.arena.Get(id).G >= si.arena.Get(existing).G {
		return false
	}
	si.Remove(existing)
	si.Insert(id)
	return true
}
