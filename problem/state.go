package problem

import "github.com/ericr/aptk/bitset"

// State is an insertion-ordered set of fluent indices, backed by a dense
// bitset, representing a closed-world snapshot: any fluent not present is
// false. Two states are equal iff they present the same fluent set.
type State struct {
	fluents []FluentIdx
	bits    bitset.Set
	hash    uint64
}

// NewState returns a new State over a problem with the given initial
// fluents. The hash is computed immediately.
func NewState(p *Problem, fluents []FluentIdx) *State {
	s := &State{
		fluents: append([]FluentIdx(nil), fluents...),
		bits:    bitset.New(p.NumFluents()),
	}
	for _, f := range s.fluents {
		s.bits.Set(int(f))
	}
	s.UpdateHash()
	return s
}

// Fluents returns the state's fluents in insertion order.
func (s *State) Fluents() []FluentIdx { return s.fluents }

// Entails reports whether f is present in the state.
func (s *State) Entails(f FluentIdx) bool {
	return s.bits.IsSet(int(f))
}

// EntailsVec reports whether every fluent in fs is present in the state.
func (s *State) EntailsVec(fs []FluentIdx) bool {
	for _, f := range fs {
		if !s.bits.IsSet(int(f)) {
			return false
		}
	}
	return true
}

// Hash returns the state's cached hash.
func (s *State) Hash() uint64 { return s.hash }

// UpdateHash recomputes the cached hash from the current fluent set. Must
// be called whenever the fluent set changes and before the state is used
// as a hash-map key or compared with Equal.
func (s *State) UpdateHash() {
	// FNV-1a over the sorted bit-vector words: order-independent by
	// construction, since bits.Set is keyed on fluent index rather than
	// insertion order.
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211

	h := uint64(offset64)
	for i := 0; i < s.bits.Len(); i += 8 {
		// Fold 8 fluents at a time into one byte-sized contribution; cheap
		// and stable regardless of total fluent count.
		var b byte
		for j := 0; j < 8 && i+j < s.bits.Len(); j++ {
			if s.bits.IsSet(i + j) {
				b |= 1 << uint(j)
			}
		}
		h ^= uint64(b)
		h *= prime64
	}
	s.hash = h
}

// Equal reports whether s and other present the same fluent set.
func (s *State) Equal(other *State) bool {
	if s.hash != other.hash {
		return false
	}
	if s.bits.Count() != other.bits.Count() {
		return false
	}
	return s.bits.Subset(&other.bits)
}

// Apply returns the successor of applying action a in s: del is removed,
// then add is added, then every conditional effect whose precondition is
// entailed by the input state s (not the partial result) is applied. An add
// always wins over a del on the same atom, regardless of whether the add
// comes from the action's own Add, or from a different (entailed)
// conditional effect than the one doing the deleting.
func (s *State) Apply(p *Problem, a ActionIdx) *State {
	action := p.Actions()[a]

	winningAdds := bitset.New(p.NumFluents())
	winningAdds.Union(action.AddSet())
	for _, ce := range action.CondEffects() {
		if s.EntailsVec(ce.Prec) {
			winningAdds.Union(ce.AddSet())
		}
	}

	next := bitset.New(p.NumFluents())
	next.Union(&s.bits)
	for _, f := range action.Del() {
		next.Unset(int(f))
	}
	for _, f := range action.Add() {
		next.Set(int(f))
	}
	for _, ce := range action.CondEffects() {
		if !s.EntailsVec(ce.Prec) {
			continue
		}
		for _, f := range ce.Del {
			if !winningAdds.IsSet(int(f)) {
				next.Unset(int(f))
			}
		}
		for _, f := range ce.Add {
			next.Set(int(f))
		}
	}

	fluents := make([]FluentIdx, 0, next.Count())
	next.Each(func(i int) bool {
		fluents = append(fluents, FluentIdx(i))
		return true
	})

	result := &State{fluents: fluents, bits: next}
	result.UpdateHash()
	return result
}
