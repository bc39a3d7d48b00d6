package problem

import "github.com/ericr/aptk/bitset"

// ActionIdx is a stable, dense index into a Problem's action vector,
// assigned on insertion. Indices are contiguous [0, NumActions()).
type ActionIdx int

// CondEffect is a conditional effect nested inside an Action: it applies
// iff its precondition is entailed by the state the owning action is
// applied in.
type CondEffect struct {
	Prec []FluentIdx
	Add  []FluentIdx
	Del  []FluentIdx

	precSet bitset.Set
	addSet  bitset.Set
	delSet  bitset.Set
}

// PrecSet returns the bitset view of the conditional effect's precondition.
func (c *CondEffect) PrecSet() *bitset.Set { return &c.precSet }

// AddSet returns the bitset view of the conditional effect's adds.
func (c *CondEffect) AddSet() *bitset.Set { return &c.addSet }

// DelSet returns the bitset view of the conditional effect's deletes.
func (c *CondEffect) DelSet() *bitset.Set { return &c.delSet }

// Action is a ground STRIPS action: a (precondition, adds, deletes) triple
// with optional conditional effects and a nonnegative cost. Every
// add/del/prec/edel vector carries both an ordered-sequence form (for
// iteration, preserved in caller-supplied order) and a bitset form (for
// O(1) membership).
type Action struct {
	index     ActionIdx
	signature string
	cost      float64

	prec []FluentIdx
	add  []FluentIdx
	del  []FluentIdx
	edel []FluentIdx

	precSet bitset.Set
	addSet  bitset.Set
	delSet  bitset.Set
	edelSet bitset.Set

	ceffs []*CondEffect
}

// Index returns the action's stable index.
func (a *Action) Index() ActionIdx { return a.index }

// Signature returns the action's opaque display string.
func (a *Action) Signature() string { return a.signature }

// Cost returns the action's nonnegative cost (default 1.0).
func (a *Action) Cost() float64 { return a.cost }

// Prec returns the action's precondition, in insertion order.
func (a *Action) Prec() []FluentIdx { return a.prec }

// Add returns the action's adds, in insertion order.
func (a *Action) Add() []FluentIdx { return a.add }

// Del returns the action's deletes, in insertion order.
func (a *Action) Del() []FluentIdx { return a.del }

// Edel returns the action's e-deletes (populated by
// heuristic.H2.ComputeEdeletes; empty until then).
func (a *Action) Edel() []FluentIdx { return a.edel }

// CondEffects returns the action's conditional effects.
func (a *Action) CondEffects() []*CondEffect { return a.ceffs }

// PrecSet returns the bitset view of the precondition.
func (a *Action) PrecSet() *bitset.Set { return &a.precSet }

// AddSet returns the bitset view of the adds.
func (a *Action) AddSet() *bitset.Set { return &a.addSet }

// DelSet returns the bitset view of the deletes.
func (a *Action) DelSet() *bitset.Set { return &a.delSet }

// EdelSet returns the bitset view of the e-deletes.
func (a *Action) EdelSet() *bitset.Set { return &a.edelSet }

// Asserts reports whether the action adds fluent f, directly or through any
// conditional effect.
func (a *Action) Asserts(f FluentIdx) bool {
	if a.addSet.IsSet(int(f)) {
		return true
	}
	for _, ce := range a.ceffs {
		if ce.addSet.IsSet(int(f)) {
			return true
		}
	}
	return false
}

// Edeletes reports whether the action e-deletes fluent f (see
// heuristic.H2.ComputeEdeletes).
func (a *Action) Edeletes(f FluentIdx) bool {
	return a.edelSet.IsSet(int(f))
}

// recordEdelete appends f to the action's e-delete set if not already
// present. Called only from heuristic.H2.ComputeEdeletes via Problem.
func (a *Action) recordEdelete(f FluentIdx) bool {
	if a.edelSet.IsSet(int(f)) {
		return false
	}
	a.edelSet.Set(int(f))
	a.edel = append(a.edel, f)
	return true
}
