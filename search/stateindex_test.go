package search

import (
	"testing"

	"github.com/ericr/aptk/problem"
)

func TestStateIndexInsertAndLookup(t *testing.T) {
	p := tinyProblem(t)
	a := NewArena()
	si := NewStateIndex(a)

	s := problem.NewState(p, nil)
	id := a.NewNode(NoNode, -1, s, 0.0)
	si.Insert(id)

	got, ok := si.Lookup(s)
	if !ok || got != id {
		t.Fatalf("expected Lookup to find %v, got %v, %v", id, got, ok)
	}

	other := problem.NewState(p, []problem.FluentIdx{0})
	if _, ok := si.Lookup(other); ok {
		t.Fatalf("expected Lookup to miss for a distinct state")
	}
}

func TestStateIndexRemove(t *testing.T) {
	p := tinyProblem(t)
	a := NewArena()
	si := NewStateIndex(a)

	s := problem.NewState(p, nil)
	id := a.NewNode(NoNode, -1, s, 0.0)
	si.Insert(id)
	si.Remove(id)

	if _, ok := si.Lookup(s); ok {
		t.Fatalf("expected Lookup to miss after Remove")
	}
}

func TestStateIndexResetClearsEverything(t *testing.T) {
	p := tinyProblem(t)
	a := NewArena()
	si := NewStateIndex(a)

	s := problem.NewState(p, nil)
	id := a.NewNode(NoNode, -1, s, 0.0)
	si.Insert(id)
	si.Reset()

	if _, ok := si.Lookup(s); ok {
		t.Fatalf("expected Lookup to miss after Reset")
	}
}

// TestStateIndexInsertOrImproveGDomination exercises the three branches: a
// fresh state is always inserted, a worse-or-equal-g duplicate is rejected
// leaving the existing entry untouched, and a strictly-better-g duplicate
// replaces it.
func TestStateIndexInsertOrImproveGDomination(t *testing.T) {
	p := tinyProblem(t)
	a := NewArena()
	si := NewStateIndex(a)

	s := problem.NewState(p, nil)

	first := a.NewNode(NoNode, -1, s, 5.0)
	if ok := si.InsertOrImproveG(first); !ok {
		t.Fatalf("expected the first insert of a fresh state to succeed")
	}

	worse := a.NewNode(NoNode, -1, s, 5.0)
	if ok := si.InsertOrImproveG(worse); ok {
		t.Fatalf("expected an equal-g duplicate to be rejected")
	}
	got, _ := si.Lookup(s)
	if got != first {
		t.Fatalf("expected the original entry to remain indexed after a rejected duplicate, got %v", got)
	}

	better := a.NewNode(NoNode, -1, s, 1.0)
	if ok := si.InsertOrImproveG(better); !ok {
		t.Fatalf("expected a strictly-better-g duplicate to replace the existing entry")
	}
	got, _ = si.Lookup(s)
	if got != better {
		t.Fatalf("expected the improved entry %v to be indexed, got %v", better, got)
	}
}
