package search

import (
	"testing"

	"github.com/ericr/aptk/problem"
)

func tinyProblem(t *testing.T) *problem.Problem {
	t.Helper()
	p := problem.New("d", "tiny")
	f, _ := p.AddFluent("f")
	p.SetInit([]problem.FluentIdx{f})
	p.SetGoal([]problem.FluentIdx{f}, false)
	if err := p.MakeActionTables(); err != nil {
		t.Fatalf("MakeActionTables: %v", err)
	}
	return p
}

func TestArenaNewNodeAndGet(t *testing.T) {
	a := NewArena()
	p := tinyProblem(t)
	s := problem.NewState(p, nil)

	id := a.NewNode(NoNode, -1, s, 0.0)
	if id != 0 {
		t.Fatalf("expected first node id 0, got %d", id)
	}
	if a.Len() != 1 {
		t.Fatalf("expected arena len 1, got %d", a.Len())
	}

	n := a.Get(id)
	if n.Parent != NoNode {
		t.Fatalf("expected root's parent to be NoNode, got %v", n.Parent)
	}
	if n.State != s {
		t.Fatalf("expected Get to return the same state pointer")
	}
}

func TestArenaResetReusesIDs(t *testing.T) {
	a := NewArena()
	p := tinyProblem(t)
	s := problem.NewState(p, nil)
	a.NewNode(NoNode, -1, s, 0.0)
	a.NewNode(0, 3, s, 1.0)

	if a.Len() != 2 {
		t.Fatalf("expected 2 nodes before reset, got %d", a.Len())
	}

	a.Reset()
	if a.Len() != 0 {
		t.Fatalf("expected 0 nodes after reset, got %d", a.Len())
	}

	id := a.NewNode(NoNode, -1, s, 0.0)
	if id != 0 {
		t.Fatalf("expected ids to restart from 0 after reset, got %d", id)
	}
}

// TestArenaPlanReconstructsActionSequence builds a small parent chain by
// hand (root -> n1 -> n2 -> n3) and checks Plan walks it back into
// execution order, skipping the root's sentinel action.
func TestArenaPlanReconstructsActionSequence(t *testing.T) {
	a := NewArena()
	p := tinyProblem(t)
	s := problem.NewState(p, nil)

	root := a.NewNode(NoNode, -1, s, 0.0)
	n1 := a.NewNode(root, 5, s, 1.0)
	n2 := a.NewNode(n1, 2, s, 2.0)
	n3 := a.NewNode(n2, 7, s, 3.0)

	plan := a.Plan(n3)
	want := []problem.ActionIdx{5, 2, 7}
	if len(plan) != len(want) {
		t.Fatalf("expected plan %v, got %v", want, plan)
	}
	for i := range want {
		if plan[i] != want[i] {
			t.Fatalf("expected plan %v, got %v", want, plan)
		}
	}
}

func TestArenaPlanOnRootIsEmpty(t *testing.T) {
	a := NewArena()
	p := tinyProblem(t)
	s := problem.NewState(p, nil)
	root := a.NewNode(NoNode, -1, s, 0.0)

	plan := a.Plan(root)
	if len(plan) != 0 {
		t.Fatalf("expected empty plan for the root node, got %v", plan)
	}
}
