package search

import "testing"

func TestIteratedWidthFiveRooms(t *testing.T) {
	p, _ := buildFiveRooms(t)

	e := NewIteratedWidth(p, 2, 600)
	plan, ok := e.FindSolution()
	if !ok {
		t.Fatalf("expected IW to find a plan for the five-room problem")
	}
	if len(plan) == 0 {
		t.Fatalf("expected a non-empty plan")
	}
	if p.Actions()[plan[len(plan)-1]].Signature() == "" {
		t.Fatalf("expected a valid final action")
	}
}

func TestIteratedWidthUnsolvable(t *testing.T) {
	p := buildUnsolvable(t)

	e := NewIteratedWidth(p, 2, 600)
	_, ok := e.FindSolution()
	if ok {
		t.Fatalf("expected no solution for an unreachable goal")
	}
}
