package succgen

import (
	"sort"
	"testing"

	"github.com/ericr/aptk/problem"
)

func buildFiveRooms(t *testing.T) (*problem.Problem, map[string]problem.FluentIdx) {
	t.Helper()

	p := problem.New("agnostic", "five-rooms")
	rooms := []string{"Kitchen", "Sitting", "Balcony", "Bath", "Bed"}
	fl := map[string]problem.FluentIdx{}
	for _, r := range rooms {
		idx, err := p.AddFluent("at-" + r)
		if err != nil {
			t.Fatalf("AddFluent(%s): %v", r, err)
		}
		fl[r] = idx
	}

	edges := [][2]string{
		{"Kitchen", "Sitting"},
		{"Sitting", "Balcony"},
		{"Sitting", "Bath"},
		{"Sitting", "Bed"},
	}
	for _, e := range edges {
		a, b := e[0], e[1]
		if _, err := p.AddAction("move "+a+" "+b, []problem.FluentIdx{fl[a]}, []problem.FluentIdx{fl[b]}, []problem.FluentIdx{fl[a]}, nil, 1.0); err != nil {
			t.Fatalf("AddAction: %v", err)
		}
		if _, err := p.AddAction("move "+b+" "+a, []problem.FluentIdx{fl[b]}, []problem.FluentIdx{fl[a]}, []problem.FluentIdx{fl[b]}, nil, 1.0); err != nil {
			t.Fatalf("AddAction: %v", err)
		}
	}

	p.SetInit([]problem.FluentIdx{fl["Kitchen"]})
	p.SetGoal([]problem.FluentIdx{fl["Balcony"]}, false)
	if err := p.MakeActionTables(); err != nil {
		t.Fatalf("MakeActionTables: %v", err)
	}
	return p, fl
}

func TestApplicableFromKitchen(t *testing.T) {
	p, _ := buildFiveRooms(t)
	g := New(p)

	apps := g.Applicable(p.InitState())
	if len(apps) != 1 {
		t.Fatalf("expected exactly one applicable action from Kitchen, got %d", len(apps))
	}
	if p.Actions()[apps[0]].Signature() != "move Kitchen Sitting" {
		t.Fatalf("expected move Kitchen Sitting, got %s", p.Actions()[apps[0]].Signature())
	}
}

func TestApplicableFromSitting(t *testing.T) {
	p, fl := buildFiveRooms(t)
	g := New(p)

	s := problem.NewState(p, []problem.FluentIdx{fl["Sitting"]})
	apps := g.Applicable(s)

	var sigs []string
	for _, a := range apps {
		sigs = append(sigs, p.Actions()[a].Signature())
	}
	sort.Strings(sigs)

	want := []string{
		"move Sitting Balcony",
		"move Sitting Bath",
		"move Sitting Bed",
		"move Sitting Kitchen",
	}
	if len(sigs) != len(want) {
		t.Fatalf("expected %d applicable actions from Sitting, got %d: %v", len(want), len(sigs), sigs)
	}
	for i := range want {
		if sigs[i] != want[i] {
			t.Fatalf("mismatch at %d: want %s got %s", i, want[i], sigs[i])
		}
	}
}

func TestEmptyPrecActionAlwaysApplicable(t *testing.T) {
	p := problem.New("d", "p")
	f, _ := p.AddFluent("f")
	idx, err := p.AddAction("noop", nil, []problem.FluentIdx{f}, nil, nil, 1.0)
	if err != nil {
		t.Fatalf("AddAction: %v", err)
	}
	p.SetInit(nil)
	p.SetGoal(nil, false)
	if err := p.MakeActionTables(); err != nil {
		t.Fatalf("MakeActionTables: %v", err)
	}

	g := New(p)
	apps := g.Applicable(problem.NewState(p, nil))
	if len(apps) != 1 || apps[0] != idx {
		t.Fatalf("expected empty-precondition action always applicable, got %v", apps)
	}
}

func TestEachStopsEarly(t *testing.T) {
	p, fl := buildFiveRooms(t)
	g := New(p)
	s := problem.NewState(p, []problem.FluentIdx{fl["Sitting"]})

	count := 0
	g.Each(s, func(problem.ActionIdx) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("expected Each to stop after the first yield returning false, got %d calls", count)
	}
}

func TestNoDuplicateActions(t *testing.T) {
	p := problem.New("d", "p")
	a, _ := p.AddFluent("a")
	b, _ := p.AddFluent("b")
	idx, err := p.AddAction("needs-both", []problem.FluentIdx{a, b}, nil, nil, nil, 1.0)
	if err != nil {
		t.Fatalf("AddAction: %v", err)
	}
	p.SetInit([]problem.FluentIdx{a, b})
	p.SetGoal(nil, false)
	if err := p.MakeActionTables(); err != nil {
		t.Fatalf("MakeActionTables: %v", err)
	}

	g := New(p)
	apps := g.Applicable(p.InitState())
	if len(apps) != 1 || apps[0] != idx {
		t.Fatalf("expected the multi-precondition action to be yielded exactly once, got %v", apps)
	}
}
