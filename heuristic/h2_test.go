package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericr/aptk/problem"
)

func TestH2OnFiveRooms(t *testing.T) {
	p, _ := buildFiveRooms(t)

	h := NewH2(p, H2UseCosts)
	assert.Equal(t, 2.0, h.Eval(p.InitState()), "h2(Kitchen->Balcony)")
}

func TestH2SingleFluentMatchesH1(t *testing.T) {
	p, fl := buildFiveRooms(t)

	h2 := NewH2(p, H2UseCosts)
	h2.Eval(p.InitState())

	// h2(p,p) must agree with h1's single-fluent value for every fluent,
	// both measured from the initial state: h1 is evaluated with {p} as
	// the goal.
	for _, name := range []string{"Kitchen", "Sitting", "Balcony", "Bath", "Bed"} {
		f := fl[name]
		p.SetGoal([]problem.FluentIdx{f}, false)
		single := NewH1(p, MaxAggregator(), UseCosts)
		want := single.Eval(p.InitState())
		assert.Equalf(t, want, h2.Value(f, f), "h2(%s,%s) should match h1's single-fluent value", name, name)
	}
}

// TestMutexDetection builds a two-room-with-a-locked-door scenario where
// holding two different "at" fluents simultaneously is never achievable
// from any reachable state, exercising IsMutex.
func TestMutexDetection(t *testing.T) {
	p := problem.New("d", "mutex")
	atA, _ := p.AddFluent("at-A")
	atB, _ := p.AddFluent("at-B")

	_, err := p.AddAction("move A B", []problem.FluentIdx{atA}, []problem.FluentIdx{atB}, []problem.FluentIdx{atA}, nil, 1.0)
	require.NoError(t, err)

	p.SetInit([]problem.FluentIdx{atA})
	p.SetGoal(nil, false)
	require.NoError(t, p.MakeActionTables())

	h := NewH2(p, H2UseCosts)
	h.Eval(p.InitState())

	assert.True(t, h.IsMutex(atA, atB), "expected at-A/at-B to be mutex (move deletes at-A when it adds at-B)")
}

// TestComputeEdeletes exercises e-delete extraction against a move action
// whose add (at-B) is mutex with the fluent it deletes (at-A), while an
// unrelated fluent (lit) stays compatible with both, per spec.md §8's
// e-delete-detection scenario.
func TestComputeEdeletes(t *testing.T) {
	p := problem.New("d", "edel")
	atA, _ := p.AddFluent("at-A")
	atB, _ := p.AddFluent("at-B")
	lit, _ := p.AddFluent("lit")

	moveIdx, err := p.AddAction("move A B", []problem.FluentIdx{atA}, []problem.FluentIdx{atB}, []problem.FluentIdx{atA}, nil, 1.0)
	require.NoError(t, err)

	p.SetInit([]problem.FluentIdx{atA, lit})
	p.SetGoal(nil, false)
	require.NoError(t, p.MakeActionTables())

	h := NewH2(p, H2UseCosts)
	h.ComputeEdeletes(p)

	move := p.Actions()[moveIdx]
	assert.True(t, move.Edeletes(atA), "expected move A B to e-delete at-A (at-A is mutex with its add at-B, rule 1)")
}
