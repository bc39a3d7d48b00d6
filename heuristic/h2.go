package heuristic

import (
	"github.com/ericr/aptk/bitset"
	"github.com/ericr/aptk/problem"
)

// H2CostOption selects how an action's cost folds into a pairwise h² value,
// exactly as h_2.hxx's H2_Cost_Function enum.
type H2CostOption int

const (
	// ZeroCosts adds nothing, so values only separate reachable (zero) from
	// mutex (infinity) pairs. computeMutexesOnly does not consult the cost
	// option; it always writes 0.0.
	ZeroCosts H2CostOption = iota
	// UnitCosts adds 1.0 per action regardless of its declared cost.
	UnitCosts
	// H2UseCosts adds the action's own cost.
	H2UseCosts
)

func (c H2CostOption) delta(cost float64) float64 {
	switch c {
	case UnitCosts:
		return 1.0
	case H2UseCosts:
		return cost
	default:
		return 0.0
	}
}

// pairIndex maps an unordered fluent pair to its slot in the triangular
// value table, per H2_Helper::pair_index: the larger index selects the
// triangular row, the smaller the column within it.
func pairIndex(p, q int) int {
	if p < q {
		p, q = q, p
	}
	return p*(p+1)/2 + q
}

// H2 is the pairwise delete-relaxation heuristic: h(s) is the maximum,
// over every unordered pair of goal fluents (including each fluent paired
// with itself), of the estimated cost to achieve that pair together. Subsumes
// h¹ as a special case (p==q) and additionally detects mutexes (pairs that
// can never be jointly true), which ComputeEdeletes turns into e-delete
// annotations on the problem's actions.
type H2 struct {
	prob *problem.Problem
	cost H2CostOption

	values   []float64
	opValues []float64

	// interfering[p] is the set of actions that add or delete p: an
	// action interferes with a candidate no-op on p, so it cannot be used
	// to "preserve" p across its own application.
	interfering []bitset.Set
}

// NewH2 returns an H2 heuristic over prob using the given cost option.
func NewH2(prob *problem.Problem, cost H2CostOption) *H2 {
	F := prob.NumFluents()
	h := &H2{
		prob:        prob,
		cost:        cost,
		values:      make([]float64, (F*F+F)/2),
		opValues:    make([]float64, prob.NumActions()),
		interfering: make([]bitset.Set, F),
	}
	for p := 0; p < F; p++ {
		h.interfering[p] = bitset.New(prob.NumActions())
		for _, a := range prob.Actions() {
			if a.AddSet().IsSet(p) || a.DelSet().IsSet(p) {
				h.interfering[p].Set(int(a.Index()))
			}
		}
	}
	return h
}

// Eval returns h(s): the pairwise-maximized cost estimate of the goal.
func (h *H2) Eval(s *problem.State) float64 {
	h.initializeState(s)
	h.compute()
	return h.EvalFluents(h.prob.Goal())
}

// Value returns the cached pairwise value for (p, q); p==q gives the
// single-fluent (h¹-equivalent) value. Only meaningful after Eval or
// ComputeEdeletes has run.
func (h *H2) Value(p, q problem.FluentIdx) float64 {
	return h.values[pairIndex(int(p), int(q))]
}

// IsMutex reports whether p and q can never be jointly true in the relaxed
// reachability graph.
func (h *H2) IsMutex(p, q problem.FluentIdx) bool {
	return problem.IsInfty(h.Value(p, q))
}

// EvalFluents returns max over every unordered pair (including p==p) drawn
// from fs of Value(p,q); problem.Infty as soon as any pair is a mutex.
func (h *H2) EvalFluents(fs []problem.FluentIdx) float64 {
	v := 0.0
	for i := range fs {
		for j := i; j < len(fs); j++ {
			pv := h.Value(fs[i], fs[j])
			if pv > v {
				v = pv
			}
			if problem.IsInfty(v) {
				return v
			}
		}
	}
	return v
}

// ComputeEdeletes runs the mutexes-only fixed point from the problem's
// initial state and annotates every action with the fluents it e-deletes,
// via problem.Problem.RecordEdelete, following the three precedence rules
// of h_2.hxx's compute_edeletes in order: (1) the action adds some q
// mutex with p, (2) the action's precondition contains some r mutex with p
// and the action does not itself add p, (3) the action directly deletes p.
func (h *H2) ComputeEdeletes(prob *problem.Problem) {
	h.initializeState(prob.InitState())
	h.computeMutexesOnly()

	for p := 0; p < prob.NumFluents(); p++ {
		pf := problem.FluentIdx(p)
		for _, a := range prob.Actions() {
			isEdelete := false

			for _, q := range a.Add() {
				if h.IsMutex(pf, q) {
					prob.RecordEdelete(a, pf)
					isEdelete = true
					break
				}
			}
			if isEdelete {
				continue
			}

			for _, r := range a.Prec() {
				if !a.AddSet().IsSet(p) && h.IsMutex(pf, r) {
					prob.RecordEdelete(a, pf)
					isEdelete = true
					break
				}
			}
			if isEdelete {
				continue
			}

			if !a.EdelSet().IsSet(p) && a.DelSet().IsSet(p) {
				prob.RecordEdelete(a, pf)
			}
		}
	}
}

func (h *H2) initializeState(s *problem.State) {
	for k := range h.values {
		h.values[k] = problem.Infty
	}
	for k := range h.opValues {
		h.opValues[k] = problem.Infty
	}
	fs := s.Fluents()
	for i, p := range fs {
		h.values[pairIndex(int(p), int(p))] = 0.0
		for j := i + 1; j < len(fs); j++ {
			q := fs[j]
			h.values[pairIndex(int(p), int(q))] = 0.0
		}
	}
}

// compute runs the numeric fixed point (spec.md/SPEC_FULL.md §4.5's Open
// Question resolution): h2_pre_noop folds in value(r,r) via one max call
// before the precondition loop, then each value(r,s) is maxed in
// sequentially inside that loop — never combined into a single max call.
func (h *H2) compute() {
	for {
		fixedPoint := true

		for _, a := range h.prob.Actions() {
			idx := int(a.Index())
			h.opValues[idx] = h.EvalFluents(a.Prec())
			if problem.IsInfty(h.opValues[idx]) {
				continue
			}

			add := a.Add()
			for i, p := range add {
				for j := i; j < len(add); j++ {
					q := add[j]
					slot := pairIndex(int(p), int(q))
					curr := h.values[slot]
					if curr == 0.0 {
						continue
					}
					v := h.opValues[idx] + h.cost.delta(a.Cost())
					if v < curr {
						h.values[slot] = v
						fixedPoint = false
					}
				}

				for r := 0; r < h.prob.NumFluents(); r++ {
					if h.interfering[r].IsSet(idx) {
						continue
					}
					prSlot := pairIndex(int(p), r)
					if h.values[prSlot] == 0.0 {
						continue
					}

					h2PreNoop := h.opValues[idx]
					if rr := h.values[pairIndex(r, r)]; rr > h2PreNoop {
						h2PreNoop = rr
					}
					if problem.IsInfty(h2PreNoop) {
						continue
					}
					for _, s := range a.Prec() {
						if rs := h.values[pairIndex(r, int(s))]; rs > h2PreNoop {
							h2PreNoop = rs
						}
					}

					v := h2PreNoop + h.cost.delta(a.Cost())
					if v < h.values[prSlot] {
						h.values[prSlot] = v
						fixedPoint = false
					}
				}
			}
		}

		if fixedPoint {
			return
		}
	}
}

// computeMutexesOnly runs the same fixed point as compute but only ever
// demotes a pair's value to 0.0 (reachable) rather than tracking its exact
// cost — used exclusively to seed ComputeEdeletes, which only needs to
// know mutex-or-not.
func (h *H2) computeMutexesOnly() {
	for {
		fixedPoint := true

		for _, a := range h.prob.Actions() {
			idx := int(a.Index())
			h.opValues[idx] = h.EvalFluents(a.Prec())
			if problem.IsInfty(h.opValues[idx]) {
				continue
			}

			add := a.Add()
			for i, p := range add {
				for j := i; j < len(add); j++ {
					q := add[j]
					slot := pairIndex(int(p), int(q))
					if h.values[slot] == 0.0 {
						continue
					}
					h.values[slot] = 0.0
					fixedPoint = false
				}

				for r := 0; r < h.prob.NumFluents(); r++ {
					if h.interfering[r].IsSet(idx) {
						continue
					}
					prSlot := pairIndex(int(p), r)
					if h.values[prSlot] == 0.0 {
						continue
					}

					h2PreNoop := h.opValues[idx]
					if rr := h.values[pairIndex(r, r)]; rr > h2PreNoop {
						h2PreNoop = rr
					}
					if problem.IsInfty(h2PreNoop) {
						continue
					}

					mutex := false
					for _, s := range a.Prec() {
						if rs := h.values[pairIndex(r, int(s))]; rs > h2PreNoop {
							h2PreNoop = rs
						}
						if problem.IsInfty(h2PreNoop) {
							mutex = true
							break
						}
					}
					if mutex {
						continue
					}

					h.values[prSlot] = 0.0
					fixedPoint = false
				}
			}
		}

		if fixedPoint {
			return
		}
	}
}
