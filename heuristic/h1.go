// Package heuristic implements the delete-relaxation heuristics h¹
// (h_max/h_add/LAMA), h² (with mutex/e-delete extraction), and the novelty
// (width) heuristic, grounded directly on the original toolkit's
// h_1.hxx/h_2.hxx/novelty.hxx.
package heuristic

import (
	"github.com/ericr/aptk/bitset"
	"github.com/ericr/aptk/problem"
)

// CostOption selects how an action's cost folds into the aggregated value
// during h¹ relaxed planning graph propagation, exactly as h_1.hxx's
// H1_Cost_Function enum.
type CostOption int

const (
	// IgnoreCosts treats every action as unit cost 1.
	IgnoreCosts CostOption = iota
	// UseCosts uses the action's own cost.
	UseCosts
	// LAMA uses 1+cost, the FF/LAMA-style "prefer fewer steps, break ties
	// on cost" blend.
	LAMA
)

func (c CostOption) apply(cost float64) float64 {
	switch c {
	case IgnoreCosts:
		return 1.0
	case LAMA:
		return 1.0 + cost
	default:
		return cost
	}
}

// FluentAggregator folds a slice of per-fluent values, starting from seed,
// into a single aggregate value: max for h_max, sum for h_add. Returning
// problem.Infty short-circuits the remaining fluents for maxAgg; sumAgg
// only short-circuits once it actually observes an infinite fluent.
type FluentAggregator interface {
	Aggregate(values []float64, fs []problem.FluentIdx, seed float64) float64
}

type maxAgg struct{}

// Aggregate returns the max of seed and values[f] for f in fs (h_max).
func (maxAgg) Aggregate(values []float64, fs []problem.FluentIdx, seed float64) float64 {
	v := seed
	for _, f := range fs {
		if values[f] > v {
			v = values[f]
		}
		if problem.IsInfty(v) {
			return v
		}
	}
	return v
}

type sumAgg struct{}

// Aggregate returns seed plus the sum of values[f] for f in fs (h_add).
func (sumAgg) Aggregate(values []float64, fs []problem.FluentIdx, seed float64) float64 {
	v := seed
	for _, f := range fs {
		if problem.IsInfty(values[f]) {
			return problem.Infty
		}
		v += values[f]
	}
	return v
}

// MaxAggregator is the h_max aggregation strategy.
func MaxAggregator() FluentAggregator { return maxAgg{} }

// SumAggregator is the h_add aggregation strategy.
func SumAggregator() FluentAggregator { return sumAgg{} }

// H1 is the delete-relaxation fixed-point heuristic: h_max under
// MaxAggregator, h_add under SumAggregator, with cost handling per
// CostOption. One H1 value is reusable across repeated Eval calls against
// different states; its internal value table is reset on every call.
type H1 struct {
	prob *problem.Problem
	agg  FluentAggregator
	cost CostOption

	values         []float64
	bestSupporters []*problem.Action
	alreadyUpdated bitset.Set
	updated        []problem.FluentIdx
	allowedActions []bool
}

// NewH1 returns an H1 heuristic over prob using the given aggregator and
// cost option.
func NewH1(prob *problem.Problem, agg FluentAggregator, cost CostOption) *H1 {
	n := prob.NumFluents()
	return &H1{
		prob:           prob,
		agg:            agg,
		cost:           cost,
		values:         make([]float64, n),
		bestSupporters: make([]*problem.Action, n),
		alreadyUpdated: bitset.New(n),
		allowedActions: make([]bool, prob.NumActions()),
	}
}

// Eval returns h(s): the relaxed-planning-graph estimate of reaching the
// goal from s, under full action applicability (no reachability filter).
func (h *H1) Eval(s *problem.State) float64 {
	h.reset()
	h.initialize(s)
	h.compute(nil)
	return h.evalFluents(h.prob.Goal(), 0.0)
}

// EvalReachability evaluates h(s) restricted to the subset of actions that
// do not assert, delete or e-delete any fluent in persist — used by serialized
// search to check whether a new goal atom can be reached without undoing
// fluents already achieved for earlier goal atoms. persist may be nil,
// meaning "no restriction" (equivalent to Eval).
func (h *H1) EvalReachability(s *problem.State, persist []problem.FluentIdx) float64 {
	h.reset()
	h.initialize(s)
	h.compute(persist)
	return h.evalFluents(h.prob.Goal(), 0.0)
}

// BestSupporter returns the action H1 recorded as cheapest-known achiever of
// f during the last Eval/EvalReachability call, or nil if f was never
// updated (unreachable, or already true in the evaluated state).
func (h *H1) BestSupporter(f problem.FluentIdx) *problem.Action {
	return h.bestSupporters[f]
}

func (h *H1) reset() {
	h.alreadyUpdated.Clear()
	h.updated = h.updated[:0]
}

func (h *H1) evalFluents(fs []problem.FluentIdx, seed float64) float64 {
	return h.agg.Aggregate(h.values, fs, seed)
}

func (h *H1) initialize(s *problem.State) {
	for k := range h.values {
		h.values[k] = problem.Infty
		h.bestSupporters[k] = nil
	}

	for _, a := range h.prob.EmptyPrecActions() {
		v := h.cost.apply(a.Cost())
		for _, f := range a.Add() {
			h.update(f, v, a)
		}
		for _, ce := range a.CondEffects() {
			if len(ce.Prec) != 0 {
				continue
			}
			for _, f := range ce.Add {
				h.update(f, v, a)
			}
		}
	}

	for _, f := range s.Fluents() {
		h.set(f, 0.0)
	}
}

// compute runs the chaotic relaxation fixed point over h.updated. When
// persist is non-nil, actions that assert, delete or e-delete any persisting
// fluent are disabled for the entire run (compute_reachability in
// h_1.hxx), and every achieved value is 0 rather than cost-weighted — the
// reachability variant only cares whether a fluent becomes true, not how
// expensively.
func (h *H1) compute(persist []problem.FluentIdx) {
	reachability := persist != nil
	if reachability {
		for i, a := range h.prob.Actions() {
			h.allowedActions[i] = true
			for _, f := range persist {
				if a.Asserts(f) || a.DelSet().IsSet(int(f)) || a.Edeletes(f) {
					h.allowedActions[i] = false
					break
				}
			}
		}
	}

	for len(h.updated) > 0 {
		p := h.updated[0]
		h.updated = h.updated[1:]
		h.alreadyUpdated.Unset(int(p))

		for i, a := range h.prob.Actions() {
			if reachability && !h.allowedActions[i] {
				continue
			}

			relevant := a.PrecSet().IsSet(int(p))
			for _, ce := range a.CondEffects() {
				if relevant {
					break
				}
				relevant = ce.PrecSet().IsSet(int(p))
			}
			if !relevant {
				continue
			}

			hPre := h.evalFluents(a.Prec(), 0.0)
			if problem.IsInfty(hPre) {
				continue
			}

			if reachability {
				for _, f := range a.Add() {
					h.update(f, 0.0, a)
				}
				for _, ce := range a.CondEffects() {
					hCond := h.evalFluents(ce.Prec, 0.0)
					if hPre > hCond {
						hCond = hPre
					}
					if problem.IsInfty(hCond) {
						continue
					}
					for _, f := range ce.Add {
						h.update(f, 0.0, a)
					}
				}
				continue
			}

			v := h.cost.apply(a.Cost()) + hPre
			for _, f := range a.Add() {
				h.update(f, v, a)
			}
			for _, ce := range a.CondEffects() {
				hCond := h.evalFluents(ce.Prec, hPre)
				if problem.IsInfty(hCond) {
					continue
				}
				vEff := h.cost.apply(a.Cost()) + hCond
				for _, f := range ce.Add {
					h.update(f, vEff, a)
				}
			}
		}
	}
}

func (h *H1) update(p problem.FluentIdx, v float64, a *problem.Action) {
	if v >= h.values[p] {
		return
	}
	h.values[p] = v
	if !h.alreadyUpdated.IsSet(int(p)) {
		h.updated = append(h.updated, p)
		h.alreadyUpdated.Set(int(p))
	}
	h.bestSupporters[p] = a
}

func (h *H1) set(p problem.FluentIdx, v float64) {
	h.values[p] = v
	h.bestSupporters[p] = nil
	if !h.alreadyUpdated.IsSet(int(p)) {
		h.updated = append(h.updated, p)
		h.alreadyUpdated.Set(int(p))
	}
}
