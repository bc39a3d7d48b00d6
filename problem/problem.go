// Package problem implements the static description of a STRIPS planning
// task after grounding: fluents, actions (with optional conditional
// effects), the initial and goal states, and the precomputed relational
// tables (who-requires, who-adds, who-deletes, who-e-deletes a given
// fluent) the heuristics and search engines consume.
package problem

import (
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/ericr/aptk/bitset"
)

const noSuchIndex = ActionIdx(-1)

// CeffAdd pairs a conditional effect index with the action that owns it;
// used by ceffsAdding to record which (action, ceff) adds a given fluent.
type CeffAdd struct {
	Action *Action
	CeffID int
}

// Problem is a frozen-after-build STRIPS planning task: fluents, actions,
// conditional effects, init/goal, and the relational indexes built by
// MakeActionTables. The Problem owns every Fluent, Action and CondEffect;
// they are constructed exclusively through its Add* operations.
type Problem struct {
	// ID correlates log output across repeated search runs against the
	// same problem; it has no effect on planning semantics.
	ID uuid.UUID

	Logger *log.Logger

	domainName  string
	problemName string

	fluents []*Fluent
	actions []*Action

	fluentsBySig map[string]FluentIdx

	init *State
	goal *State

	inGoal bitset.Set

	frozen bool

	endOperatorID ActionIdx

	requiring   [][]*Action
	adding      [][]*Action
	deleting    [][]*Action
	edeleting   [][]*Action
	ceffsAdding [][]CeffAdd
	emptyPrecs  []*Action
}

// New returns an empty STRIPS problem with the given domain/problem names.
func New(domainName, problemName string) *Problem {
	return &Problem{
		ID:            uuid.New(),
		Logger:        log.New(os.Stdout, "", log.Ldate|log.Ltime),
		domainName:    domainName,
		problemName:   problemName,
		fluentsBySig:  map[string]FluentIdx{},
		endOperatorID: noSuchIndex,
	}
}

// DomainName returns the problem's domain name.
func (p *Problem) DomainName() string { return p.domainName }

// ProblemName returns the problem's problem name.
func (p *Problem) ProblemName() string { return p.problemName }

// Fluents returns every fluent registered so far, indexed by FluentIdx.
func (p *Problem) Fluents() []*Fluent { return p.fluents }

// Actions returns every action registered so far, indexed by ActionIdx.
func (p *Problem) Actions() []*Action { return p.actions }

// NumFluents returns the number of registered fluents.
func (p *Problem) NumFluents() int { return len(p.fluents) }

// NumActions returns the number of registered actions.
func (p *Problem) NumActions() int { return len(p.actions) }

// Init returns the initial state's fluents.
func (p *Problem) Init() []FluentIdx {
	if p.init == nil {
		return nil
	}
	return p.init.Fluents()
}

// InitState returns the initial state.
func (p *Problem) InitState() *State { return p.init }

// Goal returns the goal's fluents.
func (p *Problem) Goal() []FluentIdx {
	if p.goal == nil {
		return nil
	}
	return p.goal.Fluents()
}

// EndOperatorID returns the synthetic zero-cost end action's index, or
// noSuchIndex (-1) if SetGoal was never called with createEndOp=true.
func (p *Problem) EndOperatorID() ActionIdx { return p.endOperatorID }

// GoalEntailed reports whether s entails every goal fluent.
func (p *Problem) GoalEntailed(s *State) bool {
	return s.EntailsVec(p.Goal())
}

// FluentIndex returns the index registered for signature, and whether it
// was found.
func (p *Problem) FluentIndex(signature string) (FluentIdx, bool) {
	idx, ok := p.fluentsBySig[signature]
	return idx, ok
}

// AddFluent registers a new fluent and returns its index. Fails with
// ErrDuplicateSignature if signature is already registered, or
// ErrProblemFrozen if MakeActionTables has already run.
func (p *Problem) AddFluent(signature string) (FluentIdx, error) {
	if p.frozen {
		return 0, ErrProblemFrozen
	}
	if _, exists := p.fluentsBySig[signature]; exists {
		return 0, ErrDuplicateSignature
	}

	idx := FluentIdx(len(p.fluents))
	p.fluents = append(p.fluents, &Fluent{index: idx, signature: signature})
	p.fluentsBySig[signature] = idx

	return idx, nil
}

// AddAction registers a new action and returns its index. Every fluent
// index referenced by prec, add, del, or any conditional effect must be in
// range, or ErrBadFluentIndex is returned and the problem is left
// unmodified. Fails with ErrProblemFrozen if MakeActionTables has already
// run. cost is stored as given: no default is applied and it is not
// validated, so callers pass the desired cost explicitly (use 1.0 for
// "default").
func (p *Problem) AddAction(signature string, prec, add, del []FluentIdx, ceffs []*CondEffect, cost float64) (ActionIdx, error) {
	if p.frozen {
		return 0, ErrProblemFrozen
	}
	if err := p.validateFluentIdx(prec); err != nil {
		return 0, err
	}
	if err := p.validateFluentIdx(add); err != nil {
		return 0, err
	}
	if err := p.validateFluentIdx(del); err != nil {
		return 0, err
	}
	for _, ce := range ceffs {
		if err := p.validateFluentIdx(ce.Prec); err != nil {
			return 0, err
		}
		if err := p.validateFluentIdx(ce.Add); err != nil {
			return 0, err
		}
		if err := p.validateFluentIdx(ce.Del); err != nil {
			return 0, err
		}
	}

	n := p.NumFluents()
	a := &Action{
		index:     ActionIdx(len(p.actions)),
		signature: signature,
		cost:      cost,
		prec:      append([]FluentIdx(nil), prec...),
		add:       append([]FluentIdx(nil), add...),
		del:       append([]FluentIdx(nil), del...),
		precSet:   bitset.New(n),
		addSet:    bitset.New(n),
		delSet:    bitset.New(n),
		edelSet:   bitset.New(n),
	}
	for _, f := range a.prec {
		a.precSet.Set(int(f))
	}
	for _, f := range a.add {
		a.addSet.Set(int(f))
	}
	for _, f := range a.del {
		a.delSet.Set(int(f))
	}
	for _, ce := range ceffs {
		sized := &CondEffect{
			Prec:    append([]FluentIdx(nil), ce.Prec...),
			Add:     append([]FluentIdx(nil), ce.Add...),
			Del:     append([]FluentIdx(nil), ce.Del...),
			precSet: bitset.New(n),
			addSet:  bitset.New(n),
			delSet:  bitset.New(n),
		}
		for _, f := range sized.Prec {
			sized.precSet.Set(int(f))
		}
		for _, f := range sized.Add {
			sized.addSet.Set(int(f))
		}
		for _, f := range sized.Del {
			sized.delSet.Set(int(f))
		}
		a.ceffs = append(a.ceffs, sized)
	}

	p.actions = append(p.actions, a)
	return a.index, nil
}

// SetInit overwrites the problem's initial state.
func (p *Problem) SetInit(fluents []FluentIdx) {
	p.init = NewState(p, fluents)
}

// SetGoal overwrites the problem's goal. If createEndOp is true, a
// synthetic zero-cost action named "(END)" is registered whose sole
// precondition is the goal and whose adds/dels are empty; its index is
// recorded as EndOperatorID.
func (p *Problem) SetGoal(fluents []FluentIdx, createEndOp bool) {
	p.goal = NewState(p, fluents)
	p.inGoal = bitset.New(p.NumFluents())
	for _, f := range fluents {
		p.inGoal.Set(int(f))
	}

	if createEndOp {
		idx, err := p.AddAction("(END)", fluents, nil, nil, nil, 0.0)
		if err != nil {
			// Happens if a goal fluent is out of range, or if
			// MakeActionTables has already frozen the problem.
			p.Logger.Printf("failed to synthesize end operator: %v", err)
			return
		}
		p.endOperatorID = idx
	}
}

// MakeActionTables populates the relational indexes (requiring, adding,
// deleting, ceffsAdding), resets edeleting to empty (it is filled later by
// heuristic.H2.ComputeEdeletes via RecordEdelete), and must be called after the last
// AddAction; it freezes the problem against further mutation. Calling it
// twice with no intervening mutation is idempotent.
func (p *Problem) MakeActionTables() error {
	n := p.NumFluents()

	p.requiring = make([][]*Action, n)
	p.adding = make([][]*Action, n)
	p.deleting = make([][]*Action, n)
	p.edeleting = make([][]*Action, n)
	p.ceffsAdding = make([][]CeffAdd, n)
	p.emptyPrecs = nil

	for _, a := range p.actions {
		p.registerActionInTables(a)
	}

	p.frozen = true
	return nil
}

func (p *Problem) registerActionInTables(a *Action) {
	if len(a.prec) == 0 {
		p.emptyPrecs = append(p.emptyPrecs, a)
	} else {
		for _, f := range a.prec {
			p.requiring[f] = append(p.requiring[f], a)
		}
	}
	for _, f := range a.add {
		p.adding[f] = append(p.adding[f], a)
	}
	for ceIdx, ce := range a.ceffs {
		for _, f := range ce.Add {
			p.ceffsAdding[f] = append(p.ceffsAdding[f], CeffAdd{Action: a, CeffID: ceIdx})
		}
	}
	for _, f := range a.del {
		p.deleting[f] = append(p.deleting[f], a)
	}
}

// ActionsRequiring returns the actions whose precondition contains f
// (empty-precondition actions are filed in EmptyPrecActions instead).
func (p *Problem) ActionsRequiring(f FluentIdx) []*Action { return p.requiring[f] }

// ActionsAdding returns the actions that add f.
func (p *Problem) ActionsAdding(f FluentIdx) []*Action { return p.adding[f] }

// ActionsDeleting returns the actions that delete f.
func (p *Problem) ActionsDeleting(f FluentIdx) []*Action { return p.deleting[f] }

// ActionsEdeleting returns the actions that e-delete f (populated by
// heuristic.H2.ComputeEdeletes).
func (p *Problem) ActionsEdeleting(f FluentIdx) []*Action { return p.edeleting[f] }

// CeffsAdding returns every (action, conditional-effect-index) pair whose
// conditional effect adds f.
func (p *Problem) CeffsAdding(f FluentIdx) []CeffAdd { return p.ceffsAdding[f] }

// EmptyPrecActions returns every action with an empty precondition.
func (p *Problem) EmptyPrecActions() []*Action { return p.emptyPrecs }

// RecordEdelete marks action a as e-deleting fluent f and registers it in
// the edeleting table. Called exclusively by heuristic.H2.ComputeEdeletes.
func (p *Problem) RecordEdelete(a *Action, f FluentIdx) {
	if a.recordEdelete(f) {
		p.edeleting[f] = append(p.edeleting[f], a)
	}
}

func (p *Problem) validateFluentIdx(fs []FluentIdx) error {
	n := FluentIdx(p.NumFluents())
	for _, f := range fs {
		if f < 0 || f >= n {
			return ErrBadFluentIndex
		}
	}
	return nil
}
