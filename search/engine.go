package search

import (
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ericr/aptk/heuristic"
	"github.com/ericr/aptk/problem"
	"github.com/ericr/aptk/succgen"
)

// expansionLogInterval is how often (in expansions) noteExpansion logs an
// expansions-per-second milestone.
const expansionLogInterval = 1000

// Skeleton is the shared state every search engine builds on: the problem,
// its successor generator, the node arena, a wall-clock budget, and a
// per-run logger tagged with the problem's and the run's UUID for log
// correlation across repeated FindSolution calls (teacher's ambient
// logging pattern — see config.Config.Logger).
type Skeleton struct {
	Prob  *problem.Problem
	Gen   *succgen.Generator
	Arena *Arena

	Logger *log.Logger

	startTime time.Time
	budget    time.Duration
	bound     float64
	runID     uuid.UUID

	Expansions     int
	Generated      int
	ReplacedInOpen int
	PrunedByBound  int
	Evaluations    int
}

// NewSkeleton returns a Skeleton over prob, building its successor
// generator. No time budget is set by default: without SetTimeBudget,
// FindSolution gives up only once its open list is exhausted.
func NewSkeleton(prob *problem.Problem) *Skeleton {
	return &Skeleton{
		Prob:   prob,
		Gen:    succgen.New(prob),
		Arena:  NewArena(),
		Logger: log.New(os.Stdout, "", log.Ldate|log.Ltime),
		bound:  Infty,
	}
}

// SetTimeBudget sets the wall-clock budget checked once per expansion;
// FindSolution gives up (reporting ok=false) once exceeded.
func (sk *Skeleton) SetTimeBudget(d time.Duration) { sk.budget = d }

// SetLogger replaces the Skeleton's default stdout logger, e.g. with
// config.Config.Logger so a caller's configured log destination and flags
// apply to search's ambient logging too. A nil logger is a no-op.
func (sk *Skeleton) SetLogger(l *log.Logger) {
	if l != nil {
		sk.Logger = l
	}
}

// SetBound sets the g-cost bound: nodes at or beyond it are pruned rather
// than expanded. Weighted anytime search lowers this on every solution
// found.
func (sk *Skeleton) SetBound(b float64) { sk.bound = b }

// Bound returns the current g-cost bound.
func (sk *Skeleton) Bound() float64 { return sk.bound }

// expired reports whether the configured time budget has been exceeded.
// Always false if SetTimeBudget was never called (budget == 0).
func (sk *Skeleton) expired() bool {
	if sk.budget <= 0 {
		return false
	}
	return time.Since(sk.startTime) > sk.budget
}

// newRun resets the arena and counters and stamps a run id for log
// correlation, tagging every subsequent line this Skeleton logs with the
// problem's and the run's UUID; every engine calls it at the start of a
// search run (there is no separate Start method).
func (sk *Skeleton) newRun() uuid.UUID {
	sk.Arena.Reset()
	sk.Expansions = 0
	sk.Generated = 0
	sk.ReplacedInOpen = 0
	sk.PrunedByBound = 0
	sk.Evaluations = 0
	sk.startTime = time.Now()
	sk.runID = uuid.New()
	sk.Logger.SetPrefix("[" + sk.Prob.ID.String() + "/" + sk.runID.String() + "] ")
	return sk.runID
}

// RunID returns the id stamped on the run currently in progress (or most
// recently completed).
func (sk *Skeleton) RunID() uuid.UUID { return sk.runID }

// noteExpansion counts one node expansion and, every expansionLogInterval
// expansions, logs the running expansions-per-second rate.
func (sk *Skeleton) noteExpansion() {
	sk.Expansions++
	if sk.Expansions%expansionLogInterval != 0 {
		return
	}
	elapsed := time.Since(sk.startTime).Seconds()
	rate := float64(sk.Expansions)
	if elapsed > 0 {
		rate = float64(sk.Expansions) / elapsed
	}
	sk.Logger.Printf("expansions=%d generated=%d rate=%.0f/s", sk.Expansions, sk.Generated, rate)
}

// root allocates the root node from the problem's initial state.
func (sk *Skeleton) root() NodeID {
	return sk.Arena.NewNode(NoNode, -1, sk.Prob.InitState(), 0.0)
}

// goal reports whether n's state entails the problem's goal.
func (sk *Skeleton) goal(n NodeID) bool {
	return sk.Prob.GoalEntailed(sk.Arena.Get(n).State)
}

// evalHeuristics applies h to s for an immediate (non-deferred)
// evaluation. The engines in this package call Eval on their heuristics
// directly and do not use it.
func evalHeuristics(h heuristic.Evaluator, s *problem.State) float64 {
	return h.Eval(s)
}
