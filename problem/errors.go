package problem

import "errors"

// Construction-time errors (spec §7). These are returned from the builder
// API; a failing call leaves the problem in its pre-call state.
var (
	// ErrDuplicateSignature is returned by AddFluent when the signature is
	// already registered.
	ErrDuplicateSignature = errors.New("problem: duplicate fluent signature")

	// ErrBadFluentIndex is returned by AddAction when a fluent index outside
	// [0, NumFluents()) appears in an action's prec/add/del/ceff vectors.
	// SetInit and SetGoal do not validate their fluents.
	ErrBadFluentIndex = errors.New("problem: fluent index out of range")

	// ErrProblemFrozen is returned by AddAction/AddFluent once MakeActionTables
	// has been called.
	ErrProblemFrozen = errors.New("problem: mutation after MakeActionTables")
)
