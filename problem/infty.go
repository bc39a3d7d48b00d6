package problem

import "math"

// Infty is the single sentinel standing for "unreachable" across every
// heuristic in this module. It is distinct from any admissible action
// cost (which must be nonnegative and finite) and every aggregation short
// circuits on it. Never compare costs against a literal +Inf; use Infty.
var Infty = math.Inf(1)

// IsInfty reports whether v is the unreachable sentinel.
func IsInfty(v float64) bool {
	return v == Infty
}
