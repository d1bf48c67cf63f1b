package board

import "fmt"

// Outcome classifies a proposed transition.
type Outcome int

const (
	// OutcomeStandard transitions need no override.
	OutcomeStandard Outcome = iota
	// OutcomeForceable transitions violate the standard ordering but may be
	// performed with an explicit rationale.
	OutcomeForceable
	// OutcomeRejected transitions are not permitted at all.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStandard:
		return "standard"
	case OutcomeForceable:
		return "forceable"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Decision is the validator verdict for one transition.
type Decision struct {
	Outcome Outcome
	Reason  string
}

// Validate classifies a move from current to target against the stage order.
// It is pure: it reads only the registry and never touches board state.
//
// Rules, in evaluation order: same-stage moves are rejected outright;
// unresolvable names are rejected; any stage archives directly; an archived
// stock restores standardly only to the restoration target; forward-by-one is
// the canonical progression; everything else is forceable.
func (r *Registry) Validate(current, target string) Decision {
	if current == target {
		return Decision{Outcome: OutcomeRejected, Reason: "already in this stage"}
	}

	currentIdx, currentOK := r.IndexOf(current)
	targetIdx, targetOK := r.IndexOf(target)
	if !currentOK || !targetOK {
		return Decision{Outcome: OutcomeRejected, Reason: "invalid stage definition"}
	}

	if target == r.archive {
		return Decision{Outcome: OutcomeStandard}
	}

	if current == r.archive {
		if target == r.restore {
			return Decision{Outcome: OutcomeStandard}
		}
		return Decision{
			Outcome: OutcomeForceable,
			Reason:  fmt.Sprintf("non-standard restoration (archive only restores to %s)", r.restore),
		}
	}

	switch {
	case targetIdx == currentIdx+1:
		return Decision{Outcome: OutcomeStandard}
	case targetIdx < currentIdx:
		return Decision{Outcome: OutcomeForceable, Reason: "backward transition detected"}
	case targetIdx > currentIdx+1:
		return Decision{
			Outcome: OutcomeForceable,
			Reason:  fmt.Sprintf("skipping %d stage(s)", targetIdx-currentIdx-1),
		}
	}

	// Unreachable while stages form a total order; kept as a defensive branch.
	return Decision{Outcome: OutcomeForceable, Reason: "unknown transition pattern"}
}
