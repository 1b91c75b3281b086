package interview

// Phase is one of the three coarse stages of the interview.
type Phase string

const (
	PhaseClassify Phase = "CLASSIFY"
	PhasePath     Phase = "PATH"
	PhaseResult   Phase = "RESULT"
)

// phaseRank orders phases for monotonicity checks. A session may only move forward.
func phaseRank(p Phase) int {
	switch p {
	case PhaseClassify:
		return 0
	case PhasePath:
		return 1
	case PhaseResult:
		return 2
	default:
		return -1
	}
}

// ValidPhase reports whether p is a known phase value.
func ValidPhase(p Phase) bool {
	return phaseRank(p) >= 0
}

// CanAdvance reports whether moving from one phase to the next is a legal forward step.
func CanAdvance(from, to Phase) bool {
	return phaseRank(to) == phaseRank(from)+1
}
