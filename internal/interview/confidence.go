package interview

// ResultThreshold is the completion confidence required before a final
// recommendation may be returned.
const ResultThreshold = 0.8

// scoreEpsilon absorbs float rounding at the threshold boundary: full required
// coverage plus one of three optional answers is exactly 0.8 on paper but
// 0.7999... in float64.
const scoreEpsilon = 1e-9

// MeetsResultThreshold reports whether a computed score clears the result
// threshold. Every gate comparison goes through here so the sequencer and the
// engine agree at the exact boundary.
func MeetsResultThreshold(score float64) bool {
	return score >= ResultThreshold-scoreEpsilon
}

const (
	requiredWeight = 0.7
	optionalWeight = 0.3
)

// Score computes the 0..1 completion confidence for the active path:
// 0.7 x answered required fields + 0.3 x answered optional fields. When the
// optional list is empty the whole weight falls on required fields. Before a
// path is resolved the score is 0.
func Score(s *SessionState) float64 {
	required := RequiredFields(s)
	if len(required) == 0 {
		return 0
	}

	answered := 0
	for _, field := range required {
		if s.IsLocked(field) {
			answered++
		}
	}
	requiredFrac := float64(answered) / float64(len(required))

	optional := OptionalFields(s)
	if len(optional) == 0 {
		return requiredFrac
	}

	optAnswered := 0
	for _, field := range optional {
		if s.IsLocked(field) {
			optAnswered++
		}
	}
	optionalFrac := float64(optAnswered) / float64(len(optional))

	return requiredWeight*requiredFrac + optionalWeight*optionalFrac
}

// RequiredComplete reports whether every required field for the resolved path
// is locked. It is false until a path is resolved.
func RequiredComplete(s *SessionState) bool {
	required := RequiredFields(s)
	if len(required) == 0 {
		return false
	}
	for _, field := range required {
		if !s.IsLocked(field) {
			return false
		}
	}
	return true
}
