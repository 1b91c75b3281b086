package interview

// NextQuestion computes the next unanswered question for the session, or nil
// when the current phase has nothing left to ask. It never mutates state.
//
// During CLASSIFY the fixed classification order applies. During PATH the
// canonical sequence of the resolved path is walked with conditional
// sub-questions expanded from already-locked answers; once every required
// field is locked the optional preference gate is offered, but only while the
// completion confidence is still below the result threshold.
func NextQuestion(s *SessionState) *Question {
	switch s.Phase {
	case PhaseClassify:
		return firstUnlocked(s, classificationOrder, true)
	case PhasePath:
		if q := firstUnlocked(s, pathSequences[s.Path], false); q != nil {
			return q
		}
		if MeetsResultThreshold(Score(s)) {
			return nil
		}
		return firstUnlocked(s, preferenceGate, false)
	default:
		return nil
	}
}

func firstUnlocked(s *SessionState, entries []SeqEntry, classify bool) *Question {
	for _, entry := range entries {
		// Phase separation is absolute: after CLASSIFY a classification id is
		// never emitted again, even if a broken sequence were to request one.
		if !classify && IsClassificationField(entry.ID) {
			continue
		}
		if entry.When != nil && !entry.When(s) {
			continue
		}
		if s.IsLocked(entry.ID) {
			continue
		}
		q, ok := LookupQuestion(entry.ID)
		if !ok {
			continue
		}
		return q
	}
	return nil
}
