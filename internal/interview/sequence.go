package interview

// Predicate decides whether a conditional sequence entry applies, based only
// on answers already locked in the ledger.
type Predicate func(s *SessionState) bool

// SeqEntry is one slot in a canonical question sequence. A nil When means the
// entry is unconditional.
type SeqEntry struct {
	ID   string
	When Predicate
}

func answerIs(field, value string) Predicate {
	return func(s *SessionState) bool {
		return s.AnswerString(field) == value
	}
}

// classificationOrder is the fixed CLASSIFY-phase sequence. The relation
// question only applies once both prior answers are an explicit yes.
var classificationOrder = []SeqEntry{
	{ID: "education"},
	{ID: "experience"},
	{ID: "experience_related_to_education", When: func(s *SessionState) bool {
		return s.AnswerString("education") == AnswerYes && s.AnswerString("experience") == AnswerYes
	}},
}

// classificationIDs guards against classification questions leaking into
// later phases.
var classificationIDs = map[string]bool{
	"education":                       true,
	"experience":                      true,
	"experience_related_to_education": true,
}

// IsClassificationField reports whether the id belongs to the CLASSIFY trio.
func IsClassificationField(id string) bool {
	return classificationIDs[id]
}

// pathSequences holds the canonical, order-sensitive required sequence per
// path. Conditional sub-questions sit directly after the answer that unlocks
// them. These sequences double as the required-field lists for scoring.
var pathSequences = map[PathID][]SeqEntry{
	PathFreshStart: {
		{ID: "physical_ability"},
		{ID: "work_environment"},
		{ID: "people_comfort"},
		{ID: "schedule_preference"},
		{ID: "learning_appetite"},
		{ID: "motivation"},
	},
	PathPractical: {
		{ID: "experience_field"},
		{ID: "trade_type", When: answerIs("experience_field", "trades")},
		{ID: "warehouse_specialization", When: answerIs("experience_field", "warehouse_logistics")},
		{ID: "physical_ability"},
		{ID: "stay_or_switch"},
		{ID: "people_comfort"},
		{ID: "schedule_preference"},
		{ID: "learning_appetite"},
	},
	PathGraduate: {
		{ID: "education_field"},
		{ID: "work_environment"},
		{ID: "people_comfort"},
		{ID: "schedule_preference"},
		{ID: "motivation"},
	},
	PathPivot: {
		{ID: "education_field"},
		{ID: "experience_field"},
		{ID: "trade_type", When: answerIs("experience_field", "trades")},
		{ID: "warehouse_specialization", When: answerIs("experience_field", "warehouse_logistics")},
		{ID: "stay_or_switch"},
		{ID: "physical_ability"},
		{ID: "people_comfort"},
		{ID: "learning_appetite"},
	},
	PathBuilder: {
		{ID: "education_field"},
		{ID: "experience_field"},
		{ID: "trade_type", When: answerIs("experience_field", "trades")},
		{ID: "warehouse_specialization", When: answerIs("experience_field", "warehouse_logistics")},
		{ID: "stay_or_switch"},
		{ID: "people_comfort"},
		{ID: "schedule_preference"},
		{ID: "motivation"},
	},
}

// preferenceGate is the optional re-ranking block shared by all paths.
var preferenceGate = []SeqEntry{
	{ID: "work_style"},
	{ID: "customer_interaction"},
	{ID: "driving_interest"},
}

// RequiredFields expands the canonical sequence for the session's path into
// the concrete required-field list, honoring conditional members.
func RequiredFields(s *SessionState) []string {
	entries, ok := pathSequences[s.Path]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.When != nil && !entry.When(s) {
			continue
		}
		out = append(out, entry.ID)
	}
	return out
}

// OptionalFields returns the preference-gate field ids for the session's path.
func OptionalFields(s *SessionState) []string {
	if _, ok := pathSequences[s.Path]; !ok {
		return nil
	}
	out := make([]string, 0, len(preferenceGate))
	for _, entry := range preferenceGate {
		out = append(out, entry.ID)
	}
	return out
}
