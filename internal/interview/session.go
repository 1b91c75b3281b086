package interview

import (
	"encoding/json"
	"reflect"
)

// Answer values used by the classification trio.
const (
	AnswerYes     = "yes"
	AnswerNo      = "no"
	AnswerNotSure = "not_sure"
)

// Classification is the snapshot of the three classification answers taken
// when the session leaves the CLASSIFY phase.
type Classification struct {
	Education         string `json:"education"`
	Experience        string `json:"experience"`
	ExperienceRelated string `json:"experience_related_to_education,omitempty"`
}

// Direction is a named career/work category offered in a recommendation.
type Direction struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Why   []string `json:"why"`
	Chips []string `json:"chips,omitempty"`
}

// Result is the final recommendation payload returned once the session is done.
type Result struct {
	Summary      string      `json:"summary"`
	WorkNow      []Direction `json:"work_now"`
	ImproveLater []Direction `json:"improve_later,omitempty"`
	Avoid        []string    `json:"avoid"`
	NextStep     string      `json:"next_step"`
}

// SessionState is the single stateful entity of the interview. It is owned by
// the caller and round-tripped whole on every request; the engine never keeps
// a copy between calls.
type SessionState struct {
	SessionID       string          `json:"session_id,omitempty"`
	Phase           Phase           `json:"phase"`
	Classification  *Classification `json:"classification,omitempty"`
	Path            PathID          `json:"path,omitempty"`
	Answers         map[string]any  `json:"answers"`
	Preferences     map[string]any  `json:"preferences,omitempty"`
	ConfidenceScore float64         `json:"confidence_score"`
	LastQuestionID  string          `json:"last_question_id,omitempty"`
	Result          *Result         `json:"result,omitempty"`
}

// NewSession returns an empty session at the start of the CLASSIFY phase.
func NewSession(id string) *SessionState {
	return &SessionState{
		SessionID: id,
		Phase:     PhaseClassify,
		Answers:   map[string]any{},
	}
}

// Clone returns a deep copy of the session. The engine mutates only clones so
// the caller's copy stays untouched until state_updates are merged back.
func (s *SessionState) Clone() *SessionState {
	if s == nil {
		return nil
	}

	out := *s

	out.Answers = make(map[string]any, len(s.Answers))
	for k, v := range s.Answers {
		out.Answers[k] = cloneValue(v)
	}

	if s.Preferences != nil {
		out.Preferences = make(map[string]any, len(s.Preferences))
		for k, v := range s.Preferences {
			out.Preferences[k] = cloneValue(v)
		}
	}

	if s.Classification != nil {
		c := *s.Classification
		out.Classification = &c
	}

	if s.Result != nil {
		r := *s.Result
		r.WorkNow = cloneDirections(s.Result.WorkNow)
		r.ImproveLater = cloneDirections(s.Result.ImproveLater)
		r.Avoid = append([]string(nil), s.Result.Avoid...)
		out.Result = &r
	}

	return &out
}

func cloneDirections(in []Direction) []Direction {
	if in == nil {
		return nil
	}
	out := make([]Direction, len(in))
	for i, d := range in {
		d.Why = append([]string(nil), d.Why...)
		d.Chips = append([]string(nil), d.Chips...)
		out[i] = d
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []any:
		out := make([]any, len(val))
		copy(out, val)
		return out
	default:
		return v
	}
}

// Diff computes the state_updates payload: top-level session keys whose value
// changed between before and after. Unchanged keys and empty values are
// stripped so the caller merges only what actually moved.
func Diff(before, after *SessionState) map[string]any {
	updates := map[string]any{}
	if after == nil {
		return updates
	}

	var beforeRaw map[string]json.RawMessage
	if before != nil {
		if data, err := json.Marshal(before); err == nil {
			_ = json.Unmarshal(data, &beforeRaw)
		}
	}

	afterData, err := json.Marshal(after)
	if err != nil {
		return updates
	}
	var afterRaw map[string]json.RawMessage
	if err := json.Unmarshal(afterData, &afterRaw); err != nil {
		return updates
	}

	for key, rawAfter := range afterRaw {
		rawBefore, ok := beforeRaw[key]
		if ok && jsonEqual(rawBefore, rawAfter) {
			continue
		}

		var value any
		if err := json.Unmarshal(rawAfter, &value); err != nil {
			continue
		}
		if value == nil {
			continue
		}
		updates[key] = value
	}

	return updates
}

// MergeUpdates applies a state_updates payload to a session the way clients
// are expected to: key-by-key replacement at the top level. A nil session
// starts from an empty one.
func MergeUpdates(state *SessionState, updates map[string]any) (*SessionState, error) {
	base := map[string]any{}
	if state != nil {
		data, err := json.Marshal(state)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &base); err != nil {
			return nil, err
		}
	}

	for key, value := range updates {
		base[key] = value
	}

	merged, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	var out SessionState
	if err := json.Unmarshal(merged, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func jsonEqual(a, b json.RawMessage) bool {
	var av, bv any
	if err := json.Unmarshal(a, &av); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return false
	}
	return reflect.DeepEqual(av, bv)
}

// AnswerString returns the answer for a single-select or free-text field.
// Multi-select answers return their first entry.
func (s *SessionState) AnswerString(field string) string {
	switch v := s.Answers[field].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []any:
		if len(v) > 0 {
			if str, ok := v[0].(string); ok {
				return str
			}
		}
	}
	return ""
}

// AnswerList returns the answer for a multi-select field as a string slice.
// A single-select answer is returned as a one-element slice.
func (s *SessionState) AnswerList(field string) []string {
	switch v := s.Answers[field].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// AnswerHas reports whether a multi-select answer includes the given value.
func (s *SessionState) AnswerHas(field, value string) bool {
	for _, v := range s.AnswerList(field) {
		if v == value {
			return true
		}
	}
	return false
}

// PreferenceString returns a preference-gate answer, falling back to the
// ledger for values committed before the preferences mirror existed.
func (s *SessionState) PreferenceString(field string) string {
	if v, ok := s.Preferences[field].(string); ok {
		return v
	}
	return s.AnswerString(field)
}
