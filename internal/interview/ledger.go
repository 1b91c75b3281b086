package interview

import (
	"errors"
	"fmt"
)

// ErrFieldLocked is returned when a commit targets a field that already holds
// an answer. Locked fields are final for the lifetime of the session.
var ErrFieldLocked = errors.New("field is locked")

// ErrUnknownField is returned when a commit targets a field id that is not in
// the question catalog.
var ErrUnknownField = errors.New("unknown field")

// IsLocked reports whether the field already holds an answer. Presence in the
// ledger, not truthiness of the value, defines locked: an empty string or an
// empty list still locks the field.
func (s *SessionState) IsLocked(field string) bool {
	_, ok := s.Answers[field]
	return ok
}

// Commit writes an answer into the ledger. It fails with ErrFieldLocked when
// the field is already set; callers must check IsLocked first and decide how
// to surface the refusal. Preference-gate answers are mirrored into the
// Preferences map so the recommendation refiner can read them directly.
func (s *SessionState) Commit(field string, value any) error {
	if s.IsLocked(field) {
		return fmt.Errorf("%w: %s", ErrFieldLocked, field)
	}

	q, ok := LookupQuestion(field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	normalized, err := q.NormalizeAnswer(value)
	if err != nil {
		return fmt.Errorf("commit %s: %w", field, err)
	}

	if s.Answers == nil {
		s.Answers = map[string]any{}
	}
	s.Answers[field] = normalized

	if q.Preference {
		if s.Preferences == nil {
			s.Preferences = map[string]any{}
		}
		s.Preferences[field] = normalized
	}

	return nil
}
