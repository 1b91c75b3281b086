package interview

import (
	"errors"
	"testing"
)

func TestIsLockedUsesPresenceNotTruthiness(t *testing.T) {
	s := NewSession("s1")
	s.Answers["education"] = ""
	s.Answers["motivation"] = []string{}

	if !s.IsLocked("education") {
		t.Fatalf("empty string answer must still lock the field")
	}
	if !s.IsLocked("motivation") {
		t.Fatalf("empty list answer must still lock the field")
	}
	if s.IsLocked("experience") {
		t.Fatalf("absent field must not be locked")
	}
}

func TestCommitRejectsLockedField(t *testing.T) {
	s := NewSession("s1")
	if err := s.Commit("physical_ability", "no_limitations"); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}

	err := s.Commit("physical_ability", "health_limitations")
	if !errors.Is(err, ErrFieldLocked) {
		t.Fatalf("expected ErrFieldLocked, got %v", err)
	}

	if s.AnswerString("physical_ability") != "no_limitations" {
		t.Fatalf("locked value was overwritten: %v", s.Answers["physical_ability"])
	}
}

func TestCommitRejectsUnknownField(t *testing.T) {
	s := NewSession("s1")
	err := s.Commit("favorite_color", "blue")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestCommitRejectsInvalidOption(t *testing.T) {
	s := NewSession("s1")
	if err := s.Commit("education", "perhaps"); err == nil {
		t.Fatalf("expected rejection of non-option value")
	}
	if s.IsLocked("education") {
		t.Fatalf("rejected commit must not lock the field")
	}
}

func TestCommitAllowsFreeTextValues(t *testing.T) {
	s := NewSession("s1")
	if err := s.Commit("experience_field", "beekeeping"); err != nil {
		t.Fatalf("free-text question should accept any value: %v", err)
	}
}

func TestCommitMirrorsPreferenceFields(t *testing.T) {
	s := NewSession("s1")
	if err := s.Commit("work_style", "fixed_place"); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if s.Preferences["work_style"] != "fixed_place" {
		t.Fatalf("preference answer not mirrored: %+v", s.Preferences)
	}
	if !s.IsLocked("work_style") {
		t.Fatalf("preference answer must also lock in the ledger")
	}
}

func TestCommitMultiSelectCapsAndDedupes(t *testing.T) {
	s := NewSession("s1")
	if err := s.Commit("motivation", "stability, stability, income, growth"); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	got := s.AnswerList("motivation")
	if len(got) != 2 || got[0] != "stability" || got[1] != "income" {
		t.Fatalf("expected capped deduped list, got %v", got)
	}
}
