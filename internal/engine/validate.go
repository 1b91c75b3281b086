package engine

import (
	"fmt"

	"github.com/avoskres/career-compass/internal/ai"
	"github.com/avoskres/career-compass/internal/interview"
)

const (
	resultAvoidEntries    = 2
	directionWhyBullets   = 3
	maxWorkNowDirections  = 3
	confidenceScoreBottom = 0.0
	confidenceScoreTop    = 1.0
)

// validateProposal soft-schema-checks an advisory proposal. A failure here
// triggers the single repair attempt; a second failure drops the proposal
// entirely in favor of the deterministic path.
func validateProposal(p *ai.Proposal, done bool) error {
	if p == nil {
		return fmt.Errorf("proposal is missing")
	}
	if p.AssistantMessage == "" {
		return fmt.Errorf("assistant_message is empty")
	}
	if p.Phase != "" && !interview.ValidPhase(interview.Phase(p.Phase)) {
		return fmt.Errorf("unknown phase %q", p.Phase)
	}
	if p.ConfidenceScore < confidenceScoreBottom || p.ConfidenceScore > confidenceScoreTop {
		return fmt.Errorf("confidence_score %v out of range", p.ConfidenceScore)
	}

	if p.Done != done {
		return fmt.Errorf("done=%v contradicts the interview state", p.Done)
	}

	if p.Done {
		if p.Question != nil {
			return fmt.Errorf("done=true must not carry a question")
		}
		return validateResult(p.Result)
	}

	if p.Result != nil {
		return fmt.Errorf("result present while done=false")
	}
	if p.Question == nil {
		return fmt.Errorf("done=false requires a question")
	}
	return nil
}

// validateResult enforces the fixed recommendation shape.
func validateResult(r *interview.Result) error {
	if r == nil {
		return fmt.Errorf("done=true requires a result")
	}
	if len(r.WorkNow) < 1 || len(r.WorkNow) > maxWorkNowDirections {
		return fmt.Errorf("work_now must hold 1..%d directions, got %d", maxWorkNowDirections, len(r.WorkNow))
	}
	if len(r.ImproveLater) > maxWorkNowDirections {
		return fmt.Errorf("improve_later must hold at most %d directions, got %d", maxWorkNowDirections, len(r.ImproveLater))
	}
	if len(r.Avoid) != resultAvoidEntries {
		return fmt.Errorf("avoid must hold exactly %d entries, got %d", resultAvoidEntries, len(r.Avoid))
	}
	seen := map[string]bool{}
	for _, entry := range r.Avoid {
		if seen[entry] {
			return fmt.Errorf("duplicate avoid entry %q", entry)
		}
		seen[entry] = true
	}
	for _, list := range [][]interview.Direction{r.WorkNow, r.ImproveLater} {
		for _, d := range list {
			if len(d.Why) != directionWhyBullets {
				return fmt.Errorf("direction %q must carry exactly %d why bullets, got %d", d.ID, directionWhyBullets, len(d.Why))
			}
		}
	}
	return nil
}

// questionConflict reports why a proposed question id must be discarded:
// locked fields are never re-asked, the previously-asked id would loop, and
// classification ids are sealed after the CLASSIFY phase. A conflict does not
// fail the proposal; the sequencer's own question is substituted.
func questionConflict(p *ai.Proposal, state *interview.SessionState, lastAsked string) string {
	if p == nil || p.Question == nil {
		return ""
	}
	id := p.Question.ID
	switch {
	case state.IsLocked(id):
		return "proposed question is already answered"
	case id != "" && id == lastAsked:
		return "proposed question repeats the previous one"
	case state.Phase != interview.PhaseClassify && interview.IsClassificationField(id):
		return "proposed question belongs to the closed classification phase"
	}
	return ""
}
