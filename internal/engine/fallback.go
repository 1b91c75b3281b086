package engine

import (
	"context"

	"github.com/avoskres/career-compass/internal/ai"
	"github.com/avoskres/career-compass/internal/interview"
)

// staticAdvisor is the deterministic implementation of ai.Advisor: fixed
// message templates around the sequencer's question. It can never fail, which
// makes it the guaranteed substitute for the external model.
type staticAdvisor struct{}

func (staticAdvisor) Propose(_ context.Context, req *ai.ProposalRequest) (*ai.Proposal, error) {
	proposal := &ai.Proposal{
		Phase:            string(req.State.Phase),
		Done:             req.Done,
		AssistantMessage: staticMessage(req),
	}
	if req.NextQuestion != nil {
		proposal.Question = &ai.ProposedQuestion{
			ID:     req.NextQuestion.ID,
			Prompt: req.NextQuestion.Prompt,
		}
	}
	return proposal, nil
}

func staticMessage(req *ai.ProposalRequest) string {
	if req.Done {
		return "Thanks for sticking with the questions. Here is the direction that fits your answers best."
	}

	switch req.State.Phase {
	case interview.PhaseClassify:
		if len(req.State.Answers) == 0 {
			return "Welcome! A few quick questions will help find the right starting point for you."
		}
		return "Thanks, noted. One more to place you correctly."
	case interview.PhasePath:
		if req.NextQuestion != nil && interview.IsPreferenceField(req.NextQuestion.ID) {
			return "Almost done. A last optional question to fine-tune the ranking."
		}
		return "Got it. Next question:"
	default:
		return "Let's continue."
	}
}
