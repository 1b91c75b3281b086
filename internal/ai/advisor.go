package ai

import (
	"context"

	"github.com/avoskres/career-compass/internal/interview"
)

// ProposalRequest carries everything an advisor needs for one proposal call.
// Corrective is empty on the first attempt; the single repair attempt sets it
// to the validation failure so the model can fix its output.
type ProposalRequest struct {
	State     *interview.SessionState
	UserInput string

	// NextQuestion is the deterministically computed next question, nil when
	// the interview is complete. Advisors decorate it; they do not choose it.
	NextQuestion *interview.Question
	Done         bool

	// Corrective is set on the single repair attempt.
	Corrective string
}

// ProposedQuestion is the advisor's suggestion for the next question. Only the
// id is authoritative enough to even consider; the engine re-derives the real
// question and uses the proposal as phrasing at most.
type ProposedQuestion struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

// Proposal is the advisory model's reply, shaped like the engine response. It
// is strictly a proposal: the engine validates it and overrides anything the
// deterministic components disagree with.
type Proposal struct {
	Phase            string            `json:"phase"`
	AssistantMessage string            `json:"assistant_message"`
	Question         *ProposedQuestion `json:"question"`
	Done             bool              `json:"done"`
	ConfidenceScore  float64           `json:"confidence_score"`
	Result           *interview.Result `json:"result"`
	Raw              string            `json:"-"`
}

// Advisor produces response proposals. Implementations must be safe to drop:
// the engine has a deterministic substitute for every call.
type Advisor interface {
	Propose(ctx context.Context, req *ProposalRequest) (*Proposal, error)
}

// Extraction is the outcome of mining free text for structured answers.
type Extraction struct {
	Fields     map[string]any
	Confidence float64
	Raw        string
}

// Extractor proposes field values mined from unstructured text. Returned
// fields are already restricted to the allow-list; the engine still applies
// the confidence threshold and the ledger's locking rule before merging.
type Extractor interface {
	Extract(ctx context.Context, state *interview.SessionState, freeText string) (*Extraction, error)
}
