package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/ai"
	"github.com/avoskres/career-compass/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var proposalTemplate string

const defaultMaxLogLength = 200

// Advisor asks Gemini to phrase the next interview step. It implements
// ai.Advisor and is always overridable by the deterministic engine.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewAdvisor wires a content generator into the advisory role.
func NewAdvisor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Advisor{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Propose sends the session to Gemini and parses its reply into a proposal.
func (a *Advisor) Propose(ctx context.Context, req *ai.ProposalRequest) (*ai.Proposal, error) {
	if req == nil || req.State == nil {
		return nil, fmt.Errorf("proposal request with state is required")
	}

	prompt, err := buildProposalPrompt(req)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini proposal request",
		zap.String("session_id", req.State.SessionID),
		zap.String("phase", string(req.State.Phase)),
		zap.Bool("corrective", req.Corrective != ""),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini proposal response",
		zap.String("session_id", req.State.SessionID),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	var proposal ai.Proposal
	if err := decodeLoose(raw, &proposal); err != nil {
		return nil, err
	}
	proposal.AssistantMessage = strings.TrimSpace(proposal.AssistantMessage)
	proposal.Raw = raw

	return &proposal, nil
}

func buildProposalPrompt(req *ai.ProposalRequest) (string, error) {
	stateJSON, err := json.MarshalIndent(req.State, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal session state: %w", err)
	}

	next := "The interview is complete. Set done=true and question=null."
	if req.NextQuestion != nil {
		questionJSON, err := json.MarshalIndent(req.NextQuestion, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal next question: %w", err)
		}
		next = string(questionJSON)
	}

	corrective := ""
	if req.Corrective != "" {
		corrective = "[Correction]\nYour previous reply was rejected: " + req.Corrective +
			"\nReturn a corrected JSON object that follows every rule above."
	}

	prompt := proposalTemplate
	prompt = strings.ReplaceAll(prompt, "{{STATE_JSON}}", string(stateJSON))
	prompt = strings.ReplaceAll(prompt, "{{USER_INPUT}}", strings.TrimSpace(req.UserInput))
	prompt = strings.ReplaceAll(prompt, "{{NEXT_QUESTION}}", next)
	prompt = strings.ReplaceAll(prompt, "{{CORRECTIVE}}", corrective)

	return prompt, nil
}
