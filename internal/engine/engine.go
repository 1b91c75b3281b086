package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/ai"
	"github.com/avoskres/career-compass/internal/interview"
	"github.com/avoskres/career-compass/internal/recommend"
)

// extractionThreshold is the minimum overall confidence a free-text
// extraction needs before any of its fields are merged.
const extractionThreshold = 0.6

const defaultAdvisoryTimeout = 20 * time.Second

// Engine drives the interview. It is stateless: every call receives the full
// session, mutates a local copy and returns the diff. The advisor and
// extractor are optional; without them every step runs deterministically.
type Engine struct {
	logger    *zap.Logger
	advisor   ai.Advisor
	extractor ai.Extractor
	fallback  staticAdvisor
	timeout   time.Duration
}

// New creates an engine. advisor and extractor may be nil.
func New(logger *zap.Logger, advisor ai.Advisor, extractor ai.Extractor, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = defaultAdvisoryTimeout
	}
	return &Engine{
		logger:    logger,
		advisor:   advisor,
		extractor: extractor,
		timeout:   timeout,
	}
}

// Step processes one interaction: commit the incoming answer, merge free-text
// extractions, advance the phase machine, and build the reply. Given the same
// state and no new answer it returns the same next action.
func (e *Engine) Step(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("request is required")
	}

	before := req.State
	state := before.Clone()
	if state == nil {
		state = interview.NewSession(uuid.NewString())
		e.logger.Info("starting new interview session", zap.String("session_id", state.SessionID))
	}
	if state.Answers == nil {
		state.Answers = map[string]any{}
	}
	if !interview.ValidPhase(state.Phase) {
		state.Phase = interview.PhaseClassify
	}

	lastAsked := state.LastQuestionID

	// A finished session is read-only; replays keep returning the result.
	if state.Phase != interview.PhaseResult {
		e.commitAnswer(state, req)
		e.mergeFreeText(ctx, state, req.FreeText)
	}

	question, err := e.advance(state)
	if err != nil {
		return nil, err
	}
	state.ConfidenceScore = interview.Score(state)
	if question != nil {
		state.LastQuestionID = question.ID
	}

	resp := e.buildResponse(state, question)
	e.decorate(ctx, state, req.UserInput, question, lastAsked, resp)
	resp.StateUpdates = interview.Diff(before, state)

	return resp, nil
}

// commitAnswer writes the incoming answer before any other logic runs. A
// locked or otherwise invalid target refuses the write and logs; the invariant
// that a committed answer is final always wins over incoming input.
func (e *Engine) commitAnswer(state *interview.SessionState, req *Request) {
	id := strings.TrimSpace(req.CurrentQuestionID)
	input := strings.TrimSpace(req.UserInput)
	if id == "" || input == "" {
		return
	}

	if state.Phase != interview.PhaseClassify && interview.IsClassificationField(id) {
		e.logger.Warn("refusing classification answer after phase transition",
			zap.String("session_id", state.SessionID),
			zap.String("field", id),
		)
		return
	}

	if state.IsLocked(id) {
		e.logger.Warn("refusing commit to locked field",
			zap.String("session_id", state.SessionID),
			zap.String("field", id),
		)
		return
	}

	if err := state.Commit(id, input); err != nil {
		e.logger.Warn("answer rejected",
			zap.String("session_id", state.SessionID),
			zap.String("field", id),
			zap.Error(err),
		)
	}
}

// mergeFreeText runs the extractor over optional free text and merges
// allow-listed pairs into unlocked fields when the overall confidence clears
// the threshold. Locked fields are silently dropped: structured answers always
// win over inferred ones.
func (e *Engine) mergeFreeText(ctx context.Context, state *interview.SessionState, freeText string) {
	if e.extractor == nil || strings.TrimSpace(freeText) == "" {
		return
	}

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	extraction, err := e.extractor.Extract(cctx, state, freeText)
	if err != nil {
		e.logger.Warn("free-text extraction failed",
			zap.String("session_id", state.SessionID),
			zap.Error(err),
		)
		return
	}
	if extraction == nil {
		return
	}
	if extraction.Confidence < extractionThreshold {
		e.logger.Debug("discarding low-confidence extraction",
			zap.String("session_id", state.SessionID),
			zap.Float64("confidence", extraction.Confidence),
		)
		return
	}

	for field, value := range extraction.Fields {
		if state.IsLocked(field) {
			e.logger.Debug("dropping extracted value for locked field",
				zap.String("session_id", state.SessionID),
				zap.String("field", field),
			)
			continue
		}
		if err := state.Commit(field, value); err != nil {
			e.logger.Debug("dropping invalid extracted value",
				zap.String("session_id", state.SessionID),
				zap.String("field", field),
				zap.Error(err),
			)
			continue
		}
		e.logger.Info("merged answer from free text",
			zap.String("session_id", state.SessionID),
			zap.String("field", field),
			zap.Float64("confidence", extraction.Confidence),
		)
	}
}

// sessionClassification returns the stored classification snapshot, deriving
// one from the raw answers when the snapshot is missing.
func sessionClassification(state *interview.SessionState) interview.Classification {
	if state.Classification != nil {
		return *state.Classification
	}
	return interview.Classification{
		Education:         state.AnswerString("education"),
		Experience:        state.AnswerString("experience"),
		ExperienceRelated: state.AnswerString("experience_related_to_education"),
	}
}

// advance runs the phase machine until it either finds the next question or
// completes the interview. Transitions are monotonic and fire at most once.
func (e *Engine) advance(state *interview.SessionState) (*interview.Question, error) {
	// A finished session must always carry its result; rebuild it for states
	// that lost it in transit so done=true never ships result=null.
	if state.Phase == interview.PhaseResult && state.Result == nil {
		if !interview.ValidPath(state.Path) {
			classification := sessionClassification(state)
			state.Classification = &classification
			state.Path = interview.ResolvePath(classification)
		}
		result, err := recommend.Build(state, e.logger)
		if err != nil {
			return nil, err
		}
		state.Result = result
		e.logger.Warn("rebuilt missing result for a finished session",
			zap.String("session_id", state.SessionID),
			zap.String("path", string(state.Path)),
		)
	}

	if state.Phase == interview.PhaseClassify {
		if q := interview.NextQuestion(state); q != nil {
			return q, nil
		}

		classification := sessionClassification(state)
		state.Classification = &classification
		state.Path = interview.ResolvePath(classification)
		state.Phase = interview.PhasePath

		e.logger.Info("classification complete",
			zap.String("session_id", state.SessionID),
			zap.String("path", string(state.Path)),
		)
	}

	if state.Phase == interview.PhasePath {
		// Guard against a corrupted round-tripped path. Path immutability is
		// about resolved paths; an unknown value is re-derived, not trusted.
		if !interview.ValidPath(state.Path) {
			classification := sessionClassification(state)
			state.Classification = &classification
			state.Path = interview.ResolvePath(classification)
			e.logger.Warn("re-derived path from classification",
				zap.String("session_id", state.SessionID),
				zap.String("path", string(state.Path)),
			)
		}

		if q := interview.NextQuestion(state); q != nil {
			return q, nil
		}

		// The result gate: no questions left, required fields locked, and
		// confidence over the threshold. All three must hold.
		if !interview.RequiredComplete(state) || !interview.MeetsResultThreshold(interview.Score(state)) {
			// Sequences double as required lists, so an empty sequencer with
			// an open gate is a catalog bug, not a user state.
			return nil, errors.New("sequencer exhausted before the result gate opened")
		}

		result, err := recommend.Build(state, e.logger)
		if err != nil {
			return nil, err
		}
		state.Result = result
		state.Phase = interview.PhaseResult
		state.LastQuestionID = ""

		e.logger.Info("interview complete",
			zap.String("session_id", state.SessionID),
			zap.String("path", string(state.Path)),
			zap.Int("work_now", len(result.WorkNow)),
		)
	}

	return nil, nil
}

// buildResponse assembles the deterministic reply, message included.
func (e *Engine) buildResponse(state *interview.SessionState, question *interview.Question) *Response {
	resp := &Response{
		Phase:           state.Phase,
		Question:        question,
		ConfidenceScore: state.ConfidenceScore,
		StateUpdates:    map[string]any{},
	}
	if state.Path != "" {
		path := state.Path
		resp.Path = &path
	}
	if question != nil {
		resp.AllowFreeText = question.AllowFreeText
	}
	if state.Phase == interview.PhaseResult {
		resp.Done = true
		resp.Result = state.Result
	}

	proposal, _ := e.fallback.Propose(context.Background(), &ai.ProposalRequest{
		State:        state,
		NextQuestion: question,
		Done:         resp.Done,
	})
	resp.AssistantMessage = proposal.AssistantMessage

	return resp
}

// decorate consults the advisory model for user-facing phrasing. The model is
// strictly a decorator: the computed question, result, phase and confidence
// always stand. Schema failures get one repair attempt; after that the
// deterministic message from buildResponse remains in place.
func (e *Engine) decorate(ctx context.Context, state *interview.SessionState, userInput string, question *interview.Question, lastAsked string, resp *Response) {
	if e.advisor == nil {
		return
	}

	req := &ai.ProposalRequest{
		State:        state,
		UserInput:    userInput,
		NextQuestion: question,
		Done:         resp.Done,
	}

	proposal, err := e.propose(ctx, req)
	if err != nil {
		req.Corrective = err.Error()
		proposal, err = e.propose(ctx, req)
	}
	if err != nil {
		e.logger.Warn("advisory model unusable, staying on deterministic reply",
			zap.String("session_id", state.SessionID),
			zap.Error(err),
		)
		return
	}

	if conflict := questionConflict(proposal, state, lastAsked); conflict != "" {
		// A proposal that tried to steer the flow loses its say over phrasing
		// too: its message likely introduces the discarded question.
		e.logger.Debug("discarding proposal with conflicting question",
			zap.String("session_id", state.SessionID),
			zap.String("reason", conflict),
		)
		return
	}

	resp.AssistantMessage = proposal.AssistantMessage
}

func (e *Engine) propose(ctx context.Context, req *ai.ProposalRequest) (*ai.Proposal, error) {
	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	proposal, err := e.advisor.Propose(cctx, req)
	if err != nil {
		return nil, err
	}
	if err := validateProposal(proposal, req.Done); err != nil {
		return nil, err
	}
	return proposal, nil
}
