package engine

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/ai"
	"github.com/avoskres/career-compass/internal/interview"
)

type stubAdvisor struct {
	proposals []*ai.Proposal
	requests  []*ai.ProposalRequest
}

func (s *stubAdvisor) Propose(_ context.Context, req *ai.ProposalRequest) (*ai.Proposal, error) {
	s.requests = append(s.requests, req)
	if len(s.proposals) == 0 {
		return &ai.Proposal{}, nil
	}
	p := s.proposals[0]
	if len(s.proposals) > 1 {
		s.proposals = s.proposals[1:]
	}
	return p, nil
}

type stubExtractor struct {
	extraction *ai.Extraction
	called     bool
}

func (s *stubExtractor) Extract(_ context.Context, _ *interview.SessionState, _ string) (*ai.Extraction, error) {
	s.called = true
	return s.extraction, nil
}

func newEngine(advisor ai.Advisor, extractor ai.Extractor) *Engine {
	return New(zap.NewNop(), advisor, extractor, time.Second)
}

func TestStepStartsNewSession(t *testing.T) {
	eng := newEngine(nil, nil)

	resp, err := eng.Step(context.Background(), &Request{})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if resp.Phase != interview.PhaseClassify {
		t.Fatalf("expected CLASSIFY, got %s", resp.Phase)
	}
	if resp.Question == nil || resp.Question.ID != "education" {
		t.Fatalf("expected the education question first, got %+v", resp.Question)
	}
	if resp.Done {
		t.Fatalf("fresh session must not be done")
	}
	if resp.AssistantMessage == "" {
		t.Fatalf("assistant message must never be empty")
	}
	if resp.StateUpdates["session_id"] == "" {
		t.Fatalf("new session id missing from state updates: %v", resp.StateUpdates)
	}
}

func TestFullDeterministicInterview(t *testing.T) {
	eng := newEngine(nil, nil)

	var state *interview.SessionState
	var resp *Response
	var err error

	req := &Request{}
	for i := 0; i < 30; i++ {
		resp, err = eng.Step(context.Background(), req)
		if err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
		state, err = interview.MergeUpdates(state, resp.StateUpdates)
		if err != nil {
			t.Fatalf("merge %d failed: %v", i, err)
		}
		if resp.Done {
			break
		}
		if resp.Question == nil {
			t.Fatalf("step %d: done=false without a question", i)
		}
		req = &Request{
			State:             state,
			UserInput:         resp.Question.Options[0].Value,
			CurrentQuestionID: resp.Question.ID,
		}
	}

	if !resp.Done {
		t.Fatalf("interview never completed")
	}
	if resp.Phase != interview.PhaseResult {
		t.Fatalf("expected RESULT phase, got %s", resp.Phase)
	}
	if resp.Result == nil || len(resp.Result.WorkNow) == 0 {
		t.Fatalf("done=true without a usable result: %+v", resp.Result)
	}
	if len(resp.Result.Avoid) != 2 {
		t.Fatalf("avoid must hold exactly 2 entries, got %v", resp.Result.Avoid)
	}
	if resp.ConfidenceScore < interview.ResultThreshold {
		t.Fatalf("completed with confidence %v below threshold", resp.ConfidenceScore)
	}
	// First-option classification answers are yes/yes/related.
	if resp.Path == nil || *resp.Path != interview.PathBuilder {
		t.Fatalf("expected the builder path, got %v", resp.Path)
	}
}

func TestStepIsIdempotentWithoutNewInput(t *testing.T) {
	eng := newEngine(nil, nil)

	first, err := eng.Step(context.Background(), &Request{})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	state, err := interview.MergeUpdates(nil, first.StateUpdates)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		resp, err := eng.Step(context.Background(), &Request{State: state})
		if err != nil {
			t.Fatalf("replay %d failed: %v", i, err)
		}
		if resp.Question == nil || resp.Question.ID != first.Question.ID {
			t.Fatalf("replay %d changed the question: %+v", i, resp.Question)
		}
		if len(resp.StateUpdates) != 0 {
			t.Fatalf("replay %d mutated state: %v", i, resp.StateUpdates)
		}
	}
}

func TestClassificationSealedAfterTransition(t *testing.T) {
	eng := newEngine(nil, nil)

	state := interview.NewSession("s1")
	mustCommit(t, state, "education", "no")
	mustCommit(t, state, "experience", "no")
	state.Phase = interview.PhasePath
	state.Path = interview.PathFreshStart
	state.Classification = &interview.Classification{Education: "no", Experience: "no"}

	resp, err := eng.Step(context.Background(), &Request{
		State:             state,
		UserInput:         "yes",
		CurrentQuestionID: "education",
	})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if _, ok := resp.StateUpdates["answers"]; ok {
		t.Fatalf("sealed classification answer was rewritten: %v", resp.StateUpdates)
	}
	if resp.Question == nil || interview.IsClassificationField(resp.Question.ID) {
		t.Fatalf("expected a path question, got %+v", resp.Question)
	}
}

func TestLockedAnswerIsFinal(t *testing.T) {
	eng := newEngine(nil, nil)

	state := interview.NewSession("s1")
	state.Phase = interview.PhasePath
	state.Path = interview.PathFreshStart
	mustCommit(t, state, "physical_ability", "no_limitations")

	resp, err := eng.Step(context.Background(), &Request{
		State:             state,
		UserInput:         "health_limitations",
		CurrentQuestionID: "physical_ability",
	})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	merged, err := interview.MergeUpdates(state, resp.StateUpdates)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged.AnswerString("physical_ability") != "no_limitations" {
		t.Fatalf("locked answer overwritten: %v", merged.Answers)
	}
}

func TestExtractionMergeRespectsLocksAndThreshold(t *testing.T) {
	ext := &stubExtractor{extraction: &ai.Extraction{
		Fields: map[string]any{
			"physical_ability": "health_limitations",
			"work_environment": []string{"office"},
		},
		Confidence: 0.9,
	}}
	eng := newEngine(nil, ext)

	state := interview.NewSession("s1")
	state.Phase = interview.PhasePath
	state.Path = interview.PathFreshStart
	mustCommit(t, state, "physical_ability", "no_limitations")

	resp, err := eng.Step(context.Background(), &Request{
		State:    state,
		FreeText: "my back is bad, I want an office job",
	})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if !ext.called {
		t.Fatalf("extractor never consulted")
	}

	merged, err := interview.MergeUpdates(state, resp.StateUpdates)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged.AnswerString("physical_ability") != "no_limitations" {
		t.Fatalf("extraction overwrote a locked answer: %v", merged.Answers)
	}
	if !merged.AnswerHas("work_environment", "office") {
		t.Fatalf("high-confidence extraction for an unlocked field was dropped: %v", merged.Answers)
	}
}

func TestLowConfidenceExtractionDiscarded(t *testing.T) {
	ext := &stubExtractor{extraction: &ai.Extraction{
		Fields:     map[string]any{"work_environment": []string{"office"}},
		Confidence: 0.5,
	}}
	eng := newEngine(nil, ext)

	state := interview.NewSession("s1")
	state.Phase = interview.PhasePath
	state.Path = interview.PathFreshStart

	resp, err := eng.Step(context.Background(), &Request{
		State:    state,
		FreeText: "maybe an office",
	})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	merged, err := interview.MergeUpdates(state, resp.StateUpdates)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if _, ok := merged.Answers["work_environment"]; ok {
		t.Fatalf("low-confidence extraction merged: %v", merged.Answers)
	}
}

func TestAdvisorDecoratesMessageOnly(t *testing.T) {
	advisor := &stubAdvisor{proposals: []*ai.Proposal{{
		Phase:            string(interview.PhaseClassify),
		AssistantMessage: "Custom phrasing from the model.",
		Question:         &ai.ProposedQuestion{ID: "motivation"},
	}}}
	eng := newEngine(advisor, nil)

	resp, err := eng.Step(context.Background(), &Request{})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if resp.AssistantMessage != "Custom phrasing from the model." {
		t.Fatalf("valid proposal message not used: %q", resp.AssistantMessage)
	}
	// The model tried to steer toward a different question; the sequencer's
	// choice stands.
	if resp.Question == nil || resp.Question.ID != "education" {
		t.Fatalf("proposed question leaked into the response: %+v", resp.Question)
	}
}

func TestConflictingProposalLosesItsPhrasing(t *testing.T) {
	advisor := &stubAdvisor{proposals: []*ai.Proposal{{
		Phase:            string(interview.PhaseClassify),
		AssistantMessage: "Back to your education for a second.",
		Question:         &ai.ProposedQuestion{ID: "education"},
	}}}
	eng := newEngine(advisor, nil)

	state := interview.NewSession("s1")
	mustCommit(t, state, "education", "no")

	resp, err := eng.Step(context.Background(), &Request{State: state})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	// The proposal re-asks an answered question; its message goes with it.
	if resp.AssistantMessage == "Back to your education for a second." {
		t.Fatalf("conflicting proposal kept its say over phrasing")
	}
	if resp.AssistantMessage == "" {
		t.Fatalf("deterministic message must remain in place")
	}
	if resp.Question == nil || resp.Question.ID != "experience" {
		t.Fatalf("expected the sequencer's question, got %+v", resp.Question)
	}
}

func TestAdvisorRepairedOnceThenUsed(t *testing.T) {
	advisor := &stubAdvisor{proposals: []*ai.Proposal{
		{AssistantMessage: ""}, // rejected: empty message
		{
			AssistantMessage: "Second try.",
			Question:         &ai.ProposedQuestion{ID: "education"},
		},
	}}
	eng := newEngine(advisor, nil)

	resp, err := eng.Step(context.Background(), &Request{})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if len(advisor.requests) != 2 {
		t.Fatalf("expected exactly one repair attempt, got %d calls", len(advisor.requests))
	}
	if advisor.requests[0].Corrective != "" {
		t.Fatalf("first attempt must not carry a corrective")
	}
	if advisor.requests[1].Corrective == "" {
		t.Fatalf("repair attempt must carry the validation failure")
	}
	if resp.AssistantMessage != "Second try." {
		t.Fatalf("repaired proposal not used: %q", resp.AssistantMessage)
	}
}

func TestAdvisorDoubleFailureFallsBackDeterministically(t *testing.T) {
	advisor := &stubAdvisor{proposals: []*ai.Proposal{
		{AssistantMessage: ""},
		{AssistantMessage: ""},
	}}
	eng := newEngine(advisor, nil)

	resp, err := eng.Step(context.Background(), &Request{})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if len(advisor.requests) != 2 {
		t.Fatalf("expected exactly two attempts, got %d", len(advisor.requests))
	}
	if resp.AssistantMessage == "" {
		t.Fatalf("deterministic message must survive advisory failure")
	}
	if resp.Question == nil || resp.Question.ID != "education" {
		t.Fatalf("deterministic question lost: %+v", resp.Question)
	}
}

func TestFinishedSessionReplaysResult(t *testing.T) {
	eng := newEngine(nil, nil)

	state := interview.NewSession("s1")
	state.Phase = interview.PhaseResult
	state.Path = interview.PathFreshStart
	state.ConfidenceScore = 1
	state.Result = &interview.Result{
		Summary:  "done",
		WorkNow:  []interview.Direction{{ID: "warehouse_operations", Title: "Warehouse", Why: []string{"a", "b", "c"}}},
		Avoid:    []string{"x", "y"},
		NextStep: "apply",
	}

	resp, err := eng.Step(context.Background(), &Request{
		State:             state,
		UserInput:         "yes",
		CurrentQuestionID: "education",
	})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if !resp.Done || resp.Result == nil {
		t.Fatalf("finished session must replay its result")
	}
	if resp.Question != nil {
		t.Fatalf("finished session must not ask questions, got %+v", resp.Question)
	}
	if _, ok := resp.StateUpdates["answers"]; ok {
		t.Fatalf("finished session accepted an answer: %v", resp.StateUpdates)
	}
}

func TestFinishedSessionWithMissingResultRebuildsIt(t *testing.T) {
	eng := newEngine(nil, nil)

	state := interview.NewSession("s1")
	state.Phase = interview.PhaseResult
	state.Path = interview.PathFreshStart
	state.ConfidenceScore = 1
	mustCommit(t, state, "physical_ability", "no_limitations")
	mustCommit(t, state, "work_environment", []string{"warehouse"})

	resp, err := eng.Step(context.Background(), &Request{State: state})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if !resp.Done || resp.Result == nil {
		t.Fatalf("done=true must always carry a result, got %+v", resp)
	}
	if len(resp.Result.WorkNow) == 0 || len(resp.Result.Avoid) != 2 {
		t.Fatalf("rebuilt result has a broken shape: %+v", resp.Result)
	}
	if _, ok := resp.StateUpdates["result"]; !ok {
		t.Fatalf("rebuilt result missing from state updates: %v", resp.StateUpdates)
	}
}

func TestFreeTextFlagFollowsQuestion(t *testing.T) {
	eng := newEngine(nil, nil)

	state := interview.NewSession("s1")
	state.Phase = interview.PhasePath
	state.Path = interview.PathBuilder

	resp, err := eng.Step(context.Background(), &Request{State: state})
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if resp.Question == nil || resp.Question.ID != "education_field" {
		t.Fatalf("expected education_field first on the builder path, got %+v", resp.Question)
	}
	if !resp.AllowFreeText {
		t.Fatalf("education_field accepts free text, flag not set")
	}
}

func mustCommit(t *testing.T, s *interview.SessionState, field string, value any) {
	t.Helper()
	if err := s.Commit(field, value); err != nil {
		t.Fatalf("commit %s: %v", field, err)
	}
}
