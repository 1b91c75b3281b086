package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/ai"
	"github.com/avoskres/career-compass/internal/interview"
)

type stubGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	return s.reply, s.err
}

func proposalRequest() *ai.ProposalRequest {
	state := interview.NewSession("s1")
	q, _ := interview.LookupQuestion("education")
	return &ai.ProposalRequest{
		State:        state,
		UserInput:    "hello",
		NextQuestion: q,
	}
}

func TestProposeParsesFencedJSON(t *testing.T) {
	gen := &stubGenerator{reply: "```json\n" + `{
		"phase": "CLASSIFY",
		"assistant_message": "  Welcome!  ",
		"question": {"id": "education", "prompt": "Any degree?"},
		"done": false,
		"confidence_score": "0.25"
	}` + "\n```"}
	advisor := NewAdvisor(gen, zap.NewNop(), 0)

	p, err := advisor.Propose(context.Background(), proposalRequest())
	if err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if p.AssistantMessage != "Welcome!" {
		t.Fatalf("message not trimmed: %q", p.AssistantMessage)
	}
	if p.Question == nil || p.Question.ID != "education" {
		t.Fatalf("question lost in decode: %+v", p.Question)
	}
	// Weak typing accepts the score arriving as a string.
	if p.ConfidenceScore != 0.25 {
		t.Fatalf("confidence not coerced: %v", p.ConfidenceScore)
	}
	if p.Raw == "" {
		t.Fatalf("raw reply must be preserved")
	}
}

func TestProposePromptCarriesStateAndQuestion(t *testing.T) {
	gen := &stubGenerator{reply: `{"phase": "CLASSIFY", "assistant_message": "hi"}`}
	advisor := NewAdvisor(gen, zap.NewNop(), 0)

	if _, err := advisor.Propose(context.Background(), proposalRequest()); err != nil {
		t.Fatalf("propose failed: %v", err)
	}

	for _, want := range []string{`"session_id": "s1"`, `"id": "education"`, "hello"} {
		if !strings.Contains(gen.lastPrompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if strings.Contains(gen.lastPrompt, "{{") {
		t.Fatalf("unexpanded template token left in prompt")
	}
}

func TestProposeCorrectiveAppearsInPrompt(t *testing.T) {
	gen := &stubGenerator{reply: `{"phase": "CLASSIFY", "assistant_message": "hi"}`}
	advisor := NewAdvisor(gen, zap.NewNop(), 0)

	req := proposalRequest()
	req.Corrective = "assistant_message was empty"
	if _, err := advisor.Propose(context.Background(), req); err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if !strings.Contains(gen.lastPrompt, "assistant_message was empty") {
		t.Fatalf("corrective note missing from prompt")
	}
}

func TestProposeDonePromptAnnouncesCompletion(t *testing.T) {
	gen := &stubGenerator{reply: `{"phase": "RESULT", "assistant_message": "done", "done": true}`}
	advisor := NewAdvisor(gen, zap.NewNop(), 0)

	req := proposalRequest()
	req.NextQuestion = nil
	req.Done = true
	if _, err := advisor.Propose(context.Background(), req); err != nil {
		t.Fatalf("propose failed: %v", err)
	}
	if !strings.Contains(gen.lastPrompt, "Set done=true") {
		t.Fatalf("completion instruction missing from prompt")
	}
}

func TestProposeSurfacesGeneratorAndParseErrors(t *testing.T) {
	advisor := NewAdvisor(&stubGenerator{err: errors.New("boom")}, zap.NewNop(), 0)
	if _, err := advisor.Propose(context.Background(), proposalRequest()); err == nil {
		t.Fatalf("expected generator error")
	}

	advisor = NewAdvisor(&stubGenerator{reply: "I cannot answer that."}, zap.NewNop(), 0)
	if _, err := advisor.Propose(context.Background(), proposalRequest()); err == nil {
		t.Fatalf("expected parse error on non-JSON reply")
	}
}

func TestProposeRequiresState(t *testing.T) {
	advisor := NewAdvisor(&stubGenerator{}, zap.NewNop(), 0)
	if _, err := advisor.Propose(context.Background(), &ai.ProposalRequest{}); err == nil {
		t.Fatalf("expected error without state")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"stray backticks", "`{\"a\":1}`", `{"a":1}`},
		{"surrounding whitespace", "\n  {\"a\":1}  \n", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.in); got != tc.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
