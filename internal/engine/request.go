package engine

import "github.com/avoskres/career-compass/internal/interview"

// Request is one interaction from the client. State is the caller-persisted
// session, passed whole; CurrentQuestionID names the question UserInput
// answers and is committed to the ledger before any other logic runs.
type Request struct {
	State             *interview.SessionState `json:"state"`
	UserInput         string                  `json:"user_input"`
	FreeText          string                  `json:"free_text,omitempty"`
	CurrentQuestionID string                  `json:"current_question_id,omitempty"`
}

// Response is the engine's reply. done=false guarantees a concrete question;
// done=true guarantees a result. StateUpdates holds only the session keys
// that changed and must be merged by the caller into its persisted state.
type Response struct {
	Path             *interview.PathID   `json:"path"`
	Phase            interview.Phase     `json:"phase"`
	AssistantMessage string              `json:"assistant_message"`
	Question         *interview.Question `json:"question"`
	AllowFreeText    bool                `json:"allow_free_text"`
	StateUpdates     map[string]any      `json:"state_updates"`
	Done             bool                `json:"done"`
	ConfidenceScore  float64             `json:"confidence_score"`
	Result           *interview.Result   `json:"result"`
}
