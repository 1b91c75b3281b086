package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/avoskres/career-compass/internal/ai"
	"github.com/avoskres/career-compass/internal/interview"
	"github.com/avoskres/career-compass/internal/logger"
)

//go:embed extract_prompt.md
var extractTemplate string

// Extractor mines free text for allow-listed structured answers via Gemini.
type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

// NewExtractor wires a content generator into the extraction role.
func NewExtractor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	return &Extractor{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

type extractionReply struct {
	Fields     map[string]any `json:"fields"`
	Confidence any            `json:"confidence"`
}

// Extract asks the model for field/value pairs found in the free text. The
// reply is filtered down to currently unlocked catalog fields with valid
// values; everything else is dropped before the engine even sees it.
func (e *Extractor) Extract(ctx context.Context, state *interview.SessionState, freeText string) (*ai.Extraction, error) {
	if state == nil {
		return nil, fmt.Errorf("session state is required")
	}
	freeText = strings.TrimSpace(freeText)
	if freeText == "" {
		return &ai.Extraction{Fields: map[string]any{}}, nil
	}

	allowed := allowedFields(state)
	if len(allowed) == 0 {
		return &ai.Extraction{Fields: map[string]any{}}, nil
	}

	prompt, err := buildExtractPrompt(allowed, freeText)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini extraction request",
		zap.String("session_id", state.SessionID),
		zap.Int("allowed_fields", len(allowed)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("gemini extraction response",
		zap.String("session_id", state.SessionID),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	var reply extractionReply
	if err := decodeLoose(raw, &reply); err != nil {
		return nil, err
	}

	confidence := coerceFloat(reply.Confidence)
	if math.IsNaN(confidence) {
		confidence = 0
	}

	fields := map[string]any{}
	for id, value := range reply.Fields {
		q, ok := interview.LookupQuestion(id)
		if !ok || interview.IsClassificationField(id) {
			continue
		}
		normalized, err := q.NormalizeAnswer(value)
		if err != nil {
			e.logger.Debug("dropping extracted value",
				zap.String("field", id),
				zap.Error(err),
			)
			continue
		}
		fields[id] = normalized
	}

	return &ai.Extraction{
		Fields:     fields,
		Confidence: confidence,
		Raw:        raw,
	}, nil
}

// allowedFields lists every unlocked non-classification catalog field with its
// legal values for the prompt.
func allowedFields(state *interview.SessionState) []*interview.Question {
	var out []*interview.Question
	for _, id := range interview.QuestionIDs() {
		if interview.IsClassificationField(id) {
			continue
		}
		if state.IsLocked(id) {
			continue
		}
		if q, ok := interview.LookupQuestion(id); ok {
			out = append(out, q)
		}
	}
	return out
}

func buildExtractPrompt(allowed []*interview.Question, freeText string) (string, error) {
	type promptField struct {
		ID          string   `json:"id"`
		Cardinality string   `json:"cardinality"`
		Values      []string `json:"values"`
	}

	fields := make([]promptField, 0, len(allowed))
	for _, q := range allowed {
		values := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			values = append(values, opt.Value)
		}
		fields = append(fields, promptField{
			ID:          q.ID,
			Cardinality: q.Cardinality,
			Values:      values,
		})
	}

	fieldsJSON, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal allowed fields: %w", err)
	}

	prompt := extractTemplate
	prompt = strings.ReplaceAll(prompt, "{{ALLOWED_FIELDS}}", string(fieldsJSON))
	prompt = strings.ReplaceAll(prompt, "{{FREE_TEXT}}", freeText)
	return prompt, nil
}
