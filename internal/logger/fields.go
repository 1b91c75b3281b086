package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the advisory provider.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the advisory model.
	FieldModel = "ai_model"
)

// AIFields returns the standard fields describing the advisory backend,
// omitting empty values to keep entries compact.
func AIFields(provider, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if provider = strings.TrimSpace(provider); provider != "" {
		fields = append(fields, zap.String(FieldProvider, provider))
	}
	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}
	return fields
}

// WithAIFields attaches the advisory fields to the logger, defaulting to a
// no-op logger when nil to avoid panics in optional wiring.
func WithAIFields(logger *zap.Logger, provider, model string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	fields := AIFields(provider, model)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}
