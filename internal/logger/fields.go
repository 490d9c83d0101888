package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the model provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the model identifier.
	FieldModel = "ai_model"
)

// CommonFields returns standard zap fields describing the model provider and
// model in use. Empty values are omitted to keep log entries compact.
func CommonFields(provider, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if provider = strings.TrimSpace(provider); provider != "" {
		fields = append(fields, zap.String(FieldProvider, provider))
	}
	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}

	return fields
}

// WithCommonFields attaches the common provider fields to the given logger.
// A nil logger is replaced with a no-op logger to avoid panics.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := CommonFields(provider, model)
	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}
