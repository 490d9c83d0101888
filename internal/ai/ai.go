// Package ai defines the model-collaborator boundary: role-tagged messages,
// generation parameters, and the capability interfaces implemented by the
// live providers and by the deterministic rule-based substitutes.
package ai

import (
	"context"
	"strings"
)

// Role tags a message block handed to a model collaborator.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged text block of a model request.
type Message struct {
	Role    Role
	Content string
}

// GenerationParams are the knobs passed along with every model call.
type GenerationParams struct {
	Temperature float64
	MaxTokens   int
}

// DefaultParams returns the generation parameters used for screening turns.
func DefaultParams() GenerationParams {
	return GenerationParams{Temperature: 0.7, MaxTokens: 500}
}

// Responder produces the next assistant reply for an ordered list of
// role-tagged blocks. Implementations may fail; callers are expected to
// substitute a deterministic response instead of surfacing the error.
type Responder interface {
	Respond(ctx context.Context, messages []Message, params GenerationParams) (string, error)
}

// QuestionGenerator produces an ordered list of technical interview
// questions for a free-text position/tech-stack description.
type QuestionGenerator interface {
	Generate(ctx context.Context, description string, count int) ([]string, error)
}

// LatestUserText returns the content of the last user-tagged message.
func LatestUserText(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// FilterQuestions splits raw model output into lines and keeps only the ones
// that read as questions.
func FilterQuestions(raw string) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, "?") {
			questions = append(questions, line)
		}
	}
	return questions
}
