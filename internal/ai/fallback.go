package ai

import (
	"context"

	"go.uber.org/zap"
)

// FallbackResponder tries the live model first and substitutes the
// rule-based responder on any failure. The failure is logged, never
// surfaced: Respond always returns a usable reply.
type FallbackResponder struct {
	live   Responder
	rules  *RuleBasedResponder
	logger *zap.Logger
}

// NewFallbackResponder wraps the live responder. A nil live responder
// selects the rule-based path unconditionally.
func NewFallbackResponder(live Responder, logger *zap.Logger) *FallbackResponder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackResponder{
		live:   live,
		rules:  NewRuleBasedResponder(),
		logger: logger,
	}
}

func (f *FallbackResponder) Respond(ctx context.Context, messages []Message, params GenerationParams) (string, error) {
	if f.live == nil {
		return f.rules.Respond(ctx, messages, params)
	}

	out, err := f.live.Respond(ctx, messages, params)
	if err != nil {
		f.logger.Warn("model call failed, substituting rule-based response", zap.Error(err))
		return f.rules.Respond(ctx, messages, params)
	}
	return out, nil
}

// FallbackGenerator tries the live question generator first and substitutes
// the static question bank when the call fails or yields nothing.
type FallbackGenerator struct {
	live   QuestionGenerator
	static *StaticQuestionGenerator
	logger *zap.Logger
}

// NewFallbackGenerator wraps the live generator. A nil live generator
// selects the static bank unconditionally.
func NewFallbackGenerator(live QuestionGenerator, logger *zap.Logger) *FallbackGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackGenerator{
		live:   live,
		static: NewStaticQuestionGenerator(),
		logger: logger,
	}
}

func (f *FallbackGenerator) Generate(ctx context.Context, description string, count int) ([]string, error) {
	if f.live == nil {
		return f.static.Generate(ctx, description, count)
	}

	questions, err := f.live.Generate(ctx, description, count)
	if err != nil || len(questions) == 0 {
		f.logger.Warn("question generation failed, substituting canned questions", zap.Error(err))
		return f.static.Generate(ctx, description, count)
	}
	return questions, nil
}
