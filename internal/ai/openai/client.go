// Package openai implements the model collaborator on the official OpenAI
// Go client using the Responses API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/ai"
	"github.com/talentscout/hiring-assistant/internal/logger"
	"github.com/talentscout/hiring-assistant/internal/prompt"
)

const (
	defaultModel = "gpt-4o-mini"

	previewLogLength = 200
)

// Client wraps the official OpenAI client behind the Responder and
// QuestionGenerator interfaces.
type Client struct {
	client openai.Client
	model  string
	logger *zap.Logger
}

// New creates a new Client for the given API key.
func New(apiKey, model string, log *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
		logger: log,
	}, nil
}

// Respond implements ai.Responder. The role-tagged blocks are flattened
// into a single input string for the Responses API.
func (c *Client) Respond(ctx context.Context, messages []ai.Message, params ai.GenerationParams) (string, error) {
	input := flatten(messages)
	if strings.TrimSpace(input) == "" {
		return "", errors.New("request must not be empty")
	}

	c.logger.Debug("openai responses request",
		zap.Int("blocks", len(messages)),
		zap.String("latest_preview", logger.TruncateForLog(ai.LatestUserText(messages), previewLogLength)),
	)

	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           c.model,
		Temperature:     openai.Float(params.Temperature),
		MaxOutputTokens: openai.Int(int64(params.MaxTokens)),
		Input:           responses.ResponseNewParamsInputUnion{OfString: openai.String(input)},
	})
	if err != nil {
		return "", fmt.Errorf("openai responses api: %w", err)
	}
	if resp == nil {
		return "", errors.New("empty response from openai responses api")
	}

	output := strings.TrimSpace(resp.OutputText())
	if output == "" {
		return "", errors.New("openai api returned empty response")
	}

	c.logger.Debug("openai responses response",
		zap.String("response_preview", logger.TruncateForLog(output, previewLogLength)),
	)

	return output, nil
}

// Generate implements ai.QuestionGenerator.
func (c *Client) Generate(ctx context.Context, description string, count int) ([]string, error) {
	out, err := c.Respond(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: prompt.QuestionGeneration(description, count)},
		{Role: ai.RoleUser, Content: "Please provide the questions."},
	}, ai.DefaultParams())
	if err != nil {
		return nil, err
	}

	questions := ai.FilterQuestions(out)
	if len(questions) == 0 {
		return nil, errors.New("openai returned no questions")
	}
	return questions, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}

// flatten renders the blocks as labeled text, user turns unprefixed.
func flatten(messages []ai.Message) string {
	var b strings.Builder
	for _, msg := range messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		switch msg.Role {
		case ai.RoleSystem:
			fmt.Fprintf(&b, "System: %s\n\n", content)
		case ai.RoleAssistant:
			fmt.Fprintf(&b, "Assistant: %s\n\n", content)
		default:
			b.WriteString(content)
		}
	}
	return b.String()
}
