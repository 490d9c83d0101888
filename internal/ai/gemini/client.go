// Package gemini implements the model collaborator on the Google GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/talentscout/hiring-assistant/internal/ai"
	"github.com/talentscout/hiring-assistant/internal/logger"
	"github.com/talentscout/hiring-assistant/internal/prompt"
)

const (
	defaultModel = "gemini-2.5-flash"

	previewLogLength = 200
)

// Client wraps the Google GenAI client behind the Responder and
// QuestionGenerator interfaces.
type Client struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// New creates a new Client configured for the Gemini API backend.
func New(ctx context.Context, apiKey, model string, log *zap.Logger) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Client{client: client, model: model, logger: log}, nil
}

// Respond implements ai.Responder: the system blocks become the system
// instruction, the remaining turns the conversation contents.
func (c *Client) Respond(ctx context.Context, messages []ai.Message, params ai.GenerationParams) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}

	var systemParts []*genai.Part
	var contents []*genai.Content

	for _, msg := range messages {
		text := strings.TrimSpace(msg.Content)
		if text == "" {
			continue
		}

		switch msg.Role {
		case ai.RoleSystem:
			systemParts = append(systemParts, &genai.Part{Text: text})
		case ai.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: text}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: text}},
			})
		}
	}

	if len(contents) == 0 {
		return "", errors.New("at least one user turn is required")
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(params.Temperature)),
		MaxOutputTokens: int32(params.MaxTokens),
	}
	if len(systemParts) > 0 {
		cfg.SystemInstruction = &genai.Content{Parts: systemParts}
	}

	c.logger.Debug("gemini generate content request",
		zap.Int("blocks", len(messages)),
		zap.String("latest_preview", logger.TruncateForLog(ai.LatestUserText(messages), previewLogLength)),
	)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	output := collectText(resp)
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	c.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
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
		return nil, errors.New("gemini returned no questions")
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

func collectText(resp *genai.GenerateContentResponse) string {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}
