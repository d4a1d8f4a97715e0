package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matthewmueller/audit"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is the model tier audits use unless told otherwise
const DefaultModel = "gpt-3.5-turbo"

// Config for the OpenAI provider
type Config struct {
	APIKey string
	// BaseURL points at an OpenAI-compatible endpoint. Optional.
	BaseURL string
}

// New creates a new OpenAI client
func New(log *slog.Logger, config *Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	oc := openai.NewClient(opts...)
	return &Client{&oc, log}
}

// Client implements the audit.Provider interface for OpenAI
type Client struct {
	oc  *openai.Client
	log *slog.Logger
}

var _ audit.Provider = (*Client)(nil)

func (c *Client) Name() string {
	return "openai"
}

// Models lists available models
func (c *Client) Models(ctx context.Context) ([]*audit.Model, error) {
	page, err := c.oc.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("openai: listing models: %w", err)
	}
	var models []*audit.Model
	for _, m := range page.Data {
		models = append(models, &audit.Model{
			Provider: "openai",
			ID:       m.ID,
		})
	}
	return models, nil
}

// Complete sends a chat completion request to OpenAI
func (c *Client) Complete(ctx context.Context, req *audit.Request) (*audit.Response, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("openai: required model is empty")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case "user":
			messages = append(messages, openai.UserMessage(m.Content))
		case "assistant":
			messages = append(messages, openai.AssistantMessage(m.Content))
		case "system":
			messages = append(messages, openai.SystemMessage(m.Content))
		default:
			return nil, fmt.Errorf("openai: unsupported role %q", m.Role)
		}
	}

	completion, err := c.oc.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: creating completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai: completion has no choices")
	}

	res := &audit.Response{
		Content: completion.Choices[0].Message.Content,
	}
	if completion.Usage.TotalTokens > 0 {
		res.Usage = &audit.Usage{
			InputTokens:  int(completion.Usage.PromptTokens),
			OutputTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:  int(completion.Usage.TotalTokens),
		}
	}
	return res, nil
}
