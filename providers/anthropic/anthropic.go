package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/matthewmueller/audit"
)

const DefaultModel = "claude-3-5-haiku-latest"

// maxTokens bounds the reply. Audit reports are long.
const maxTokens = 4096

// Config for the Anthropic provider
type Config struct {
	APIKey  string
	BaseURL string
}

// New creates a new Anthropic client
func New(log *slog.Logger, config *Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}
	ac := anthropic.NewClient(opts...)
	return &Client{&ac, log}
}

// Client implements the audit.Provider interface for Anthropic
type Client struct {
	ac  *anthropic.Client
	log *slog.Logger
}

var _ audit.Provider = (*Client)(nil)

func (c *Client) Name() string {
	return "anthropic"
}

// Models lists available models
func (c *Client) Models(ctx context.Context) (models []*audit.Model, err error) {
	page, err := c.ac.Models.List(ctx, anthropic.ModelListParams{})
	if err != nil {
		return nil, fmt.Errorf("anthropic: listing models: %w", err)
	}
	for _, model := range page.Data {
		models = append(models, &audit.Model{
			Provider: "anthropic",
			ID:       model.ID,
		})
	}
	return models, nil
}

// Complete sends a message request to Anthropic
func (c *Client) Complete(ctx context.Context, req *audit.Request) (*audit.Response, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("anthropic: required model is empty")
	}

	// System messages travel outside the message list
	var system []anthropic.TextBlockParam
	var messages []anthropic.MessageParam
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case "user":
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case "assistant":
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			return nil, fmt.Errorf("anthropic: unsupported role %q", m.Role)
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: maxTokens,
		Messages:  messages,
	}
	if len(system) > 0 {
		params.System = system
	}

	msg, err := c.ac.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: creating message: %w", err)
	}

	content := new(strings.Builder)
	for _, block := range msg.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	return &audit.Response{
		Content: content.String(),
		Usage: &audit.Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
			TotalTokens:  int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}
