package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matthewmueller/audit"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// Config for the Gemini provider
type Config struct {
	APIKey  string
	BaseURL string
}

// New creates a new Gemini client
func New(ctx context.Context, log *slog.Logger, config *Config) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: config.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return &Client{gc, log}, nil
}

// Client implements the audit.Provider interface for Gemini
type Client struct {
	gc  *genai.Client
	log *slog.Logger
}

var _ audit.Provider = (*Client)(nil)

func (c *Client) Name() string {
	return "gemini"
}

// Models lists available models
func (c *Client) Models(ctx context.Context) (models []*audit.Model, err error) {
	for model, err := range c.gc.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("gemini: listing models: %w", err)
		}
		models = append(models, &audit.Model{
			Provider: "gemini",
			ID:       model.Name,
		})
	}
	return models, nil
}

func toContents(messages []*audit.Message) (contents []*genai.Content, system *genai.Content, err error) {
	for _, m := range messages {
		switch m.Role {
		case "system":
			system = genai.NewContentFromText(m.Content, genai.RoleUser)
		case "user":
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		case "assistant":
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			return nil, nil, fmt.Errorf("gemini: unsupported role %q", m.Role)
		}
	}
	return contents, system, nil
}

// Complete generates content with Gemini
func (c *Client) Complete(ctx context.Context, req *audit.Request) (*audit.Response, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("gemini: required model is empty")
	}
	contents, system, err := toContents(req.Messages)
	if err != nil {
		return nil, err
	}
	config := &genai.GenerateContentConfig{}
	if system != nil {
		config.SystemInstruction = system
	}

	resp, err := c.gc.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini: generating content: %w", err)
	}

	res := &audit.Response{
		Content: resp.Text(),
	}
	if usage := resp.UsageMetadata; usage != nil {
		res.Usage = &audit.Usage{
			InputTokens:  int(usage.PromptTokenCount),
			OutputTokens: int(usage.CandidatesTokenCount + usage.ThoughtsTokenCount),
			TotalTokens:  int(usage.TotalTokenCount),
		}
	}
	return res, nil
}
