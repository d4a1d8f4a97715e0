package ollama

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/matthewmueller/audit"
	ollama "github.com/ollama/ollama/api"
)

const DefaultModel = "llama3.2"

func Default(log *slog.Logger) *Client {
	return New(log, &url.URL{
		Scheme: "http",
		Host:   "localhost:11434",
	})
}

// New creates a new Ollama client
func New(log *slog.Logger, url *url.URL) *Client {
	oc := ollama.NewClient(url, http.DefaultClient)
	return &Client{oc, log}
}

// Client implements the audit.Provider interface for Ollama
type Client struct {
	oc  *ollama.Client
	log *slog.Logger
}

var _ audit.Provider = (*Client)(nil)

func (c *Client) Name() string {
	return "ollama"
}

// Models lists locally available models
func (c *Client) Models(ctx context.Context) ([]*audit.Model, error) {
	res, err := c.oc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ollama: listing models: %w", err)
	}
	models := make([]*audit.Model, len(res.Models))
	for i, m := range res.Models {
		models[i] = &audit.Model{
			Provider: "ollama",
			ID:       m.Model,
		}
	}
	return models, nil
}

// Complete sends a single non-streaming chat request to Ollama
func (c *Client) Complete(ctx context.Context, req *audit.Request) (*audit.Response, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("ollama: required model is empty")
	}

	messages := make([]ollama.Message, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = ollama.Message{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	stream := false
	chatReq := &ollama.ChatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   &stream,
	}

	content := new(strings.Builder)
	res := &audit.Response{}
	err := c.oc.Chat(ctx, chatReq, func(resp ollama.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		if resp.Done && (resp.PromptEvalCount > 0 || resp.EvalCount > 0) {
			res.Usage = &audit.Usage{
				InputTokens:  resp.PromptEvalCount,
				OutputTokens: resp.EvalCount,
				TotalTokens:  resp.PromptEvalCount + resp.EvalCount,
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: chat: %w", err)
	}
	res.Content = content.String()
	return res, nil
}
