package audit

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"github.com/matthewmueller/audit/internal/batch"
)

// Message represents a chat message
type Message struct {
	Role    string
	Content string
}

// UserMessage creates a user-role message
func UserMessage(content string) *Message {
	return &Message{Role: "user", Content: content}
}

// Model represents an available model
type Model struct {
	Provider string
	ID       string
}

// Request is a single completion request
type Request struct {
	Model    string
	Messages []*Message
}

// Usage reports token counts for a completion, when the provider returns them
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Response is the text of the first completion choice
type Response struct {
	Content string
	Usage   *Usage
}

// Provider interface
type Provider interface {
	Name() string
	Models(ctx context.Context) ([]*Model, error)
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// Client manages providers
type Client struct {
	log       *slog.Logger
	providers []Provider
}

// New creates a new Client
func New(log *slog.Logger, providers ...Provider) *Client {
	return &Client{log, providers}
}

func findProvider(providers []Provider, name string) (Provider, bool) {
	for _, p := range providers {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Provider finds a configured provider by name
func (c *Client) Provider(name string) (Provider, error) {
	provider, ok := findProvider(c.providers, name)
	if !ok {
		return nil, fmt.Errorf("audit: provider %q not found", name)
	}
	return provider, nil
}

// Complete sends one request to the named provider. Failures are returned
// as-is and never retried.
func (c *Client) Complete(ctx context.Context, provider string, req *Request) (*Response, error) {
	p, err := c.Provider(provider)
	if err != nil {
		return nil, err
	}
	if req.Model == "" {
		return nil, fmt.Errorf("audit: required model is empty")
	}
	res, err := p.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if res.Usage != nil {
		c.log.Debug("audit: completion usage",
			"provider", p.Name(),
			"model", req.Model,
			"input", res.Usage.InputTokens,
			"output", res.Usage.OutputTokens,
		)
	}
	return res, nil
}

// Models returns the available models from all providers, optionally
// filtered by provider name
func (c *Client) Models(ctx context.Context, filter ...string) ([]*Model, error) {
	b, ctx := batch.New[[]*Model](ctx)
	for _, provider := range c.providers {
		if len(filter) > 0 && !slices.Contains(filter, provider.Name()) {
			continue
		}
		b.Go(func() ([]*Model, error) {
			return provider.Models(ctx)
		})
	}
	results, err := b.Wait()
	if err != nil {
		return nil, err
	}
	var models []*Model
	for _, result := range results {
		models = append(models, result...)
	}
	sort.SliceStable(models, func(i, j int) bool {
		if models[i].Provider == models[j].Provider {
			return models[i].ID < models[j].ID
		}
		return models[i].Provider < models[j].Provider
	})
	return models, nil
}
