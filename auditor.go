package audit

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Auditor requests one audit and parses the reply
type Auditor struct {
	Log      *slog.Logger
	Client   *Client
	Provider string
	Model    string
	// Raw receives the unparsed response before parsing. Optional.
	Raw io.Writer
}

// Audit sends the contract to the model and parses the structured result
func (a *Auditor) Audit(ctx context.Context, contract string) (*Result, error) {
	req := &Request{
		Model:    a.Model,
		Messages: []*Message{UserMessage(Prompt(contract))},
	}
	res, err := a.Client.Complete(ctx, a.Provider, req)
	if err != nil {
		return nil, fmt.Errorf("audit: requesting completion: %w", err)
	}
	if a.Raw != nil {
		fmt.Fprintln(a.Raw, "Raw API Response:")
		fmt.Fprintln(a.Raw, res.Content)
	}
	return Parse(a.Log, res.Content)
}
