package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/livebud/color"
	"github.com/matthewmueller/audit"
	"github.com/matthewmueller/audit/internal/contract"
	"github.com/matthewmueller/audit/internal/env"
)

type Check struct {
	File     string
	Provider string
	Model    *string
	Format   string
	Strict   bool
}

// Check audits a single contract file. Input errors are returned. Analysis
// errors are logged and swallowed unless Strict is set.
func (c *CLI) Check(ctx context.Context, in *Check) error {
	env, err := env.Load(c.Env)
	if err != nil {
		return fmt.Errorf("cli: unable to load env: %w", err)
	}

	key, err := c.credential(ctx, in.Provider, env)
	if err != nil {
		return fmt.Errorf("cli: unable to get api key: %w", err)
	}

	path, err := contract.Resolve(c.Dir, in.File)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout, "Checking file at path:%s\n", path)

	src, err := contract.Load(path)
	if err != nil {
		return err
	}

	provider, err := c.Provider(ctx, in.Provider, key, env)
	if err != nil {
		return fmt.Errorf("cli: unable to load provider: %w", err)
	}

	model := defaultModels[in.Provider]
	if in.Model != nil && *in.Model != "" {
		model = *in.Model
	}

	if err := c.analyze(ctx, provider, model, audit.Format(in.Format), src); err != nil {
		if in.Strict {
			return fmt.Errorf("cli: analysis failed: %w", err)
		}
		c.log.Error("Err during analysis", "err", err)
	}
	return nil
}

func (c *CLI) analyze(ctx context.Context, provider audit.Provider, model string, format audit.Format, src *contract.Source) error {
	fmt.Fprintln(c.Stderr, color.Dim(provider.Name()+" "+model))

	// Keep stdout parseable for the structured formats
	var raw io.Writer = c.Stdout
	if format == audit.FormatJSON || format == audit.FormatMarkdown {
		raw = c.Stderr
	}

	auditor := &audit.Auditor{
		Log:      c.log,
		Client:   audit.New(c.log, provider),
		Provider: provider.Name(),
		Model:    model,
		Raw:      raw,
	}
	result, err := auditor.Audit(ctx, src.Text)
	if err != nil {
		return err
	}
	return audit.Render(c.Stdout, result, format)
}
