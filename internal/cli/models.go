package cli

import (
	"context"
	"fmt"

	"github.com/matthewmueller/audit"
	"github.com/matthewmueller/audit/internal/env"
)

type Models struct {
	Provider *string
}

// configured returns the providers with credentials in the environment
func (c *CLI) configured(ctx context.Context, env *env.Env) (list []audit.Provider, err error) {
	for _, name := range providers {
		key := env.Key(name)
		if name == "ollama" && env.OllamaHost == "" {
			continue
		} else if name != "ollama" && key == "" {
			continue
		}
		provider, err := c.Provider(ctx, name, key, env)
		if err != nil {
			return nil, err
		}
		list = append(list, provider)
	}
	return list, nil
}

// Models lists available models
func (c *CLI) Models(ctx context.Context, in *Models) error {
	env, err := env.Load(c.Env)
	if err != nil {
		return fmt.Errorf("cli: unable to load env: %w", err)
	}

	list, err := c.configured(ctx, env)
	if err != nil {
		return fmt.Errorf("cli: unable to load providers: %w", err)
	}
	if len(list) == 0 {
		return fmt.Errorf("cli: no providers configured")
	}

	client := audit.New(c.log, list...)

	filter := []string{}
	if in.Provider != nil {
		if _, err := client.Provider(*in.Provider); err != nil {
			return fmt.Errorf("cli: %q is not configured", *in.Provider)
		}
		filter = append(filter, *in.Provider)
	}

	models, err := client.Models(ctx, filter...)
	if err != nil {
		return fmt.Errorf("cli: listing models: %w", err)
	}

	for _, m := range models {
		fmt.Fprintf(c.Stdout, "%s %s\n", m.Provider, m.ID)
	}
	return nil
}
