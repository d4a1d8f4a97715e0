package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"

	"github.com/livebud/cli"
	"github.com/matthewmueller/audit"
	"github.com/matthewmueller/audit/internal/ask"
	"github.com/matthewmueller/audit/internal/env"
	"github.com/matthewmueller/audit/providers/anthropic"
	"github.com/matthewmueller/audit/providers/gemini"
	"github.com/matthewmueller/audit/providers/ollama"
	"github.com/matthewmueller/audit/providers/openai"
)

const version = "1.0.0"

// Providers in the order they're listed
var providers = []string{"openai", "anthropic", "gemini", "ollama"}

var defaultModels = map[string]string{
	"openai":    openai.DefaultModel,
	"anthropic": anthropic.DefaultModel,
	"gemini":    gemini.DefaultModel,
	"ollama":    ollama.DefaultModel,
}

var displayNames = map[string]string{
	"openai":    "OpenAI",
	"anthropic": "Anthropic",
	"gemini":    "Gemini",
}

func New(log *slog.Logger) *CLI {
	c := &CLI{
		log:    log,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Env:    os.Environ(),
		Dir:    ".",
		Asker:  ask.Default(),
	}
	c.Provider = c.provider
	return c
}

type CLI struct {
	log    *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
	Env    []string
	Dir    string
	Asker  ask.Asker
	// Provider connects to a provider by name with the given key
	Provider func(ctx context.Context, name, key string, env *env.Env) (audit.Provider, error)
}

func (c *CLI) Parse(ctx context.Context, args ...string) error {
	cli := cli.New("auditweb3ai", "audit smart contracts with large language models")

	{ // $ auditweb3ai check <file>
		in := new(Check)
		cli := cli.Command("check", "analyze a smart contract")
		cli.Flag("provider", "provider to use").Short('p').Env("AUDIT_PROVIDER").Enum(&in.Provider, providers...).Default("openai")
		cli.Flag("model", "model to use").Short('m').Env("AUDIT_MODEL").Optional().String(&in.Model)
		cli.Flag("format", "output format").Short('f').Env("AUDIT_FORMAT").Enum(&in.Format, audit.Formats...).Default(string(audit.FormatText))
		cli.Flag("strict", "exit with an error when the analysis fails").Env("AUDIT_STRICT").Bool(&in.Strict).Default(false)
		cli.Arg("file", "path to the contract").String(&in.File)
		cli.Run(func(ctx context.Context) error {
			return c.Check(ctx, in)
		})
	}

	{ // $ auditweb3ai models
		in := new(Models)
		cli := cli.Command("models", "list available models")
		cli.Flag("provider", "only list models from this provider").Short('p').Optional().String(&in.Provider)
		cli.Run(func(ctx context.Context) error {
			return c.Models(ctx, in)
		})
	}

	{ // $ auditweb3ai version
		cli := cli.Command("version", "print the version")
		cli.Run(func(ctx context.Context) error {
			fmt.Fprintln(c.Stdout, version)
			return nil
		})
	}

	return cli.Parse(ctx, args...)
}

func (c *CLI) provider(ctx context.Context, name, key string, env *env.Env) (audit.Provider, error) {
	switch name {
	case "openai":
		return openai.New(c.log, &openai.Config{APIKey: key, BaseURL: env.OpenAIBaseURL}), nil
	case "anthropic":
		return anthropic.New(c.log, &anthropic.Config{APIKey: key}), nil
	case "gemini":
		return gemini.New(ctx, c.log, &gemini.Config{APIKey: key})
	case "ollama":
		if env.OllamaHost == "" {
			return ollama.Default(c.log), nil
		}
		host, err := url.Parse(env.OllamaHost)
		if err != nil {
			return nil, fmt.Errorf("cli: unable to parse ollama host: %w", err)
		}
		return ollama.New(c.log, host), nil
	default:
		return nil, fmt.Errorf("cli: unknown provider %q", name)
	}
}

// credential returns the configured key or asks the user for one
func (c *CLI) credential(ctx context.Context, name string, env *env.Env) (string, error) {
	if name == "ollama" {
		return "", nil
	}
	if key := env.Key(name); key != "" {
		return key, nil
	}
	return ask.Required(ctx, c.Asker, fmt.Sprintf("Enter your %s API Key", displayNames[name]))
}
