package env

import (
	env11 "github.com/caarlos0/env/v11"
)

// Env holds environment configuration for the audit providers
type Env struct {
	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	AnthropicKey  string `env:"ANTHROPIC_API_KEY"`
	GeminiKey     string `env:"GEMINI_API_KEY"`
	OllamaHost    string `env:"OLLAMA_HOST"`
}

// Load reads the environment from KEY=VALUE pairs, typically os.Environ()
func Load(environ []string) (*Env, error) {
	env := new(Env)
	if err := env11.ParseWithOptions(env, env11.Options{
		Environment: env11.ToMap(environ),
	}); err != nil {
		return nil, err
	}
	return env, nil
}

// Key returns the configured API key for a provider
func (e *Env) Key(provider string) string {
	switch provider {
	case "openai":
		return e.OpenAIKey
	case "anthropic":
		return e.AnthropicKey
	case "gemini":
		return e.GeminiKey
	default:
		return ""
	}
}
