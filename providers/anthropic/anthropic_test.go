package anthropic_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/matthewmueller/audit"
	"github.com/matthewmueller/audit/internal/env"
	"github.com/matthewmueller/audit/providers/anthropic"
	"github.com/matthewmueller/logs"
)

func loadEnv(t *testing.T) *env.Env {
	t.Helper()
	e, err := env.Load(os.Environ())
	if err != nil {
		t.Fatalf("anthropic: loading env: %v", err)
	}
	if e.AnthropicKey == "" {
		t.Skip("ANTHROPIC_API_KEY not set")
	}
	return e
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestAudit(t *testing.T) {
	e := loadEnv(t)
	is := is.New(t)
	ctx := testContext(t)
	log := logs.Default()

	provider := anthropic.New(log, &anthropic.Config{APIKey: e.AnthropicKey})
	auditor := &audit.Auditor{
		Log:      log,
		Client:   audit.New(log, provider),
		Provider: provider.Name(),
		Model:    anthropic.DefaultModel,
	}
	result, err := auditor.Audit(ctx, `pragma solidity ^0.8.0; contract Counter { uint public n; function inc() public { n++; } }`)
	is.NoErr(err)
	is.True(result.AuditReport != "")
	is.True(len(result.MetricScores) > 0)
}

func TestModels(t *testing.T) {
	e := loadEnv(t)
	is := is.New(t)
	ctx := testContext(t)

	provider := anthropic.New(logs.Default(), &anthropic.Config{APIKey: e.AnthropicKey})
	models, err := provider.Models(ctx)
	is.NoErr(err)
	is.True(len(models) > 0)
	for _, m := range models {
		is.Equal(m.Provider, "anthropic")
		is.True(m.ID != "")
	}
}
