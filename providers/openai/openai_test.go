package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/matthewmueller/audit"
	"github.com/matthewmueller/audit/providers/openai"
)

const fenced = "Sure! ```json\n{\"auditReport\":\"ok\",\"metricScores\":[{\"metric\":\"Security\",\"score\":7}],\"suggestionsForImprovement\":\"add tests\"}\n```"

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func completion(content string) string {
	data, _ := json.Marshal(content)
	return `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 1700000000,
		"model": "gpt-3.5-turbo",
		"choices": [{
			"index": 0,
			"message": {"role": "assistant", "content": ` + string(data) + `},
			"finish_reason": "stop",
			"logprobs": null
		}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30}
	}`
}

func testServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/completions", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
			return
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Model != openai.DefaultModel || len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			http.Error(w, "unexpected request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completion(content))
	})
	mux.HandleFunc("GET /models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"object":"list","data":[{"id":"gpt-3.5-turbo","object":"model","created":1,"owned_by":"openai"}]}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestComplete(t *testing.T) {
	is := is.New(t)
	ctx := testContext(t)
	server := testServer(t, "hello")

	provider := openai.New(discard(), &openai.Config{APIKey: "sk-test", BaseURL: server.URL + "/"})
	res, err := provider.Complete(ctx, &audit.Request{
		Model:    openai.DefaultModel,
		Messages: []*audit.Message{audit.UserMessage("hi")},
	})
	is.NoErr(err)
	is.Equal(res.Content, "hello")
	is.True(res.Usage != nil)
	is.Equal(res.Usage.TotalTokens, 30)
}

func TestAuditFenced(t *testing.T) {
	is := is.New(t)
	ctx := testContext(t)
	server := testServer(t, fenced)
	log := discard()

	provider := openai.New(log, &openai.Config{APIKey: "sk-test", BaseURL: server.URL + "/"})
	raw := new(strings.Builder)
	auditor := &audit.Auditor{
		Log:      log,
		Client:   audit.New(log, provider),
		Provider: provider.Name(),
		Model:    openai.DefaultModel,
		Raw:      raw,
	}
	result, err := auditor.Audit(ctx, "contract A {}")
	is.NoErr(err)
	is.Equal(result.AuditReport, "ok")
	is.Equal(result.MetricScores[0].Metric, "Security")
	is.Equal(result.MetricScores[0].Score, 7.0)
	is.Equal(result.Suggestions, "add tests")
	is.True(strings.HasPrefix(raw.String(), "Raw API Response:\n"))
}

func TestCompleteServerErrorNoRetry(t *testing.T) {
	is := is.New(t)
	ctx := testContext(t)
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
	}))
	t.Cleanup(server.Close)

	provider := openai.New(discard(), &openai.Config{APIKey: "sk-test", BaseURL: server.URL + "/"})
	_, err := provider.Complete(ctx, &audit.Request{
		Model:    openai.DefaultModel,
		Messages: []*audit.Message{audit.UserMessage("hi")},
	})
	is.True(err != nil)
	is.Equal(calls.Load(), int32(1))
}

func TestModels(t *testing.T) {
	is := is.New(t)
	ctx := testContext(t)
	server := testServer(t, "")

	provider := openai.New(discard(), &openai.Config{APIKey: "sk-test", BaseURL: server.URL + "/"})
	models, err := provider.Models(ctx)
	is.NoErr(err)
	is.Equal(len(models), 1)
	is.Equal(models[0].Provider, "openai")
	is.Equal(models[0].ID, "gpt-3.5-turbo")
}

func TestCompleteUnsupportedRole(t *testing.T) {
	is := is.New(t)
	provider := openai.New(discard(), &openai.Config{APIKey: "sk-test"})
	_, err := provider.Complete(context.Background(), &audit.Request{
		Model:    openai.DefaultModel,
		Messages: []*audit.Message{{Role: "tool", Content: "x"}},
	})
	is.True(err != nil)
}
