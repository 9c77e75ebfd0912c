package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/answerbot/generator"
)

type capturedRequest struct {
	Model    string `json:"model"`
	N        int    `json:"n"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestGenerate_SendsConversationAndReturnsEveryChoice(t *testing.T) {
	var captured capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o",
			"choices":[
				{"index":0,"message":{"role":"assistant","content":"first"},"finish_reason":"stop"},
				{"index":1,"message":{"role":"assistant","content":"second"},"finish_reason":"stop"}
			]
		}`))
	}))
	defer srv.Close()

	g := NewGenerator(
		generator.WithApiKey("test-key"),
		generator.WithModel("gpt-4o"),
		generator.WithLocation(srv.URL),
		generator.WithCandidates(2),
	)

	chat := generator.NewChat("be brief")
	chat.AddUserMessage("q1")
	chat.AddAssistantMessage("a1")
	chat.AddUserMessage("q2")

	completions, err := g.Generate(context.Background(), chat)
	require.NoError(t, err)

	assert.Equal(t, []generator.Completion{{Content: "first"}, {Content: "second"}}, completions)

	assert.Equal(t, "gpt-4o", captured.Model)
	assert.Equal(t, 2, captured.N)
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "be brief", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "assistant", captured.Messages[2].Role)
	assert.Equal(t, "user", captured.Messages[3].Role)
	assert.Equal(t, "q2", captured.Messages[3].Content)
}

func TestGenerate_ZeroChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o","choices":[]}`))
	}))
	defer srv.Close()

	g := NewGenerator(generator.WithApiKey("k"), generator.WithModel("gpt-4o"), generator.WithLocation(srv.URL))

	completions, err := g.Generate(context.Background(), generator.NewChat("s"))
	require.NoError(t, err)
	assert.Empty(t, completions)
}

func TestGenerate_Azure(t *testing.T) {
	var path, apiVersion, apiKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		apiVersion = r.URL.Query().Get("api-version")
		apiKey = r.Header.Get("api-key")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"1","object":"chat.completion","created":1,"model":"chat","choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	g := NewGenerator(
		generator.WithApiKey("azure-key"),
		generator.WithModel("chat-deployment"),
		generator.WithLocation(srv.URL),
		WithAzure("2024-02-01"),
	)

	chat := generator.NewChat("s")
	chat.AddUserMessage("q")

	completions, err := g.Generate(context.Background(), chat)
	require.NoError(t, err)
	require.Len(t, completions, 1)

	assert.Equal(t, "/openai/deployments/chat-deployment/chat/completions", path)
	assert.Equal(t, "2024-02-01", apiVersion)
	assert.Equal(t, "azure-key", apiKey)
}

func TestGenerate_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	g := NewGenerator(generator.WithApiKey("k"), generator.WithModel("gpt-4o"), generator.WithLocation(srv.URL))

	_, err := g.Generate(context.Background(), generator.NewChat("s"))
	require.Error(t, err)
}
