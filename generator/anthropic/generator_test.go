package anthropic

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
	Model  string `json:"model"`
	System []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"messages"`
}

func TestGenerate_SplitsSystemPromptAndKeepsTurns(t *testing.T) {
	var captured capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id":"msg_1","type":"message","role":"assistant","model":"claude-sonnet-4-20250514",
			"content":[{"type":"text","text":"{\"answer\":"},{"type":"text","text":"\"a\",\"thoughts\":\"t\"}"}],
			"stop_reason":"end_turn","stop_sequence":null,
			"usage":{"input_tokens":1,"output_tokens":1}
		}`))
	}))
	defer srv.Close()

	g := NewGenerator(
		generator.WithApiKey("test-key"),
		generator.WithModel("claude-sonnet-4-20250514"),
		generator.WithLocation(srv.URL),
	)

	chat := generator.NewChat("be brief")
	chat.AddUserMessage("q1")
	chat.AddAssistantMessage("a1")
	chat.AddUserMessage("q2")

	completions, err := g.Generate(context.Background(), chat)
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.JSONEq(t, `{"answer":"a","thoughts":"t"}`, completions[0].Content)

	assert.Equal(t, "claude-sonnet-4-20250514", captured.Model)
	require.Len(t, captured.System, 1)
	assert.Equal(t, "be brief", captured.System[0].Text)
	require.Len(t, captured.Messages, 3)
	assert.Equal(t, "user", captured.Messages[0].Role)
	assert.Equal(t, "assistant", captured.Messages[1].Role)
	assert.Equal(t, "user", captured.Messages[2].Role)
	assert.Equal(t, "q2", captured.Messages[2].Content[0].Text)
}

func TestGenerate_NoTextIsZeroCompletions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id":"msg_1","type":"message","role":"assistant","model":"m",
			"content":[],"stop_reason":"end_turn","stop_sequence":null,
			"usage":{"input_tokens":1,"output_tokens":0}
		}`))
	}))
	defer srv.Close()

	g := NewGenerator(generator.WithApiKey("k"), generator.WithModel("m"), generator.WithLocation(srv.URL))

	chat := generator.NewChat("s")
	chat.AddUserMessage("q")

	completions, err := g.Generate(context.Background(), chat)
	require.NoError(t, err)
	assert.Empty(t, completions)
}
