package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRequest = NarrativeRequest{
	Technology: "wind",
	Title:      "Wind Feasibility Report",
	Facts: []Fact{
		{Label: "Annual Energy", Value: "42.519 GWh"},
		{Label: "Net Capital Cost", Value: "$ 24,750,000"},
	},
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleRequest)
	assert.Contains(t, prompt, "## Wind Feasibility Report")
	assert.Contains(t, prompt, "Technology: wind")
	assert.Contains(t, prompt, "| Annual Energy | 42.519 GWh |")
	assert.Contains(t, prompt, "| Net Capital Cost | $ 24,750,000 |")
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewOpenAIClientWithConfig(cfg, "gpt-4.1")
}

func TestNarrate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4.1", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "42.519 GWh")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "  ## Summary\nViable.\n"},
			}},
		})
	})

	narrative, err := client.Narrate(context.Background(), sampleRequest)
	require.NoError(t, err)
	assert.Equal(t, "## Summary\nViable.", narrative)
}

func TestNarrateNoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	_, err := client.Narrate(context.Background(), sampleRequest)
	assert.ErrorContains(t, err, "no response")
}

func TestNarrateAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "invalid key", "type": "invalid_request_error"}}`))
	})

	_, err := client.Narrate(context.Background(), sampleRequest)
	assert.ErrorContains(t, err, "OpenAI API error")
}
