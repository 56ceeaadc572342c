package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"renewcalc/internal/logger"
)

const requestTimeout = 60 * time.Second

const systemPrompt = `You are a renewable energy consultant. Write a short feasibility narrative in
markdown for a project owner. Use the headings "Summary", "Economics" and "Next steps".
Quote figures exactly as given, including their units. Do not invent numbers.`

// Fact is one presented figure handed to the model, already scaled and formatted
type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// NarrativeRequest is the input for a feasibility narrative
type NarrativeRequest struct {
	Technology string
	Title      string
	Facts      []Fact
}

// OpenAIClient handles OpenAI API interactions
type OpenAIClient struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return NewOpenAIClientWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewOpenAIClientWithConfig creates a client from a full go-openai config,
// e.g. to point at a proxy or a test server
func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    logger.GetGlobalLogger().WithComponent("llm"),
	}
}

// Narrate asks the model for a markdown narrative of the presented results
func (c *OpenAIClient) Narrate(ctx context.Context, req NarrativeRequest) (string, error) {
	if c.client == nil {
		return "", errors.New("OpenAI client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(req)},
		},
		MaxTokens:   2000,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	narrative := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Info("generated narrative", logger.Fields{
		"technology": req.Technology,
		"chars":      len(narrative),
		"tokens":     resp.Usage.TotalTokens,
		"duration":   time.Since(start).String(),
	})
	return narrative, nil
}

// BuildPrompt renders the facts as a markdown table for the user message
func BuildPrompt(req NarrativeRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\nTechnology: %s\n\n", req.Title, req.Technology)
	b.WriteString("| Metric | Value |\n|---|---|\n")
	for _, f := range req.Facts {
		fmt.Fprintf(&b, "| %s | %s |\n", f.Label, f.Value)
	}
	return b.String()
}
