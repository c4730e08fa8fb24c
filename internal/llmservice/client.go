package llmservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/models"
)

// Client wraps a chat LLM for query rewriting and answer synthesis.
// The underlying model is constructed once and reused across calls.
type Client struct {
	llm llms.Model
}

func NewClient(llm llms.Model) *Client {
	return &Client{llm: llm}
}

// NewOpenAIClient builds a client against an OpenAI-compatible chat
// endpoint.
func NewOpenAIClient(baseURL, apiKey, model string) (*Client, error) {
	llm, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(strings.TrimPrefix(apiKey, "Bearer ")),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: init llm: %v", domain.ErrUpstream, err)
	}
	return NewClient(llm), nil
}

// NewOllamaClient builds a client against a local Ollama server.
func NewOllamaClient(serverURL, model string) (*Client, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: init llm: %v", domain.ErrUpstream, err)
	}
	return NewClient(llm), nil
}

// Rewrite turns a user question into a search-optimized form. The result
// is trimmed; it is a best-effort transform and may not preserve intent
// exactly.
func (c *Client) Rewrite(ctx context.Context, userQuery string) (string, error) {
	out, err := c.generate(ctx, fmt.Sprintf(models.RewritePromptTemplate, userQuery))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Answer synthesizes a final answer from retrieved context and the
// original question. The response is returned as-is.
func (c *Client) Answer(ctx context.Context, contextText, question string) (string, error) {
	return c.generate(ctx, fmt.Sprintf(models.AnswerPromptTemplate, contextText, question))
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}
	res, err := c.llm.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("%w: generate: %v", domain.ErrUpstream, err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("%w: generate: empty response", domain.ErrUpstream)
	}
	return res.Choices[0].Content, nil
}
