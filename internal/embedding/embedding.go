package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
)

// batchEmbedder is the slice of the langchaingo embedder the client needs.
type batchEmbedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
}

// Client wraps an embedding backend and enforces the batch contract:
// one vector per input, order-preserving, uniform dimensionality.
type Client struct {
	embedder batchEmbedder
}

func NewClient(embedder batchEmbedder) *Client {
	return &Client{embedder: embedder}
}

// NewOpenAIClient builds a client against an OpenAI-compatible
// embeddings endpoint.
func NewOpenAIClient(baseURL, apiKey, model string) (*Client, error) {
	llm, err := openai.New(
		openai.WithBaseURL(baseURL),
		openai.WithToken(strings.TrimPrefix(apiKey, "Bearer ")),
		openai.WithModel(model),
		openai.WithEmbeddingModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: init embedding llm: %v", domain.ErrUpstream, err)
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("%w: init embedder: %v", domain.ErrUpstream, err)
	}
	return NewClient(embedder), nil
}

// NewOllamaClient builds a client against a local Ollama server.
func NewOllamaClient(serverURL, model string) (*Client, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: init embedding llm: %v", domain.ErrUpstream, err)
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("%w: init embedder: %v", domain.ErrUpstream, err)
	}
	return NewClient(embedder), nil
}

// EmbedTexts embeds all texts in one batched call.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := c.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: embed: %v", domain.ErrUpstream, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: embed: got %d vectors for %d inputs", domain.ErrUpstream, len(vectors), len(texts))
	}
	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: embed: empty vector at index %d", domain.ErrUpstream, i)
		}
		if len(v) != len(vectors[0]) {
			return nil, fmt.Errorf("%w: embed: vector %d has dimension %d, expected %d", domain.ErrUpstream, i, len(v), len(vectors[0]))
		}
	}
	return vectors, nil
}
