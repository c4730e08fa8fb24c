package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
)

type stubEmbedder struct {
	vectors [][]float32
	err     error
}

func (s *stubEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return s.vectors, s.err
}

func TestEmbedTextsOrderPreserving(t *testing.T) {
	c := NewClient(&stubEmbedder{vectors: [][]float32{{1, 0}, {0, 1}}})

	got, err := c.EmbedTexts(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []float32{1, 0}, got[0])
	assert.Equal(t, []float32{0, 1}, got[1])
}

func TestEmbedTextsSingleInput(t *testing.T) {
	c := NewClient(&stubEmbedder{vectors: [][]float32{{0.5, 0.5, 0.5}}})

	got, err := c.EmbedTexts(context.Background(), []string{"x"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestEmbedTextsCountMismatch(t *testing.T) {
	c := NewClient(&stubEmbedder{vectors: [][]float32{{1, 0}}})

	_, err := c.EmbedTexts(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestEmbedTextsDimensionMismatch(t *testing.T) {
	c := NewClient(&stubEmbedder{vectors: [][]float32{{1, 0}, {1, 0, 0}}})

	_, err := c.EmbedTexts(context.Background(), []string{"a", "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestEmbedTextsServiceFailure(t *testing.T) {
	c := NewClient(&stubEmbedder{err: errors.New("quota exceeded")})

	_, err := c.EmbedTexts(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
