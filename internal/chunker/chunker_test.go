package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestNewRejectsBadParams(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"overlap equals size", 100, 100},
		{"overlap above size", 100, 150},
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 10, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.size, tt.overlap)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestChunksEmptyText(t *testing.T) {
	c, err := New(DefaultSize, DefaultOverlap)
	require.NoError(t, err)

	assert.Empty(t, c.Chunks(""))
	assert.Empty(t, c.Chunks("   \n\t  "))
}

func TestChunksShortText(t *testing.T) {
	c, err := New(DefaultSize, DefaultOverlap)
	require.NoError(t, err)

	got := c.Chunks("the quick brown fox")
	require.Len(t, got, 1)
	assert.Equal(t, "the quick brown fox", got[0])
}

func TestChunksCount(t *testing.T) {
	// With size=800 and overlap=150 the step is 650, so the chunk count
	// is ceil(W/650).
	c, err := New(DefaultSize, DefaultOverlap)
	require.NoError(t, err)

	for _, w := range []int{1, 649, 650, 651, 1300, 1301, 5000} {
		got := c.Chunks(words(w))
		want := (w + 649) / 650
		assert.Len(t, got, want, "word count %d", w)
	}
}

func TestChunksOverlap(t *testing.T) {
	c, err := New(10, 3)
	require.NoError(t, err)

	got := c.Chunks(words(25))
	require.Len(t, got, 4)

	// Consecutive full chunks share exactly overlap words.
	first := strings.Fields(got[0])
	second := strings.Fields(got[1])
	require.Len(t, first, 10)
	assert.Equal(t, first[7:], second[:3])
}

func TestChunksCoverEveryWord(t *testing.T) {
	c, err := New(10, 3)
	require.NoError(t, err)

	text := words(47)
	seen := map[string]bool{}
	for _, chunk := range c.Chunks(text) {
		for _, w := range strings.Fields(chunk) {
			seen[w] = true
		}
	}
	for _, w := range strings.Fields(text) {
		assert.True(t, seen[w], "word %s missing from all chunks", w)
	}
}
