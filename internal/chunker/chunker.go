package chunker

import (
	"fmt"
	"strings"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
)

const (
	DefaultSize    = 800
	DefaultOverlap = 150
)

// Chunker splits text into overlapping word windows.
type Chunker struct {
	size    int
	overlap int
}

// New validates the window parameters. Overlap must be strictly smaller
// than size, otherwise the window would never advance.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: chunk overlap must not be negative, got %d", domain.ErrInvalidConfig, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: chunk overlap %d must be smaller than size %d", domain.ErrInvalidConfig, overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Chunks splits text on whitespace and produces windows of up to size
// consecutive words, advancing by size-overlap words each step. Each chunk
// is the windowed words rejoined with single spaces. Empty text yields no
// chunks.
func (c *Chunker) Chunks(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	step := c.size - c.overlap
	var out []string
	for i := 0; i < len(words); i += step {
		end := i + c.size
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[i:end], " "))
	}
	return out
}
