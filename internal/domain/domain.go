package domain

import "context"

// Snippet is a single caption fragment in source order.
type Snippet struct {
	Text string
}

// Record is one stored transcript chunk with its embedding.
type Record struct {
	ID       string
	Text     string
	SourceID string
	Vector   []float32
}

// SearchResult is one nearest-neighbor match. Distance is ascending:
// lower means closer, 0 is an exact match.
type SearchResult struct {
	ID       string
	Text     string
	Distance float32
}

// IngestReport summarizes one ingestion run. NoTranscript is set when the
// video has no caption languages at all; in that case nothing was stored.
type IngestReport struct {
	SourceID     string
	ChunksStored int
	NoTranscript bool
}

// Answer is the result of one question. NoContext is set when retrieval
// found nothing; Text is empty then and the generator was never called.
type Answer struct {
	Text      string
	Context   string
	NoContext bool
}

// TranscriptSource fetches captions for a video.
type TranscriptSource interface {
	ListLanguages(ctx context.Context, videoID string) ([]string, error)
	Fetch(ctx context.Context, videoID string, languages []string) ([]Snippet, error)
}

// Embedder turns texts into vectors, one per input, order-preserving.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator is the text-generation service used for query rewriting and
// answer synthesis.
type Generator interface {
	Rewrite(ctx context.Context, userQuery string) (string, error)
	Answer(ctx context.Context, contextText, question string) (string, error)
}

// VectorStore persists chunk records and supports nearest-vector search.
// Nearest returns up to limit results ordered by ascending distance and an
// empty slice, not an error, when the collection is empty.
type VectorStore interface {
	EnsureCollection(ctx context.Context, dimension int) error
	Insert(ctx context.Context, rec Record) error
	Nearest(ctx context.Context, vector []float32, limit int) ([]SearchResult, error)
}
