package chromem

import (
	"context"
	"fmt"
	"runtime"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
)

const compress = false

// Storage persists chunks in an embedded chromem-go database. Vectors
// are always supplied by the caller, so no embedding function is wired
// into the collection.
type Storage struct {
	db         *chromemgo.DB
	collection *chromemgo.Collection
	name       string
}

type Config struct {
	Path       string
	Collection string
	InMemory   bool
}

func NewStorage(cfg Config) (*Storage, error) {
	var db *chromemgo.DB
	var err error
	if cfg.InMemory {
		db = chromemgo.NewDB()
	} else {
		db, err = chromemgo.NewPersistentDB(cfg.Path, compress)
		if err != nil {
			return nil, fmt.Errorf("%w: chromem open: %v", domain.ErrUpstream, err)
		}
	}
	return &Storage{db: db, name: cfg.Collection}, nil
}

func (s *Storage) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid vector dimension %d", domain.ErrInvalidConfig, dimension)
	}
	c, err := s.db.GetOrCreateCollection(s.name, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: chromem collection: %v", domain.ErrUpstream, err)
	}
	s.collection = c
	return nil
}

func (s *Storage) Insert(ctx context.Context, rec domain.Record) error {
	if s.collection == nil {
		return fmt.Errorf("%w: collection not initialized", domain.ErrUpstream)
	}
	doc := chromemgo.Document{
		ID:        rec.ID,
		Content:   rec.Text,
		Metadata:  map[string]string{"source_id": rec.SourceID},
		Embedding: rec.Vector,
	}
	if err := s.collection.AddDocuments(ctx, []chromemgo.Document{doc}, runtime.NumCPU()); err != nil {
		return fmt.Errorf("%w: chromem insert: %v", domain.ErrUpstream, err)
	}
	return nil
}

func (s *Storage) Nearest(ctx context.Context, vector []float32, limit int) ([]domain.SearchResult, error) {
	if s.collection == nil {
		return nil, fmt.Errorf("%w: collection not initialized", domain.ErrUpstream)
	}
	if limit <= 0 {
		limit = 4
	}
	// chromem rejects queries asking for more results than stored.
	if count := s.collection.Count(); count < limit {
		if count == 0 {
			return nil, nil
		}
		limit = count
	}
	results, err := s.collection.QueryEmbedding(ctx, vector, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: chromem query: %v", domain.ErrUpstream, err)
	}
	out := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, domain.SearchResult{
			ID:   r.ID,
			Text: r.Content,
			// Similarity is cosine, higher is better.
			Distance: 1 - r.Similarity,
		})
	}
	return out, nil
}
