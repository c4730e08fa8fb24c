package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
)

// Storage is a brute-force in-memory vector store. It is the zero-infra
// default backend and the one the pipeline tests run against.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	records   []domain.Record
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid vector dimension %d", domain.ErrInvalidConfig, dimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension == 0 {
		s.dimension = dimension
	}
	if s.dimension != dimension {
		return fmt.Errorf("%w: collection has dimension %d, requested %d", domain.ErrInvalidConfig, s.dimension, dimension)
	}
	return nil
}

func (s *Storage) Insert(ctx context.Context, rec domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension != 0 && len(rec.Vector) != s.dimension {
		return fmt.Errorf("%w: vector dimension %d does not match collection dimension %d", domain.ErrUpstream, len(rec.Vector), s.dimension)
	}
	s.records = append(s.records, rec)
	return nil
}

func (s *Storage) Nearest(ctx context.Context, vector []float32, limit int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = 4
	}
	results := make([]domain.SearchResult, 0, len(s.records))
	for _, rec := range s.records {
		results = append(results, domain.SearchResult{
			ID:       rec.ID,
			Text:     rec.Text,
			Distance: 1 - cosine(vector, rec.Vector),
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if limit > len(results) {
		limit = len(results)
	}
	return results[:limit], nil
}

func cosine(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
