package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
)

// Storage is a minimal REST client to Qdrant. Collections are created
// with cosine distance; point ids are the caller's deterministic UUIDs,
// so re-inserting a chunk replaces it instead of duplicating it.
type Storage struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStorage(cfg Config) *Storage {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Storage{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *Storage) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid vector dimension %d", domain.ErrInvalidConfig, dimension)
	}
	exists, err := s.collectionExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body, nil)
}

func (s *Storage) Insert(ctx context.Context, rec domain.Record) error {
	body := map[string]any{
		"points": []map[string]any{
			{
				"id":     rec.ID,
				"vector": rec.Vector,
				"payload": map[string]any{
					"text":      rec.Text,
					"source_id": rec.SourceID,
				},
			},
		},
	}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection)
	return s.doJSON(ctx, http.MethodPut, url, body, nil)
}

func (s *Storage) Nearest(ctx context.Context, vector []float32, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 4
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      string         `json:"id"`
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection)
	if err := s.doJSON(ctx, http.MethodPost, url, req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		sr := domain.SearchResult{
			ID: r.ID,
			// Cosine score is a similarity, higher is better.
			Distance: 1 - r.Score,
		}
		if v, ok := r.Payload["text"].(string); ok {
			sr.Text = v
		}
		results = append(results, sr)
	}
	return results, nil
}

func (s *Storage) collectionExists(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if err != nil {
		return false, fmt.Errorf("%w: qdrant: %v", domain.ErrUpstream, err)
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: qdrant: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 300:
		return false, fmt.Errorf("%w: qdrant GET collection: %s", domain.ErrUpstream, resp.Status)
	}
	return true, nil
}

func (s *Storage) doJSON(ctx context.Context, method, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: qdrant: %v", domain.ErrUpstream, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: qdrant: %v", domain.ErrUpstream, err)
	}
	s.setHeaders(req)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: qdrant %s %s: %v", domain.ErrUpstream, method, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: qdrant %s %s: %s", domain.ErrUpstream, method, url, resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: qdrant decode: %v", domain.ErrUpstream, err)
		}
	}
	return nil
}

func (s *Storage) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
}
