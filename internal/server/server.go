package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
)

// ragService is what the handlers need from the pipeline.
type ragService interface {
	Ingest(ctx context.Context, url string) (domain.IngestReport, error)
	Ask(ctx context.Context, question string) (domain.Answer, error)
}

type Server struct {
	rag ragService
}

func New(rag ragService) *Server {
	return &Server{rag: rag}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/api/ingest", s.ingestHandler)
	mux.HandleFunc("/api/ask", s.askHandler)
	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}

type ingestRequest struct {
	URL string `json:"url"`
}

// POST /api/ingest  { "url": "https://youtube.com/watch?v=..." }
func (s *Server) ingestHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	report, err := s.rag.Ingest(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if report.NoTranscript {
		writeJSON(w, map[string]any{
			"status":    "no_transcript",
			"source_id": report.SourceID,
		})
		return
	}
	writeJSON(w, map[string]any{
		"status":    "ingested",
		"source_id": report.SourceID,
		"chunks":    report.ChunksStored,
	})
}

type askRequest struct {
	Question string `json:"question"`
}

// POST /api/ask  { "question": "your question" }
func (s *Server) askHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	answer, err := s.rag.Ask(r.Context(), req.Question)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if answer.NoContext {
		writeJSON(w, map[string]any{"status": "no_context"})
		return
	}
	writeJSON(w, map[string]any{"answer": answer.Text})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrUpstream):
		log.Error().Err(err).Msg("upstream service failure")
		http.Error(w, "upstream service failure", http.StatusBadGateway)
	default:
		log.Error().Err(err).Msg("request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
