package vectorstore

import "github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"

// Storage persists chunk records and supports nearest-vector search.
type Storage = domain.VectorStore
