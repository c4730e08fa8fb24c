package pgvector

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
)

// chunkRow maps a stored transcript chunk. The embedding column is a
// pgvector value written as its text literal.
type chunkRow struct {
	bun.BaseModel `bun:"table:transcript_chunks,alias:tc"`
	ID            string `bun:"id,pk"`
	Text          string `bun:"text,notnull"`
	SourceID      string `bun:"source_id,notnull"`
	Embedding     string `bun:"embedding,notnull,type:vector"`
}

// Storage keeps transcript chunks in Postgres with the pgvector
// extension, ordered by the <-> distance operator at query time.
type Storage struct {
	db *bun.DB
}

type Config struct {
	DSN      string
	Password string
	Debug    bool
}

func NewStorage(cfg Config) *Storage {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithPassword(cfg.Password),
	))
	db := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	return &Storage{db: db}
}

func (s *Storage) Close() error { return s.db.Close() }

func (s *Storage) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid vector dimension %d", domain.ErrInvalidConfig, dimension)
	}
	if _, err := s.db.ExecContext(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("%w: pgvector extension: %v", domain.ErrUpstream, err)
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS transcript_chunks (
		id text PRIMARY KEY,
		text text NOT NULL,
		source_id text NOT NULL,
		embedding vector(%d) NOT NULL
	)`, dimension)
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: create table: %v", domain.ErrUpstream, err)
	}
	return nil
}

func (s *Storage) Insert(ctx context.Context, rec domain.Record) error {
	row := &chunkRow{
		ID:        rec.ID,
		Text:      rec.Text,
		SourceID:  rec.SourceID,
		Embedding: vectorLiteral(rec.Vector),
	}
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("text = EXCLUDED.text").
		Set("source_id = EXCLUDED.source_id").
		Set("embedding = EXCLUDED.embedding").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("%w: insert chunk: %v", domain.ErrUpstream, err)
	}
	return nil
}

func (s *Storage) Nearest(ctx context.Context, vector []float32, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 4
	}
	lit := vectorLiteral(vector)
	var rows []struct {
		ID       string  `bun:"id"`
		Text     string  `bun:"text"`
		Distance float32 `bun:"distance"`
	}
	err := s.db.NewSelect().
		Model((*chunkRow)(nil)).
		Column("id", "text").
		ColumnExpr("embedding <-> ?::vector AS distance", lit).
		OrderExpr("embedding <-> ?::vector", lit).
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("%w: search chunks: %v", domain.ErrUpstream, err)
	}
	results := make([]domain.SearchResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, domain.SearchResult{ID: r.ID, Text: r.Text, Distance: r.Distance})
	}
	return results, nil
}

func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'g', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
