package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/chunker"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/helper"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/transcript"
)

const (
	DefaultTopK         = 4
	DefaultContextWidth = 1
)

// Pipeline runs ingestion and question answering against a set of
// long-lived service clients. It holds no per-call state, so one
// Pipeline serves all requests.
type Pipeline struct {
	transcripts  domain.TranscriptSource
	chunker      *chunker.Chunker
	embedder     domain.Embedder
	generator    domain.Generator
	store        domain.VectorStore
	vectorSize   int
	topK         int
	contextWidth int
}

type Options struct {
	// VectorSize is the embedding dimensionality the collection is
	// created with; ingest fails if the embedder disagrees.
	VectorSize int
	// TopK is the nearest-neighbor limit at query time.
	TopK int
	// ContextWidth is how many of the retrieved results feed the
	// generator; results beyond it are discarded.
	ContextWidth int
}

func NewPipeline(transcripts domain.TranscriptSource, c *chunker.Chunker, embedder domain.Embedder, generator domain.Generator, store domain.VectorStore, opts Options) *Pipeline {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.ContextWidth <= 0 {
		opts.ContextWidth = DefaultContextWidth
	}
	return &Pipeline{
		transcripts:  transcripts,
		chunker:      c,
		embedder:     embedder,
		generator:    generator,
		store:        store,
		vectorSize:   opts.VectorSize,
		topK:         opts.TopK,
		contextWidth: opts.ContextWidth,
	}
}

// Ingest fetches the video's transcript, chunks it, embeds all chunks in
// one batched call and stores them. A video without caption languages
// reports NoTranscript and stores nothing. Insertion is per chunk and
// not atomic: a failure mid-way leaves earlier chunks stored.
func (p *Pipeline) Ingest(ctx context.Context, url string) (domain.IngestReport, error) {
	if err := p.store.EnsureCollection(ctx, p.vectorSize); err != nil {
		return domain.IngestReport{}, err
	}

	sourceID, err := transcript.VideoID(url)
	if err != nil {
		return domain.IngestReport{}, err
	}
	report := domain.IngestReport{SourceID: sourceID}

	languages, err := p.transcripts.ListLanguages(ctx, sourceID)
	if err != nil {
		return report, err
	}
	if len(languages) == 0 {
		log.Info().Str("source_id", sourceID).Msg("no transcript languages available")
		report.NoTranscript = true
		return report, nil
	}

	snippets, err := p.transcripts.Fetch(ctx, sourceID, languages)
	if err != nil {
		return report, err
	}

	chunks := p.chunker.Chunks(transcript.Join(snippets))
	if len(chunks) == 0 {
		log.Info().Str("source_id", sourceID).Msg("transcript produced no chunks")
		return report, nil
	}

	vectors, err := p.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return report, err
	}
	if len(vectors[0]) != p.vectorSize {
		return report, fmt.Errorf("%w: embedder produced dimension %d, collection expects %d", domain.ErrInvalidConfig, len(vectors[0]), p.vectorSize)
	}

	for i, chunk := range chunks {
		rec := domain.Record{
			ID:       helper.ChunkUUID(sourceID, i),
			Text:     chunk,
			SourceID: sourceID,
			Vector:   vectors[i],
		}
		if err := p.store.Insert(ctx, rec); err != nil {
			return report, err
		}
		report.ChunksStored++
	}

	log.Info().Str("source_id", sourceID).Int("chunks", report.ChunksStored).Msg("ingested video")
	return report, nil
}

// Ask rewrites the question for retrieval, embeds the rewritten form,
// searches the collection and synthesizes an answer from the closest
// results and the original question. With nothing retrieved it returns
// NoContext without calling the generator.
func (p *Pipeline) Ask(ctx context.Context, question string) (domain.Answer, error) {
	rewritten, err := p.generator.Rewrite(ctx, question)
	if err != nil {
		return domain.Answer{}, err
	}
	log.Debug().Str("rewritten", rewritten).Msg("rewrote query")

	vectors, err := p.embedder.EmbedTexts(ctx, []string{rewritten})
	if err != nil {
		return domain.Answer{}, err
	}

	results, err := p.store.Nearest(ctx, vectors[0], p.topK)
	if err != nil {
		return domain.Answer{}, err
	}
	if len(results) == 0 {
		log.Info().Str("question", question).Msg("no matching chunks")
		return domain.Answer{NoContext: true}, nil
	}

	width := p.contextWidth
	if width > len(results) {
		width = len(results)
	}
	texts := make([]string, 0, width)
	for _, r := range results[:width] {
		texts = append(texts, r.Text)
	}
	contextText := strings.Join(texts, "\n\n")

	answer, err := p.generator.Answer(ctx, contextText, question)
	if err != nil {
		return domain.Answer{}, err
	}
	return domain.Answer{Text: answer, Context: contextText}, nil
}
