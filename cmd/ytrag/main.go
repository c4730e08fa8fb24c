package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/chunker"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/config"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/domain"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/embedding"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/helper"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/llmservice"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/rag"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/server"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/transcript"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/vectorstore"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/vectorstore/chromem"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/vectorstore/memory"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/vectorstore/pgvector"
	"github.com/Nageshwar-stp/youtube-RAG-bot/internal/vectorstore/qdrant"
)

const defaultConfigPath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:   "ytrag",
		Short: "Ingest YouTube transcripts and answer questions about them",
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to the config file")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(ingestCmd(&configPath))
	root.AddCommand(askCmd(&configPath))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, pipeline := mustBuild(*configPath)
			srv := server.New(pipeline)
			log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
			if err := http.ListenAndServe(cfg.Server.Addr, srv.Handler()); err != nil {
				log.Fatal().Err(err).Msg("server stopped")
			}
		},
	}
}

func ingestCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <url>",
		Short: "Ingest one video's transcript",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			_, pipeline := mustBuild(*configPath)
			report, err := pipeline.Ingest(cmd.Context(), args[0])
			if err != nil {
				log.Fatal().Err(err).Msg("Error ingesting video")
			}
			helper.PrettyPrint(report)
		},
	}
}

func askCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about ingested videos",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			_, pipeline := mustBuild(*configPath)
			answer, err := pipeline.Ask(cmd.Context(), args[0])
			if err != nil {
				log.Fatal().Err(err).Msg("Error answering question")
			}
			if answer.NoContext {
				fmt.Println("No results found.")
				return
			}

			log.Info().Msg("Context: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
			fmt.Printf("%s\n\n", answer.Context)

			log.Info().Msg("Assistant: ~~~~~~~~~~~~~~~~~~~~~~~~~>>>>>")
			fmt.Printf("%s\n\n", answer.Text)
		},
	}
}

func mustBuild(configPath string) (*config.Config, *rag.Pipeline) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}
	log.Debug().Interface("config", cfg).Msg("Loaded config")

	c, err := chunker.New(cfg.Chunker.Size, cfg.Chunker.Overlap)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing chunker")
	}

	embedder, err := buildEmbedder(&cfg.Embedder)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	generator, err := buildGenerator(&cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing llm")
	}

	store, err := buildStore(&cfg.VectorStore)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing vector store")
	}

	transcripts := transcript.NewClient(transcript.Config{})

	pipeline := rag.NewPipeline(transcripts, c, embedder, generator, store, rag.Options{
		VectorSize:   cfg.Embedder.VectorSize,
		TopK:         cfg.Retrieval.TopK,
		ContextWidth: cfg.Retrieval.ContextWidth,
	})
	return cfg, pipeline
}

func buildEmbedder(cfg *config.EmbedderConfig) (domain.Embedder, error) {
	switch cfg.Type {
	case "ollama":
		return embedding.NewOllamaClient(cfg.BaseURL, cfg.Model)
	default:
		return embedding.NewOpenAIClient(cfg.BaseURL, os.Getenv(cfg.APIKeyEnv), cfg.Model)
	}
}

func buildGenerator(cfg *config.LLMConfig) (domain.Generator, error) {
	switch cfg.Type {
	case "ollama":
		return llmservice.NewOllamaClient(cfg.BaseURL, cfg.Model)
	default:
		return llmservice.NewOpenAIClient(cfg.BaseURL, os.Getenv(cfg.APIKeyEnv), cfg.Model)
	}
}

func buildStore(cfg *config.VectorStoreConfig) (vectorstore.Storage, error) {
	switch cfg.Type {
	case "qdrant":
		if cfg.Qdrant == nil {
			return nil, fmt.Errorf("qdrant store selected but not configured")
		}
		return qdrant.NewStorage(qdrant.Config{
			URL:        cfg.Qdrant.URL,
			APIKey:     os.Getenv(cfg.Qdrant.APIKeyEnv),
			Collection: cfg.Collection,
			Timeout:    time.Duration(cfg.Qdrant.TimeoutSecs) * time.Second,
		}), nil
	case "pgvector":
		if cfg.Postgres == nil {
			return nil, fmt.Errorf("pgvector store selected but not configured")
		}
		return pgvector.NewStorage(pgvector.Config{
			DSN:      cfg.Postgres.DSN,
			Password: os.Getenv(cfg.Postgres.PasswordEnv),
			Debug:    cfg.Postgres.Debug,
		}), nil
	case "chromem":
		if cfg.Chromem == nil {
			return nil, fmt.Errorf("chromem store selected but not configured")
		}
		return chromem.NewStorage(chromem.Config{
			Path:       cfg.Chromem.Path,
			Collection: cfg.Collection,
		})
	default:
		return memory.NewStorage(), nil
	}
}
