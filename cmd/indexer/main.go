package main

import (
	"context"
	"flag"
	"os"

	"writer-coach-be/internal/config"
	"writer-coach-be/internal/pkg/logger"
	"writer-coach-be/internal/repository/implementation"
	"writer-coach-be/internal/service"
	"writer-coach-be/pkg/corpus"
	"writer-coach-be/pkg/database"
	"writer-coach-be/pkg/embedding"

	"github.com/fatih/color"
)

// Synchronous corpus indexing, for deployments that want the vector
// collections built before the service starts taking traffic.
func main() {
	force := flag.Bool("force", false, "rebuild collections even when they look current")
	category := flag.String("category", "", "limit indexing to one category")
	flag.Parse()

	cfg := config.Load()
	fileLogger := logger.NewIsolatedLogger(cfg.App.LogFilePath)
	defer fileLogger.Sync()

	if cfg.Database.Connection == "" {
		color.Red("DB_CONNECTION_STRING is required")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Database connection failed: %v", err)
		os.Exit(1)
	}

	var embedder embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embedder = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbeddingModel)
	case "gemini":
		if cfg.Ai.GeminiKey == "" {
			color.Red("GOOGLE_GEMINI_API_KEY is required for the gemini embedding provider")
			os.Exit(1)
		}
		embedder = embedding.NewGeminiProvider(cfg.Ai.GeminiKey)
	default:
		color.Red("Unknown embedding provider: %s", cfg.Ai.EmbeddingProvider)
		os.Exit(1)
	}

	corpusStore, err := corpus.Load(cfg.App.DataDir)
	if err != nil {
		color.Red("Corpus load failed: %v", err)
		os.Exit(1)
	}
	color.Cyan("Corpus loaded: %d chunks from %s", corpusStore.Len(), cfg.App.DataDir)

	indexer := service.NewIndexerService(
		corpusStore,
		embedder,
		implementation.NewChunkEmbeddingRepository(db),
		fileLogger,
	)

	categories := corpus.Categories
	if *category != "" {
		categories = []string{*category}
	}

	ctx := context.Background()
	for _, cat := range categories {
		written, err := indexer.BuildCategory(ctx, cat, *force)
		if err != nil {
			color.Red("  %-10s failed: %v", cat, err)
			os.Exit(1)
		}
		if written == 0 {
			color.Yellow("  %-10s up to date (%d chunks)", cat, len(corpusStore.ByCategory(cat)))
			continue
		}
		color.Green("  %-10s indexed %d chunks", cat, written)
	}

	color.Green("Done.")
}
