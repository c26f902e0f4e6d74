package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/config"
	"alfredoptarigan/cv-analyzer/internal/logger"
	"alfredoptarigan/cv-analyzer/internal/repositories"
	"alfredoptarigan/cv-analyzer/internal/services"
)

// Rebuilds the similarity index from every completed analysis in the database.
func main() {
	pageSize := flag.Int("page-size", 100, "analyses loaded per database page")
	flag.Parse()

	cfg := config.Load()

	log, err := logger.New(cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("🚀 Starting resume reindex...")

	if *pageSize < 1 {
		log.Fatal("❌ --page-size must be at least 1", zap.Int("page_size", *pageSize))
	}

	if !cfg.Index.Enabled || cfg.Index.GeminiAPIKey == "" {
		log.Fatal("❌ Reindex needs INDEX_ENABLED=true and GEMINI_API_KEY")
	}

	ctx := context.Background()

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize database", zap.Error(err))
	}

	storage, err := services.NewStorageFromConfig(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("❌ Failed to initialize storage", zap.Error(err))
	}

	analyzer, err := services.NewAnalyzerFromConfig(cfg.Analysis, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize analyzer", zap.Error(err))
	}

	embedder, err := services.NewGeminiService(ctx, cfg.Index.GeminiAPIKey)
	if err != nil {
		log.Fatal("❌ Failed to initialize Gemini", zap.Error(err))
	}

	store, err := services.NewQdrantService(cfg.Index.QdrantURL, cfg.Index.QdrantAPIKey, cfg.Index.Collection, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize Qdrant", zap.Error(err))
	}
	if err := store.InitCollection(ctx); err != nil {
		log.Fatal("❌ Failed to initialize collection", zap.Error(err))
	}

	service := services.NewAnalysisService(
		repositories.NewAnalysisRepository(db),
		storage,
		analyzer,
		nil,
		services.NewResumeIndex(embedder, store, log),
		log,
	)

	count, err := service.Reindex(ctx, *pageSize)
	if err != nil {
		log.Fatal("❌ Reindex failed", zap.Int("indexed", count), zap.Error(err))
	}

	log.Info("🎉 Reindex completed", zap.Int("indexed", count))
}
