package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/config"
	"alfredoptarigan/cv-analyzer/internal/handlers"
	"alfredoptarigan/cv-analyzer/internal/logger"
	"alfredoptarigan/cv-analyzer/internal/metrics"
	"alfredoptarigan/cv-analyzer/internal/repositories"
	"alfredoptarigan/cv-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Invalid configuration", zap.Error(err))
	}
	log.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	ctx := context.Background()

	// Initialize database
	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize database", zap.Error(err))
	}
	analysisRepo := repositories.NewAnalysisRepository(db)

	// Initialize storage
	storage, err := services.NewStorageFromConfig(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("❌ Failed to initialize storage", zap.Error(err))
	}
	if err := storage.EnsureReady(ctx); err != nil {
		log.Fatal("❌ Storage is not ready", zap.Error(err))
	}
	log.Info("✅ Storage initialized", zap.String("driver", cfg.Storage.Driver))

	// Initialize analysis pipeline
	analyzer, err := services.NewAnalyzerFromConfig(cfg.Analysis, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize analyzer", zap.Error(err))
	}
	log.Info("✅ Analyzer initialized", zap.Int("roles", len(analyzer.Roles())))

	notifier, err := services.NewNotifier(cfg.Notifier.RabbitMQURL, cfg.Notifier.Exchange, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize notifier", zap.Error(err))
	}

	index, err := newResumeIndex(ctx, cfg.Index, log)
	if err != nil {
		log.Fatal("❌ Failed to initialize similarity index", zap.Error(err))
	}

	analysisService := services.NewAnalysisService(analysisRepo, storage, analyzer, notifier, index, log)

	// Initialize worker
	worker := services.NewWorker(analysisRepo, analysisService, services.WorkerOptions{
		Concurrency:  cfg.Worker.Concurrency,
		PollInterval: cfg.Worker.PollInterval,
		JobTimeout:   cfg.Worker.JobTimeout,
	}, log)
	worker.Start(ctx)
	log.Info("✅ Worker started", zap.Int("concurrency", cfg.Worker.Concurrency))

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CV Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 10,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(metrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.Handlers{
		Upload:  handlers.NewUploadHandler(analysisService, worker, cfg.Storage.MaxFileSize),
		Analyze: handlers.NewAnalyzeHandler(analysisService, cfg.Storage.MaxFileSize, log),
		Result:  handlers.NewResultHandler(analysisRepo, analysisService),
		Jobs:    handlers.NewJobsHandler(analysisService),
	}.Register(app)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-quit
		log.Info("🛑 Shutting down server...")
		shutdown(app, worker, notifier, log)
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("❌ Failed to start server", zap.Error(err))
	}

	<-done
	log.Info("👋 Server stopped")
}

type server interface {
	Shutdown() error
}

// shutdown lets running analyses finish before the server and the notifier
// they publish through go away.
func shutdown(app server, worker services.Worker, notifier services.Notifier, log *zap.Logger) {
	worker.Stop()
	if err := app.Shutdown(); err != nil {
		log.Error("❌ Server forced to shutdown", zap.Error(err))
	}
	if err := notifier.Close(); err != nil {
		log.Warn("⚠️ Failed to close notifier", zap.Error(err))
	}
}

func newResumeIndex(ctx context.Context, cfg config.IndexConfig, log *zap.Logger) (services.ResumeIndex, error) {
	if !cfg.Enabled {
		log.Info("ℹ️ Similarity index disabled")
		return services.NewDisabledIndex(), nil
	}

	embedder, err := services.NewGeminiService(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	store, err := services.NewQdrantService(cfg.QdrantURL, cfg.QdrantAPIKey, cfg.Collection, log)
	if err != nil {
		return nil, err
	}
	if err := store.InitCollection(ctx); err != nil {
		return nil, err
	}

	log.Info("✅ Similarity index initialized", zap.String("collection", cfg.Collection))
	return services.NewResumeIndex(embedder, store, log), nil
}
