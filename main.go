package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/classsight/insight-engine/pkg/agent"
	"github.com/classsight/insight-engine/pkg/classifier"
	"github.com/classsight/insight-engine/pkg/config"
	"github.com/classsight/insight-engine/pkg/database"
	"github.com/classsight/insight-engine/pkg/handlers"
	"github.com/classsight/insight-engine/pkg/llm"
	"github.com/classsight/insight-engine/pkg/middleware"
	"github.com/classsight/insight-engine/pkg/render"
	"github.com/classsight/insight-engine/pkg/router"
	"github.com/classsight/insight-engine/pkg/views"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", cfg.Database.Host),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("ai_model", cfg.AI.Model))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	}, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	client, err := llm.NewClient(&cfg.AI, logger)
	if err != nil {
		logger.Fatal("failed to build llm client", zap.Error(err))
	}

	registry := views.NewRegistry()
	dataRouter := router.New(db, logger)
	renderer := render.New(client, &cfg.AI, logger)

	semantic := classifier.NewSemanticClassifier(client, logger)
	chain := classifier.NewChainClassifier(semantic,
		time.Duration(cfg.Agent.ClassifierTimeoutSeconds)*time.Second, logger)

	questionAgent, err := agent.New(chain, dataRouter, registry, renderer, cfg.Agent.CacheSize, logger)
	if err != nil {
		logger.Fatal("failed to build agent", zap.Error(err))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.OriginFilter(cfg.AllowedOrigins, logger))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	handlers.NewHealthHandler(cfg, db, logger).RegisterRoutes(r)
	handlers.NewAnalyticsHandler(questionAgent, dataRouter, logger).RegisterRoutes(r)

	server := &http.Server{
		Addr:              cfg.BindAddr + ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting insight-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown incomplete", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
