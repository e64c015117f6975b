package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/edura-cloud/docsearch/internal/config"
	dbRedis "github.com/edura-cloud/docsearch/internal/db/redis"
	"github.com/edura-cloud/docsearch/internal/domain"
	logpkg "github.com/edura-cloud/docsearch/internal/logger"
	"github.com/edura-cloud/docsearch/internal/metrics"
	categoryrepo "github.com/edura-cloud/docsearch/internal/repository/category"
	corpusrepo "github.com/edura-cloud/docsearch/internal/repository/corpus"
	documentrepo "github.com/edura-cloud/docsearch/internal/repository/document"
	"github.com/edura-cloud/docsearch/internal/repository/embcache"
	"github.com/edura-cloud/docsearch/internal/repository/searchcache"
	chiTransport "github.com/edura-cloud/docsearch/internal/transport/chi"
	openaiEmb "github.com/edura-cloud/docsearch/internal/transport/openai"
	corpusuc "github.com/edura-cloud/docsearch/internal/usecase/corpus"
	documentuc "github.com/edura-cloud/docsearch/internal/usecase/document"
	healthuc "github.com/edura-cloud/docsearch/internal/usecase/health"
	searchuc "github.com/edura-cloud/docsearch/internal/usecase/search"
	"github.com/edura-cloud/docsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Bool("bm25_enabled", cfg.BM25.Enabled),
		zap.Bool("embedding_enabled", cfg.Embedding.Enabled),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterSearchMetrics()
	metrics.RegisterEmbeddingMetrics()

	// Repositories
	docRepo := documentrepo.New(store)
	catRepo := categoryrepo.New(store)

	// Embedder chain: OpenAI provider -> cache -> instruction prefix.
	// Queries and documents get different instructions, so two chains.
	var queryEmbedder, docEmbedder domain.Embedder
	var embHealth healthuc.EmbeddingChecker
	if cfg.Embedding.Enabled {
		base := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   "openai",
			Logger:     logger,
		})
		embHealth = base

		cacheTTL := time.Duration(cfg.Embedding.CacheTTLSec) * time.Second
		cached := embcache.New(base, store, cacheTTL, metrics.EmbeddingCacheTotal, logger)

		queryEmbedder = domain.Embedder(cached)
		if instr := cfg.Embedding.QueryInstruction; instr != "" {
			queryEmbedder = domain.NewInstructionEmbedder(cached, instr)
		}
		docEmbedder = domain.Embedder(cached)
		if instr := cfg.Embedding.DocumentInstruction; instr != "" {
			docEmbedder = domain.NewInstructionEmbedder(cached, instr)
		}
		logger.Info("Embedders created",
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
		)
	}

	// Corpus statistics service, only when BM25 is on
	var corpusSvc *corpusuc.Service
	if cfg.BM25.Enabled {
		snapshotTTL := time.Duration(cfg.BM25.SnapshotTTLSec) * time.Second
		interval := time.Duration(cfg.BM25.RefreshIntervalSec) * time.Second
		corpusSvc = corpusuc.New(docRepo, corpusrepo.New(store, snapshotTTL), interval, logger)
		go corpusSvc.Start(ctx)
	}

	// Result cache (TTL 0 disables it)
	var resultCache searchuc.ResultCache
	cache := searchcache.New(store, time.Duration(cfg.Search.CacheTTLSec)*time.Second, logger)
	if cache.Enabled() {
		resultCache = cache
	}

	// Pass nil interfaces (not typed nil pointers!) for disabled strategies.
	var searchEmbedder searchuc.Embedder
	if queryEmbedder != nil {
		searchEmbedder = queryEmbedder
	}
	var statsProvider searchuc.StatsProvider
	if corpusSvc != nil {
		statsProvider = corpusSvc
	}

	searchSvc := searchuc.New(docRepo, catRepo, resultCache, searchEmbedder, statsProvider, searchuc.Options{
		MaxCandidates: cfg.Search.MaxCandidates,
		EnableBM25:    cfg.BM25.Enabled,
		BM25K1:        cfg.BM25.K1,
		BM25B:         cfg.BM25.B,
	}, logger)

	var writeEmbedder documentuc.Embedder
	if docEmbedder != nil {
		writeEmbedder = docEmbedder
	}
	docSvc := documentuc.New(docRepo, catRepo, writeEmbedder, domain.DefaultVectorConfig(), logger)

	var healthStats healthuc.StatsProvider
	if corpusSvc != nil {
		healthStats = corpusSvc
	}
	healthSvc := healthuc.New(store, embHealth, healthStats)

	var corpusRefresher chiTransport.CorpusRefresher
	if corpusSvc != nil {
		corpusRefresher = corpusSvc
	}
	server := chiTransport.NewServer(searchSvc, docSvc, catRepo, corpusRefresher, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
