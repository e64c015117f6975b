// Bulk document loader for docsearch.
// Reads document dumps (NDJSON or parquet), assigns IDs where missing and
// loads them into Redis through the docsearch SDK. Supports parallel
// batch upserts and an optional categories file.
//
// Usage:
//
//	docsearch-loader -file documents.ndjson -categories categories.ndjson -workers 4
//
// Env vars:
//
//	REDIS_ADDR     -- Redis address (default: localhost:6379)
//	REDIS_PASSWORD -- Redis password
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edura-cloud/docsearch/internal/version"
	docsearch "github.com/edura-cloud/docsearch/pkg/sdk"
)

type config struct {
	file       string
	categories string
	format     string
	workers    int
	batchSize  int
	maxRows    int
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.file, "file", "", "documents file (.ndjson or .parquet)")
	flag.StringVar(&cfg.categories, "categories", "", "optional categories file (.ndjson or .parquet)")
	flag.StringVar(&cfg.format, "format", "", "input format: ndjson or parquet (default: by extension)")
	flag.IntVar(&cfg.workers, "workers", 4, "number of parallel upsert workers")
	flag.IntVar(&cfg.batchSize, "batch-size", 200, "documents per batch upsert")
	flag.IntVar(&cfg.maxRows, "max-rows", 0, "max documents to load (0=unlimited)")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()
	if cfg.file == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		cancel()
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config) error {
	start := time.Now()
	log.Printf("docsearch-loader %s", version.String())

	addr := envOr("REDIS_ADDR", "localhost:6379")
	client, err := docsearch.New(ctx,
		docsearch.WithRedis(addr, os.Getenv("REDIS_PASSWORD")),
	)
	if err != nil {
		return fmt.Errorf("connect %s: %w", addr, err)
	}
	defer client.Close()

	if cfg.categories != "" {
		n, err := loadCategories(ctx, client, cfg.categories, cfg.format)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		log.Printf("loaded %d categories from %s", n, cfg.categories)
	}

	ing := &ingester{
		docs:      client.Documents(),
		workers:   cfg.workers,
		batchSize: cfg.batchSize,
	}
	result, err := ing.Run(ctx, cfg.file, cfg.format, cfg.maxRows)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	log.Printf("done: %d loaded, %d skipped, %d failed in %s",
		result.Loaded, result.Skipped, result.Failed,
		time.Since(start).Round(time.Second))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
