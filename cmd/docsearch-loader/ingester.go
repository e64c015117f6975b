// Worker pool for parallel document ingest.
// Reader -> channel([]Document) -> N workers -> BatchUpsert -> Redis.
package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	docsearch "github.com/edura-cloud/docsearch/pkg/sdk"
)

// ingester fans document batches out to parallel upsert workers.
type ingester struct {
	docs      *docsearch.DocumentService
	workers   int
	batchSize int
}

// ingestResult summarizes one loader run.
type ingestResult struct {
	Loaded  int64
	Skipped int64
	Failed  int64
}

// Run streams path into batches and upserts them concurrently.
// A failed batch is logged and counted, not retried.
func (ing *ingester) Run(ctx context.Context, path, format string, maxRows int) (ingestResult, error) {
	batches := make(chan []docsearch.Document, ing.workers*2)

	var wg sync.WaitGroup
	var loaded, failed atomic.Int64

	for i := 0; i < ing.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			ing.worker(ctx, workerID, batches, &loaded, &failed)
		}(i)
	}

	var skipped int64
	var readerErr error
	go func() {
		defer close(batches)
		readerErr = ing.produce(ctx, path, format, maxRows, &skipped, batches)
	}()

	wg.Wait()

	result := ingestResult{
		Loaded:  loaded.Load(),
		Skipped: skipped,
		Failed:  failed.Load(),
	}
	return result, readerErr
}

// produce reads the dump and emits full batches. The skipped counter is
// only written here, the reader goroutine owns it until Run returns.
func (ing *ingester) produce(
	ctx context.Context,
	path, format string,
	maxRows int,
	skipped *int64,
	out chan<- []docsearch.Document,
) error {
	batch := make([]docsearch.Document, 0, ing.batchSize)

	err := readRecords(path, format, maxRows,
		func(rec *documentRecord, seq int) bool {
			select {
			case <-ctx.Done():
				return false
			default:
			}

			doc, ok := toDocument(rec)
			if !ok {
				*skipped++
				log.Printf("row %d: no title, skipped", seq+1)
				return true
			}

			batch = append(batch, doc)
			if len(batch) >= ing.batchSize {
				out <- batch
				batch = make([]docsearch.Document, 0, ing.batchSize)
			}
			return true
		})

	if len(batch) > 0 {
		out <- batch
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

func (ing *ingester) worker(
	ctx context.Context,
	id int,
	batches <-chan []docsearch.Document,
	loaded, failed *atomic.Int64,
) {
	for batch := range batches {
		if err := ing.docs.BatchUpsert(ctx, batch); err != nil {
			log.Printf("worker %d: batch of %d failed: %v", id, len(batch), err)
			failed.Add(int64(len(batch)))
			continue
		}
		loaded.Add(int64(len(batch)))
	}
}

// loadCategories pushes the category catalog before documents land, so
// category names resolve from the first search.
func loadCategories(ctx context.Context, client *docsearch.Client, path, format string) (int, error) {
	cats := client.Categories()

	count := 0
	var setErr error
	err := readRecords(path, format, 0,
		func(rec *categoryRecord, seq int) bool {
			if rec.ID == "" || rec.Name == "" {
				log.Printf("category row %d: missing id or name, skipped", seq+1)
				return true
			}
			if err := cats.Set(ctx, rec.ID, rec.Name); err != nil {
				setErr = fmt.Errorf("category %s: %w", rec.ID, err)
				return false
			}
			count++
			return true
		})
	if err != nil {
		return count, err
	}
	return count, setErr
}
