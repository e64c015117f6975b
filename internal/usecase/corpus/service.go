// Package corpus maintains the BM25 statistics snapshot: periodic rebuilds
// over the document set, atomic publication for readers, and persistence so
// a restart does not start cold.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/edura-cloud/docsearch/internal/domain"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/score"
	"github.com/edura-cloud/docsearch/internal/metrics"
)

// Service owns the current statistics snapshot. Readers call Current on the
// hot path; Refresh swaps in a fully-built replacement, so readers never see
// a half-updated snapshot.
type Service struct {
	docs     DocumentLister
	snapshot SnapshotStore
	interval time.Duration
	logger   *zap.Logger

	current atomic.Pointer[score.Stats]
}

// New creates a corpus statistics service.
func New(docs DocumentLister, snapshot SnapshotStore, interval time.Duration, logger *zap.Logger) *Service {
	return &Service{
		docs:     docs,
		snapshot: snapshot,
		interval: interval,
		logger:   logger,
	}
}

// Current returns the active snapshot, or ErrCorpusStatsUnavailable before
// the first build completes.
func (s *Service) Current() (*score.Stats, error) {
	stats := s.current.Load()
	if stats == nil {
		return nil, domain.ErrCorpusStatsUnavailable
	}
	return stats, nil
}

// Refresh rebuilds statistics from the full document set and publishes the
// result. The old snapshot stays active until the new one is complete.
func (s *Service) Refresh(ctx context.Context) error {
	docs, err := s.docs.List(ctx, request.Filters{})
	if err != nil {
		metrics.CorpusStatsRefreshTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("list documents for stats: %w", err)
	}

	stats := score.BuildStats(docs)
	s.current.Store(stats)

	metrics.CorpusStatsRefreshTotal.WithLabelValues("ok").Inc()
	metrics.CorpusStatsDocs.Set(float64(stats.TotalDocs))

	if err := s.snapshot.Save(ctx, stats); err != nil {
		// The in-memory snapshot is already live; persistence is best effort.
		s.logger.Warn("Failed to persist corpus stats snapshot", zap.Error(err))
	}

	s.logger.Info("Corpus stats refreshed",
		zap.Int("total_docs", stats.TotalDocs),
		zap.Float64("avg_doc_length", stats.AvgDocLen),
	)
	return nil
}

// Start loads the persisted snapshot if one exists, runs an initial refresh,
// and rebuilds on the configured interval until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	if stats, err := s.snapshot.Load(ctx); err == nil {
		s.current.Store(stats)
		metrics.CorpusStatsDocs.Set(float64(stats.TotalDocs))
		s.logger.Info("Loaded corpus stats snapshot", zap.Int("total_docs", stats.TotalDocs))
	} else if !errors.Is(err, domain.ErrCorpusStatsUnavailable) {
		s.logger.Warn("Failed to load corpus stats snapshot", zap.Error(err))
	}

	if err := s.Refresh(ctx); err != nil {
		s.logger.Error("Initial corpus stats refresh failed", zap.Error(err))
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Error("Corpus stats refresh failed", zap.Error(err))
			}
		}
	}
}
