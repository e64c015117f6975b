// Package corpus persists BM25 corpus statistics snapshots so a restarted
// instance can score immediately instead of waiting for the first rebuild.
package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/edura-cloud/docsearch/internal/db"
	"github.com/edura-cloud/docsearch/internal/domain"
	"github.com/edura-cloud/docsearch/internal/domain/search/score"
)

var snapshotKey = domain.KeyPrefix + "corpus_stats"

// store is the consumer interface for snapshot persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Store persists corpus statistics as a JSON snapshot with a TTL. A stale
// snapshot past its TTL simply disappears and the next refresh rebuilds it.
type Store struct {
	store store
	ttl   time.Duration
}

// New creates a snapshot store.
func New(s store, ttl time.Duration) *Store {
	return &Store{store: s, ttl: ttl}
}

// Save persists a statistics snapshot.
func (s *Store) Save(ctx context.Context, stats *score.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal corpus stats: %w", err)
	}
	if err := s.store.SetWithTTL(ctx, snapshotKey, data, s.ttl); err != nil {
		return fmt.Errorf("save corpus stats: %w", err)
	}
	return nil
}

// Load returns the persisted snapshot, or ErrCorpusStatsUnavailable when no
// snapshot exists.
func (s *Store) Load(ctx context.Context) (*score.Stats, error) {
	data, err := s.store.Get(ctx, snapshotKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrCorpusStatsUnavailable
		}
		return nil, fmt.Errorf("load corpus stats: %w", err)
	}

	var stats score.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("decode corpus stats: %w", err)
	}
	return &stats, nil
}
