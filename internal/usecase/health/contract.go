package health

import (
	"context"

	"github.com/edura-cloud/docsearch/internal/domain/search/score"
)

// StorePinger checks storage availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// StatsProvider reports whether a corpus snapshot has been built.
type StatsProvider interface {
	Current() (*score.Stats, error)
}
