package corpus

import (
	"context"

	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/score"
)

// DocumentLister reads the full document set for statistics builds.
type DocumentLister interface {
	List(ctx context.Context, filters request.Filters) ([]domdoc.Document, error)
}

// SnapshotStore persists statistics between restarts.
type SnapshotStore interface {
	Save(ctx context.Context, stats *score.Stats) error
	Load(ctx context.Context) (*score.Stats, error)
}
