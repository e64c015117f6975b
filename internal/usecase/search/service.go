// Package search orchestrates the ranking pipeline: candidate listing,
// category resolution, the strategy chain, ordering, and pagination.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/rank"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
	"github.com/edura-cloud/docsearch/internal/domain/search/score"
	"github.com/edura-cloud/docsearch/internal/domain/search/text"
	"github.com/edura-cloud/docsearch/internal/metrics"
)

// Options configures the search pipeline.
type Options struct {
	// MaxCandidates caps the scored set; the newest documents win the cut.
	MaxCandidates int
	// EnableBM25 inserts the BM25 strategy between vector and keyword.
	EnableBM25 bool
	BM25K1     float64
	BM25B      float64
}

// Service executes ranked document searches.
type Service struct {
	repo       Repository
	categories CategoryResolver
	cache      ResultCache
	chain      []scorer
	memo       *text.Memo
	maxCand    int
	logger     *zap.Logger
}

// New creates a search service. embedder and stats may be nil: each disables
// its strategy and the chain falls through to keyword matching, which is
// always available.
func New(
	repo Repository,
	categories CategoryResolver,
	cache ResultCache,
	embedder Embedder,
	stats StatsProvider,
	opts Options,
	logger *zap.Logger,
) *Service {
	memo := text.NewMemo(0)

	var chain []scorer
	if embedder != nil {
		chain = append(chain, &vectorScorer{embedder: embedder})
	}
	if opts.EnableBM25 && stats != nil {
		chain = append(chain, &bm25Scorer{
			bm25:  score.NewBM25(opts.BM25K1, opts.BM25B),
			stats: stats,
			memo:  memo,
		})
	}
	chain = append(chain, &keywordScorer{memo: memo})

	maxCand := opts.MaxCandidates
	if maxCand <= 0 {
		maxCand = 1000
	}

	return &Service{
		repo:       repo,
		categories: categories,
		cache:      cache,
		chain:      chain,
		memo:       memo,
		maxCand:    maxCand,
		logger:     logger,
	}
}

// Search runs the full pipeline and returns one ranked page.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	if s.cache != nil {
		if page, ok := s.cache.Get(ctx, req); ok {
			metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
			return page, nil
		}
		metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
	}

	start := time.Now()

	docs, err := s.repo.List(ctx, req.Filters())
	if err != nil {
		return result.Page{}, fmt.Errorf("list candidates: %w", err)
	}
	metrics.SearchCandidates.Observe(float64(len(docs)))

	q := score.NewQuery(req.Query(), s.memo)

	var (
		scored   []result.ScoredDocument
		strategy string
	)
	if q.IsEmpty() {
		if err := s.resolveCategories(ctx, docs); err != nil {
			return result.Page{}, err
		}
		scored = browseByRecency(docs)
		strategy = "recency"
	} else {
		docs = s.capCandidates(docs)
		if err := s.resolveCategories(ctx, docs); err != nil {
			return result.Page{}, err
		}
		scored, strategy = s.runChain(ctx, q, docs)
		rank.Sort(scored)
	}

	page := rank.Paginate(scored, req.Page(), req.PageSize())

	metrics.SearchRequestsTotal.WithLabelValues(strategy).Inc()
	metrics.SearchDuration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
	s.logger.Debug("Search completed",
		zap.String("strategy", strategy),
		zap.Int("candidates", len(docs)),
		zap.Int("matches", page.Total),
	)

	if s.cache != nil {
		s.cache.Set(ctx, req, page)
	}
	return page, nil
}

// runChain tries each strategy in order and keeps the first non-empty
// result. A strategy error (provider down, stats missing) is logged and the
// chain falls through; keyword matching closes the chain and never errors.
func (s *Service) runChain(
	ctx context.Context, q score.Query, docs []domdoc.Document,
) ([]result.ScoredDocument, string) {
	for _, sc := range s.chain {
		matches, err := sc.Score(ctx, q, docs)
		if err != nil {
			s.logger.Warn("Search strategy failed, falling through",
				zap.String("strategy", sc.Name()), zap.Error(err))
			continue
		}
		if len(matches) > 0 {
			return matches, sc.Name()
		}
	}
	return nil, s.chain[len(s.chain)-1].Name()
}

// capCandidates bounds the scored set, keeping the newest documents.
func (s *Service) capCandidates(docs []domdoc.Document) []domdoc.Document {
	if len(docs) <= s.maxCand {
		return docs
	}
	scored := browseByRecency(docs)
	capped := make([]domdoc.Document, s.maxCand)
	for i := 0; i < s.maxCand; i++ {
		capped[i] = *scored[i].Document()
	}
	return capped
}

// resolveCategories attaches display names so the category tier can match.
func (s *Service) resolveCategories(ctx context.Context, docs []domdoc.Document) error {
	if len(docs) == 0 {
		return nil
	}
	catalog, err := s.categories.ResolveAll(ctx)
	if err != nil {
		return fmt.Errorf("resolve categories: %w", err)
	}
	for i := range docs {
		if name, ok := catalog[docs[i].CategoryID()]; ok {
			docs[i].SetCategoryName(name)
		}
	}
	return nil
}

// browseByRecency wraps unscored documents for empty-query browsing.
func browseByRecency(docs []domdoc.Document) []result.ScoredDocument {
	scored := make([]result.ScoredDocument, len(docs))
	for i := range docs {
		scored[i] = result.NewScoredDocument(docs[i], 0, false)
	}
	rank.SortByRecency(scored)
	return scored
}
