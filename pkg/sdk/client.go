package docsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edura-cloud/docsearch/internal/db"
	dbRedis "github.com/edura-cloud/docsearch/internal/db/redis"
	"github.com/edura-cloud/docsearch/internal/domain"
	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
	categoryrepo "github.com/edura-cloud/docsearch/internal/repository/category"
	documentrepo "github.com/edura-cloud/docsearch/internal/repository/document"
	"github.com/edura-cloud/docsearch/internal/repository/searchcache"
	documentuc "github.com/edura-cloud/docsearch/internal/usecase/document"
	healthuc "github.com/edura-cloud/docsearch/internal/usecase/health"
	searchuc "github.com/edura-cloud/docsearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so services can be substituted in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (result.Page, error)
}

type documentUseCase interface {
	Upsert(ctx context.Context, doc domdoc.Document) (bool, error)
	UpsertMulti(ctx context.Context, docs []domdoc.Document) error
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	TrackView(ctx context.Context, id string) (int64, error)
	TrackDownload(ctx context.Context, id string) (int64, error)
}

type categoryUseCase interface {
	Upsert(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	ResolveAll(ctx context.Context) (map[string]string, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the docsearch SDK entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	docSvc    documentUseCase
	catSvc    categoryUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a docsearch Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("docsearch: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("docsearch: create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("docsearch: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	nop := zap.NewNop()

	docRepo := documentrepo.New(store)
	catRepo := categoryrepo.New(store)

	// Pass nil interfaces (not typed nil pointers) for disabled parts.
	var emb searchuc.Embedder
	var docEmb documentuc.Embedder
	if cfg.embedder != nil {
		adapter := &embedderAdapter{inner: cfg.embedder}
		emb = adapter
		docEmb = adapter
	}

	var cache searchuc.ResultCache
	if cfg.resultCacheTTL > 0 {
		cache = searchcache.New(store, cfg.resultCacheTTL, nop)
	}

	searchSvc := searchuc.New(docRepo, catRepo, cache, emb, nil, searchuc.Options{
		MaxCandidates: cfg.maxCandidates,
	}, nop)
	docSvc := documentuc.New(docRepo, catRepo, docEmb, domain.DefaultVectorConfig(), nop)
	healthSvc := healthuc.New(store, nil, nil)

	return &Client{
		store:     store,
		searchSvc: searchSvc,
		docSvc:    docSvc,
		catSvc:    catRepo,
		healthSvc: healthSvc,
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a ranked document search.
func (c *Client) Search(ctx context.Context, params SearchParams) (page SearchPage, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	req, err := toInternalRequest(params)
	if err != nil {
		return SearchPage{}, err
	}
	res, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return SearchPage{}, fmt.Errorf("search: %w", err)
	}
	return fromInternalPage(res), nil
}

// Documents returns the document management service.
func (c *Client) Documents() *DocumentService {
	return &DocumentService{svc: c.docSvc, obs: c.obs}
}

// Categories returns the category catalog service.
func (c *Client) Categories() *CategoryService {
	return &CategoryService{svc: c.catSvc, obs: c.obs}
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component -> "ok"/"error"
}

// embedderAdapter wraps the public Embedder to satisfy the internal interfaces.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
