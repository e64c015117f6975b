package search

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/edura-cloud/docsearch/internal/domain"
	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
	"github.com/edura-cloud/docsearch/internal/domain/search/score"
)

type mockRepo struct {
	docs []domdoc.Document
	err  error
}

func (m *mockRepo) List(_ context.Context, _ request.Filters) ([]domdoc.Document, error) {
	return m.docs, m.err
}

type mockCategories struct {
	catalog map[string]string
	err     error
}

func (m *mockCategories) ResolveAll(_ context.Context) (map[string]string, error) {
	return m.catalog, m.err
}

type mockCache struct {
	page result.Page
	hit  bool
	sets int
}

func (m *mockCache) Get(_ context.Context, _ *request.Request) (result.Page, bool) {
	return m.page, m.hit
}

func (m *mockCache) Set(_ context.Context, _ *request.Request, page result.Page) {
	m.sets++
	m.page = page
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

type mockStats struct {
	stats *score.Stats
}

func (m *mockStats) Current() (*score.Stats, error) {
	if m.stats == nil {
		return nil, domain.ErrCorpusStatsUnavailable
	}
	return m.stats, nil
}

func doc(t *testing.T, id, title string, keywords []string, categoryID string, createdAt time.Time, vec []float32) domdoc.Document {
	t.Helper()
	return domdoc.Reconstruct(
		id, title, keywords,
		categoryID, "school-1", "", "pdf",
		0, 0, 0, createdAt, vec,
	)
}

func keywordService(t *testing.T, repo *mockRepo, cats *mockCategories) *Service {
	t.Helper()
	return New(repo, cats, nil, nil, nil, Options{}, zap.NewNop())
}

func mustRequest(t *testing.T, query string, page, size int) request.Request {
	t.Helper()
	req, err := request.New(query, page, size, request.Filters{})
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return req
}
