package document

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/edura-cloud/docsearch/internal/domain"
	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
)

type mockRepo struct {
	upsertFunc      func(ctx context.Context, doc *domdoc.Document) (bool, error)
	upsertMultiFunc func(ctx context.Context, docs []domdoc.Document) error
	getFunc         func(ctx context.Context, id string) (domdoc.Document, error)
	deleteFunc      func(ctx context.Context, id string) error
	incrementFunc   func(ctx context.Context, id, counter string) (int64, error)
}

func (m *mockRepo) Upsert(ctx context.Context, doc *domdoc.Document) (bool, error) {
	return m.upsertFunc(ctx, doc)
}

func (m *mockRepo) UpsertMulti(ctx context.Context, docs []domdoc.Document) error {
	return m.upsertMultiFunc(ctx, docs)
}

func (m *mockRepo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	return m.getFunc(ctx, id)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockRepo) IncrementCounter(ctx context.Context, id, counter string) (int64, error) {
	return m.incrementFunc(ctx, id, counter)
}

type mockResolver struct {
	resolveFunc func(ctx context.Context, id string) (string, error)
}

func (m *mockResolver) Resolve(ctx context.Context, id string) (string, error) {
	if m.resolveFunc == nil {
		return "", domain.ErrCategoryNotFound
	}
	return m.resolveFunc(ctx, id)
}

type mockEmbedder struct {
	embedFunc func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	texts     []string
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.texts = append(m.texts, text)
	return m.embedFunc(ctx, text)
}

func testDoc(t *testing.T, vector []float32) domdoc.Document {
	t.Helper()
	return domdoc.Reconstruct(
		"doc-1", "Giải tích 1", []string{"toán", "đại cương"},
		"cat-math", "school-1", "Giáo trình giải tích cho sinh viên năm nhất", "pdf",
		10, 4, 8.5, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), vector,
	)
}

func newTestService(repo *mockRepo, cats *mockResolver, emb Embedder) *Service {
	return New(repo, cats, emb, domain.DefaultVectorConfig(), zap.NewNop())
}
