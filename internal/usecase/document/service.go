// Package document manages the write side of the index: ingestion,
// vectorization, deletion, and engagement tracking.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/edura-cloud/docsearch/internal/domain"
	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
)

// Service coordinates document writes. embedder may be nil, in which case
// documents are indexed without vectors and only keyword search covers them.
type Service struct {
	repo       Repository
	categories CategoryResolver
	embedder   Embedder
	vectorCfg  domain.VectorConfig
	logger     *zap.Logger
}

func New(
	repo Repository,
	categories CategoryResolver,
	embedder Embedder,
	vectorCfg domain.VectorConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		embedder:   embedder,
		vectorCfg:  vectorCfg,
		logger:     logger,
	}
}

// Upsert validates, vectorizes, and stores a document. Returns true when the
// document was created rather than updated. An embedding failure does not
// block ingestion; the document is stored without a vector and logged.
func (s *Service) Upsert(ctx context.Context, doc domdoc.Document) (bool, error) {
	if s.embedder != nil && len(doc.Vector()) == 0 {
		s.vectorize(ctx, &doc)
	}

	created, err := s.repo.Upsert(ctx, &doc)
	if err != nil {
		return false, fmt.Errorf("upsert document: %w", err)
	}

	s.logger.Info("Document indexed",
		zap.String("id", doc.ID()),
		zap.Bool("created", created),
		zap.Bool("vectorized", len(doc.Vector()) > 0),
	)
	return created, nil
}

// UpsertMulti stores a batch without vectorization. Bulk loads vectorize
// offline or not at all; the vector strategy simply skips vector-less rows.
func (s *Service) UpsertMulti(ctx context.Context, docs []domdoc.Document) error {
	if err := s.repo.UpsertMulti(ctx, docs); err != nil {
		return fmt.Errorf("upsert batch: %w", err)
	}
	s.logger.Info("Document batch indexed", zap.Int("count", len(docs)))
	return nil
}

// Get returns one document by ID with its category name resolved.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, err
	}
	if name, err := s.categories.Resolve(ctx, doc.CategoryID()); err == nil {
		doc.SetCategoryName(name)
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return domdoc.Document{}, fmt.Errorf("resolve category: %w", err)
	}
	return doc, nil
}

// Delete removes a document from the index.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Document removed", zap.String("id", id))
	return nil
}

// TrackView bumps the view counter and returns the new value.
func (s *Service) TrackView(ctx context.Context, id string) (int64, error) {
	return s.repo.IncrementCounter(ctx, id, "views")
}

// TrackDownload bumps the download counter and returns the new value.
func (s *Service) TrackDownload(ctx context.Context, id string) (int64, error) {
	return s.repo.IncrementCounter(ctx, id, "downloads")
}

// vectorize embeds the document's composed text in place. Failures are
// logged and swallowed so ingestion never depends on the provider.
func (s *Service) vectorize(ctx context.Context, doc *domdoc.Document) {
	emb, err := s.embedder.Embed(ctx, s.embedText(ctx, doc))
	if err != nil {
		s.logger.Warn("Document vectorization failed, indexing without vector",
			zap.String("id", doc.ID()), zap.Error(err))
		return
	}
	doc.SetVector(emb.Embedding)
}

// embedText composes the text fed to the embedding model. Field labels keep
// the structure visible to the model; the summary is capped so one long
// description cannot crowd out the title and keywords.
func (s *Service) embedText(ctx context.Context, doc *domdoc.Document) string {
	var b strings.Builder

	if name, err := s.categories.Resolve(ctx, doc.CategoryID()); err == nil {
		b.WriteString("Thể loại: ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	b.WriteString("Tiêu đề: ")
	b.WriteString(doc.Title())
	if kw := doc.Keywords(); len(kw) > 0 {
		b.WriteString("\nTừ khóa: ")
		b.WriteString(strings.Join(kw, ", "))
	}
	if summary := doc.Summary(); summary != "" {
		runes := []rune(summary)
		if limit := s.vectorCfg.SummaryLimitRunes; limit > 0 && len(runes) > limit {
			runes = runes[:limit]
		}
		b.WriteString("\nMô tả: ")
		b.WriteString(string(runes))
	}
	return b.String()
}
