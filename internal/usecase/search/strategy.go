package search

import (
	"context"

	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/result"
	"github.com/edura-cloud/docsearch/internal/domain/search/score"
	"github.com/edura-cloud/docsearch/internal/domain/search/text"
)

// A scorer evaluates one ranking strategy over the candidate set and returns
// the documents it considers relevant. An empty result means the strategy
// has nothing to say and the next one in the chain runs.
type scorer interface {
	Name() string
	Score(ctx context.Context, q score.Query, docs []domdoc.Document) ([]result.ScoredDocument, error)
}

// minScoreFor returns the relevance floor by raw query length. Every
// strategy filters with it before the popularity bonus is added. Short
// queries match promiscuously, so they need a stronger signal.
func minScoreFor(rawQuery string) float64 {
	switch n := len([]rune(rawQuery)); {
	case n < 4:
		return 60
	case n < 5:
		return 50
	default:
		return 30
	}
}

// keywordScorer runs the field-priority relevance heuristic. It is the
// always-available fallback and the only strategy that never errors.
type keywordScorer struct {
	memo *text.Memo
}

func (s *keywordScorer) Name() string { return "keyword" }

func (s *keywordScorer) Score(
	_ context.Context, q score.Query, docs []domdoc.Document,
) ([]result.ScoredDocument, error) {
	minScore := minScoreFor(q.Raw())

	matches := make([]result.ScoredDocument, 0, len(docs))
	for i := range docs {
		rel := score.Relevance(q, &docs[i], s.memo)
		if rel < minScore {
			continue
		}
		total := rel + score.PopularityBonus(&docs[i])
		matches = append(matches, result.NewScoredDocument(docs[i], total, score.IsCategoryMatch(rel)))
	}
	return matches, nil
}

// bm25Scorer ranks with Okapi BM25 plus the category/title hybrid boost.
// With corpus statistics available it uses real IDF; otherwise it falls back
// to the single-document approximation.
type bm25Scorer struct {
	bm25  *score.BM25
	stats StatsProvider
	memo  *text.Memo
}

func (s *bm25Scorer) Name() string { return "bm25" }

func (s *bm25Scorer) Score(
	_ context.Context, q score.Query, docs []domdoc.Document,
) ([]result.ScoredDocument, error) {
	stats, err := s.stats.Current()
	if err != nil {
		stats = nil // statless fallback
	}

	minScore := minScoreFor(q.Raw())

	matches := make([]result.ScoredDocument, 0, len(docs))
	for i := range docs {
		docTokens := score.DocumentTokens(&docs[i])

		var raw float64
		if stats != nil {
			raw = s.bm25.Score(q.Tokens(), docTokens, docs[i].ID(), stats)
		} else {
			raw = s.bm25.ScoreStatless(q.Tokens(), docTokens)
		}
		boosted := score.HybridBoost(q, &docs[i], raw, s.memo)
		if boosted < minScore {
			continue
		}
		total := boosted + score.PopularityBonus(&docs[i])
		matches = append(matches, result.NewScoredDocument(docs[i], total, false))
	}
	return matches, nil
}

// vectorScorer embeds the query and ranks by cosine similarity against the
// stored document vectors. Documents without vectors are skipped; an
// embedding failure aborts the strategy so the chain can fall through.
type vectorScorer struct {
	embedder Embedder
}

func (s *vectorScorer) Name() string { return "vector" }

func (s *vectorScorer) Score(
	ctx context.Context, q score.Query, docs []domdoc.Document,
) ([]result.ScoredDocument, error) {
	emb, err := s.embedder.Embed(ctx, q.Raw())
	if err != nil {
		return nil, err
	}

	minScore := minScoreFor(q.Raw())

	matches := make([]result.ScoredDocument, 0, len(docs))
	for i := range docs {
		vec := docs[i].Vector()
		if len(vec) == 0 {
			continue
		}
		sim := score.SimilarityScore(score.Cosine(emb.Embedding, vec))
		if sim < minScore {
			continue
		}
		total := sim + score.PopularityBonus(&docs[i])
		matches = append(matches, result.NewScoredDocument(docs[i], total, false))
	}
	return matches, nil
}
