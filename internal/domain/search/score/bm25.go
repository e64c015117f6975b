package score

import (
	"math"
	"strings"

	"github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/text"
)

// Okapi BM25 defaults (Robertson et al.).
const (
	DefaultK1 = 1.2
	DefaultB  = 0.75

	// statlessAvgDocLen substitutes the corpus average document length when
	// scoring without precomputed statistics.
	statlessAvgDocLen = 20.0

	// Hybrid boost factors applied on top of the raw BM25 score when the
	// compact query is contained in the category or title.
	categoryBoost = 2.0
	titleBoost    = 1.5
)

// Stats holds precomputed corpus statistics for BM25 scoring. A Stats value
// is immutable once built; refreshes swap in a fully-built replacement so
// readers never observe a partial object.
type Stats struct {
	TotalDocs  int            `json:"total_docs"`
	AvgDocLen  float64        `json:"avg_doc_length"`
	DocFreq    map[string]int `json:"document_freq"`
	DocLengths map[string]int `json:"doc_lengths"`
}

// BuildStats computes corpus statistics over the full document set.
func BuildStats(docs []document.Document) *Stats {
	s := &Stats{
		DocFreq:    make(map[string]int),
		DocLengths: make(map[string]int, len(docs)),
	}
	total := 0
	for i := range docs {
		tokens := DocumentTokens(&docs[i])
		s.DocLengths[docs[i].ID()] = len(tokens)
		total += len(tokens)

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			s.DocFreq[tok]++
		}
	}
	s.TotalDocs = len(docs)
	if s.TotalDocs > 0 {
		s.AvgDocLen = float64(total) / float64(s.TotalDocs)
	}
	return s
}

// IDF returns the smoothed inverse document frequency of a term.
func (s *Stats) IDF(term string) float64 {
	df := s.DocFreq[term]
	if df == 0 {
		return 0
	}
	return math.Log((float64(s.TotalDocs) - float64(df) + 0.5) / (float64(df) + 0.5))
}

// DocumentTokens tokenizes the searchable text of a document: title,
// keywords, and category name. Summary is excluded, consistent with the
// keyword-heuristic path.
func DocumentTokens(doc *document.Document) []string {
	parts := make([]string, 0, 2+len(doc.Keywords()))
	if doc.Title() != "" {
		parts = append(parts, doc.Title())
	}
	parts = append(parts, doc.Keywords()...)
	if doc.CategoryName() != "" {
		parts = append(parts, doc.CategoryName())
	}
	return text.Tokenize(strings.Join(parts, " "))
}

// BM25 scores documents with the Okapi BM25 formula.
type BM25 struct {
	K1 float64
	B  float64
}

// NewBM25 creates a scorer with the given parameters; non-positive values
// fall back to the defaults.
func NewBM25(k1, b float64) *BM25 {
	if k1 <= 0 {
		k1 = DefaultK1
	}
	if b <= 0 {
		b = DefaultB
	}
	return &BM25{K1: k1, B: b}
}

// Score computes BM25 against precomputed corpus statistics.
func (bm *BM25) Score(queryTokens, docTokens []string, docID string, stats *Stats) float64 {
	if len(queryTokens) == 0 || len(docTokens) == 0 || stats == nil || stats.AvgDocLen == 0 {
		return 0
	}
	docLen := stats.DocLengths[docID]
	if docLen == 0 {
		docLen = len(docTokens)
	}

	var s float64
	for _, term := range queryTokens {
		tf := termFreq(docTokens, term)
		if tf == 0 {
			continue
		}
		idf := stats.IDF(term)
		if idf == 0 {
			continue
		}
		num := float64(tf) * (bm.K1 + 1)
		den := float64(tf) + bm.K1*(1-bm.B+bm.B*(float64(docLen)/stats.AvgDocLen))
		s += idf * (num / den)
	}
	return s
}

// ScoreStatless computes a single-document BM25 approximation when no corpus
// statistics exist: log(tf+1) stands in for IDF and the average document
// length is assumed.
func (bm *BM25) ScoreStatless(queryTokens, docTokens []string) float64 {
	if len(queryTokens) == 0 || len(docTokens) == 0 {
		return 0
	}
	docLen := float64(len(docTokens))

	var s float64
	for _, term := range queryTokens {
		tf := termFreq(docTokens, term)
		if tf == 0 {
			continue
		}
		num := float64(tf) * (bm.K1 + 1)
		den := float64(tf) + bm.K1*(1-bm.B+bm.B*(docLen/statlessAvgDocLen))
		s += math.Log(float64(tf)+1) * (num / den)
	}
	return s
}

// HybridBoost layers the field priority onto a raw BM25 score: a category
// containment doubles it, a title containment multiplies by 1.5, otherwise
// the raw score passes through. Zero stays zero.
func HybridBoost(q Query, doc *document.Document, bm25Score float64, memo *text.Memo) float64 {
	if bm25Score == 0 || q.IsEmpty() {
		return bm25Score
	}
	if cat := memo.Compact(doc.CategoryName()); cat != "" && strings.Contains(cat, q.Compact()) {
		return bm25Score * categoryBoost
	}
	if title := memo.Compact(doc.Title()); title != "" && strings.Contains(title, q.Compact()) {
		return bm25Score * titleBoost
	}
	return bm25Score
}

func termFreq(tokens []string, term string) int {
	n := 0
	for _, t := range tokens {
		if t == term {
			n++
		}
	}
	return n
}
