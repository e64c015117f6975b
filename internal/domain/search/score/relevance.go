package score

import (
	"strings"

	"github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/text"
)

// Query is a pre-normalized search query, computed once per request and
// shared across every document scored in that request.
type Query struct {
	raw     string
	compact string
	tokens  []string
}

// NewQuery normalizes a raw query through the memo.
func NewQuery(raw string, memo *text.Memo) Query {
	raw = strings.TrimSpace(raw)
	return Query{
		raw:     raw,
		compact: memo.Compact(raw),
		tokens:  memo.Tokenize(raw),
	}
}

// Raw returns the trimmed original query.
func (q *Query) Raw() string { return q.raw }

// Compact returns the no-space normalized form.
func (q *Query) Compact() string { return q.compact }

// Tokens returns the normalized token sequence.
func (q *Query) Tokens() []string { return q.tokens }

// IsEmpty reports whether the query compacts to nothing (empty, whitespace,
// or punctuation only) and therefore means "no relevance filtering".
func (q *Query) IsEmpty() bool { return q.compact == "" }

// Relevance computes the keyword-heuristic relevance of a document, honoring
// the strict field priority: category, then title, then each keyword. The
// first matching tier wins and evaluation stops. Tiers never add up, which
// guarantees category hits always outscore title hits, and title hits always
// outscore keyword hits.
//
// Each field runs a two-tier test: the compact field starting with the
// compact query is the high tier (so "kythuat" finds "Kỹ Thuật Phần Mềm");
// failing that, a whole-word match of every query token against the field's
// word-split form is the low tier. Plain substring containment inside a
// longer compact run does not match: "toan" finds "Toán học" but not
// "Kếtoán" written solid.
//
// Summary is never consulted: a summary-only match keeps the score at 0.
func Relevance(q Query, doc *document.Document, memo *text.Memo) float64 {
	if len(q.compact) < minCompactQueryLen {
		return 0
	}
	if len(q.compact) <= 2 && IsStopWord(q.compact) {
		return 0
	}

	if s := matchTier(q, doc.CategoryName(), CategoryPrefixScore, CategoryWordScore, memo); s > 0 {
		return s
	}
	if s := matchTier(q, doc.Title(), TitlePrefixScore, TitleWordScore, memo); s > 0 {
		return s
	}
	for _, kw := range doc.Keywords() {
		if s := matchTier(q, kw, KeywordPrefixScore, KeywordWordScore, memo); s > 0 {
			return s
		}
	}
	return 0
}

// matchTier runs the two-tier field test: compact prefix (high) then
// word-boundary token match (low). Returns 0 when neither applies.
func matchTier(q Query, field string, prefixScore, wordScore float64, memo *text.Memo) float64 {
	if field == "" {
		return 0
	}
	if strings.HasPrefix(memo.Compact(field), q.compact) {
		return prefixScore
	}
	if ScoreField(q.tokens, memo.Tokenize(field), MatchWeights) > 0 {
		return wordScore
	}
	return 0
}

// IsCategoryMatch reports whether a relevance score falls in the category tier.
func IsCategoryMatch(relevance float64) bool {
	return relevance >= CategoryTierMin
}
