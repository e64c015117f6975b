// Package score implements the relevance scoring rules: per-field token
// matching, the category > title > keywords priority aggregation, the
// popularity tie-breaker, and the optional BM25 and cosine scorers.
package score

// Tier weights for the priority aggregation. Each field gets a high tier
// (compact-prefix match) and a low tier (whole-word match). Only the highest
// matching tier contributes; tiers are never summed.
const (
	CategoryPrefixScore = 300.0
	CategoryWordScore   = 250.0
	TitlePrefixScore    = 100.0
	TitleWordScore      = 80.0
	KeywordPrefixScore  = 60.0
	KeywordWordScore    = 40.0

	// CategoryTierMin separates category-tier scores from everything below;
	// the ranker groups documents at or above it first.
	CategoryTierMin = 200.0
)

// minCompactQueryLen rejects queries that compact to a single character:
// they would match nearly everything. Two-character queries ("ai", "ly")
// are allowed through the short-token path.
const minCompactQueryLen = 2

// FieldWeights configures the three match tiers of the field scorer.
type FieldWeights struct {
	Exact      float64 // whole-token match
	Prefix     float64 // field token extends the query token
	ShortExact float64 // whole-token match for 1-2 character query tokens
}

// MatchWeights is the weight set used when the field scorer acts as a
// word-boundary predicate for the aggregator.
var MatchWeights = FieldWeights{Exact: 1.0, Prefix: 0.9, ShortExact: 0.8}

// stopWords are short tokens too common to signal relevance on their own.
// Folded forms: "và" -> "va", "là" -> "la", "ở" -> "o", "để" -> "de".
var stopWords = map[string]struct{}{
	"va": {}, "la": {}, "o": {}, "de": {},
	"is": {}, "of": {}, "to": {}, "in": {},
}

// IsStopWord reports whether a folded token is in the stop-word set.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
