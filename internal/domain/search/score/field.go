package score

// minPrefixLen is the shortest query token allowed to match by prefix.
// Shorter tokens must match whole field tokens to avoid substring noise.
const minPrefixLen = 3

// ScoreField computes the match score of a tokenized query against a single
// tokenized field.
//
// Single-token query qt:
//   - len(qt) <= 2: whole-token match only, and never for stop words.
//     Score = ShortExact.
//   - otherwise: whole-token match scores Exact; failing that, the first
//     field token strictly longer than qt that starts with qt scores Prefix.
//
// Multi-token query: every query token must match some field token (whole
// token, or prefix for tokens of 3+ characters). Partial matches score 0.
// Score = Exact times the token count, scaled by 0.8 past two tokens so
// long queries don't dominate on raw length.
func ScoreField(queryTokens, fieldTokens []string, w FieldWeights) float64 {
	if len(queryTokens) == 0 || len(fieldTokens) == 0 {
		return 0
	}

	if len(queryTokens) == 1 {
		return scoreSingleToken(queryTokens[0], fieldTokens, w)
	}

	for _, qt := range queryTokens {
		if !tokenMatches(qt, fieldTokens) {
			return 0
		}
	}

	scale := 1.0
	if len(queryTokens) > 2 {
		scale = 0.8
	}
	return w.Exact * float64(len(queryTokens)) * scale
}

func scoreSingleToken(qt string, fieldTokens []string, w FieldWeights) float64 {
	if len(qt) <= 2 {
		if IsStopWord(qt) {
			return 0
		}
		for _, ft := range fieldTokens {
			if ft == qt {
				return w.ShortExact
			}
		}
		return 0
	}

	for _, ft := range fieldTokens {
		if ft == qt {
			return w.Exact
		}
	}
	// First prefix match wins; no multi-counting.
	for _, ft := range fieldTokens {
		if len(ft) > len(qt) && hasTokenPrefix(ft, qt) {
			return w.Prefix
		}
	}
	return 0
}

// tokenMatches implements the per-token rule for multi-token AND matching.
func tokenMatches(qt string, fieldTokens []string) bool {
	short := len(qt) <= 2
	if short && IsStopWord(qt) {
		return false
	}
	for _, ft := range fieldTokens {
		if ft == qt {
			return true
		}
		if !short && len(qt) >= minPrefixLen && len(ft) > len(qt) && hasTokenPrefix(ft, qt) {
			return true
		}
	}
	return false
}

func hasTokenPrefix(token, prefix string) bool {
	return len(token) >= len(prefix) && token[:len(prefix)] == prefix
}
