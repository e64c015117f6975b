package domain

// KeyPrefix is the default namespace prefix for all storage keys.
const KeyPrefix = "docsearch:"

// VectorConfig holds internal vectorization settings, not exposed to clients.
type VectorConfig struct {
	Model               string
	Dimensions          int
	DistanceMetric      string
	DocumentInstruction string
	QueryInstruction    string
	SummaryLimitRunes   int
}

// DefaultVectorConfig returns the default configuration for Vietnamese document search.
func DefaultVectorConfig() VectorConfig {
	return VectorConfig{
		Model:               "Qwen3-Embedding-8B",
		Dimensions:          1024,
		DistanceMetric:      "cosine",
		DocumentInstruction: "Represent this document for semantic search",
		QueryInstruction:    "Represent this query for retrieving similar documents",
		SummaryLimitRunes:   500,
	}
}
