package score

import "github.com/edura-cloud/docsearch/internal/domain/document"

// Popularity bonus weights per engagement unit.
const (
	viewWeight     = 0.1
	downloadWeight = 0.2
	gradeWeight    = 0.5
)

// PopularityBonus derives a secondary score from engagement counters.
// Callers add it only to documents that already scored above zero: it breaks
// ties among relevant results, it never makes an irrelevant document appear.
func PopularityBonus(doc *document.Document) float64 {
	return float64(doc.Views())*viewWeight +
		float64(doc.Downloads())*downloadWeight +
		doc.GradeScore()*gradeWeight
}
