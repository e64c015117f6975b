package document

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"strconv"
	"time"

	domdoc "github.com/edura-cloud/docsearch/internal/domain/document"
	"github.com/edura-cloud/docsearch/internal/domain/search/request"
)

// Hash field names. Counters must stay plain integers so HINCRBY works.
const (
	fieldTitle      = "title"
	fieldKeywords   = "keywords"
	fieldCategoryID = "category_id"
	fieldSchoolID   = "school_id"
	fieldSummary    = "summary"
	fieldFileType   = "file_type"
	fieldViews      = "views"
	fieldDownloads  = "downloads"
	fieldGradeScore = "grade_score"
	fieldCreatedAt  = "created_at"
	fieldVector     = "vector"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(doc *domdoc.Document) map[string]string {
	keywords, _ := json.Marshal(doc.Keywords())
	m := map[string]string{
		fieldTitle:      doc.Title(),
		fieldKeywords:   string(keywords),
		fieldCategoryID: doc.CategoryID(),
		fieldSchoolID:   doc.SchoolID(),
		fieldSummary:    doc.Summary(),
		fieldFileType:   doc.FileType(),
		fieldViews:      strconv.Itoa(doc.Views()),
		fieldDownloads:  strconv.Itoa(doc.Downloads()),
		fieldGradeScore: strconv.FormatFloat(doc.GradeScore(), 'f', -1, 64),
		fieldCreatedAt:  doc.CreatedAt().UTC().Format(time.RFC3339),
	}
	if v := doc.Vector(); len(v) > 0 {
		m[fieldVector] = vectorToBytes(v)
	}
	return m
}

// parseHashFields converts a flat hash map back into a domain Document.
func parseHashFields(id string, m map[string]string) domdoc.Document {
	var keywords []string
	if raw := m[fieldKeywords]; raw != "" {
		_ = json.Unmarshal([]byte(raw), &keywords)
	}

	views, _ := strconv.Atoi(m[fieldViews])
	downloads, _ := strconv.Atoi(m[fieldDownloads])
	gradeScore, _ := strconv.ParseFloat(m[fieldGradeScore], 64)

	var createdAt time.Time
	if raw := m[fieldCreatedAt]; raw != "" {
		createdAt, _ = time.Parse(time.RFC3339, raw)
	}

	var vector []float32
	if raw := m[fieldVector]; raw != "" {
		vector = bytesToVector(raw)
	}

	return domdoc.Reconstruct(
		id, m[fieldTitle], keywords,
		m[fieldCategoryID], m[fieldSchoolID], m[fieldSummary], m[fieldFileType],
		views, downloads, gradeScore,
		createdAt, vector,
	)
}

// newFilterMatcher builds the structural-filter predicate applied at hydration.
func newFilterMatcher(f request.Filters) func(*domdoc.Document) bool {
	from, to := f.UploadedWithin.Bounds(time.Now())
	return func(doc *domdoc.Document) bool {
		if f.CategoryID != "" && doc.CategoryID() != f.CategoryID {
			return false
		}
		if f.SchoolID != "" && doc.SchoolID() != f.SchoolID {
			return false
		}
		if f.FileType != "" && doc.FileType() != f.FileType {
			return false
		}
		if !from.IsZero() {
			at := doc.CreatedAt()
			if at.Before(from) || !at.Before(to) {
				return false
			}
		}
		return true
	}
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
