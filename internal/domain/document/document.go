package document

import (
	"fmt"
	"regexp"
	"time"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxTitleLength is the maximum document title length in runes.
const MaxTitleLength = 512

// Document is a searchable document record (immutable value object, storage-owned).
// Text fields may be empty; the ranking engine treats missing text as a non-match,
// never an error.
type Document struct {
	id         string
	title      string
	keywords   []string
	categoryID string
	category   string // display name, resolved from categoryID before scoring
	schoolID   string
	summary    string
	fileType   string
	views      int
	downloads  int
	gradeScore float64
	createdAt  time.Time
	vector     []float32
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Negative engagement counters are coerced to 0.
func New(
	id, title string, keywords []string,
	categoryID, schoolID, summary, fileType string,
	views, downloads int, gradeScore float64,
	createdAt time.Time,
) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document ID is required")
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("document ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("document ID must be alphanumeric with underscores and hyphens")
	}
	if len([]rune(title)) > MaxTitleLength {
		return Document{}, fmt.Errorf("title too long (max %d runes)", MaxTitleLength)
	}

	return Document{
		id:         id,
		title:      title,
		keywords:   cloneStrings(keywords),
		categoryID: categoryID,
		schoolID:   schoolID,
		summary:    summary,
		fileType:   fileType,
		views:      clampNonNegative(views),
		downloads:  clampNonNegative(downloads),
		gradeScore: clampNonNegativeF(gradeScore),
		createdAt:  createdAt,
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
// Counters are still coerced to non-negative so old malformed records rank safely.
func Reconstruct(
	id, title string, keywords []string,
	categoryID, schoolID, summary, fileType string,
	views, downloads int, gradeScore float64,
	createdAt time.Time, vector []float32,
) Document {
	return Document{
		id:         id,
		title:      title,
		keywords:   cloneStrings(keywords),
		categoryID: categoryID,
		schoolID:   schoolID,
		summary:    summary,
		fileType:   fileType,
		views:      clampNonNegative(views),
		downloads:  clampNonNegative(downloads),
		gradeScore: clampNonNegativeF(gradeScore),
		createdAt:  createdAt,
		vector:     vector,
	}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Keywords returns the keyword list.
func (d *Document) Keywords() []string { return d.keywords }

// CategoryID returns the category foreign key.
func (d *Document) CategoryID() string { return d.categoryID }

// CategoryName returns the resolved category display name (empty until resolved).
func (d *Document) CategoryName() string { return d.category }

// SchoolID returns the school foreign key.
func (d *Document) SchoolID() string { return d.schoolID }

// Summary returns the document summary text.
func (d *Document) Summary() string { return d.summary }

// FileType returns the stored file type ("pdf", "doc", "docx").
func (d *Document) FileType() string { return d.fileType }

// Views returns the view counter.
func (d *Document) Views() int { return d.views }

// Downloads returns the download counter.
func (d *Document) Downloads() int { return d.downloads }

// GradeScore returns the community grade score.
func (d *Document) GradeScore() float64 { return d.gradeScore }

// CreatedAt returns the upload timestamp.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// Vector returns the embedding vector (nil when not embedded yet).
func (d *Document) Vector() []float32 { return d.vector }

// SetVector attaches the embedding vector (called by the document service after embedding).
func (d *Document) SetVector(v []float32) { d.vector = v }

// SetCategoryName attaches the resolved category display name before scoring.
func (d *Document) SetCategoryName(name string) { d.category = name }

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clampNonNegativeF(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
