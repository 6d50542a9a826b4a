// Package citation maps publications to canonical citation fields and
// renders them through a style-driven formatter.
package citation

import (
	"fmt"
	"strconv"

	"github.com/matsen/vitae/internal/publication"
	"github.com/matsen/vitae/internal/status"
)

// Name is a single contributor entry in a citation name list.
type Name struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// DateVal is a citation date as ordered year/month/day strings. Unknown
// dates carry empty strings so downstream formatters never see nulls.
type DateVal struct {
	Parts []string `json:"date-parts"`
}

// Fields is the canonical citation field map for one publication, keyed by
// CSL variable names. Values are string, []Name, or DateVal; absent
// underlying data is coerced to the empty string. The map is built fresh
// per request and never cached.
type Fields map[string]any

// Str returns the string value for key, or "" when absent or non-string.
func (f Fields) Str(key string) string {
	s, _ := f[key].(string)
	return s
}

// Names returns the name list for key, or nil.
func (f Fields) Names(key string) []Name {
	n, _ := f[key].([]Name)
	return n
}

// Date returns the date value for key.
func (f Fields) Date(key string) (DateVal, bool) {
	d, ok := f[key].(DateVal)
	return d, ok
}

// MapOptions adjusts field mapping for a single request.
type MapOptions struct {
	// Edition names a book edition whose date and ISBN replace the parent
	// book's fields.
	Edition string
	// UseSubmissionDate emits the submission date as a "submitted" date
	// when no publication date exists.
	UseSubmissionDate bool
}

// Mapper converts publication records to canonical citation fields.
type Mapper struct {
	Scheme *status.Scheme
}

// NewMapper returns a Mapper over the given status scheme.
func NewMapper(scheme *status.Scheme) *Mapper {
	return &Mapper{Scheme: scheme}
}

// MapFields builds the canonical citation field map for pub. Records below
// the in-revision stage get a minimal manuscript placeholder; chapters
// without editors fail with *MissingRelationError; an edition option on
// anything but a book is an error.
func (m *Mapper) MapFields(pub *publication.Publication, opts MapOptions) (Fields, error) {
	fields := Fields{
		"id":          pub.Slug,
		"title":       pub.Title,
		"author":      nameList(pub.Authors),
		"abstract":    pub.AbstractHTML,
		"status":      m.Scheme.Label(pub.Status),
		"title-short": pub.ShortTitle,
	}
	if pub.URL != "" {
		fields["URL"] = pub.URL
	}

	if opts.Edition != "" && pub.Type != publication.TypeBook {
		return nil, fmt.Errorf("editions belong to books, and %q is a %s", pub.Slug, pub.Type)
	}

	reached := (pub.PubDate != nil || pub.SubmissionDate != nil) &&
		pub.Status != nil && *pub.Status >= m.Scheme.Ranges.InRevision.Min

	switch pub.Type {
	case publication.TypeArticle:
		m.mapArticle(fields, pub, opts, reached)
	case publication.TypeBook:
		if err := m.mapBook(fields, pub, opts, reached); err != nil {
			return nil, err
		}
	case publication.TypeChapter:
		if err := m.mapChapter(fields, pub, opts, reached); err != nil {
			return nil, err
		}
	case publication.TypeReport:
		m.mapReport(fields, pub, opts, reached)
	default:
		return nil, fmt.Errorf("unknown publication type %q", pub.Type)
	}

	return fields, nil
}

func (m *Mapper) mapArticle(fields Fields, pub *publication.Publication, opts MapOptions, reached bool) {
	if !reached {
		fields["type"] = "article"
		return
	}
	a := pub.Article
	if a == nil {
		a = &publication.ArticleDetail{}
	}
	container := ""
	if pub.Journal != nil {
		container = pub.Journal.Title
	}
	fields["type"] = "article-journal"
	fields["container-title"] = container
	fields["DOI"] = a.DOI
	fields["issue"] = a.Issue
	fields["PMCID"] = a.PMCID
	fields["PMID"] = a.PMID
	fields["volume"] = a.Volume
	setPageRange(fields, a.StartPage, a.EndPage)
	setDateParts(fields, pub.PubDate, pub.SubmissionDate, opts.UseSubmissionDate)
}

func (m *Mapper) mapBook(fields Fields, pub *publication.Publication, opts MapOptions, reached bool) error {
	if !reached {
		fields["type"] = "manuscript"
		return nil
	}
	b := pub.Book
	if b == nil {
		b = &publication.BookDetail{}
	}
	fields["type"] = "book"
	fields["collection-title"] = b.Series
	fields["collection-number"] = b.SeriesNumber
	fields["volume"] = intString(b.Volume)
	fields["publisher"] = b.Publisher
	fields["publisher-place"] = b.Place

	if opts.Edition != "" {
		ed := pub.EditionNamed(opts.Edition)
		if ed == nil {
			return fmt.Errorf("book %q has no edition named %q", pub.Slug, opts.Edition)
		}
		fields["edition"] = ed.Name
		fields["ISBN"] = ed.ISBN
		setDateParts(fields, ed.PubDate, ed.SubmissionDate, opts.UseSubmissionDate)
		return nil
	}
	fields["ISBN"] = b.ISBN
	setDateParts(fields, pub.PubDate, pub.SubmissionDate, opts.UseSubmissionDate)
	return nil
}

func (m *Mapper) mapChapter(fields Fields, pub *publication.Publication, opts MapOptions, reached bool) error {
	// A chapter citation is structurally invalid without an editor,
	// whatever its stage.
	if len(pub.Editors) < 1 {
		return &MissingRelationError{Type: publication.TypeChapter, Relation: "editorship"}
	}
	if !reached {
		fields["type"] = "manuscript"
		return nil
	}
	c := pub.Chapter
	if c == nil {
		c = &publication.ChapterDetail{}
	}
	fields["type"] = "chapter"
	fields["container-title"] = c.BookTitle
	fields["ISBN"] = c.ISBN
	fields["publisher"] = c.Publisher
	fields["publisher-place"] = c.Place
	fields["collection-title"] = c.Series
	fields["collection-number"] = c.SeriesNumber
	fields["volume"] = c.Volume
	fields["editor"] = editorList(pub.Editors)
	setPageRange(fields, c.StartPage, c.EndPage)
	setDateParts(fields, pub.PubDate, pub.SubmissionDate, opts.UseSubmissionDate)
	return nil
}

func (m *Mapper) mapReport(fields Fields, pub *publication.Publication, opts MapOptions, reached bool) {
	if !reached {
		fields["type"] = "manuscript"
		return
	}
	r := pub.Report
	if r == nil {
		r = &publication.ReportDetail{}
	}
	fields["type"] = "report"
	fields["publisher"] = r.Institution
	fields["publisher-place"] = r.Place
	fields["number"] = r.ReportNumber
	fields["genre"] = r.ReportType
	fields["collection-title"] = r.SeriesTitle
	setDateParts(fields, pub.PubDate, pub.SubmissionDate, opts.UseSubmissionDate)
}

// nameList builds the ordered author name list. Callers must supply
// authorships already sorted by display order.
func nameList(authors []publication.Authorship) []Name {
	names := make([]Name, 0, len(authors))
	for _, a := range authors {
		names = append(names, collaboratorName(a.Collaborator))
	}
	return names
}

func editorList(editors []publication.Editorship) []Name {
	names := make([]Name, 0, len(editors))
	for _, e := range editors {
		names = append(names, collaboratorName(e.Collaborator))
	}
	return names
}

func collaboratorName(c publication.Collaborator) Name {
	return Name{Given: c.GivenName(), Family: c.LastName}
}

// setPageRange emits the page field only when a start page exists; a bare
// start page stands alone rather than as "start-".
func setPageRange(fields Fields, start, end string) {
	if start == "" {
		return
	}
	if end == "" {
		fields["page"] = start
		return
	}
	fields["page"] = start + "-" + end
}

// setDateParts emits issued date-parts from pubDate, falling back to a
// submitted date when asked. With neither, issued carries empty parts.
func setDateParts(fields Fields, pubDate, submissionDate *publication.Date, useSubmission bool) {
	if pubDate != nil {
		fields["issued"] = DateVal{Parts: pubDate.Parts()}
		return
	}
	if submissionDate != nil && useSubmission {
		fields["submitted"] = DateVal{Parts: submissionDate.Parts()}
		return
	}
	fields["issued"] = DateVal{Parts: []string{"", "", ""}}
}

func intString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
