// Package publication defines the core domain types for CV work products.
package publication

// Type tags the concrete kind of a publication record.
type Type string

// Publication types.
const (
	TypeArticle Type = "article"
	TypeBook    Type = "book"
	TypeChapter Type = "chapter"
	TypeReport  Type = "report"
)

// Types lists all valid publication types.
var Types = []Type{TypeArticle, TypeBook, TypeChapter, TypeReport}

// Valid reports whether t is a known publication type.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// Publication is a single CV work product. The common lifecycle fields live
// here; type-specific fields live in exactly one of the detail structs,
// selected by Type.
type Publication struct {
	ID   int64 `json:"id"`
	Type Type  `json:"type"`

	Title      string `json:"title"`
	ShortTitle string `json:"short_title"`
	Slug       string `json:"slug"`

	Abstract     string `json:"abstract,omitempty"`
	AbstractHTML string `json:"abstract_html,omitempty"` // Derived from Abstract on save

	Status         *int  `json:"status,omitempty"` // Nil for unsaved drafts
	PubDate        *Date `json:"pub_date,omitempty"`
	SubmissionDate *Date `json:"submission_date,omitempty"`

	URL     string `json:"url,omitempty"`
	Display bool   `json:"display"`

	// Stage flags derived from Status on every save. Queries filter on
	// these; they are never authoritative over Status itself.
	IsInPrep     bool `json:"is_inprep"`
	IsInRevision bool `json:"is_inrevision"`
	IsPublished  bool `json:"is_published"`

	// Relations, ordered by display_order where applicable.
	Authors  []Authorship `json:"authors,omitempty"`
	Editors  []Editorship `json:"editors,omitempty"`
	Journal  *Journal     `json:"journal,omitempty"`
	Editions []Edition    `json:"editions,omitempty"`
	Grants   []Grant      `json:"grants,omitempty"`

	Article *ArticleDetail `json:"article,omitempty"`
	Book    *BookDetail    `json:"book,omitempty"`
	Chapter *ChapterDetail `json:"chapter,omitempty"`
	Report  *ReportDetail  `json:"report,omitempty"`
}

// ArticleDetail holds fields specific to journal articles.
type ArticleDetail struct {
	JournalID *int64 `json:"journal_id,omitempty"`
	Volume    string `json:"volume,omitempty"`
	Issue     string `json:"issue,omitempty"`
	StartPage string `json:"start_page,omitempty"`
	EndPage   string `json:"end_page,omitempty"`
	Series    string `json:"series,omitempty"`
	Number    string `json:"number,omitempty"`
	DOI       string `json:"doi,omitempty"`
	PMCID     string `json:"pmcid,omitempty"`
	PMID      string `json:"pmid,omitempty"`
}

// BookDetail holds fields specific to books.
type BookDetail struct {
	Publisher    string `json:"publisher,omitempty"`
	Place        string `json:"place,omitempty"`
	Volume       *int   `json:"volume,omitempty"`
	Series       string `json:"series,omitempty"`
	SeriesNumber string `json:"series_number,omitempty"`
	NumPages     *int   `json:"num_pages,omitempty"`
	ISBN         string `json:"isbn,omitempty"`
}

// ChapterDetail holds fields specific to book chapters.
type ChapterDetail struct {
	BookTitle    string `json:"book_title"`
	Volume       string `json:"volume,omitempty"`
	Volumes      string `json:"volumes,omitempty"`
	Edition      string `json:"edition,omitempty"`
	Publisher    string `json:"publisher,omitempty"`
	Place        string `json:"place,omitempty"`
	Series       string `json:"series,omitempty"`
	SeriesNumber string `json:"series_number,omitempty"`
	StartPage    string `json:"start_page,omitempty"`
	EndPage      string `json:"end_page,omitempty"`
	ISBN         string `json:"isbn,omitempty"`
}

// ReportDetail holds fields specific to reports.
type ReportDetail struct {
	ReportNumber string `json:"report_number,omitempty"`
	ReportType   string `json:"report_type,omitempty"`
	SeriesTitle  string `json:"series_title,omitempty"`
	Place        string `json:"place,omitempty"`
	Institution  string `json:"institution,omitempty"`
	Pages        string `json:"pages,omitempty"`
	DOI          string `json:"doi,omitempty"`
}

// Edition is a dated, versioned child of a book. Editions are owned by
// their book and are deleted with it.
type Edition struct {
	ID             int64  `json:"id"`
	PublicationID  int64  `json:"publication_id"`
	Name           string `json:"name"` // e.g. "2nd", "Revised"
	PubDate        *Date  `json:"pub_date,omitempty"`
	SubmissionDate *Date  `json:"submission_date,omitempty"`
	Publisher      string `json:"publisher,omitempty"`
	Place          string `json:"place,omitempty"`
	NumPages       *int   `json:"num_pages,omitempty"`
	ISBN           string `json:"isbn,omitempty"`
}

// Journal is a periodical that articles are published in.
type Journal struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	AbbreviatedTitle string `json:"abbreviated_title,omitempty"`
	ISSN             string `json:"issn,omitempty"`
	Website          string `json:"website,omitempty"`
}

// Grant is a funding source attachable to a publication.
type Grant struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Source string  `json:"source,omitempty"`
	Amount float64 `json:"amount,omitempty"`
}

// ISBN returns the record's own ISBN field, if its type carries one.
// Book editions carry their own ISBN and are handled separately.
func (p *Publication) ISBN() string {
	switch {
	case p.Book != nil:
		return p.Book.ISBN
	case p.Chapter != nil:
		return p.Chapter.ISBN
	}
	return ""
}

// EditionNamed returns the edition with the given name, or nil.
func (p *Publication) EditionNamed(name string) *Edition {
	for i := range p.Editions {
		if p.Editions[i].Name == name {
			return &p.Editions[i]
		}
	}
	return nil
}
