package storage

import (
	"database/sql"
	"fmt"

	"github.com/matsen/vitae/internal/publication"
)

// flattenPublication lays out a publication's values in publicationColumns
// order. Detail fields for other types flatten to their zero values.
func flattenPublication(p *publication.Publication) []any {
	a := p.Article
	if a == nil {
		a = &publication.ArticleDetail{}
	}
	b := p.Book
	if b == nil {
		b = &publication.BookDetail{}
	}
	c := p.Chapter
	if c == nil {
		c = &publication.ChapterDetail{}
	}
	r := p.Report
	if r == nil {
		r = &publication.ReportDetail{}
	}

	// Article and chapter share page/series columns; book and chapter
	// share publisher/place/isbn columns. Exactly one detail struct is
	// populated, so the merge below never conflicts.
	return []any{
		string(p.Type), p.Slug, p.Title, p.ShortTitle, p.Abstract, p.AbstractHTML,
		nullIntPtr(p.Status), nullDate(p.PubDate), nullDate(p.SubmissionDate), p.URL, boolInt(p.Display),
		boolInt(p.IsInPrep), boolInt(p.IsInRevision), boolInt(p.IsPublished),
		nullInt64Ptr(a.JournalID), firstNonEmpty(a.Volume, c.Volume), a.Issue,
		firstNonEmpty(a.StartPage, c.StartPage), firstNonEmpty(a.EndPage, c.EndPage),
		firstNonEmpty(a.Series, b.Series, c.Series), firstNonEmpty(b.SeriesNumber, c.SeriesNumber), a.Number,
		firstNonEmpty(a.DOI, r.DOI), a.PMCID, a.PMID,
		firstNonEmpty(b.Publisher, c.Publisher), firstNonEmpty(b.Place, c.Place, r.Place),
		nullIntPtr(b.Volume), nullIntPtr(b.NumPages), firstNonEmpty(b.ISBN, c.ISBN),
		c.BookTitle, c.Volumes, c.Edition,
		r.Institution, r.ReportNumber, r.ReportType, r.SeriesTitle, r.Pages,
	}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanPublication reads "id, <publicationColumns>" into a publication,
// reconstructing the detail struct matching the type tag.
func scanPublication(s scanner) (*publication.Publication, error) {
	var (
		p                  publication.Publication
		typ                string
		statusVal          sql.NullInt64
		pubDate, subDate   sql.NullString
		display            int
		inPrep, inRev, pub int

		journalID                  sql.NullInt64
		volume, issue              string
		startPage, endPage         string
		series, seriesNumber       string
		number, doi, pmcid, pmid   string
		publisher, place           string
		bookVolume, numPages       sql.NullInt64
		isbnVal, bookTitle         string
		volumes, edition           string
		institution, reportNumber  string
		reportType, seriesTitle    string
		pages                      string
	)

	err := s.Scan(&p.ID, &typ, &p.Slug, &p.Title, &p.ShortTitle, &p.Abstract, &p.AbstractHTML,
		&statusVal, &pubDate, &subDate, &p.URL, &display,
		&inPrep, &inRev, &pub,
		&journalID, &volume, &issue, &startPage, &endPage, &series, &seriesNumber, &number,
		&doi, &pmcid, &pmid,
		&publisher, &place, &bookVolume, &numPages, &isbnVal,
		&bookTitle, &volumes, &edition,
		&institution, &reportNumber, &reportType, &seriesTitle, &pages)
	if err != nil {
		return nil, err
	}

	p.Type = publication.Type(typ)
	p.Display = display != 0
	p.IsInPrep, p.IsInRevision, p.IsPublished = inPrep != 0, inRev != 0, pub != 0
	if statusVal.Valid {
		v := int(statusVal.Int64)
		p.Status = &v
	}
	if p.PubDate, err = parseNullDate(pubDate); err != nil {
		return nil, fmt.Errorf("publication %q: %w", p.Slug, err)
	}
	if p.SubmissionDate, err = parseNullDate(subDate); err != nil {
		return nil, fmt.Errorf("publication %q: %w", p.Slug, err)
	}

	switch p.Type {
	case publication.TypeArticle:
		p.Article = &publication.ArticleDetail{
			JournalID: int64Ptr(journalID),
			Volume:    volume,
			Issue:     issue,
			StartPage: startPage,
			EndPage:   endPage,
			Series:    series,
			Number:    number,
			DOI:       doi,
			PMCID:     pmcid,
			PMID:      pmid,
		}
	case publication.TypeBook:
		p.Book = &publication.BookDetail{
			Publisher:    publisher,
			Place:        place,
			Volume:       intPtr(bookVolume),
			Series:       series,
			SeriesNumber: seriesNumber,
			NumPages:     intPtr(numPages),
			ISBN:         isbnVal,
		}
	case publication.TypeChapter:
		p.Chapter = &publication.ChapterDetail{
			BookTitle:    bookTitle,
			Volume:       volume,
			Volumes:      volumes,
			Edition:      edition,
			Publisher:    publisher,
			Place:        place,
			Series:       series,
			SeriesNumber: seriesNumber,
			StartPage:    startPage,
			EndPage:      endPage,
			ISBN:         isbnVal,
		}
	case publication.TypeReport:
		p.Report = &publication.ReportDetail{
			ReportNumber: reportNumber,
			ReportType:   reportType,
			SeriesTitle:  seriesTitle,
			Place:        place,
			Institution:  institution,
			Pages:        pages,
			DOI:          doi,
		}
	}

	return &p, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullIntPtr(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt64Ptr(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullDate(d *publication.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseNullDate(s sql.NullString) (*publication.Date, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := publication.ParseDate(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
