package crossref

import (
	"strings"

	"github.com/matsen/vitae/internal/publication"
)

// Work is the subset of a Crossref work record vitae consumes.
type Work struct {
	DOI            string     `json:"DOI"`
	Type           string     `json:"type"`
	Title          []string   `json:"title"`
	ShortTitle     []string   `json:"short-title"`
	ContainerTitle []string   `json:"container-title"`
	Author         []WorkName `json:"author"`
	Volume         string     `json:"volume"`
	Issue          string     `json:"issue"`
	Page           string     `json:"page"`
	Publisher      string     `json:"publisher"`
	URL            string     `json:"URL"`
	Issued         WorkDate   `json:"issued"`
}

// WorkName is a contributor entry on a Crossref work.
type WorkName struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// WorkDate carries Crossref date-parts.
type WorkDate struct {
	DateParts [][]int `json:"date-parts"`
}

// Date converts the first date-parts entry to a publication date.
// Missing month or day default to 1.
func (d WorkDate) Date() *publication.Date {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return nil
	}
	parts := d.DateParts[0]
	out := publication.Date{Year: parts[0], Month: 1, Day: 1}
	if len(parts) > 1 {
		out.Month = parts[1]
	}
	if len(parts) > 2 {
		out.Day = parts[2]
	}
	return &out
}

// ToPublication maps a Crossref work to a draft article record. Authors
// are returned separately: Crossref carries no email, so the caller must
// assign collaborator identities before saving authorships.
func ToPublication(w *Work) (*publication.Publication, []publication.Collaborator) {
	title := first(w.Title)
	slugBase := first(w.ShortTitle)
	if slugBase == "" {
		slugBase = title
	}
	p := &publication.Publication{
		Type:       publication.TypeArticle,
		Title:      title,
		ShortTitle: shorten(title),
		Slug:       publication.Slugify(slugBase),
		URL:        w.URL,
		Display:    true,
		PubDate:    w.Issued.Date(),
		Article: &publication.ArticleDetail{
			DOI:    w.DOI,
			Volume: w.Volume,
			Issue:  w.Issue,
		},
	}
	if start, end, ok := strings.Cut(w.Page, "-"); ok {
		p.Article.StartPage, p.Article.EndPage = start, end
	} else {
		p.Article.StartPage = w.Page
	}

	authors := make([]publication.Collaborator, 0, len(w.Author))
	for _, a := range w.Author {
		given, middle := splitGiven(a.Given)
		authors = append(authors, publication.Collaborator{
			FirstName:     given,
			MiddleInitial: middle,
			LastName:      a.Family,
		})
	}
	return p, authors
}

func first(l []string) string {
	if len(l) > 0 {
		return l[0]
	}
	return ""
}

func shorten(title string) string {
	const max = 80
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return strings.TrimSpace(string(runes[:max]))
}

// splitGiven separates "Albert B." into first name and middle initial.
func splitGiven(given string) (string, string) {
	fields := strings.Fields(given)
	if len(fields) < 2 {
		return given, ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
