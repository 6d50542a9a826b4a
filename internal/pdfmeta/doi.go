// Package pdfmeta pulls citation metadata out of manuscript PDFs.
package pdfmeta

import (
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// frontMatterPages bounds the search; a DOI is almost always printed on
// the first page.
const frontMatterPages = 3

// ExtractDOI extracts a DOI from a PDF file. Returns "" (not an error)
// when the front matter carries no DOI.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	maxPages := frontMatterPages
	if r.NumPage() < maxPages {
		maxPages = r.NumPage()
	}

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := FindDOI(text); doi != "" {
			return doi, nil
		}
	}

	return "", nil
}

// ExtractTitle guesses the title of a PDF: the first substantial line of
// the first page. Best effort only.
func ExtractTitle(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return "", nil
	}

	page := r.Page(1)
	if page.V.IsNull() {
		return "", nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 && !isHeaderLine(line) {
			return line, nil
		}
	}

	return "", nil
}

// FindDOI returns the first DOI in a block of text, cleaned of trailing
// punctuation the pattern drags along.
func FindDOI(text string) string {
	match := doiPattern.FindString(text)
	if match == "" {
		return ""
	}
	match = strings.TrimRight(match, ".,;)")
	// Strip a trailing "Received" or similar run-on from single-column
	// layouts where the DOI abuts the next field.
	if idx := strings.IndexAny(match, " "); idx > 0 {
		match = match[:idx]
	}
	return match
}

// isHeaderLine filters running heads and journal banners out of title
// detection.
func isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range []string{"doi", "http", "www.", "copyright", "©", "issn", "vol.", "volume"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
