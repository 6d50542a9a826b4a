package citation

import (
	"fmt"
	"strings"
)

// Engine formats canonical field maps into bibliography entries. The
// bundled engine implements the author-date layout; alternative engines
// (e.g. a full CSL processor) can be injected in its place.
type Engine interface {
	Bibliography(items []Fields, style *Style, format Format) ([]string, error)
}

// AuthorDateEngine is the bundled bibliography formatter. It renders the
// parenthesized-year layout shared by APA-family styles, parameterized by
// the Style's punctuation settings.
type AuthorDateEngine struct{}

// Bibliography renders one entry per field map.
func (AuthorDateEngine) Bibliography(items []Fields, st *Style, format Format) ([]string, error) {
	f := markupFor(format)
	entries := make([]string, 0, len(items))
	for _, item := range items {
		entry, err := renderEntry(item, st, f)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func renderEntry(item Fields, st *Style, f markup) (string, error) {
	switch typ := item.Str("type"); typ {
	case "article-journal":
		return renderArticle(item, st, f), nil
	case "book":
		return renderBook(item, st, f), nil
	case "chapter":
		return renderChapter(item, st, f), nil
	case "report":
		return renderReport(item, st, f), nil
	case "article", "manuscript":
		return renderManuscript(item, st), nil
	default:
		return "", fmt.Errorf("no layout for citation type %q", typ)
	}
}

func renderArticle(item Fields, st *Style, f markup) string {
	out := entryHead(item, st, period(item.Str("title")))

	var tail []string
	if container := item.Str("container-title"); container != "" {
		tail = append(tail, f.Italic(container))
	}
	volume, issue := item.Str("volume"), item.Str("issue")
	var locator string
	if volume != "" {
		locator = f.Italic(volume)
	}
	if issue != "" {
		locator += "(" + issue + ")"
	}
	if locator != "" {
		tail = append(tail, locator)
	}
	if page := pageRange(item, st); page != "" {
		tail = append(tail, page)
	}
	if len(tail) > 0 {
		out += " " + strings.Join(tail, ", ") + "."
	}

	if doi := item.Str("DOI"); st.IncludeDOI && doi != "" {
		out += " https://doi.org/" + doi
	}
	return out
}

func renderBook(item Fields, st *Style, f markup) string {
	body := f.Italic(item.Str("title"))
	var paren []string
	if edition := item.Str("edition"); edition != "" {
		paren = append(paren, edition+" ed.")
	}
	if volume := item.Str("volume"); volume != "" {
		paren = append(paren, "Vol. "+volume)
	}
	if len(paren) > 0 {
		body += " (" + strings.Join(paren, ", ") + ")"
	}

	out := entryHead(item, st, period(body))
	if imp := imprint(item.Str("publisher-place"), item.Str("publisher")); imp != "" {
		out += " " + imp
	}
	return out
}

func renderChapter(item Fields, st *Style, f markup) string {
	out := entryHead(item, st, period(item.Str("title")))

	editors := item.Names("editor")
	edLabel := "(Ed.)"
	if len(editors) > 1 {
		edLabel = "(Eds.)"
	}
	container := "In " + nameSegment(editors, st, false) + " " + edLabel + ", " +
		f.Italic(item.Str("container-title"))

	var paren []string
	if volume := item.Str("volume"); volume != "" {
		paren = append(paren, "Vol. "+volume)
	}
	if page := pageRange(item, st); page != "" {
		paren = append(paren, "pp. "+page)
	}
	if len(paren) > 0 {
		container += " (" + strings.Join(paren, ", ") + ")"
	}
	out += " " + period(container)

	if imp := imprint(item.Str("publisher-place"), item.Str("publisher")); imp != "" {
		out += " " + imp
	}
	return out
}

func renderReport(item Fields, st *Style, f markup) string {
	body := f.Italic(item.Str("title"))
	genre := item.Str("genre")
	if genre == "" {
		genre = "Report"
	}
	if number := item.Str("number"); number != "" {
		body += " (" + genre + " No. " + number + ")"
	} else if item.Str("genre") != "" {
		body += " (" + genre + ")"
	}

	out := entryHead(item, st, period(body))
	if imp := imprint(item.Str("publisher-place"), item.Str("publisher")); imp != "" {
		out += " " + imp
	}
	return out
}

// renderManuscript covers the pre-revision placeholder types. Drafts have
// no issued date, so the year slot reads "n.d." and the status label ends
// the entry.
func renderManuscript(item Fields, st *Style) string {
	out := entryHead(item, st, period(item.Str("title")))
	if label := item.Str("status"); label != "" {
		out += " (" + label + ")."
	}
	return out
}

// entryHead assembles "Authors (year). Body" with the title-first fallback
// for entries with no author list.
func entryHead(item Fields, st *Style, body string) string {
	authors := nameSegment(item.Names("author"), st, true)
	year := entryYear(item)
	if authors == "" {
		return body + " (" + year + ")."
	}
	return authors + " (" + year + "). " + body
}

func entryYear(item Fields) string {
	for _, key := range []string{"issued", "submitted"} {
		if d, ok := item.Date(key); ok && len(d.Parts) > 0 && d.Parts[0] != "" {
			return strings.TrimLeft(d.Parts[0], "0")
		}
	}
	return "n.d."
}

// nameSegment joins a name list per the style's delimiter, conjunction,
// and et-al rules. familyFirst selects "Family, G." order; editor lists
// use given-first order.
func nameSegment(names []Name, st *Style, familyFirst bool) string {
	if len(names) == 0 {
		return ""
	}

	etAl := st.EtAlMin > 0 && len(names) >= st.EtAlMin
	if etAl {
		use := st.EtAlUseFirst
		if use < 1 || use > len(names) {
			use = 1
		}
		names = names[:use]
	}

	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = formatName(n, st, familyFirst)
	}
	if etAl {
		return strings.Join(parts, st.NameDelimiter) + st.NameDelimiter + "et al."
	}
	if len(parts) == 1 {
		return parts[0]
	}
	last := parts[len(parts)-1]
	head := strings.Join(parts[:len(parts)-1], st.NameDelimiter)
	return head + st.NameDelimiter + st.And + " " + last
}

// formatName renders one name. An empty InitializeWith keeps full given
// names; otherwise given names collapse to suffixed initials.
func formatName(n Name, st *Style, familyFirst bool) string {
	given := n.Given
	if st.InitializeWith != "" {
		given = initials(n.Given, st.InitializeWith)
	}
	switch {
	case given == "":
		return n.Family
	case familyFirst:
		return n.Family + ", " + given
	default:
		return given + " " + n.Family
	}
}

func initials(given, suffix string) string {
	words := strings.Fields(given)
	parts := make([]string, 0, len(words))
	for _, w := range words {
		r := []rune(w)
		parts = append(parts, string(r[0])+suffix)
	}
	return strings.Join(parts, " ")
}

func pageRange(item Fields, st *Style) string {
	page := item.Str("page")
	if page == "" {
		return ""
	}
	return strings.Replace(page, "-", st.PageRangeDelimiter, 1)
}

// period appends a terminal period unless the text already ends with
// closing punctuation.
func period(s string) string {
	if s == "" {
		return s
	}
	switch s[len(s)-1] {
	case '.', '!', '?':
		return s
	}
	return s + "."
}

// imprint renders "Place: Publisher." with either part optional.
func imprint(place, publisher string) string {
	switch {
	case place != "" && publisher != "":
		return place + ": " + publisher + "."
	case publisher != "":
		return publisher + "."
	case place != "":
		return place + "."
	}
	return ""
}
