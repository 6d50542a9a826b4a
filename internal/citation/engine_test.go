package citation

import (
	"strings"
	"testing"
)

func apaStyle(t *testing.T) *Style {
	t.Helper()
	st, err := (&Resolver{}).Resolve("apa")
	if err != nil {
		t.Fatalf("resolving bundled apa: %v", err)
	}
	return st
}

func renderOne(t *testing.T, item Fields, st *Style, format Format) string {
	t.Helper()
	entries, err := AuthorDateEngine{}.Bibliography([]Fields{item}, st, format)
	if err != nil {
		t.Fatalf("Bibliography() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Bibliography() returned %d entries", len(entries))
	}
	return entries[0]
}

func einsteinFields() Fields {
	return Fields{
		"id":              "generalized-gravitation",
		"type":            "article-journal",
		"title":           "On the Generalized Theory of Gravitation",
		"author":          []Name{{Given: "Albert", Family: "Einstein"}},
		"container-title": "Scientific American",
		"volume":          "182",
		"issue":           "4",
		"page":            "13-17",
		"issued":          DateVal{Parts: []string{"1950", "04", "01"}},
	}
}

func TestRenderArticle_HTML(t *testing.T) {
	got := renderOne(t, einsteinFields(), apaStyle(t), FormatHTML)
	want := "Einstein, A. (1950). On the Generalized Theory of Gravitation. " +
		"<i>Scientific American</i>, <i>182</i>(4), 13–17."
	if got != want {
		t.Errorf("rendered:\n  got  %q\n  want %q", got, want)
	}
}

func TestRenderArticle_Plain(t *testing.T) {
	got := renderOne(t, einsteinFields(), apaStyle(t), FormatPlain)
	want := "Einstein, A. (1950). On the Generalized Theory of Gravitation. " +
		"Scientific American, 182(4), 13–17."
	if got != want {
		t.Errorf("rendered:\n  got  %q\n  want %q", got, want)
	}
}

// Missing optional fields drop out without leaving stray punctuation.
func TestRenderArticle_AdditiveOmissions(t *testing.T) {
	tests := []struct {
		name string
		del  []string
		want string
	}{
		{
			"no issue",
			[]string{"issue"},
			"Einstein, A. (1950). On the Generalized Theory of Gravitation. " +
				"<i>Scientific American</i>, <i>182</i>, 13–17.",
		},
		{
			"no volume",
			[]string{"volume"},
			"Einstein, A. (1950). On the Generalized Theory of Gravitation. " +
				"<i>Scientific American</i>, (4), 13–17.",
		},
		{
			"no pages",
			[]string{"page"},
			"Einstein, A. (1950). On the Generalized Theory of Gravitation. " +
				"<i>Scientific American</i>, <i>182</i>(4).",
		},
		{
			"no container",
			[]string{"container-title"},
			"Einstein, A. (1950). On the Generalized Theory of Gravitation. " +
				"<i>182</i>(4), 13–17.",
		},
		{
			"title only",
			[]string{"container-title", "volume", "issue", "page"},
			"Einstein, A. (1950). On the Generalized Theory of Gravitation.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := einsteinFields()
			for _, key := range tt.del {
				item[key] = ""
			}
			if got := renderOne(t, item, apaStyle(t), FormatHTML); got != tt.want {
				t.Errorf("rendered:\n  got  %q\n  want %q", got, tt.want)
			}
		})
	}
}

func TestRenderArticle_DOI(t *testing.T) {
	item := einsteinFields()
	item["DOI"] = "10.1038/scientificamerican0450-13"

	got := renderOne(t, item, apaStyle(t), FormatHTML)
	if !strings.HasSuffix(got, " https://doi.org/10.1038/scientificamerican0450-13") {
		t.Errorf("rendered = %q, want doi.org suffix", got)
	}

	// Chicago's bundled style leaves DOIs out.
	chicago, err := (&Resolver{}).Resolve("chicago-author-date")
	if err != nil {
		t.Fatalf("resolving chicago: %v", err)
	}
	got = renderOne(t, item, chicago, FormatHTML)
	if strings.Contains(got, "doi.org") {
		t.Errorf("chicago rendered = %q, want no DOI", got)
	}
}

func TestRenderArticle_NoAuthorsTitleFirst(t *testing.T) {
	item := einsteinFields()
	item["author"] = []Name{}

	got := renderOne(t, item, apaStyle(t), FormatHTML)
	want := "On the Generalized Theory of Gravitation. (1950). " +
		"<i>Scientific American</i>, <i>182</i>(4), 13–17."
	if got != want {
		t.Errorf("rendered:\n  got  %q\n  want %q", got, want)
	}
}

func TestRenderArticle_NoDateReadsND(t *testing.T) {
	item := einsteinFields()
	item["issued"] = DateVal{Parts: []string{"", "", ""}}

	got := renderOne(t, item, apaStyle(t), FormatHTML)
	if !strings.Contains(got, "(n.d.)") {
		t.Errorf("rendered = %q, want n.d. year", got)
	}
}

func TestNameSegment_TwoAndThreeAuthors(t *testing.T) {
	st := apaStyle(t)

	two := []Name{{Given: "Albert", Family: "Einstein"}, {Given: "Nathan", Family: "Rosen"}}
	if got, want := nameSegment(two, st, true), "Einstein, A., & Rosen, N."; got != want {
		t.Errorf("two authors = %q, want %q", got, want)
	}

	three := append(two, Name{Given: "Boris", Family: "Podolsky"})
	if got, want := nameSegment(three, st, true), "Einstein, A., Rosen, N., & Podolsky, B."; got != want {
		t.Errorf("three authors = %q, want %q", got, want)
	}
}

func TestNameSegment_EtAl(t *testing.T) {
	st := &Style{
		InitializeWith: ".",
		NameDelimiter:  ", ",
		And:            "&",
		EtAlMin:        3,
		EtAlUseFirst:   1,
	}
	names := []Name{
		{Given: "Ada", Family: "Lovelace"},
		{Given: "Charles", Family: "Babbage"},
		{Given: "Alan", Family: "Turing"},
	}
	if got, want := nameSegment(names, st, true), "Lovelace, A., et al."; got != want {
		t.Errorf("et al = %q, want %q", got, want)
	}
}

func TestFormatName_FullGivenNames(t *testing.T) {
	chicago := &Style{InitializeWith: "", NameDelimiter: ", ", And: "and"}
	n := Name{Given: "Albert", Family: "Einstein"}
	if got, want := formatName(n, chicago, true), "Einstein, Albert"; got != want {
		t.Errorf("formatName = %q, want %q", got, want)
	}
}

func TestRenderBook(t *testing.T) {
	item := Fields{
		"type":            "book",
		"title":           "A Brief History of Time",
		"author":          []Name{{Given: "Stephen", Family: "Hawking"}},
		"edition":         "2nd",
		"volume":          "1",
		"publisher":       "Bantam",
		"publisher-place": "New York",
		"issued":          DateVal{Parts: []string{"1998", "09", "01"}},
	}
	got := renderOne(t, item, apaStyle(t), FormatHTML)
	want := "Hawking, S. (1998). <i>A Brief History of Time</i> (2nd ed., Vol. 1). New York: Bantam."
	if got != want {
		t.Errorf("rendered:\n  got  %q\n  want %q", got, want)
	}
}

func TestRenderChapter(t *testing.T) {
	item := Fields{
		"type":            "chapter",
		"title":           "The Selfish Replicator",
		"author":          []Name{{Given: "Richard", Family: "Dawkins"}},
		"editor":          []Name{{Given: "John", Family: "Maynard Smith"}, {Given: "Eors", Family: "Szathmary"}},
		"container-title": "Evolution Now",
		"page":            "45-60",
		"publisher":       "Freeman",
		"publisher-place": "San Francisco",
		"issued":          DateVal{Parts: []string{"1982", "01", "01"}},
	}
	got := renderOne(t, item, apaStyle(t), FormatHTML)
	want := "Dawkins, R. (1982). The Selfish Replicator. " +
		"In J. Maynard Smith, & E. Szathmary (Eds.), <i>Evolution Now</i> (pp. 45–60). " +
		"San Francisco: Freeman."
	if got != want {
		t.Errorf("rendered:\n  got  %q\n  want %q", got, want)
	}
}

func TestRenderReport(t *testing.T) {
	item := Fields{
		"type":      "report",
		"title":     "Annual Climate Assessment",
		"author":    []Name{{Given: "Jane", Family: "Doe"}},
		"genre":     "Technical report",
		"number":    "TR-42",
		"publisher": "National Weather Service",
		"issued":    DateVal{Parts: []string{"2021", "06", "01"}},
	}
	got := renderOne(t, item, apaStyle(t), FormatHTML)
	want := "Doe, J. (2021). <i>Annual Climate Assessment</i> (Technical report No. TR-42). " +
		"National Weather Service."
	if got != want {
		t.Errorf("rendered:\n  got  %q\n  want %q", got, want)
	}
}

func TestRenderManuscript(t *testing.T) {
	item := Fields{
		"type":   "article",
		"title":  "Unfinished Thoughts",
		"author": []Name{{Given: "Jane", Family: "Doe"}},
		"status": "Working paper",
	}
	got := renderOne(t, item, apaStyle(t), FormatHTML)
	want := "Doe, J. (n.d.). Unfinished Thoughts. (Working paper)."
	if got != want {
		t.Errorf("rendered:\n  got  %q\n  want %q", got, want)
	}
}

func TestRenderEntry_UnknownType(t *testing.T) {
	_, err := AuthorDateEngine{}.Bibliography(
		[]Fields{{"type": "dataset"}}, apaStyle(t), FormatHTML)
	if err == nil {
		t.Fatal("Bibliography() with unknown type passed, want error")
	}
	if !strings.Contains(err.Error(), "dataset") {
		t.Errorf("error = %v, want type name", err)
	}
}

// Only the first hyphen is a range separator; hyphenated page numbers
// keep their own hyphens.
func TestPageRange_ReplacesFirstHyphenOnly(t *testing.T) {
	st := apaStyle(t)
	item := Fields{"page": "S1-S2-3"}
	if got, want := pageRange(item, st), "S1–S2-3"; got != want {
		t.Errorf("pageRange = %q, want %q", got, want)
	}
}
