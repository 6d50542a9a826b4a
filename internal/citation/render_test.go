package citation

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matsen/vitae/internal/publication"
	"github.com/matsen/vitae/internal/status"
)

func uncitableChapter() *publication.Publication {
	return &publication.Publication{
		Type:    publication.TypeChapter,
		Title:   "Orphaned Chapter",
		Slug:    "orphaned-chapter",
		Status:  intp(60),
		PubDate: datep("2018-01-01"),
		Chapter: &publication.ChapterDetail{BookTitle: "The Book"},
	}
}

func baseOpts() CiteOptions {
	return CiteOptions{
		Style:   "apa",
		Format:  FormatHTML,
		OnError: OnErrorRaise,
	}
}

func TestCite_EndToEnd(t *testing.T) {
	service := NewService(status.DefaultScheme())

	got, err := service.Cite(publishedArticle(), baseOpts())
	if err != nil {
		t.Fatalf("Cite() error: %v", err)
	}
	want := "Einstein, A. (1950). On the Generalized Theory of Gravitation. " +
		"<i>Scientific American</i>, <i>182</i>(4), 13–17."
	if got != want {
		t.Errorf("Cite():\n  got  %q\n  want %q", got, want)
	}
}

func TestCite_RaisePropagates(t *testing.T) {
	service := NewService(status.DefaultScheme())

	_, err := service.Cite(uncitableChapter(), baseOpts())
	if !IsMissingRelation(err) {
		t.Errorf("Cite() error = %v, want *MissingRelationError", err)
	}
}

func TestCite_WarnSwallowsAndWarns(t *testing.T) {
	var diag bytes.Buffer
	service := NewService(status.DefaultScheme(), WithDiagnostics(&diag))

	opts := baseOpts()
	opts.OnError = OnErrorWarn
	got, err := service.Cite(uncitableChapter(), opts)
	if err != nil {
		t.Fatalf("Cite() error: %v", err)
	}
	if got != "" {
		t.Errorf("Cite() = %q, want empty output", got)
	}
	if !strings.Contains(diag.String(), "warning:") {
		t.Errorf("diagnostics = %q, want a warning", diag.String())
	}
}

func TestCite_VerboseEmitsPlaceholder(t *testing.T) {
	var diag bytes.Buffer
	service := NewService(status.DefaultScheme(), WithDiagnostics(&diag))

	opts := baseOpts()
	opts.OnError = OnErrorVerbose
	got, err := service.Cite(uncitableChapter(), opts)
	if err != nil {
		t.Fatalf("Cite() error: %v", err)
	}
	if got != Unavailable {
		t.Errorf("Cite() = %q, want %q", got, Unavailable)
	}
	if !strings.Contains(diag.String(), "warning:") {
		t.Errorf("diagnostics = %q, want a warning", diag.String())
	}
}

func TestCite_SilentPolicyRejected(t *testing.T) {
	service := NewService(status.DefaultScheme())

	opts := baseOpts()
	opts.OnError = OnErrorSilent
	_, err := service.Cite(publishedArticle(), opts)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Cite() error = %v, want *ConfigError", err)
	}
	if !strings.Contains(cfgErr.Reason, "silent") {
		t.Errorf("reason = %q, want mention of silent", cfgErr.Reason)
	}
}

func TestCite_UnknownPolicyRejected(t *testing.T) {
	service := NewService(status.DefaultScheme())

	opts := baseOpts()
	opts.OnError = OnError("shrug")
	_, err := service.Cite(publishedArticle(), opts)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Cite() error = %v, want *ConfigError", err)
	}
}

func TestCite_UnknownFormatRejected(t *testing.T) {
	service := NewService(status.DefaultScheme())

	opts := baseOpts()
	opts.Format = Format("rtf")
	_, err := service.Cite(publishedArticle(), opts)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Cite() error = %v, want *ConfigError", err)
	}
}

// Style lookup failures are fatal configuration regardless of the
// on-error policy.
func TestCite_MissingStyleBypassesPolicy(t *testing.T) {
	var diag bytes.Buffer
	service := NewService(status.DefaultScheme(), WithDiagnostics(&diag))

	opts := baseOpts()
	opts.Style = "vancouver"
	opts.OnError = OnErrorWarn
	_, err := service.Cite(publishedArticle(), opts)
	var nfErr *StyleNotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("Cite() error = %v, want *StyleNotFoundError", err)
	}
	if nfErr.Name != "vancouver" {
		t.Errorf("missing style name = %q", nfErr.Name)
	}
}

func TestCite_NoDOI(t *testing.T) {
	pub := publishedArticle()
	pub.Article.DOI = "10.1000/xyz123"
	service := NewService(status.DefaultScheme())

	got, err := service.Cite(pub, baseOpts())
	if err != nil {
		t.Fatalf("Cite() error: %v", err)
	}
	if !strings.Contains(got, "doi.org/10.1000/xyz123") {
		t.Fatalf("Cite() = %q, want DOI link", got)
	}

	opts := baseOpts()
	opts.NoDOI = true
	got, err = service.Cite(pub, opts)
	if err != nil {
		t.Fatalf("Cite() error: %v", err)
	}
	if strings.Contains(got, "doi.org") {
		t.Errorf("Cite() with NoDOI = %q, want no DOI link", got)
	}
}

func TestRender_NoPolicy(t *testing.T) {
	service := NewService(status.DefaultScheme())

	fields := Fields{"type": "dataset", "id": "x"}
	if _, err := service.Render(fields, "apa", FormatHTML); err == nil {
		t.Error("Render() with unknown type passed, want error")
	}
}
