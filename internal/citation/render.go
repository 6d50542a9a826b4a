package citation

import (
	"fmt"
	"io"
	"os"

	"github.com/matsen/vitae/internal/publication"
	"github.com/matsen/vitae/internal/status"
)

// Placeholder returned under the verbose policy when a citation cannot be
// produced.
const Unavailable = "Citation not available."

// Service wires the field mapper, style resolver, and bibliography engine
// into the single citation entry point the rest of the application calls.
type Service struct {
	Mapper   *Mapper
	Resolver *Resolver
	Engine   Engine
	Diag     io.Writer // Warning channel for the warn/verbose policies
}

// Option configures a Service.
type Option func(*Service)

// WithResolver sets the style resolver.
func WithResolver(r *Resolver) Option {
	return func(s *Service) { s.Resolver = r }
}

// WithEngine substitutes the bibliography engine.
func WithEngine(e Engine) Option {
	return func(s *Service) { s.Engine = e }
}

// WithDiagnostics redirects policy warnings.
func WithDiagnostics(w io.Writer) Option {
	return func(s *Service) { s.Diag = w }
}

// NewService returns a citation service over the given status scheme with
// the bundled engine and registry-only style resolution.
func NewService(scheme *status.Scheme, opts ...Option) *Service {
	s := &Service{
		Mapper:   NewMapper(scheme),
		Resolver: &Resolver{},
		Engine:   AuthorDateEngine{},
		Diag:     os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CiteOptions configures a single citation request.
type CiteOptions struct {
	MapOptions
	Style   string
	Format  Format
	OnError OnError
	NoDOI   bool // Blank the DOI before rendering
}

// Cite maps pub to canonical fields and renders it in the requested style.
// Mapping failures answer to the OnError policy; style resolution and
// format problems are configuration errors and always propagate.
func (s *Service) Cite(pub *publication.Publication, opts CiteOptions) (string, error) {
	switch opts.OnError {
	case OnErrorRaise, OnErrorWarn, OnErrorVerbose:
	case OnErrorSilent:
		return "", &ConfigError{Reason: `on-error policy "silent" is not legal for rendering`}
	default:
		return "", &ConfigError{Reason: fmt.Sprintf("unknown on-error policy %q", opts.OnError)}
	}
	if !opts.Format.Valid() {
		return "", &ConfigError{Reason: fmt.Sprintf("unknown citation format %q", opts.Format)}
	}

	fields, err := s.Mapper.MapFields(pub, opts.MapOptions)
	if err != nil {
		switch opts.OnError {
		case OnErrorWarn:
			fmt.Fprintf(s.Diag, "warning: %v\n", err)
			return "", nil
		case OnErrorVerbose:
			fmt.Fprintf(s.Diag, "warning: %v\n", err)
			return Unavailable, nil
		default:
			return "", err
		}
	}
	if opts.NoDOI {
		if _, ok := fields["DOI"]; ok {
			fields["DOI"] = ""
		}
	}

	return s.Render(fields, opts.Style, opts.Format)
}

// Render feeds a single canonical field map through the style engine.
// Unlike Cite it applies no error policy; callers get every failure.
func (s *Service) Render(fields Fields, styleName string, format Format) (string, error) {
	if !format.Valid() {
		return "", &ConfigError{Reason: fmt.Sprintf("unknown citation format %q", format)}
	}
	style, err := s.Resolver.Resolve(styleName)
	if err != nil {
		return "", err
	}
	entries, err := s.Engine.Bibliography([]Fields{fields}, style, format)
	if err != nil {
		return "", fmt.Errorf("formatting citation %q: %w", fields.Str("id"), err)
	}
	if len(entries) != 1 {
		return "", fmt.Errorf("formatter returned %d entries for one item", len(entries))
	}
	return entries[0], nil
}
