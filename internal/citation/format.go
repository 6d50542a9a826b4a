package citation

// Format selects the output markup for rendered citations.
type Format string

// Rendering formats.
const (
	FormatHTML  Format = "html"
	FormatPlain Format = "plain"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == FormatHTML || f == FormatPlain
}

// OnError selects how Cite responds to mapping failures. Style and format
// configuration problems are always fatal regardless of policy.
type OnError string

// Error policies. OnErrorSilent exists so callers naming a "no output"
// policy get a configuration error instead of silently losing citations.
const (
	OnErrorRaise   OnError = "raise"
	OnErrorWarn    OnError = "warn"
	OnErrorVerbose OnError = "verbose"
	OnErrorSilent  OnError = "silent"
)

// markup abstracts the per-format text decoration the engine needs.
type markup interface {
	Italic(s string) string
}

type htmlMarkup struct{}

func (htmlMarkup) Italic(s string) string { return "<i>" + s + "</i>" }

type plainMarkup struct{}

func (plainMarkup) Italic(s string) string { return s }

func markupFor(f Format) markup {
	if f == FormatHTML {
		return htmlMarkup{}
	}
	return plainMarkup{}
}
