package citation

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed styles/*.yml
var bundledStyles embed.FS

// Style is a citation style definition. Styles are small declarative
// descriptions of author-date punctuation; the layout itself lives in the
// engine.
type Style struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title,omitempty"`
	// Class selects the engine layout. Only "author-date" ships.
	Class string `yaml:"class"`

	// Name-list punctuation.
	InitializeWith string `yaml:"initialize-with"` // Suffix per initial, e.g. "."
	NameDelimiter  string `yaml:"name-delimiter"`  // Between names, e.g. ", "
	And            string `yaml:"and"`             // Before final name, e.g. "&"

	// Et-al abbreviation: lists of EtAlMin or more names collapse to the
	// first EtAlUseFirst names plus "et al.". Zero disables.
	EtAlMin      int `yaml:"et-al-min,omitempty"`
	EtAlUseFirst int `yaml:"et-al-use-first,omitempty"`

	PageRangeDelimiter string `yaml:"page-range-delimiter"` // e.g. en dash
	// IncludeDOI appends a doi.org link to article entries.
	IncludeDOI bool `yaml:"include-doi,omitempty"`
}

// StyleExt is the filename extension style definitions use.
const StyleExt = ".yml"

// Resolver locates style definitions. Resolution order is the project
// style directory, then the package style directory, then the bundled
// registry; the first match wins.
type Resolver struct {
	ProjectDir string // Repo-local style overrides, may be empty
	PackageDir string // Site-wide styles, may be empty
}

// Resolve loads the named style. A missing style is a *StyleNotFoundError,
// which callers treat as fatal configuration, not a per-citation failure.
func (r *Resolver) Resolve(name string) (*Style, error) {
	var searched []string
	for _, dir := range []string{r.ProjectDir, r.PackageDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, name+StyleExt)
		searched = append(searched, path)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading style %s: %w", path, err)
		}
		return parseStyle(data, path)
	}

	data, err := bundledStyles.ReadFile("styles/" + name + StyleExt)
	if err != nil {
		return nil, &StyleNotFoundError{Name: name, Searched: searched}
	}
	return parseStyle(data, "bundled:"+name)
}

// BundledStyleNames lists the styles shipped in the binary.
func BundledStyleNames() []string {
	entries, err := bundledStyles.ReadDir("styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		names = append(names, name[:len(name)-len(StyleExt)])
	}
	return names
}

func parseStyle(data []byte, origin string) (*Style, error) {
	var st Style
	if err := yaml.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing style %s: %w", origin, err)
	}
	if st.Class == "" {
		st.Class = "author-date"
	}
	return &st, nil
}
