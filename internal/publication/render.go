package publication

import (
	"strings"

	"github.com/yuin/goldmark"
)

var abstractMarkdown = goldmark.New()

// RenderAbstract converts the markdown abstract to HTML. The result is
// cached in AbstractHTML by the save pipeline; callers should not rely on
// the cache being current unless the record came from the store.
func RenderAbstract(abstract string) (string, error) {
	if abstract == "" {
		return "", nil
	}
	var buf strings.Builder
	if err := abstractMarkdown.Convert([]byte(abstract), &buf); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
