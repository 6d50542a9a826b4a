package publication

import (
	"strings"
	"unicode"
)

// Slugify builds a URL-safe slug from a title. Runs of non-alphanumeric
// characters collapse to single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // Suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
