package admin

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify lower-cases s, transliterates accented letters to ASCII, drops
// punctuation and joins words with single hyphens.
func Slugify(s string) string {
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(fold, s)
	if err != nil {
		ascii = s
	}
	ascii = strings.ReplaceAll(ascii, "@", "-at-")

	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		case r == '-' || r == '_' || unicode.IsSpace(r):
			pending = true
		}
	}
	return b.String()
}
