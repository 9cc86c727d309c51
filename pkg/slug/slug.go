package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

const maxLen = 100

// Make turns a free-form title into a URL slug: lowercase, diacritics
// stripped (á → a, ñ → n), anything outside [a-z0-9] collapsed into single
// hyphens, capped at 100 runes. Falls back to "contenido" for titles that
// slugify to nothing.
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len([]rune(s)) > maxLen {
		rs := []rune(s)
		s = strings.Trim(string(rs[:maxLen]), "-")
	}
	if s == "" {
		s = "contenido"
	}
	return s
}
