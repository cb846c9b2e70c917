package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLen = 200

// Slugify turns a title into a URL path segment: "Web Dev" becomes "web-dev".
// Diacritics are folded to their base letters and every other run of
// non-alphanumeric characters collapses to a single hyphen.
func Slugify(s string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		s,
	)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}

	slug := b.String()
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	return slug
}

// slugFor prefers an explicit slug and falls back to the display name.
func slugFor(explicit, name string) (string, error) {
	src := strings.TrimSpace(explicit)
	if src == "" {
		src = name
	}
	slug := Slugify(src)
	if slug == "" {
		return "", invalid("slug must contain at least one letter or digit")
	}
	return slug, nil
}
