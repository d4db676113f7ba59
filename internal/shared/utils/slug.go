package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphen = regexp.MustCompile(`-+`)
)

// GenerateSlug turns a display name into a lower-case URL-safe slug.
// "Café Society & Sons" → "cafe-society-sons"
func GenerateSlug(input string) string {
	// Step 1: strip diacritics ("Nguyễn Nhật Ánh" → "Nguyen Nhat Anh")
	ascii := RemoveDiacritics(input)

	// Step 2: lowercase, whitespace → hyphen
	lower := strings.ToLower(ascii)
	hyphenated := strings.Join(strings.Fields(lower), "-")

	// Step 3: keep only a-z, 0-9, hyphens
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")

	// Step 4: collapse and trim hyphens
	normalized := repeatedHyphen.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// RemoveDiacritics decomposes input (NFD), drops combining marks and
// recomposes. đ/Đ have no decomposition and are mapped by hand.
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, input)
	if err != nil {
		out = input
	}
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
}
