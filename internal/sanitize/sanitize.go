// Package sanitize converts feed entry titles into filesystem-safe base
// names. Titles are folded to their closest ASCII representation, restricted
// to a conservative character set and optionally prefixed with the entry's
// publication date.
package sanitize

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// publishedFormats lists accepted publication date layouts, tried in order.
// Feeds are inconsistent about timezones, so variants with a timezone name,
// a numeric offset and no timezone at all are all accepted.
var publishedFormats = []string{
	"Mon, 02 Jan 2006 15:04:05 MST",
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05",
}

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	invalidPattern    = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	underscorePattern = regexp.MustCompile(`__+`)
	dashPattern       = regexp.MustCompile(`--+`)
)

// asciiFold decomposes characters and strips combining marks, so "Résumé"
// folds to "Resume". Characters with no ASCII equivalent are removed by the
// invalid-character filter afterwards.
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Title converts a title to a filesystem-friendly base name containing only
// [a-z0-9._-]. The result never starts or ends with '_' or '-', and the
// function is idempotent when re-applied to its own output. Titles with no
// representable characters sanitize to the empty string; callers are
// expected to fall back to another identifier in that case.
func Title(title string) string {
	folded, _, err := transform.String(asciiFold, title)
	if err != nil {
		// Fold failures are rare (malformed UTF-8); keep the raw title and
		// let the character filter do what it can.
		folded = title
	}

	s := whitespacePattern.ReplaceAllString(folded, "_")
	s = invalidPattern.ReplaceAllString(s, "")
	s = underscorePattern.ReplaceAllString(s, "_")
	s = dashPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "_-")

	return strings.ToLower(s)
}

// PublishedDate parses a feed-provided publication date string against the
// accepted layouts. The second return value reports whether any layout
// matched; malformed feed dates are an expected condition, not an error.
func PublishedDate(text string) (time.Time, bool) {
	for _, layout := range publishedFormats {
		if t, err := time.Parse(layout, text); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FileBase returns the sanitized base name for an entry, prefixed with
// YYYY-MM-DD_ when the published date text parses. An unparseable or empty
// date yields the bare sanitized title.
func FileBase(title, published string) string {
	base := Title(title)
	if published == "" {
		return base
	}
	if t, ok := PublishedDate(published); ok {
		if base == "" {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02") + "_" + base
	}
	return base
}
