// Package sanitize cleans catalog titles and descriptions before and after generation.
package sanitize

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var (
	marketingPrefix = regexp.MustCompile(`(?i)^\s*(?:` +
		`[\[(]\s*(?:new|sale|hot|hot sale|clearance|best seller|limited offer|free shipping)\s*[\])]` +
		`|(?:new|sale|hot sale|hot|clearance|best seller|limited offer|free shipping)\s*[!:|\-–—]+` +
		`)\s*`)

	shippingNote = regexp.MustCompile(`(?i)\s*[\[(][^\])]*\b(?:letter|parcel|shipping|delivery|postage|post)\b[^\])]*[\])]`)

	textPolicy = func() *bluemonday.Policy {
		p := bluemonday.StrictPolicy()
		p.AddSpaceWhenStrippingTag(true)
		return p
	}()

	descriptionPolicy = bluemonday.UGCPolicy()
)

const blockSelector = "p, ul, ol, h1, h2, h3, h4, h5, h6, table, blockquote, div"

// CleanTitle strips marketing prefixes and bracketed shipping annotations from a raw title.
func CleanTitle(s string) string {
	s = NormalizeWhitespace(s)
	for {
		stripped := marketingPrefix.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	s = shippingNote.ReplaceAllString(s, "")
	return NormalizeWhitespace(s)
}

// StripHTML converts an HTML fragment to plain text.
func StripHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return NormalizeWhitespace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// NormalizeWhitespace collapses every whitespace run to a single space.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// OutputTitle keeps only letters, digits and single spaces. Generated titles
// go through it before they are written back.
func OutputTitle(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return NormalizeWhitespace(b.String())
}

func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Truncate shortens s to at most n runes, cutting at a word boundary when one exists.
func Truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}

	cut := runes[:n]
	if unicode.IsSpace(runes[n]) {
		return strings.TrimRightFunc(string(cut), trailingJunk)
	}
	for i := len(cut) - 1; i > 0; i-- {
		if unicode.IsSpace(cut[i]) {
			cut = cut[:i]
			break
		}
	}
	return strings.TrimRightFunc(string(cut), trailingJunk)
}

func trailingJunk(r rune) bool {
	return unicode.IsSpace(r) || r == ',' || r == ';' || r == ':' || r == '-' || r == '|'
}

// DescriptionHTML sanitizes generated description markup and makes sure
// bare text ends up inside a paragraph.
func DescriptionHTML(s string) string {
	out := strings.TrimSpace(descriptionPolicy.Sanitize(s))
	if out == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		return "<p>" + out + "</p>"
	}
	if doc.Find(blockSelector).Length() == 0 {
		return "<p>" + out + "</p>"
	}
	return out
}
