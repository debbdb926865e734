package generator

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"catalog_writer/internal/domain"
	"catalog_writer/internal/sanitize"
)

const (
	MaxKeywords = 5

	maxKeywordLength   = 60
	keywordTemperature = 0.5
	keywordMaxTokens   = 50
	fallbackTitleWords = 3
)

var listMarker = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*•])\s+`)

const keywordTemplate = `Suggest %d SEO keywords for this catalog entry.

Title: %s
%s
Return only the keywords, comma-separated, most important first.`

// keywords returns the keywords that steer generation. A failed or unusable
// reply is not an error: the deterministic keywords are used instead.
func (c *Client) keywords(ctx context.Context, in domain.GenerationInput) []string {
	if kws := normalizeKeywords(in.Keywords); len(kws) > 0 {
		return kws
	}

	reply, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: fmt.Sprintf(keywordTemplate, MaxKeywords, in.Title, attributes(in))},
		},
		Temperature: keywordTemperature,
		MaxTokens:   keywordMaxTokens,
	})
	if err != nil {
		c.logger.Warn("keyword request failed, using fallback keywords", "error", err)
		return FallbackKeywords(in)
	}

	kws := parseKeywords(reply)
	if len(kws) == 0 {
		c.logger.Warn("no usable keywords in reply, using fallback keywords", "reply", preview(reply))
		return FallbackKeywords(in)
	}
	return kws
}

// parseKeywords reads a comma or line separated list, dropping list markers,
// quotes, duplicates and anything too long to be a search phrase.
func parseKeywords(reply string) []string {
	fields := strings.FieldsFunc(stripFences(reply), func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	return normalizeKeywords(fields)
}

func normalizeKeywords(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, MaxKeywords)
	for _, k := range raw {
		k = listMarker.ReplaceAllString(k, "")
		k = strings.TrimFunc(k, func(r rune) bool {
			return unicode.IsSpace(r) || strings.ContainsRune(`."'`+"`", r)
		})
		k = strings.ToLower(sanitize.NormalizeWhitespace(k))
		if k == "" || len([]rune(k)) > maxKeywordLength {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
		if len(out) == MaxKeywords {
			break
		}
	}
	return out
}

// FallbackKeywords derives keywords from the first title words and the
// product type.
func FallbackKeywords(in domain.GenerationInput) []string {
	words := strings.Fields(in.Title)
	raw := words[:min(len(words), fallbackTitleWords)]
	if in.ProductType != "" {
		raw = append(raw, in.ProductType)
	}
	return normalizeKeywords(raw)
}
