package generator

import (
	"fmt"
	"html"
	"strings"

	"catalog_writer/internal/domain"
	"catalog_writer/internal/sanitize"
)

const fallbackSummaryWords = 60

// Fallback builds deterministic content from the input alone. The same input
// always yields the same result.
func Fallback(mode domain.GenerationMode, in domain.GenerationInput) *domain.GenerationResult {
	title := sanitize.NormalizeWhitespace(in.Title)
	if title == "" {
		title = sanitize.NormalizeWhitespace(in.ProductType)
	}
	if title == "" {
		title = "Product"
	}

	keywords := normalizeKeywords(in.Keywords)
	if len(keywords) == 0 {
		keywords = FallbackKeywords(in)
	}

	res := &domain.GenerationResult{
		Mode:     mode,
		Origin:   domain.OriginFallback,
		Title:    sanitize.Truncate(title, MaxTitleLength),
		Keywords: keywords,
	}

	if mode == domain.ModeFull {
		res.DescriptionHTML = fallbackDescription(title, in)
		return res
	}

	res.MetaTitle = sanitize.Truncate(title, MaxMetaTitleLength)
	res.MetaDescription = sanitize.Truncate(fallbackSnippet(title, in), MaxMetaDescriptionLength)
	return res
}

func fallbackDescription(title string, in domain.GenerationInput) string {
	intro := title
	if in.Vendor != "" {
		intro = fmt.Sprintf("%s from %s", title, in.Vendor)
	}

	body := firstWords(in.Description, fallbackSummaryWords)
	if body == "" {
		body = "Premium quality, available now."
	}

	return fmt.Sprintf("<p>%s.</p><p>%s</p>", html.EscapeString(intro), html.EscapeString(body))
}

func fallbackSnippet(title string, in domain.GenerationInput) string {
	if d := sanitize.NormalizeWhitespace(in.Description); d != "" {
		return d
	}
	if in.Vendor != "" {
		return fmt.Sprintf("Shop %s from %s. High quality and great prices.", title, in.Vendor)
	}
	return fmt.Sprintf("Shop %s. High quality and great prices.", title)
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "..."
}
