package generator

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_writer/internal/domain"
)

func TestFirstObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "plain", input: `{"a":1}`, want: `{"a":1}`, ok: true},
		{name: "surrounded", input: `text {"a":{"b":2}} more {"c":3}`, want: `{"a":{"b":2}}`, ok: true},
		{name: "brace in string", input: `{"a":"}{"}`, want: `{"a":"}{"}`, ok: true},
		{name: "escaped quote", input: `{"a":"say \"}\""}`, want: `{"a":"say \"}\""}`, ok: true},
		{name: "unbalanced", input: `{"a":1`, ok: false},
		{name: "none", input: `no braces here`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstObject(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripFences(`  {"a":1}  `))
	assert.Equal(t, "", stripFences("```"))
}

func TestParseReply(t *testing.T) {
	p, ok := parseReply(domain.ModeFull, `{"title":"T","description_html":"<p>D</p>"}`)
	require.True(t, ok)
	assert.Equal(t, "T", p.Title)

	_, ok = parseReply(domain.ModeFull, `{"title":"T","meta_title":"M","meta_description":"D"}`)
	assert.False(t, ok, "full mode needs a description")

	_, ok = parseReply(domain.ModeMeta, `{"title":"T","meta_title":"M"}`)
	assert.False(t, ok, "meta mode needs a meta description")

	_, ok = parseReply(domain.ModeMeta, "")
	assert.False(t, ok)
}

func TestFallback(t *testing.T) {
	in := domain.GenerationInput{
		Title:       "Blue Widget",
		Description: "Widget <for> everyone.",
		Vendor:      "Acme & Co",
	}

	full := Fallback(domain.ModeFull, in)
	assert.Equal(t, domain.OriginFallback, full.Origin)
	assert.Equal(t, "Blue Widget", full.Title)
	assert.Equal(t, "<p>Blue Widget from Acme &amp; Co.</p><p>Widget &lt;for&gt; everyone.</p>", full.DescriptionHTML)
	assert.Equal(t, full, Fallback(domain.ModeFull, in))
	assert.Equal(t, []string{"blue", "widget"}, full.Keywords)

	given := Fallback(domain.ModeFull, domain.GenerationInput{Title: "Blue Widget", Keywords: []string{"Widget Gift"}})
	assert.Equal(t, []string{"widget gift"}, given.Keywords)

	meta := Fallback(domain.ModeMeta, domain.GenerationInput{Title: "Blue Widget", Vendor: "Acme"})
	assert.Equal(t, "Blue Widget", meta.MetaTitle)
	assert.Equal(t, "Shop Blue Widget from Acme. High quality and great prices.", meta.MetaDescription)
	assert.Empty(t, meta.DescriptionHTML)

	empty := Fallback(domain.ModeMeta, domain.GenerationInput{})
	assert.Equal(t, "Product", empty.Title)

	long := Fallback(domain.ModeMeta, domain.GenerationInput{
		Title:       "An extremely long product title that keeps going well beyond any sensible limit for titles",
		Description: "word word word word word word word word word word word word word word word word word word word word word word word word word word word word word word word word word word word",
	})
	assert.LessOrEqual(t, utf8.RuneCountInString(long.Title), MaxTitleLength)
	assert.LessOrEqual(t, utf8.RuneCountInString(long.MetaDescription), MaxMetaDescriptionLength)
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{"comma separated", "Coffee Mug, ceramic mug,  gift idea ", []string{"coffee mug", "ceramic mug", "gift idea"}},
		{"numbered lines", "1. mug\n2) cup\n3. 3d printed mug", []string{"mug", "cup", "3d printed mug"}},
		{"quoted and fenced", "```\n\"mug\", 'cup'.\n```", []string{"mug", "cup"}},
		{"duplicates", "mug, Mug, MUG", []string{"mug"}},
		{"capped", "a, b, c, d, e, f, g", []string{"a", "b", "c", "d", "e"}},
		{"too long dropped", "mug, " + strings.Repeat("x", 61), []string{"mug"}},
		{"empty", " ,\n, ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseKeywords(tt.reply))
		})
	}
}

func TestFallbackKeywords(t *testing.T) {
	assert.Equal(t,
		[]string{"blue", "cotton", "shirt", "apparel"},
		FallbackKeywords(domain.GenerationInput{Title: "Blue Cotton Shirt Large", ProductType: "Apparel"}),
	)
	assert.Equal(t, []string{"mug"}, FallbackKeywords(domain.GenerationInput{Title: "Mug"}))
	assert.Equal(t, []string{"mug"}, FallbackKeywords(domain.GenerationInput{Title: "Mug", ProductType: "mug"}))
	assert.Empty(t, FallbackKeywords(domain.GenerationInput{}))

	kws := FallbackKeywords(domain.GenerationInput{Title: "one two three four five six", ProductType: "Seven"})
	assert.LessOrEqual(t, len(kws), MaxKeywords)
}
