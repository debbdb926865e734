package generator

import (
	"fmt"
	"strings"

	"catalog_writer/internal/domain"
	"catalog_writer/internal/sanitize"
)

// maxPromptDescription bounds how much of the existing description is sent.
const maxPromptDescription = 2000

const systemPrompt = "You are an expert e-commerce SEO copywriter. " +
	"You write accurate, compelling, keyword-rich product and collection copy. " +
	"You always answer with a single JSON object."

const fullTemplate = `Rewrite the catalog entry below for search engines.

Title: %s
%s
Existing description:
%s

Produce:
1. "title": a clear, descriptive title of at most %d characters.
2. "description_html": a 1-2 paragraph description of roughly 100-150 words, using <p> tags only.

Return JSON in exactly this shape:
{"title": "", "description_html": ""}`

const metaTemplate = `Write search metadata for the catalog entry below. The existing description stays as it is.

Title: %s
%s
Existing description:
%s

Produce:
1. "title": a clear, descriptive title of at most %d characters.
2. "meta_title": a page title of at most %d characters.
3. "meta_description": a search snippet of at most %d characters.

Return JSON in exactly this shape:
{"title": "", "meta_title": "", "meta_description": ""}`

const strictInstruction = `

Your previous answer could not be parsed. Respond with ONLY the JSON object. ` +
	`No Markdown, no code fences, no commentary before or after it. Every field must be a non-empty string.`

func buildMessages(mode domain.GenerationMode, in domain.GenerationInput, strict bool) []chatMessage {
	description := sanitize.Truncate(in.Description, maxPromptDescription)
	if description == "" {
		description = "(none)"
	}

	var prompt string
	if mode == domain.ModeFull {
		prompt = fmt.Sprintf(fullTemplate, in.Title, attributes(in), description, MaxTitleLength)
	} else {
		prompt = fmt.Sprintf(metaTemplate, in.Title, attributes(in), description,
			MaxTitleLength, MaxMetaTitleLength, MaxMetaDescriptionLength)
	}
	if strict {
		prompt += strictInstruction
	}

	return []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}
}

func attributes(in domain.GenerationInput) string {
	var b strings.Builder
	if in.ProductType != "" {
		fmt.Fprintf(&b, "Type: %s\n", in.ProductType)
	}
	if in.Vendor != "" {
		fmt.Fprintf(&b, "Brand: %s\n", in.Vendor)
	}
	if len(in.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords to use naturally: %s\n", strings.Join(in.Keywords, ", "))
	}
	return b.String()
}
