package generator

import (
	"encoding/json"
	"strings"

	"catalog_writer/internal/domain"
)

// payload is the object the model is asked to return. Full mode fills
// description_html, meta mode fills the two meta fields.
type payload struct {
	Title           string `json:"title"`
	DescriptionHTML string `json:"description_html"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

func (p *payload) complete(mode domain.GenerationMode) bool {
	if strings.TrimSpace(p.Title) == "" {
		return false
	}
	if mode == domain.ModeFull {
		return strings.TrimSpace(p.DescriptionHTML) != ""
	}
	return strings.TrimSpace(p.MetaTitle) != "" && strings.TrimSpace(p.MetaDescription) != ""
}

// parseReply tries a strict parse of the whole reply first, then the first
// balanced object embedded in it. A reply missing required fields is rejected.
func parseReply(mode domain.GenerationMode, reply string) (*payload, bool) {
	text := stripFences(reply)
	if text == "" {
		return nil, false
	}

	var p payload
	if err := json.Unmarshal([]byte(text), &p); err == nil && p.complete(mode) {
		return &p, true
	}

	obj, ok := firstObject(text)
	if !ok {
		return nil, false
	}
	p = payload{}
	if err := json.Unmarshal([]byte(obj), &p); err != nil || !p.complete(mode) {
		return nil, false
	}
	return &p, true
}

// stripFences removes a surrounding Markdown code fence such as ```json ... ```.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = ""
	}
	if end := strings.LastIndex(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

// firstObject returns the first brace-balanced {...} substring of s, skipping
// braces that appear inside JSON strings.
func firstObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
