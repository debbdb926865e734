package shopify

import (
	"net/url"
	"strings"
)

// ParseNextCursor extracts the page_info cursor of the rel="next" entry of a
// Link header. It reports false when the header has no next page.
func ParseNextCursor(header string) (string, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}

	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}

		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}

		if !hasNextRel(segments[1:]) {
			continue
		}

		u, err := url.Parse(target[1 : len(target)-1])
		if err != nil {
			return "", false
		}
		cursor := u.Query().Get("page_info")
		if cursor == "" {
			return "", false
		}
		return cursor, true
	}

	return "", false
}

func hasNextRel(params []string) bool {
	for _, p := range params {
		key, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
			continue
		}
		for _, rel := range strings.Fields(strings.Trim(strings.TrimSpace(value), `"`)) {
			if strings.EqualFold(rel, "next") {
				return true
			}
		}
	}
	return false
}
