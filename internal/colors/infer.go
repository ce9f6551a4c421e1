package colors

import (
	"net/url"
	"strings"

	"github.com/catalogsearch/backend/internal/domain"
)

// Infer returns a color label for a product URL, or "unknown".
// It never fails: malformed input yields "unknown".
func Infer(rawURL string) string {
	slug, ok := slugOf(rawURL)
	if !ok {
		return domain.UnknownColor
	}

	tokens := strings.Split(slug, "-")
	norm := make([]string, len(tokens))
	for i, tok := range tokens {
		norm[i] = Normalize(tok)
	}

	// Earliest modifier immediately followed by a color wins
	for i, tok := range norm {
		if IsModifier(tok) && i+1 < len(norm) && IsKnown(norm[i+1]) {
			return tok + " " + norm[i+1]
		}
	}

	for _, tok := range norm {
		if IsKnown(tok) {
			return tok
		}
	}

	if contains(norm, "light") {
		return "white"
	}
	if contains(norm, "dark") {
		return "black"
	}

	for _, tok := range tokens {
		for _, root := range colorRoots {
			if strings.Contains(tok, root) {
				return tok
			}
		}
	}

	return domain.UnknownColor
}

// slugOf returns the last non-empty path segment of rawURL
func slugOf(rawURL string) (string, bool) {
	if rawURL == "" {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i], true
		}
	}
	return "", false
}

func contains(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
	}
	return false
}
