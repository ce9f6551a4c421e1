package catalog

import (
	"strings"

	"github.com/spf13/cast"
)

// ParseSizes accepts a comma-separated string or a sequence and returns the
// sizes with whitespace collapsed, deduplicated in first-seen order.
func ParseSizes(v any) []string {
	var candidates []string
	switch items := v.(type) {
	case nil:
	case string:
		candidates = strings.Split(items, ",")
	case []string:
		candidates = items
	case []any:
		for _, item := range items {
			if s, err := cast.ToStringE(item); err == nil {
				candidates = append(candidates, s)
			}
		}
	default:
		if s, err := cast.ToStringE(items); err == nil {
			candidates = strings.Split(s, ",")
		}
	}

	sizes := []string{}
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		size := collapseSpace(c)
		if size == "" || seen[size] {
			continue
		}
		seen[size] = true
		sizes = append(sizes, size)
	}
	return sizes
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
