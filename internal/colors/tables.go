// Package colors infers a color label from a product URL slug.
//
// The reference tables below are the only copy in the repository; the search
// service and the offline grouping tool both read them from here.
package colors

// knownColors are the plain color words recognized in slugs
var knownColors = map[string]bool{
	"black": true, "white": true, "grey": true, "gray": true, "blue": true,
	"navy": true, "green": true, "red": true, "pink": true, "beige": true,
	"burgundy": true, "ecru": true, "brown": true, "camel": true, "cream": true,
	"tan": true, "yellow": true, "orange": true, "purple": true, "khaki": true,
	"ivory": true, "stone": true, "leopard": true,
}

// modifiers combine with the following color token ("light blue")
var modifiers = map[string]bool{
	"light": true,
	"dark":  true,
}

// normalized maps material and color tokens to their label
var normalized = map[string]string{
	"au":        "gold",
	"ag":        "silver",
	"gold":      "gold",
	"silver":    "silver",
	"rose-gold": "rose gold",
	"rosegold":  "rose gold",
}

// colorRoots are matched as substrings of raw tokens when nothing else hits
var colorRoots = []string{
	"blue", "grey", "gray", "black", "white", "green", "red", "ecru", "burgundy",
}

// normalizedLabels is the value set of normalized
var normalizedLabels = func() map[string]bool {
	labels := make(map[string]bool, len(normalized))
	for _, v := range normalized {
		labels[v] = true
	}
	return labels
}()

// IsKnown reports whether label is a color word or a normalized label
func IsKnown(label string) bool {
	return knownColors[label] || normalizedLabels[label]
}

// IsModifier reports whether token is a light/dark modifier
func IsModifier(token string) bool {
	return modifiers[token]
}

// Normalize maps a slug token through the normalization table
func Normalize(token string) string {
	if label, ok := normalized[token]; ok {
		return label
	}
	return token
}
