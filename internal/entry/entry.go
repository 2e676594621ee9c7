package entry

import "unicode/utf8"

// Category is the semantic tag assigned to a clipboard entry's content.
// Exactly one category applies per entry; detection precedence in the
// classify package resolves ambiguity.
type Category string

const (
	CategoryURL        Category = "url"
	CategoryEmail      Category = "email"
	CategoryPhone      Category = "phone"
	CategoryJSON       Category = "json"
	CategoryCredential Category = "credential"
	CategoryCode       Category = "code"
	CategoryMarkdown   Category = "markdown"
	CategoryAddress    Category = "address"
	CategoryPlainText  Category = "plainText"
)

// Categories lists all valid categories in detection precedence order.
var Categories = []Category{
	CategoryURL,
	CategoryEmail,
	CategoryPhone,
	CategoryJSON,
	CategoryCredential,
	CategoryCode,
	CategoryMarkdown,
	CategoryAddress,
	CategoryPlainText,
}

// Valid reports whether c is a member of the closed category set.
func Valid(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Entry represents a captured clipboard item.
type Entry struct {
	// ID is a ULID that uniquely identifies this entry
	ID string

	// Content is the captured clipboard text
	Content string

	// ContentChars is the character count (runes, not bytes)
	ContentChars int

	// SourceApp is the application the content was copied from (nullable)
	SourceApp *string

	// Category is the classified category, populated lazily (nullable)
	Category *Category

	// Favorite marks the entry as pinned by the user or a rule
	Favorite bool

	// CapturedAt is the Unix timestamp when the entry was captured
	CapturedAt int64
}

// CacheKeyLen bounds the classification cache key to a content prefix.
// Two distinct long strings sharing the same 200-char prefix collide
// and share a cached category; accepted tradeoff for lookup speed.
const CacheKeyLen = 200

// CacheKey returns the truncated-content key used by the classification
// cache. Truncation counts runes so multi-byte content is not split.
func CacheKey(content string) string {
	if utf8.RuneCountInString(content) <= CacheKeyLen {
		return content
	}
	runes := []rune(content)
	return string(runes[:CacheKeyLen])
}

// CountChars returns the character count as runes (not bytes).
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}
