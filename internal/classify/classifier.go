package classify

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/kordes/clipsense/internal/entry"
)

// DefaultCacheCapacity bounds the classification cache.
const DefaultCacheCapacity = 500

// Classifier assigns a Category to clipboard content. Results are
// deterministic; an LRU cache keyed by a truncated content prefix
// skips repeated detection of identical (or prefix-identical) content.
// Safe for concurrent use.
type Classifier struct {
	mu     sync.Mutex
	cache  *lruCache
	oracle PlaceOracle

	// detect is swapped in tests to count detection invocations
	detect func(string) entry.Category
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithCacheCapacity overrides the default cache capacity.
func WithCacheCapacity(n int) Option {
	return func(c *Classifier) {
		c.cache = newLRUCache(n)
	}
}

// WithPlaceOracle supplies a place-name oracle for address detection.
func WithPlaceOracle(o PlaceOracle) Option {
	return func(c *Classifier) {
		if o != nil {
			c.oracle = o
		}
	}
}

// New creates a Classifier with the default gazetteer oracle.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		cache:  newLRUCache(DefaultCacheCapacity),
		oracle: NewGazetteerOracle(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.detect = c.runDetection
	return c
}

// Categorize returns the category for the given content. The result is
// a pure function of the content; caching is not observable beyond
// truncated-key collisions (see entry.CacheKeyLen).
func (c *Classifier) Categorize(content string) entry.Category {
	key := entry.CacheKey(content)

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache.get(key); ok {
		return cached
	}

	category := c.detect(content)
	c.cache.put(key, category)
	return category
}

// CategorizeBatch classifies a set of entries, returning id → Category.
func (c *Classifier) CategorizeBatch(entries []*entry.Entry) map[string]entry.Category {
	result := make(map[string]entry.Category, len(entries))
	for _, e := range entries {
		result[e.ID] = c.Categorize(e.Content)
	}
	return result
}

// CacheLen returns the number of cached keys.
func (c *Classifier) CacheLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.len()
}

// runDetection applies the detection checks in precedence order.
// First match wins; the ordering is load-bearing (a URL that contains
// code keywords must classify as url).
func (c *Classifier) runDetection(content string) entry.Category {
	trimmed := strings.TrimSpace(content)

	switch {
	case matches(urlPattern, trimmed):
		return entry.CategoryURL
	case matches(emailPattern, trimmed):
		return entry.CategoryEmail
	case matches(phonePattern, trimmed):
		return entry.CategoryPhone
	case isJSON(trimmed):
		return entry.CategoryJSON
	case isCredential(trimmed):
		return entry.CategoryCredential
	case isCode(content):
		return entry.CategoryCode
	case isMarkdown(content):
		return entry.CategoryMarkdown
	case c.isAddress(content):
		return entry.CategoryAddress
	default:
		return entry.CategoryPlainText
	}
}

// isJSON requires a matching brace or bracket pair plus a successful parse.
func isJSON(trimmed string) bool {
	if len(trimmed) < 2 {
		return false
	}
	first, last := trimmed[0], trimmed[len(trimmed)-1]
	if !(first == '{' && last == '}') && !(first == '[' && last == ']') {
		return false
	}
	return json.Valid([]byte(trimmed))
}

// isCredential checks the fixed credential pattern list.
func isCredential(trimmed string) bool {
	for _, re := range credentialPatterns {
		if matches(re, trimmed) {
			return true
		}
	}
	return false
}

// isCode checks for language keywords or multiple balanced brace pairs.
func isCode(content string) bool {
	for _, kw := range codeKeywords {
		if strings.Contains(content, kw) {
			return true
		}
	}

	opens := strings.Count(content, "{")
	closes := strings.Count(content, "}")
	return opens == closes && opens > 1
}

// isAddress consults the place oracle first, then the street and ZIP
// fallback patterns.
func (c *Classifier) isAddress(content string) bool {
	oracle := c.oracle
	if oracle == nil {
		oracle = nopOracle{}
	}
	if oracle.IsPlaceName(content) {
		return true
	}
	return matches(streetPattern, content) || matches(zipPattern, content)
}
