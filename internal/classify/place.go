package classify

import "strings"

// PlaceOracle answers whether a piece of text names a physical place.
// The concrete implementation (statistical tagger, gazetteer, or regex
// fallback) is swappable without touching classifier control flow.
type PlaceOracle interface {
	IsPlaceName(text string) bool
}

// GazetteerOracle is the default PlaceOracle: a small lookup of common
// place words. It errs on the side of silence; the classifier's street
// and ZIP patterns catch what it misses.
type GazetteerOracle struct {
	terms map[string]bool
}

// NewGazetteerOracle builds the default gazetteer.
func NewGazetteerOracle() *GazetteerOracle {
	terms := []string{
		"airport", "station", "plaza", "square", "park", "bridge",
		"museum", "university", "hospital", "library", "harbor",
		"downtown", "uptown", "district", "county", "province",
	}
	m := make(map[string]bool, len(terms))
	for _, t := range terms {
		m[t] = true
	}
	return &GazetteerOracle{terms: m}
}

// IsPlaceName reports whether any word in the text is a known place term.
func (g *GazetteerOracle) IsPlaceName(text string) bool {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if g.terms[word] {
			return true
		}
	}
	return false
}

// nopOracle never recognizes a place; used when no oracle is supplied.
type nopOracle struct{}

func (nopOracle) IsPlaceName(string) bool { return false }
