// Package tickers resolves stock ticker symbols from free-text queries.
//
// Two strategies exist: a pattern-based extractor that is always available, and a
// delegated extractor backed by an LLM provider. Resolver prefers the delegated one
// and falls back to the pattern when it yields nothing usable.
package tickers

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxTickers caps the number of symbols returned by any strategy.
const MaxTickers = 10

// maxSymbolLength is the longest plausible equity ticker.
const maxSymbolLength = 5

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// stopwords are uppercase tokens that look like tickers but are English function
// words or the valuation jargon users type alongside real symbols.
var stopwords = map[string]struct{}{
	"AND": {}, "OR": {}, "THE": {}, "FOR": {}, "WITH": {}, "FROM": {}, "TO": {}, "OF": {},
	"IN": {}, "ON": {}, "AT": {}, "BY": {}, "IS": {}, "ARE": {}, "WAS": {}, "WERE": {},
	"BE": {}, "BEEN": {}, "BEING": {}, "HAVE": {}, "HAS": {}, "HAD": {}, "DO": {}, "DOES": {},
	"DID": {}, "WILL": {}, "WOULD": {}, "COULD": {}, "SHOULD": {}, "MAY": {}, "MIGHT": {},
	"CAN": {}, "SHALL": {}, "MUST": {}, "LTM": {}, "NTM": {}, "EV": {}, "PE": {},
	"EBITDA": {}, "COMPS": {},
}

// IsStopword reports whether token is excluded from pattern extraction.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// PatternExtractor finds ticker-like uppercase runs in text.
type PatternExtractor struct{}

// NewPatternExtractor creates the pattern-based extractor
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// Extract uppercases text and returns runs of 2-5 letters that are not stopwords,
// deduplicated in first-seen order and capped at MaxTickers.
func (p *PatternExtractor) Extract(text string) []string {
	words := strings.FieldsFunc(strings.ToUpper(text), isWordBoundary)

	candidates := make([]string, 0, len(words))
	for _, m := range words {
		if !tickerPattern.MatchString(m) || len(m) < 2 || IsStopword(m) {
			continue
		}
		candidates = append(candidates, m)
	}

	return dedupeAndCap(candidates)
}

// Normalize cleans symbols coming from an untrusted source: trims and uppercases,
// keeps alphabetic symbols of 1-5 letters, deduplicates in order and caps at MaxTickers.
func Normalize(symbols []string) []string {
	valid := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || len(s) > maxSymbolLength || !isAlpha(s) {
			continue
		}
		valid = append(valid, s)
	}
	return dedupeAndCap(valid)
}

// isWordBoundary splits on anything that is not a Unicode letter, digit or underscore,
// so accented names stay whole instead of yielding ASCII fragments.
func isWordBoundary(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

func dedupeAndCap(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	result := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
		if len(result) == MaxTickers {
			break
		}
	}
	return result
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
