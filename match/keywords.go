package match

import (
	"strings"
	"unicode"
)

// minKeywordLength drops single-character tokens left over after splitting.
const minKeywordLength = 2

// Stop words filtered out during keyword extraction
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "were": true, "to": true, "of": true, "and": true, "in": true,
	"that": true, "have": true, "has": true, "had": true, "it": true,
	"for": true, "not": true, "on": true, "with": true, "as": true,
	"you": true, "your": true, "do": true, "does": true, "did": true,
	"at": true, "this": true, "but": true, "by": true, "from": true,
	"how": true, "what": true, "why": true, "when": true, "where": true,
	"which": true, "who": true, "can": true, "could": true, "should": true,
	"would": true, "will": true, "my": true, "me": true, "we": true,
	"our": true, "am": true, "if": true, "or": true, "so": true, "then": true,
	"there": true, "they": true, "them": true, "their": true, "its": true,
	"into": true, "about": true, "any": true, "some": true, "no": true,
	"up": true, "out": true, "get": true, "got": true,
}

// KeywordProfile maps each keyword to its occurrence count within a text.
// The keys form the keyword set; counts feed the lexical scorer's term
// saturation.
type KeywordProfile map[string]int

// Length returns the total keyword occurrence count, i.e. the document
// length the lexical scorer normalizes by.
func (p KeywordProfile) Length() int {
	var total int
	for _, count := range p {
		total += count
	}
	return total
}

// Contains reports whether the keyword appears in the profile.
func (p KeywordProfile) Contains(keyword string) bool {
	_, ok := p[keyword]
	return ok
}

// ExtractKeywords tokenizes text into its keyword profile: lowercase, split
// on non-alphanumeric boundaries, stop words and tokens shorter than two
// characters dropped. Deterministic for identical input.
func ExtractKeywords(text string) KeywordProfile {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	profile := make(KeywordProfile, len(tokens))
	for _, token := range tokens {
		if len(token) < minKeywordLength || stopWords[token] {
			continue
		}
		profile[token]++
	}
	return profile
}
