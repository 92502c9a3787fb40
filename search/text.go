package search

import "strings"

// punctuationCutset is trimmed from token edges before comparison.
const punctuationCutset = ".,!?;:'\"-()[]{}"

// Stop words to ignore when checking for verbatim matches
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// tokenize splits text into lowercased words with edge punctuation trimmed,
// dropping stop words and empty tokens.
func tokenize(text string) []string {
	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, punctuationCutset))
		if cleaned == "" || stopWords[cleaned] {
			continue
		}
		tokens = append(tokens, cleaned)
	}

	return tokens
}

// containsAllQueryWords checks if every query word (after filtering) appears in the text.
func containsAllQueryWords(text, query string) bool {
	queryWords := tokenize(query)
	if len(queryWords) == 0 {
		return false
	}

	textWords := make(map[string]bool)
	for _, word := range tokenize(text) {
		textWords[word] = true
	}

	for _, qWord := range queryWords {
		if !textWords[qWord] {
			return false
		}
	}

	return true
}
