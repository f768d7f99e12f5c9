package core

import "strings"

// Tokenize splits text into lowercase tokens on whitespace, trimming
// surrounding punctuation. Empty tokens are dropped. This is the shared
// tokenizer for the inverted text index and keyword-OR matching, so both
// sides agree on what a token is.
func Tokenize(text string) []string {
	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}

	return tokens
}

// TokenSet returns the distinct tokens of text as a membership set.
func TokenSet(text string) map[string]bool {
	tokens := Tokenize(text)
	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}
	return set
}

// ContainsAnyToken reports whether any of the query tokens appears in the
// document's token set. Matching is case-insensitive via Tokenize.
func ContainsAnyToken(document string, queryTokens []string) bool {
	if len(queryTokens) == 0 {
		return false
	}

	docSet := TokenSet(document)
	for _, tok := range queryTokens {
		if docSet[strings.ToLower(tok)] {
			return true
		}
	}
	return false
}
