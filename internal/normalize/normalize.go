// Package normalize canonicalizes free-text queries into the form used as
// cache keys and vectorizer input: lowercased, punctuation-stripped,
// stop-word-filtered and lemmatized.
package normalize

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]+`)

// Normalize returns the canonical form of text. It always returns a string,
// possibly empty when every token is filtered out. Normalize is a fixed
// point: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	lower := strings.ToLower(text)
	cleaned := nonAlnumRe.ReplaceAllString(lower, "")
	var out []string
	for _, tok := range strings.Fields(cleaned) {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		lemma := Lemma(tok)
		// A lemma may itself be a stop word; drop it so repeated
		// normalization cannot change the result.
		if _, stop := stopwords[lemma]; stop {
			continue
		}
		out = append(out, lemma)
	}
	return strings.Join(out, " ")
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for",
		"to", "of", "in", "on", "at", "by", "with", "as", "is", "are",
		"was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again",
		"further", "than", "so", "such", "into", "about", "between",
		"through", "during", "before", "after", "above", "below", "out",
		"off", "own", "same", "too", "very", "can", "will", "just",
		"don", "should", "now", "i", "you", "he", "she", "we", "they",
		"my", "your", "me", "do", "does", "did", "have", "has", "had",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
