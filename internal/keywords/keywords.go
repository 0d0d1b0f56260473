// Package keywords ranks the words of a text by frequency.
package keywords

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultTopN is the number of keywords returned when the caller has no preference.
const DefaultTopN = 10

// minLength is the shortest token kept; shorter tokens carry no signal.
const minLength = 3

var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "to": {}, "of": {}, "in": {}, "a": {}, "for": {}, "with": {}, "on": {},
	"is": {}, "as": {}, "by": {}, "an": {}, "be": {}, "are": {}, "at": {}, "from": {},
}

// IsStopword reports whether the lowercase word is excluded from keyword sets.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// Tokenize splits text into lowercase runs of letters, digits and underscores.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !IsWordRune(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		tokens = append(tokens, strings.ToLower(field))
	}
	return tokens
}

// Extract returns up to topN distinct keywords ordered by frequency, most frequent first.
// Words with equal counts keep the order in which they first appear in text.
func Extract(text string, topN int) []string {
	if topN <= 0 {
		return []string{}
	}

	type entry struct {
		word  string
		count int
	}

	index := make(map[string]int)
	entries := make([]entry, 0)

	for _, token := range Tokenize(text) {
		if utf8.RuneCountInString(token) < minLength || IsStopword(token) {
			continue
		}
		if i, ok := index[token]; ok {
			entries[i].count++
			continue
		}
		index[token] = len(entries)
		entries = append(entries, entry{word: token, count: 1})
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		return b.count - a.count
	})

	if len(entries) > topN {
		entries = entries[:topN]
	}

	result := make([]string, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.word)
	}
	return result
}

// IsWordRune reports whether r belongs to a token: a letter, a digit or an underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
