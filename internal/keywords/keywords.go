// Package keywords extracts frequency-ranked terms from channel text for
// brand-fit analysis.
package keywords

import (
	"sort"
	"strings"
	"unicode"
)

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true,
	"your": true, "our": true, "are": true, "this": true, "that": true,
	"from": true, "have": true, "all": true, "new": true, "more": true,
	"channel": true, "video": true, "videos": true, "subscribe": true,
	"follow": true, "like": true, "watch": true, "youtube": true,
	"https": true, "http": true, "www": true, "com": true,
}

// Extract returns up to topN distinct terms ordered by descending frequency,
// ties broken alphabetically. Terms shorter than three runes and stopwords
// are dropped.
func Extract(text string, topN int) []string {
	if topN <= 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, word := range splitWords(text) {
		word = strings.ToLower(word)
		if len([]rune(word)) < 3 || stopwords[word] {
			continue
		}
		counts[word]++
	}
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > topN {
		terms = terms[:topN]
	}
	return terms
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
