// Package dedupe filters near-duplicate short text items using word-set
// Jaccard similarity.
package dedupe

import "strings"

// DefaultThreshold is the similarity above which an item counts as a duplicate.
const DefaultThreshold = 0.8

// Articles carry no meaning for duplicate detection of short imperative items
// ("call the dentist" vs "call dentist"), so they are dropped before the sets
// are compared.
var stopwords = map[string]bool{
	"a":   true,
	"an":  true,
	"the": true,
}

// Jaccard computes word-set similarity between two texts: lowercased,
// whitespace-tokenized, article-filtered unique tokens;
// |intersection| / |union|, with 0 when both sets are empty.
func Jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Filter returns items with near-duplicates removed, preserving first-seen
// order. An incoming item is discarded when its similarity to any already
// accepted item exceeds threshold.
func Filter[T any](items []T, threshold float64, keyOf func(T) string) []T {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var kept []T
	var keys []string
	for _, item := range items {
		key := keyOf(item)
		duplicate := false
		for _, k := range keys {
			if Jaccard(key, k) > threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		kept = append(kept, item)
		keys = append(keys, key)
	}
	return kept
}

// Strings filters a plain string slice with the default identity key.
func Strings(items []string, threshold float64) []string {
	return Filter(items, threshold, func(s string) string { return s })
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if stopwords[w] {
			continue
		}
		set[w] = true
	}
	return set
}
