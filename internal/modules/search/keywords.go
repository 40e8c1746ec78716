package search

import (
	"sort"
	"strings"
	"unicode"
)

// vocabulary is the fixed word list scanned in review texts. Its order
// breaks ties between equally frequent words.
var vocabulary = []string{
	"clean",
	"location",
	"breakfast",
	"service",
	"quiet",
	"view",
	"comfortable",
	"friendly",
	"spacious",
	"value",
	"parking",
	"pool",
}

// TopKeywords counts vocabulary words in texts and returns the n most
// frequent ones that occur at least once.
func TopKeywords(texts []string, n int) []KeywordCount {
	counts := make(map[string]int, len(vocabulary))
	for _, t := range texts {
		words := strings.FieldsFunc(strings.ToLower(t), func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		for _, w := range words {
			counts[w]++
		}
	}

	out := make([]KeywordCount, 0, len(vocabulary))
	for _, w := range vocabulary {
		if c := counts[w]; c > 0 {
			out = append(out, KeywordCount{Word: w, Count: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if len(out) > n {
		out = out[:n]
	}
	return out
}
