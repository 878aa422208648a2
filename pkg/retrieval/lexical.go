package retrieval

import (
	"sort"
	"strings"
	"unicode"

	"writer-coach-be/pkg/corpus"
)

// tokenize lowercases and splits on anything that is not a letter or digit.
func tokenize(text string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// lexicalSearch scores chunks by word overlap with the query:
// |query_words ∩ chunk_words| / max(|query_words|, 1). Chunks with no
// overlap are excluded. Ordering is stable for equal scores.
func lexicalSearch(query string, chunks []corpus.Chunk, limit int) []Result {
	queryWords := tokenize(query)
	denom := len(queryWords)
	if denom < 1 {
		denom = 1
	}

	var results []Result
	for _, chunk := range chunks {
		chunkWords := tokenize(chunk.Text)
		overlap := 0
		for w := range queryWords {
			if _, ok := chunkWords[w]; ok {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		results = append(results, Result{
			Chunk:     chunk,
			Relevance: float64(overlap) / float64(denom),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
