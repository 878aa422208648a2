package retrieval

import (
	"fmt"
	"strings"

	"writer-coach-be/pkg/corpus"
)

var categoryHeaders = map[string]string{
	corpus.CategoryCraft:     "Reference excerpts on writing craft:",
	corpus.CategoryStyle:     "Reference excerpts on style:",
	corpus.CategoryEditorial: "Reference excerpts on editing:",
}

const generalHeader = "Reference excerpts from the library:"

// BuildContext renders results into the numbered grounding block:
// a header line, then numbered entries with source attribution, each
// entry's text cut at the per-entry budget. An empty result set yields an
// empty string so the prompt builder can skip the section entirely.
func BuildContext(results []Result, category string, entryCharBudget int) string {
	if len(results) == 0 {
		return ""
	}
	if entryCharBudget <= 0 {
		entryCharBudget = 500
	}

	header, ok := categoryHeaders[category]
	if !ok {
		header = generalHeader
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")

	for i, r := range results {
		c := r.Chunk
		source := fmt.Sprintf("[%d] [%s] %s — «%s»", i+1, c.Category, c.Author, c.BookTitle)
		if c.Chapter != "" {
			source += fmt.Sprintf(" (%s)", c.Chapter)
		}
		b.WriteString("\n")
		b.WriteString(source)
		b.WriteString("\n")
		b.WriteString(truncate(c.Text, entryCharBudget))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func truncate(text string, budget int) string {
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget]) + "..."
}
