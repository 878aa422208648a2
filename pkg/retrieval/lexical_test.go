package retrieval

import (
	"testing"

	"writer-coach-be/pkg/corpus"
)

func TestLexicalSearch(t *testing.T) {
	chunks := []corpus.Chunk{
		{ID: "c1", Text: "Show the reader, do not tell the reader", Category: corpus.CategoryCraft},
		{ID: "c2", Text: "Adverbs weaken prose", Category: corpus.CategoryStyle},
		{ID: "c3", Text: "Cut every scene that does not advance the story", Category: corpus.CategoryEditorial},
	}

	tests := []struct {
		name      string
		query     string
		wantIDs   []string
		wantFirst float64
	}{
		{
			name:      "exact word set scores 1.0",
			query:     "show the reader do not tell",
			wantIDs:   []string{"c1", "c3"}, // c3 shares "the" and "not"
			wantFirst: 1.0,
		},
		{
			name:      "partial overlap ranks by score, stable on ties",
			query:     "weaken the story",
			wantIDs:   []string{"c3", "c1", "c2"}, // 2/3, then 1/3 ties in corpus order
			wantFirst: 2.0 / 3.0,
		},
		{
			name:    "no overlap excluded",
			query:   "quantum mechanics",
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexicalSearch(tt.query, chunks, 10)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].Chunk.ID != id {
					t.Errorf("result %d: got %s, want %s", i, got[i].Chunk.ID, id)
				}
			}
			if len(got) > 0 && tt.wantFirst != 0 {
				if diff := got[0].Relevance - tt.wantFirst; diff > 1e-9 || diff < -1e-9 {
					t.Errorf("first relevance: got %f, want %f", got[0].Relevance, tt.wantFirst)
				}
			}
		})
	}
}

func TestLexicalSearchEmptyCorpus(t *testing.T) {
	if got := lexicalSearch("anything at all", nil, 5); len(got) != 0 {
		t.Errorf("expected no results from empty corpus, got %d", len(got))
	}
}

func TestLexicalSearchLimit(t *testing.T) {
	chunks := []corpus.Chunk{
		{ID: "a", Text: "story"},
		{ID: "b", Text: "story"},
		{ID: "c", Text: "story"},
	}
	got := lexicalSearch("story", chunks, 2)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	// stable order for equal scores
	if got[0].Chunk.ID != "a" || got[1].Chunk.ID != "b" {
		t.Errorf("unexpected order: %s, %s", got[0].Chunk.ID, got[1].Chunk.ID)
	}
}
