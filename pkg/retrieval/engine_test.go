package retrieval

import (
	"context"
	"errors"
	"testing"

	"writer-coach-be/internal/entity"
	"writer-coach-be/internal/pkg/logger"
	"writer-coach-be/internal/repository/contract"
	"writer-coach-be/pkg/corpus"
	"writer-coach-be/pkg/embedding"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}

func newTestEngine(store *corpus.Store, embedder embedding.EmbeddingProvider, repo contract.ChunkEmbeddingRepository) *Engine {
	return NewEngine(store, embedder, repo, nopLogger{}, Config{})
}

type fakeEmbedder struct {
	fail bool
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.fail {
		return nil, errors.New("embedding backend down")
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2}},
	}, nil
}

type fakeChunkRepo struct {
	byCategory map[string][]*contract.ScoredChunkEmbedding
	fail       bool
}

func (f *fakeChunkRepo) CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error {
	return nil
}

func (f *fakeChunkRepo) DeleteByCategory(ctx context.Context, category string) error {
	return nil
}

func (f *fakeChunkRepo) CountByCategory(ctx context.Context, category string) (int64, error) {
	return int64(len(f.byCategory[category])), nil
}

func (f *fakeChunkRepo) SearchSimilarWithScore(ctx context.Context, emb []float32, limit int, category string) ([]*contract.ScoredChunkEmbedding, error) {
	if f.fail {
		return nil, errors.New("vector store down")
	}
	scored := f.byCategory[category]
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func scored(id, category string, similarity float64) *contract.ScoredChunkEmbedding {
	return &contract.ScoredChunkEmbedding{
		Embedding: &entity.ChunkEmbedding{
			ChunkId:   id,
			Category:  category,
			Author:    "Author",
			BookTitle: "Book",
			Document:  "text of " + id,
		},
		Similarity: similarity,
	}
}

func TestSearchMergesCollectionsByRelevance(t *testing.T) {
	repo := &fakeChunkRepo{byCategory: map[string][]*contract.ScoredChunkEmbedding{
		corpus.CategoryCraft:     {scored("craft-1", corpus.CategoryCraft, 0.9), scored("craft-2", corpus.CategoryCraft, 0.4)},
		corpus.CategoryStyle:     {scored("style-1", corpus.CategoryStyle, 0.7)},
		corpus.CategoryEditorial: {scored("ed-1", corpus.CategoryEditorial, 0.8)},
	}}
	engine := newTestEngine(corpus.NewStore(nil), &fakeEmbedder{}, repo)

	got := engine.Search(context.Background(), "structure", 3, "")

	wantIDs := []string{"craft-1", "ed-1", "style-1"}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d results, want %d", len(got), len(wantIDs))
	}
	for i, id := range wantIDs {
		if got[i].Chunk.ID != id {
			t.Errorf("result %d: got %s, want %s", i, got[i].Chunk.ID, id)
		}
	}
}

func TestSearchCategoryScopesToOneCollection(t *testing.T) {
	repo := &fakeChunkRepo{byCategory: map[string][]*contract.ScoredChunkEmbedding{
		corpus.CategoryCraft: {scored("craft-1", corpus.CategoryCraft, 0.9)},
		corpus.CategoryStyle: {scored("style-1", corpus.CategoryStyle, 0.95)},
	}}
	engine := newTestEngine(corpus.NewStore(nil), &fakeEmbedder{}, repo)

	got := engine.Search(context.Background(), "voice", 5, corpus.CategoryStyle)

	if len(got) != 1 || got[0].Chunk.ID != "style-1" {
		t.Fatalf("expected only the style collection to be searched, got %+v", got)
	}
}

func TestSearchFallsBackToLexicalOnRepoError(t *testing.T) {
	store := corpus.NewStore([]corpus.Chunk{
		{ID: "lex-1", Text: "dialogue needs subtext", Category: corpus.CategoryCraft},
	})
	engine := newTestEngine(store, &fakeEmbedder{}, &fakeChunkRepo{fail: true})

	got := engine.Search(context.Background(), "subtext in dialogue", 5, "")

	if len(got) != 1 || got[0].Chunk.ID != "lex-1" {
		t.Fatalf("expected lexical fallback result, got %+v", got)
	}
}

func TestSearchFallsBackToLexicalOnEmbedderError(t *testing.T) {
	store := corpus.NewStore([]corpus.Chunk{
		{ID: "lex-1", Text: "pacing controls tension", Category: corpus.CategoryCraft},
	})
	engine := newTestEngine(store, &fakeEmbedder{fail: true}, &fakeChunkRepo{})

	got := engine.Search(context.Background(), "tension pacing", 5, "")

	if len(got) != 1 || got[0].Chunk.ID != "lex-1" {
		t.Fatalf("expected lexical fallback result, got %+v", got)
	}
}

func TestSearchEmptyCorpusNoBackends(t *testing.T) {
	engine := newTestEngine(corpus.NewStore(nil), nil, nil)
	if got := engine.Search(context.Background(), "anything", 5, ""); len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestSearchDiverse(t *testing.T) {
	// Lexical path: each chunk's text overlaps exactly one author sub-query.
	store := corpus.NewStore([]corpus.Chunk{
		{ID: "king", Text: "Stephen King writing craft advice", Category: corpus.CategoryCraft},
		{ID: "truby", Text: "John Truby plot structure lessons", Category: corpus.CategoryCraft},
		{ID: "mckee", Text: "Robert McKee story principles explained", Category: corpus.CategoryCraft},
		{ID: "vogler", Text: "Christopher Vogler hero journey stages", Category: corpus.CategoryCraft},
		{ID: "snyder", Text: "Blake Snyder save the cat beats sheet", Category: corpus.CategoryCraft},
	})
	engine := newTestEngine(store, nil, nil)

	got := engine.SearchDiverse(context.Background(), "how do I plot a novel", corpus.CategoryCraft)

	if len(got) != 5 {
		t.Fatalf("expected one chunk per author sub-query, got %d", len(got))
	}
	seen := make(map[string]bool)
	for _, r := range got {
		if seen[r.Chunk.ID] {
			t.Errorf("duplicate chunk %s in diverse results", r.Chunk.ID)
		}
		seen[r.Chunk.ID] = true
	}
}

func TestSearchDiverseFallsBackToNormalSearch(t *testing.T) {
	store := corpus.NewStore([]corpus.Chunk{
		{ID: "only", Text: "revision is where novels are made", Category: corpus.CategoryCraft},
	})
	engine := newTestEngine(store, nil, nil)

	got := engine.SearchDiverse(context.Background(), "novels and revision", corpus.CategoryCraft)

	if len(got) != 1 || got[0].Chunk.ID != "only" {
		t.Fatalf("expected normal-search fallback, got %+v", got)
	}
}
