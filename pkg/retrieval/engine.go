package retrieval

import (
	"context"
	"sort"

	"writer-coach-be/internal/pkg/logger"
	"writer-coach-be/internal/repository/contract"
	"writer-coach-be/pkg/corpus"
	"writer-coach-be/pkg/embedding"
)

// Result is one retrieved chunk with its relevance in [0, 1].
type Result struct {
	Chunk     corpus.Chunk
	Relevance float64
}

// Config tunes the engine. Zero values fall back to defaults.
type Config struct {
	MaxChunks       int // default result count for context assembly
	EntryCharBudget int // per-entry text budget in assembled context
}

func (c Config) withDefaults() Config {
	if c.MaxChunks <= 0 {
		c.MaxChunks = 4
	}
	if c.EntryCharBudget <= 0 {
		c.EntryCharBudget = 500
	}
	return c
}

// diversityQueries target one reference author each. Diversity mode pulls
// the best chunk per query so craft answers do not collapse onto a single
// author's book.
var diversityQueries = []string{
	"Stephen King writing craft",
	"John Truby plot structure",
	"Robert McKee story principles",
	"Christopher Vogler hero journey",
	"Blake Snyder save the cat beats",
}

// Engine searches the corpus. The semantic path embeds the query and asks
// the vector index per category; any failure on that path degrades
// silently to lexical word-overlap scoring over the in-memory corpus.
type Engine struct {
	corpus   *corpus.Store
	embedder embedding.EmbeddingProvider
	repo     contract.ChunkEmbeddingRepository
	logger   logger.ILogger
	cfg      Config
}

// NewEngine builds an engine. embedder and repo may be nil, which pins the
// engine to the lexical path (used when no embedding backend is configured).
func NewEngine(
	corpusStore *corpus.Store,
	embedder embedding.EmbeddingProvider,
	repo contract.ChunkEmbeddingRepository,
	log logger.ILogger,
	cfg Config,
) *Engine {
	return &Engine{
		corpus:   corpusStore,
		embedder: embedder,
		repo:     repo,
		logger:   log,
		cfg:      cfg.withDefaults(),
	}
}

// Search returns up to limit chunks relevant to the query. An empty
// category searches every collection and merges by relevance. Search never
// fails: backend trouble falls back to lexical scoring, and an empty
// corpus yields an empty slice.
func (e *Engine) Search(ctx context.Context, query string, limit int, category string) []Result {
	if limit <= 0 {
		limit = e.cfg.MaxChunks
	}

	if e.embedder != nil && e.repo != nil {
		results, err := e.semanticSearch(ctx, query, limit, category)
		if err == nil {
			return results
		}
		e.logger.Warn("retrieval", "semantic search unavailable, using lexical fallback", map[string]interface{}{
			"error":    err.Error(),
			"category": category,
		})
	}

	return lexicalSearch(query, e.chunksFor(category), limit)
}

// SearchDiverse issues the fixed author sub-queries and keeps the single
// best chunk per sub-query, deduplicated by chunk id. When nothing lands
// it degrades to a normal search.
func (e *Engine) SearchDiverse(ctx context.Context, query string, category string) []Result {
	var results []Result
	seen := make(map[string]struct{})

	for _, sub := range diversityQueries {
		hits := e.Search(ctx, sub, 1, category)
		if len(hits) == 0 {
			continue
		}
		hit := hits[0]
		if _, dup := seen[hit.Chunk.ID]; dup {
			continue
		}
		seen[hit.Chunk.ID] = struct{}{}
		results = append(results, hit)
	}

	if len(results) == 0 {
		return e.Search(ctx, query, e.cfg.MaxChunks, category)
	}
	return results
}

func (e *Engine) semanticSearch(ctx context.Context, query string, limit int, category string) ([]Result, error) {
	embedRes, err := e.embedder.Generate(query, embedding.TaskQuery)
	if err != nil {
		return nil, err
	}
	vector := embedRes.Embedding.Values

	categories := corpus.Categories
	if category != "" {
		categories = []string{category}
	}

	var merged []Result
	for _, cat := range categories {
		scored, err := e.repo.SearchSimilarWithScore(ctx, vector, limit, cat)
		if err != nil {
			return nil, err
		}
		for _, s := range scored {
			merged = append(merged, Result{
				Chunk: corpus.Chunk{
					ID:        s.Embedding.ChunkId,
					Text:      s.Embedding.Document,
					Category:  s.Embedding.Category,
					Author:    s.Embedding.Author,
					BookTitle: s.Embedding.BookTitle,
					Chapter:   s.Embedding.Chapter,
				},
				Relevance: s.Similarity,
			})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Relevance > merged[j].Relevance
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// ContextFor runs the search appropriate for the tool shape and renders
// the grounding block. diversity selects the per-author strategy.
func (e *Engine) ContextFor(ctx context.Context, query string, category string, diversity bool) string {
	var results []Result
	if diversity {
		results = e.SearchDiverse(ctx, query, category)
	} else {
		results = e.Search(ctx, query, e.cfg.MaxChunks, category)
	}
	return BuildContext(results, category, e.cfg.EntryCharBudget)
}

func (e *Engine) chunksFor(category string) []corpus.Chunk {
	if category == "" {
		return e.corpus.All()
	}
	return e.corpus.ByCategory(category)
}
