package contract

import (
	"context"

	"writer-coach-be/internal/entity"
)

// ScoredChunkEmbedding wraps ChunkEmbedding with its similarity score
type ScoredChunkEmbedding struct {
	Embedding  *entity.ChunkEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type ChunkEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error
	DeleteByCategory(ctx context.Context, category string) error
	CountByCategory(ctx context.Context, category string) (int64, error)
	// SearchSimilarWithScore returns the closest chunks of one category
	// with cosine similarity scores, best first.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, category string) ([]*ScoredChunkEmbedding, error)
}
