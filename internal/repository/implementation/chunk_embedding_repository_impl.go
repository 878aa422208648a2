package implementation

import (
	"context"

	"writer-coach-be/internal/entity"
	"writer-coach-be/internal/mapper"
	"writer-coach-be/internal/model"
	"writer-coach-be/internal/repository/contract"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkEmbeddingMapper
}

func NewChunkEmbeddingRepository(db *gorm.DB) contract.ChunkEmbeddingRepository {
	return &ChunkEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkEmbeddingMapper(),
	}
}

func (r *ChunkEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	models := make([]*model.ChunkEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

func (r *ChunkEmbeddingRepositoryImpl) DeleteByCategory(ctx context.Context, category string) error {
	return r.db.WithContext(ctx).Where("category = ?", category).Delete(&model.ChunkEmbedding{}).Error
}

func (r *ChunkEmbeddingRepositoryImpl) CountByCategory(ctx context.Context, category string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ChunkEmbedding{}).
		Where("category = ?", category).
		Count(&count).Error
	return count, err
}

// SearchSimilarWithScore orders by pgvector cosine distance and converts it
// to similarity: 1 - (embedding_value <=> query).
func (r *ChunkEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, category string) ([]*contract.ScoredChunkEmbedding, error) {
	if limit <= 0 {
		limit = 4
	}

	type result struct {
		model.ChunkEmbedding
		Similarity float64
	}

	var rows []result
	err := r.db.WithContext(ctx).Raw(`
		SELECT *, 1 - (embedding_value <=> ?) AS similarity
		FROM chunk_embeddings
		WHERE category = ?
		ORDER BY embedding_value <=> ?
		LIMIT ?`,
		pgvector.NewVector(embedding), category, pgvector.NewVector(embedding), limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunkEmbedding, len(rows))
	for i := range rows {
		scored[i] = &contract.ScoredChunkEmbedding{
			Embedding:  r.mapper.ToEntity(&rows[i].ChunkEmbedding),
			Similarity: rows[i].Similarity,
		}
	}
	return scored, nil
}
