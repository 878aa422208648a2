package service

import (
	"context"
	"fmt"

	"writer-coach-be/internal/entity"
	"writer-coach-be/internal/pkg/logger"
	"writer-coach-be/internal/repository/contract"
	"writer-coach-be/pkg/corpus"
	"writer-coach-be/pkg/embedding"
)

type IIndexerService interface {
	// BuildCategory (re)embeds one category's chunks into the vector
	// index. Returns the number of chunks written; 0 with a nil error
	// means the collection was already current.
	BuildCategory(ctx context.Context, category string, force bool) (int, error)
}

type indexerService struct {
	corpus   *corpus.Store
	embedder embedding.EmbeddingProvider
	repo     contract.ChunkEmbeddingRepository
	logger   logger.ILogger
}

func NewIndexerService(
	corpusStore *corpus.Store,
	embedder embedding.EmbeddingProvider,
	repo contract.ChunkEmbeddingRepository,
	log logger.ILogger,
) IIndexerService {
	return &indexerService{
		corpus:   corpusStore,
		embedder: embedder,
		repo:     repo,
		logger:   log,
	}
}

func (s *indexerService) BuildCategory(ctx context.Context, category string, force bool) (int, error) {
	if s.embedder == nil || s.repo == nil {
		return 0, fmt.Errorf("indexing not configured: embedding backend or vector store missing")
	}

	chunks := s.corpus.ByCategory(category)

	count, err := s.repo.CountByCategory(ctx, category)
	if err != nil {
		return 0, fmt.Errorf("count %s collection: %w", category, err)
	}
	if !force && count == int64(len(chunks)) {
		s.logger.Info("indexer", "collection already current", map[string]interface{}{
			"category": category,
			"chunks":   len(chunks),
		})
		return 0, nil
	}

	if err := s.repo.DeleteByCategory(ctx, category); err != nil {
		return 0, fmt.Errorf("clear %s collection: %w", category, err)
	}
	if len(chunks) == 0 {
		return 0, nil
	}

	embeddings := make([]*entity.ChunkEmbedding, 0, len(chunks))
	for _, chunk := range chunks {
		res, err := s.embedder.Generate(chunk.Text, embedding.TaskDocument)
		if err != nil {
			return 0, fmt.Errorf("embed chunk %s: %w", chunk.ID, err)
		}
		embeddings = append(embeddings, &entity.ChunkEmbedding{
			ChunkId:        chunk.ID,
			Category:       chunk.Category,
			Author:         chunk.Author,
			BookTitle:      chunk.BookTitle,
			Chapter:        chunk.Chapter,
			Document:       chunk.Text,
			EmbeddingValue: res.Embedding.Values,
		})
	}

	if err := s.repo.CreateBulk(ctx, embeddings); err != nil {
		return 0, fmt.Errorf("store %s embeddings: %w", category, err)
	}

	s.logger.Info("indexer", "collection rebuilt", map[string]interface{}{
		"category": category,
		"chunks":   len(embeddings),
	})
	return len(embeddings), nil
}
