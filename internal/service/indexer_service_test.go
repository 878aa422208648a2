package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writer-coach-be/internal/entity"
	"writer-coach-be/internal/repository/contract"
	"writer-coach-be/pkg/corpus"
	"writer-coach-be/pkg/embedding"
)

type fakeIndexEmbedder struct {
	taskTypes []string
}

func (f *fakeIndexEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.taskTypes = append(f.taskTypes, taskType)
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.5}},
	}, nil
}

type fakeIndexRepo struct {
	count   int64
	deleted []string
	written []*entity.ChunkEmbedding
}

func (f *fakeIndexRepo) CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error {
	f.written = append(f.written, embeddings...)
	return nil
}

func (f *fakeIndexRepo) DeleteByCategory(ctx context.Context, category string) error {
	f.deleted = append(f.deleted, category)
	return nil
}

func (f *fakeIndexRepo) CountByCategory(ctx context.Context, category string) (int64, error) {
	return f.count, nil
}

func (f *fakeIndexRepo) SearchSimilarWithScore(ctx context.Context, emb []float32, limit int, category string) ([]*contract.ScoredChunkEmbedding, error) {
	return nil, nil
}

func craftStore() *corpus.Store {
	return corpus.NewStore([]corpus.Chunk{
		{ID: "c1", Text: "first excerpt", Category: corpus.CategoryCraft, Author: "A", BookTitle: "B"},
		{ID: "c2", Text: "second excerpt", Category: corpus.CategoryCraft, Author: "A", BookTitle: "B"},
	})
}

func TestBuildCategorySkipsCurrentCollection(t *testing.T) {
	repo := &fakeIndexRepo{count: 2}
	svc := NewIndexerService(craftStore(), &fakeIndexEmbedder{}, repo, stubLogger{})

	n, err := svc.BuildCategory(context.Background(), corpus.CategoryCraft, false)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, repo.deleted)
	assert.Empty(t, repo.written)
}

func TestBuildCategoryRebuilds(t *testing.T) {
	repo := &fakeIndexRepo{count: 2}
	embedder := &fakeIndexEmbedder{}
	svc := NewIndexerService(craftStore(), embedder, repo, stubLogger{})

	n, err := svc.BuildCategory(context.Background(), corpus.CategoryCraft, true)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{corpus.CategoryCraft}, repo.deleted)
	for _, taskType := range embedder.taskTypes {
		assert.Equal(t, embedding.TaskDocument, taskType)
	}
	require.Len(t, repo.written, 2)
	assert.Equal(t, "c1", repo.written[0].ChunkId)
	assert.Equal(t, "first excerpt", repo.written[0].Document)
}

func TestBuildCategoryWithoutBackends(t *testing.T) {
	svc := NewIndexerService(craftStore(), nil, nil, stubLogger{})
	_, err := svc.BuildCategory(context.Background(), corpus.CategoryCraft, false)
	assert.Error(t, err)
}
