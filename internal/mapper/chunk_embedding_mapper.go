package mapper

import (
	"encoding/json"
	"time"

	"writer-coach-be/internal/entity"
	"writer-coach-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChunkEmbeddingMapper struct{}

func NewChunkEmbeddingMapper() *ChunkEmbeddingMapper {
	return &ChunkEmbeddingMapper{}
}

func (m *ChunkEmbeddingMapper) ToEntity(e *model.ChunkEmbedding) *entity.ChunkEmbedding {
	if e == nil {
		return nil
	}

	var meta model.ChunkMetadata
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &meta)
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChunkEmbedding{
		Id:             e.Id,
		ChunkId:        e.ChunkId,
		Category:       e.Category,
		Author:         meta.Author,
		BookTitle:      meta.BookTitle,
		Chapter:        meta.Chapter,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ChunkEmbeddingMapper) ToModel(e *entity.ChunkEmbedding) *model.ChunkEmbedding {
	if e == nil {
		return nil
	}

	metaBytes, _ := json.Marshal(model.ChunkMetadata{
		Author:    e.Author,
		BookTitle: e.BookTitle,
		Chapter:   e.Chapter,
	})

	out := &model.ChunkEmbedding{
		Id:             e.Id,
		ChunkId:        e.ChunkId,
		Category:       e.Category,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		Metadata:       datatypes.JSON(metaBytes),
	}
	return out
}
