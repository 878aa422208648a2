package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChunkEmbedding is one indexed corpus excerpt with its vector.
type ChunkEmbedding struct {
	Id        uuid.UUID
	ChunkId   string // stable id from the corpus JSON
	Category  string
	Author    string
	BookTitle string
	Chapter   string
	Document  string

	EmbeddingValue []float32

	CreatedAt time.Time
	UpdatedAt *time.Time
}
