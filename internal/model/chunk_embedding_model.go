package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChunkEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChunkId        string          `gorm:"uniqueIndex;not null"`
	Category       string          `gorm:"index;not null"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 dimensions
	Metadata       datatypes.JSON  `gorm:"type:jsonb"`       // author, book_title, chapter
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (ChunkEmbedding) TableName() string {
	return "chunk_embeddings"
}

// ChunkMetadata is the shape stored in the Metadata jsonb column.
type ChunkMetadata struct {
	Author    string `json:"author"`
	BookTitle string `json:"book_title"`
	Chapter   string `json:"chapter"`
}
