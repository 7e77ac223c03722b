package entity

import (
	"time"

	"github.com/google/uuid"
)

type GameEmbedding struct {
	Id             uuid.UUID
	Document       string
	EmbeddingValue []float32
	GameId         uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
