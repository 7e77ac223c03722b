package mapper

import (
	"time"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type GameEmbeddingMapper struct{}

func NewGameEmbeddingMapper() *GameEmbeddingMapper {
	return &GameEmbeddingMapper{}
}

func (m *GameEmbeddingMapper) ToEntity(e *model.GameEmbedding) *entity.GameEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.GameEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		GameId:         e.GameId,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *GameEmbeddingMapper) ToModel(e *entity.GameEmbedding) *model.GameEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.GameEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		GameId:         e.GameId,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *GameEmbeddingMapper) ToEntities(embeddings []*model.GameEmbedding) []*entity.GameEmbedding {
	entities := make([]*entity.GameEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
