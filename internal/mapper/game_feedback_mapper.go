package mapper

import (
	"time"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/model"
)

type GameFeedbackMapper struct{}

func NewGameFeedbackMapper() *GameFeedbackMapper {
	return &GameFeedbackMapper{}
}

func (m *GameFeedbackMapper) ToEntity(f *model.GameFeedback) *entity.GameFeedback {
	if f == nil {
		return nil
	}

	var updatedAt *time.Time
	if !f.UpdatedAt.IsZero() {
		t := f.UpdatedAt
		updatedAt = &t
	}

	return &entity.GameFeedback{
		Id:           f.Id,
		UserId:       f.UserId,
		GameId:       f.GameId,
		FeedbackType: entity.FeedbackType(f.FeedbackType),
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *GameFeedbackMapper) ToModel(f *entity.GameFeedback) *model.GameFeedback {
	if f == nil {
		return nil
	}

	var updatedAt time.Time
	if f.UpdatedAt != nil {
		updatedAt = *f.UpdatedAt
	}

	return &model.GameFeedback{
		Id:           f.Id,
		UserId:       f.UserId,
		GameId:       f.GameId,
		FeedbackType: string(f.FeedbackType),
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *GameFeedbackMapper) ToEntities(feedbacks []*model.GameFeedback) []*entity.GameFeedback {
	entities := make([]*entity.GameFeedback, len(feedbacks))
	for i, f := range feedbacks {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
