package mapper

import (
	"time"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type UserProfileMapper struct{}

func NewUserProfileMapper() *UserProfileMapper {
	return &UserProfileMapper{}
}

func (m *UserProfileMapper) ToEntity(p *model.UserProfile) *entity.UserProfile {
	if p == nil {
		return nil
	}

	var preference, learned []float32
	if p.PreferenceVector != nil {
		preference = p.PreferenceVector.Slice()
	}
	if p.LearnedVector != nil {
		learned = p.LearnedVector.Slice()
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.UserProfile{
		UserId:             p.UserId,
		PreferenceVector:   preference,
		LearnedVector:      learned,
		GamesAnalyzed:      p.GamesAnalyzed,
		TotalPlaytimeHours: p.TotalPlaytimeHours,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *UserProfileMapper) ToModel(p *entity.UserProfile) *model.UserProfile {
	if p == nil {
		return nil
	}

	var preference, learned *pgvector.Vector
	if p.PreferenceVector != nil {
		v := pgvector.NewVector(p.PreferenceVector)
		preference = &v
	}
	if p.LearnedVector != nil {
		v := pgvector.NewVector(p.LearnedVector)
		learned = &v
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.UserProfile{
		UserId:             p.UserId,
		PreferenceVector:   preference,
		LearnedVector:      learned,
		GamesAnalyzed:      p.GamesAnalyzed,
		TotalPlaytimeHours: p.TotalPlaytimeHours,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}
