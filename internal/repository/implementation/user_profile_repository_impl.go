package implementation

import (
	"context"
	"errors"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/mapper"
	"steam-recs-be/internal/model"
	"steam-recs-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UserProfileMapper
}

func NewUserProfileRepository(db *gorm.DB) contract.UserProfileRepository {
	return &UserProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewUserProfileMapper(),
	}
}

func (r *UserProfileRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserProfile, error) {
	var m model.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserProfileRepositoryImpl) SavePreferenceVector(ctx context.Context, userId uuid.UUID, vector []float32, gamesAnalyzed int, totalPlaytimeHours float64) error {
	vec := pgvector.NewVector(vector)
	m := model.UserProfile{
		UserId:             userId,
		PreferenceVector:   &vec,
		GamesAnalyzed:      gamesAnalyzed,
		TotalPlaytimeHours: totalPlaytimeHours,
	}

	// Full replace of the preference side only; an existing learned vector
	// must survive the rebuild.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"preference_vector", "games_analyzed", "total_playtime_hours", "updated_at",
		}),
	}).Create(&m).Error
}

func (r *UserProfileRepositoryImpl) SaveLearnedVector(ctx context.Context, userId uuid.UUID, vector []float32) error {
	vec := pgvector.NewVector(vector)
	m := model.UserProfile{
		UserId:        userId,
		LearnedVector: &vec,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"learned_vector", "updated_at",
		}),
	}).Create(&m).Error
}
