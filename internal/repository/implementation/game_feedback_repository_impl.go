package implementation

import (
	"context"
	"errors"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/mapper"
	"steam-recs-be/internal/model"
	"steam-recs-be/internal/repository/contract"
	"steam-recs-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameFeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GameFeedbackMapper
}

func NewGameFeedbackRepository(db *gorm.DB) contract.GameFeedbackRepository {
	return &GameFeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewGameFeedbackMapper(),
	}
}

func (r *GameFeedbackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GameFeedbackRepositoryImpl) Upsert(ctx context.Context, feedback *entity.GameFeedback) error {
	m := r.mapper.ToModel(feedback)
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"feedback_type", "updated_at",
		}),
	}).Create(m).Error; err != nil {
		return err
	}

	*feedback = *r.mapper.ToEntity(m)
	return nil
}

func (r *GameFeedbackRepositoryImpl) Delete(ctx context.Context, userId, gameId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userId, gameId).
		Delete(&model.GameFeedback{}).Error
}

func (r *GameFeedbackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GameFeedback, error) {
	var m model.GameFeedback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GameFeedbackRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GameFeedback, error) {
	var models []*model.GameFeedback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GameFeedbackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.GameFeedback{}).Count(&count).Error
	return count, err
}
