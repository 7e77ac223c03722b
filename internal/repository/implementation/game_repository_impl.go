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
)

type GameRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GameMapper
}

func NewGameRepository(db *gorm.DB) contract.GameRepository {
	return &GameRepositoryImpl{
		db:     db,
		mapper: mapper.NewGameMapper(),
	}
}

func (r *GameRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GameRepositoryImpl) Create(ctx context.Context, game *entity.Game) error {
	m := r.mapper.ToModel(game)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*game = *r.mapper.ToEntity(m)
	return nil
}

func (r *GameRepositoryImpl) Update(ctx context.Context, game *entity.Game) error {
	m := r.mapper.ToModel(game)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*game = *r.mapper.ToEntity(m)
	return nil
}

func (r *GameRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Game{}, id).Error
}

func (r *GameRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Game, error) {
	var m model.Game
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GameRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Game, error) {
	var models []*model.Game
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GameRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Game{}).Count(&count).Error
	return count, err
}
