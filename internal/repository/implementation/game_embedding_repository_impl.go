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
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GameEmbeddingMapper
}

func NewGameEmbeddingRepository(db *gorm.DB) contract.GameEmbeddingRepository {
	return &GameEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewGameEmbeddingMapper(),
	}
}

func (r *GameEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GameEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.GameEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *GameEmbeddingRepositoryImpl) Update(ctx context.Context, embedding *entity.GameEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *GameEmbeddingRepositoryImpl) DeleteByGameId(ctx context.Context, gameId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("game_id = ?", gameId).Delete(&model.GameEmbedding{}).Error
}

func (r *GameEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GameEmbedding, error) {
	var m model.GameEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GameEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.GameEmbedding{}).Count(&count).Error
	return count, err
}

func (r *GameEmbeddingRepositoryImpl) FindBySteamAppIds(ctx context.Context, steamAppIds []string) (map[string]*entity.GameEmbedding, error) {
	result := make(map[string]*entity.GameEmbedding, len(steamAppIds))
	if len(steamAppIds) == 0 {
		return result, nil
	}

	type row struct {
		model.GameEmbedding
		SteamAppId string
	}
	var rows []row

	err := r.db.WithContext(ctx).
		Table("game_embeddings").
		Select("game_embeddings.*, games.steam_app_id").
		Joins("JOIN games ON games.id = game_embeddings.game_id").
		Where("games.steam_app_id IN ?", steamAppIds).
		Where("game_embeddings.deleted_at IS NULL").
		Where("games.deleted_at IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		result[rows[i].SteamAppId] = r.mapper.ToEntity(&rows[i].GameEmbedding)
	}
	return result, nil
}

func (r *GameEmbeddingRepositoryImpl) SearchNearest(ctx context.Context, queryVector []float32, limit int, excludeGameIds []uuid.UUID) ([]*contract.ScoredGame, error) {
	if limit <= 0 {
		limit = 10
	}

	queryVec := pgvector.NewVector(queryVector)

	type row struct {
		GameId     uuid.UUID
		SteamAppId string
		Title      string
		Similarity float64
	}
	var rows []row

	// pgvector cosine distance ranges over [0,2]; map it onto a [0,1]
	// similarity where 1 means identical direction.
	query := r.db.WithContext(ctx).
		Table("game_embeddings").
		Select("games.id as game_id, games.steam_app_id, games.title, 1 - (embedding_value <=> ?)/2 as similarity", queryVec).
		Joins("JOIN games ON games.id = game_embeddings.game_id").
		Where("game_embeddings.deleted_at IS NULL").
		Where("games.deleted_at IS NULL")

	if len(excludeGameIds) > 0 {
		query = query.Where("games.id NOT IN ?", excludeGameIds)
	}

	err := query.
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding_value <=> ?", Vars: []interface{}{queryVec}},
		}).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredGame, len(rows))
	for i, res := range rows {
		scored[i] = &contract.ScoredGame{
			GameId:     res.GameId,
			SteamAppId: res.SteamAppId,
			Title:      res.Title,
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
