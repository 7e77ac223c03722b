package mapper

import (
	"time"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type GameMapper struct{}

func NewGameMapper() *GameMapper {
	return &GameMapper{}
}

func (m *GameMapper) ToEntity(g *model.Game) *entity.Game {
	if g == nil {
		return nil
	}

	var deletedAt *time.Time
	if g.DeletedAt.Valid {
		t := g.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !g.UpdatedAt.IsZero() {
		t := g.UpdatedAt
		updatedAt = &t
	}

	return &entity.Game{
		Id:          g.Id,
		SteamAppId:  g.SteamAppId,
		Title:       g.Title,
		Description: g.Description,
		Genres:      g.Genres,
		Tags:        g.Tags,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   g.DeletedAt.Valid,
	}
}

func (m *GameMapper) ToModel(g *entity.Game) *model.Game {
	if g == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if g.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *g.DeletedAt, Valid: true}
	} else if g.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if g.UpdatedAt != nil {
		updatedAt = *g.UpdatedAt
	}

	return &model.Game{
		Id:          g.Id,
		SteamAppId:  g.SteamAppId,
		Title:       g.Title,
		Description: g.Description,
		Genres:      datatypes.NewJSONSlice(g.Genres),
		Tags:        datatypes.NewJSONSlice(g.Tags),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *GameMapper) ToEntities(games []*model.Game) []*entity.Game {
	entities := make([]*entity.Game, len(games))
	for i, g := range games {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
