package contract

import (
	"context"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	Update(ctx context.Context, game *entity.Game) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Game, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Game, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
