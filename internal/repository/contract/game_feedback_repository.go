package contract

import (
	"context"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GameFeedbackRepository interface {
	// Upsert creates the feedback record or overwrites the type of an
	// existing record for the same (user, game) pair.
	Upsert(ctx context.Context, feedback *entity.GameFeedback) error
	Delete(ctx context.Context, userId, gameId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GameFeedback, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GameFeedback, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
