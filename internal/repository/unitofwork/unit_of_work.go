package unitofwork

import (
	"context"

	"steam-recs-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GameRepository() contract.GameRepository
	GameEmbeddingRepository() contract.GameEmbeddingRepository
	UserProfileRepository() contract.UserProfileRepository
	GameFeedbackRepository() contract.GameFeedbackRepository
}
