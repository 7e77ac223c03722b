package contract

import (
	"context"

	"steam-recs-be/internal/entity"

	"github.com/google/uuid"
)

type UserProfileRepository interface {
	// FindByUserId returns (nil, nil) when no profile row exists yet.
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserProfile, error)
	// SavePreferenceVector replaces the preference vector and its denormalized
	// stats wholesale, creating the profile row if absent. The learned vector
	// is left untouched.
	SavePreferenceVector(ctx context.Context, userId uuid.UUID, vector []float32, gamesAnalyzed int, totalPlaytimeHours float64) error
	// SaveLearnedVector replaces only the learned vector, creating the profile
	// row if absent.
	SaveLearnedVector(ctx context.Context, userId uuid.UUID, vector []float32) error
}
