package memory

import (
	"context"
	"sync"
	"time"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/repository/contract"

	"github.com/google/uuid"
)

type UserProfileRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*entity.UserProfile
}

func NewUserProfileRepository() *UserProfileRepository {
	return &UserProfileRepository{
		profiles: make(map[uuid.UUID]*entity.UserProfile),
	}
}

var _ contract.UserProfileRepository = (*UserProfileRepository)(nil)

func (r *UserProfileRepository) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userId]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.PreferenceVector = append([]float32(nil), p.PreferenceVector...)
	cp.LearnedVector = append([]float32(nil), p.LearnedVector...)
	return &cp, nil
}

func (r *UserProfileRepository) SavePreferenceVector(ctx context.Context, userId uuid.UUID, vector []float32, gamesAnalyzed int, totalPlaytimeHours float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.getOrCreate(userId)
	p.PreferenceVector = append([]float32(nil), vector...)
	p.GamesAnalyzed = gamesAnalyzed
	p.TotalPlaytimeHours = totalPlaytimeHours
	now := time.Now()
	p.UpdatedAt = &now
	return nil
}

func (r *UserProfileRepository) SaveLearnedVector(ctx context.Context, userId uuid.UUID, vector []float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.getOrCreate(userId)
	p.LearnedVector = append([]float32(nil), vector...)
	now := time.Now()
	p.UpdatedAt = &now
	return nil
}

func (r *UserProfileRepository) getOrCreate(userId uuid.UUID) *entity.UserProfile {
	p, ok := r.profiles[userId]
	if !ok {
		p = &entity.UserProfile{
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		r.profiles[userId] = p
	}
	return p
}
