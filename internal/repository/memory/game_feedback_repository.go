package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/repository/contract"
	"steam-recs-be/internal/repository/specification"

	"github.com/google/uuid"
)

type feedbackKey struct {
	userId uuid.UUID
	gameId uuid.UUID
}

type GameFeedbackRepository struct {
	mu       sync.RWMutex
	feedback map[feedbackKey]*entity.GameFeedback
}

func NewGameFeedbackRepository() *GameFeedbackRepository {
	return &GameFeedbackRepository{
		feedback: make(map[feedbackKey]*entity.GameFeedback),
	}
}

var _ contract.GameFeedbackRepository = (*GameFeedbackRepository)(nil)

func (r *GameFeedbackRepository) Upsert(ctx context.Context, feedback *entity.GameFeedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := feedbackKey{userId: feedback.UserId, gameId: feedback.GameId}
	if existing, ok := r.feedback[key]; ok {
		existing.FeedbackType = feedback.FeedbackType
		now := time.Now()
		existing.UpdatedAt = &now
		*feedback = *existing
		return nil
	}
	if feedback.Id == uuid.Nil {
		feedback.Id = uuid.New()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now()
	}
	cp := *feedback
	r.feedback[key] = &cp
	return nil
}

func (r *GameFeedbackRepository) Delete(ctx context.Context, userId, gameId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.feedback, feedbackKey{userId: userId, gameId: gameId})
	return nil
}

func (r *GameFeedbackRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GameFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.feedback {
		if matchFeedback(f, specs) {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *GameFeedbackRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GameFeedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// OrderBy/Pagination shape the result set rather than filter it; pull
	// them out so matchFeedback only sees filters.
	desc := false
	limit, offset := -1, 0
	filters := make([]specification.Specification, 0, len(specs))
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			desc = s.Desc
		case specification.Pagination:
			limit, offset = s.Limit, s.Offset
		default:
			filters = append(filters, spec)
		}
	}

	var out []*entity.GameFeedback
	for _, f := range r.feedback {
		if matchFeedback(f, filters) {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *GameFeedbackRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func matchFeedback(f *entity.GameFeedback, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if f.Id != s.ID {
				return false
			}
		case specification.ByUserID:
			if f.UserId != s.UserID {
				return false
			}
		case specification.ByGameID:
			if f.GameId != s.GameID {
				return false
			}
		case specification.ByFeedbackType:
			if string(f.FeedbackType) != s.FeedbackType {
				return false
			}
		}
	}
	return true
}
