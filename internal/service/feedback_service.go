package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"steam-recs-be/internal/dto"
	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/pkg/logger"
	"steam-recs-be/internal/repository/specification"
	"steam-recs-be/internal/repository/unitofwork"
	"steam-recs-be/pkg/events"
	pktNats "steam-recs-be/pkg/nats"
	"steam-recs-be/pkg/recommend"

	"github.com/google/uuid"
)

// ErrNoBaselineVector is returned when feedback arrives for a user who has
// never had a library analyzed: there is nothing to nudge.
var ErrNoBaselineVector = errors.New("no baseline vector: generate a preference vector first")

// ErrInvalidFeedbackType is returned for unknown feedback type strings.
var ErrInvalidFeedbackType = errors.New("invalid feedback type")

type IFeedbackService interface {
	Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, gameId uuid.UUID) error
	List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.ListFeedbackResponse, error)
}

type feedbackService struct {
	uowFactory     unitofwork.RepositoryFactory
	entitlements   EntitlementChecker
	vectorCache    *VectorCache
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger

	// Per-user locks serialize the learned-vector read-modify-write;
	// concurrent feedback for different users proceeds in parallel.
	mu        sync.Mutex
	userLocks map[uuid.UUID]*sync.Mutex
}

func NewFeedbackService(
	uowFactory unitofwork.RepositoryFactory,
	entitlements EntitlementChecker,
	vectorCache *VectorCache,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IFeedbackService {
	return &feedbackService{
		uowFactory:     uowFactory,
		entitlements:   entitlements,
		vectorCache:    vectorCache,
		eventPublisher: eventPublisher,
		logger:         log,
		userLocks:      make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *feedbackService) lockUser(userId uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	lock, ok := s.userLocks[userId]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userId] = lock
	}
	s.mu.Unlock()
	lock.Lock()
	return lock
}

// Submit records the feedback and nudges the learned vector toward (or away
// from) the game's embedding. Resubmitting for the same game overwrites the
// stored type and applies a fresh nudge from the current learned vector; the
// earlier nudge is not rewound.
func (s *feedbackService) Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitFeedbackRequest) (*dto.SubmitFeedbackResponse, error) {
	feedbackType := entity.FeedbackType(req.FeedbackType)
	if !feedbackType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFeedbackType, req.FeedbackType)
	}

	if err := s.entitlements.CanSubmitFeedback(ctx, userId); err != nil {
		return nil, err
	}

	lock := s.lockUser(userId)
	defer lock.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)

	game, err := uow.GameRepository().FindOne(ctx, specification.ByID{ID: req.GameId})
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, nil
	}

	profile, err := uow.UserProfileRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	baseline := baselineVector(profile)
	if baseline == nil {
		return nil, ErrNoBaselineVector
	}

	feedback := entity.GameFeedback{
		Id:           uuid.New(),
		UserId:       userId,
		GameId:       req.GameId,
		FeedbackType: feedbackType,
		CreatedAt:    time.Now(),
	}
	if err := uow.GameFeedbackRepository().Upsert(ctx, &feedback); err != nil {
		return nil, err
	}

	res := &dto.SubmitFeedbackResponse{
		Id:           feedback.Id,
		GameId:       feedback.GameId,
		FeedbackType: string(feedback.FeedbackType),
	}

	gameEmbedding, err := uow.GameEmbeddingRepository().FindOne(ctx, specification.ByGameID{GameID: req.GameId})
	if err != nil {
		return nil, err
	}
	if gameEmbedding == nil {
		// Feedback is kept for exclusion lists; the learned vector only
		// moves once the game has been embedded.
		s.logger.Warn("FeedbackService", "Game has no embedding, skipping vector update", map[string]interface{}{
			"user_id": userId,
			"game_id": req.GameId,
		})
		return res, nil
	}

	weight := recommend.FeedbackWeight[string(feedbackType)]
	learned := recommend.Nudge(baseline, gameEmbedding.EmbeddingValue, weight)

	if err := uow.UserProfileRepository().SaveLearnedVector(ctx, userId, learned); err != nil {
		return nil, err
	}

	s.vectorCache.Invalidate(userId)
	res.VectorUpdated = true

	s.logger.Info("FeedbackService", "Learned vector updated", map[string]interface{}{
		"user_id":       userId,
		"game_id":       req.GameId,
		"feedback_type": string(feedbackType),
		"weight":        weight,
	})

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeFeedbackRecorded,
			Data: map[string]interface{}{
				"user_id":       userId,
				"game_id":       req.GameId,
				"game_title":    game.Title,
				"feedback_type": string(feedbackType),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("FeedbackService", fmt.Sprintf("Failed to publish %s event", events.TypeFeedbackRecorded), map[string]interface{}{"error": err.Error()})
		}
	}

	return res, nil
}

// Delete removes the feedback record only. The learned vector is left as-is:
// updates are order-dependent, so replaying history minus one event would not
// reconstruct a meaningful state anyway.
func (s *feedbackService) Delete(ctx context.Context, userId uuid.UUID, gameId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.GameFeedbackRepository().Delete(ctx, userId, gameId)
}

func (s *feedbackService) List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.ListFeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.GameFeedbackRepository().Count(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}

	items, err := uow.GameFeedbackRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListFeedbackResponse{
		Items: make([]*dto.FeedbackItemResponse, 0, len(items)),
		Total: total,
	}
	for _, f := range items {
		item := &dto.FeedbackItemResponse{
			Id:           f.Id,
			GameId:       f.GameId,
			FeedbackType: string(f.FeedbackType),
			CreatedAt:    f.CreatedAt,
			UpdatedAt:    f.UpdatedAt,
		}
		game, err := uow.GameRepository().FindOne(ctx, specification.ByID{ID: f.GameId})
		if err != nil {
			return nil, err
		}
		if game != nil {
			item.GameTitle = game.Title
		}
		res.Items = append(res.Items, item)
	}

	return res, nil
}

// baselineVector picks the vector a feedback nudge starts from: the learned
// vector once one exists, the preference vector for the first feedback ever.
func baselineVector(profile *entity.UserProfile) []float32 {
	if profile == nil {
		return nil
	}
	if len(profile.LearnedVector) > 0 {
		return profile.LearnedVector
	}
	if len(profile.PreferenceVector) > 0 {
		return profile.PreferenceVector
	}
	return nil
}
