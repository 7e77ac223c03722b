package service

import (
	"context"
	"errors"

	"steam-recs-be/internal/constant"
	"steam-recs-be/internal/dto"
	"steam-recs-be/internal/pkg/logger"
	"steam-recs-be/internal/repository/specification"
	"steam-recs-be/internal/repository/unitofwork"
	"steam-recs-be/pkg/recommend"

	"github.com/google/uuid"
)

// ErrNoPreferenceVector is returned when recommendations are requested
// before any library has been analyzed.
var ErrNoPreferenceVector = errors.New("no preference vector: generate one first")

const defaultRecommendationLimit = 10

type IRecommendationService interface {
	GetRecommendations(ctx context.Context, userId uuid.UUID, req *dto.GetRecommendationsRequest) (*dto.GetRecommendationsResponse, error)
}

type recommendationService struct {
	uowFactory  unitofwork.RepositoryFactory
	vectorCache *VectorCache
	logger      logger.ILogger
}

func NewRecommendationService(
	uowFactory unitofwork.RepositoryFactory,
	vectorCache *VectorCache,
	log logger.ILogger,
) IRecommendationService {
	return &recommendationService{
		uowFactory:  uowFactory,
		vectorCache: vectorCache,
		logger:      log,
	}
}

func (s *recommendationService) GetRecommendations(ctx context.Context, userId uuid.UUID, req *dto.GetRecommendationsRequest) (*dto.GetRecommendationsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	queryVector, source, err := s.hybridVector(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	exclude, err := s.excludedGameIds(ctx, uow, userId, req.ExcludeGameIds)
	if err != nil {
		return nil, err
	}

	scored, err := uow.GameEmbeddingRepository().SearchNearest(ctx, queryVector, limit, exclude)
	if err != nil {
		return nil, err
	}

	res := &dto.GetRecommendationsResponse{
		Items:        make([]*dto.RecommendationItem, 0, len(scored)),
		VectorSource: source,
	}
	for _, sg := range scored {
		res.Items = append(res.Items, &dto.RecommendationItem{
			GameId:     sg.GameId,
			SteamAppId: sg.SteamAppId,
			Title:      sg.Title,
			Similarity: sg.Similarity,
		})
	}

	return res, nil
}

// hybridVector resolves the query vector for a user: 60% preference, 40%
// learned when feedback exists, straight preference otherwise. Results are
// cached; preference and feedback writers invalidate.
func (s *recommendationService) hybridVector(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) ([]float32, string, error) {
	if vector, source, ok := s.vectorCache.Get(userId); ok {
		return vector, source, nil
	}

	profile, err := uow.UserProfileRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, "", err
	}
	if profile == nil || len(profile.PreferenceVector) == 0 {
		return nil, "", ErrNoPreferenceVector
	}

	vector := profile.PreferenceVector
	source := constant.VectorSourcePreference
	if len(profile.LearnedVector) == len(profile.PreferenceVector) && len(profile.LearnedVector) > 0 {
		vector = recommend.Blend(
			profile.PreferenceVector,
			profile.LearnedVector,
			recommend.PreferenceBlendWeight,
			recommend.LearnedBlendWeight,
		)
		source = constant.VectorSourceHybrid
	}

	s.vectorCache.Set(userId, vector, source)
	return vector, source, nil
}

// excludedGameIds merges request-level exclusions with every game the user
// has already judged. All feedback types exclude: positive feedback means
// the user already knows the game, negative means they don't want it.
func (s *recommendationService) excludedGameIds(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, requested []uuid.UUID) ([]uuid.UUID, error) {
	feedbacks, err := uow.GameFeedbackRepository().FindAll(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(requested)+len(feedbacks))
	exclude := make([]uuid.UUID, 0, len(requested)+len(feedbacks))
	for _, id := range requested {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		exclude = append(exclude, id)
	}
	for _, f := range feedbacks {
		if _, ok := seen[f.GameId]; ok {
			continue
		}
		seen[f.GameId] = struct{}{}
		exclude = append(exclude, f.GameId)
	}

	return exclude, nil
}
