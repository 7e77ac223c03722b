package service

import (
	"context"
	"testing"
	"time"

	"steam-recs-be/internal/constant"
	"steam-recs-be/internal/dto"
	"steam-recs-be/internal/pkg/logger"
	"steam-recs-be/internal/repository/memory"
	"steam-recs-be/pkg/recommend"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestRecommendationStack(factory *memory.UnitOfWorkFactory) (IRecommendationService, IFeedbackService, *VectorCache) {
	cache := NewVectorCache(time.Minute)
	rec := NewRecommendationService(factory, cache, logger.NewNopLogger())
	fb := NewFeedbackService(factory, NewAllowAllChecker(), cache, nil, logger.NewNopLogger())
	return rec, fb, cache
}

func TestGetRecommendations_NoProfile(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	rec, _, _ := newTestRecommendationStack(factory)

	_, err := rec.GetRecommendations(context.Background(), uuid.New(), &dto.GetRecommendationsRequest{})
	assert.ErrorIs(t, err, ErrNoPreferenceVector)
}

func TestGetRecommendations_PreferenceOnly(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	rec, _, _ := newTestRecommendationStack(factory)
	userId := uuid.New()
	ctx := context.Background()

	preference := recommend.Normalize([]float32{1, 0, 0})
	seedProfile(t, factory, userId, preference)

	near := seedGameWithVector(t, factory, "730", "Counter-Strike 2", recommend.Normalize([]float32{0.9, 0.1, 0}))
	far := seedGameWithVector(t, factory, "413150", "Stardew Valley", recommend.Normalize([]float32{0, 0.2, 0.9}))

	res, err := rec.GetRecommendations(ctx, userId, &dto.GetRecommendationsRequest{Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, constant.VectorSourcePreference, res.VectorSource)
	assert.Len(t, res.Items, 2)
	// Ordered by similarity descending.
	assert.Equal(t, near, res.Items[0].GameId)
	assert.Equal(t, far, res.Items[1].GameId)
	assert.Greater(t, res.Items[0].Similarity, res.Items[1].Similarity)
	// Cosine distance mapping keeps similarity in [0,1].
	for _, item := range res.Items {
		assert.GreaterOrEqual(t, item.Similarity, 0.0)
		assert.LessOrEqual(t, item.Similarity, 1.0)
	}
}

func TestGetRecommendations_HybridAfterFeedback(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	rec, fb, _ := newTestRecommendationStack(factory)
	userId := uuid.New()
	ctx := context.Background()

	seedProfile(t, factory, userId, recommend.Normalize([]float32{1, 0, 0}))
	loved := seedGameWithVector(t, factory, "1245620", "Elden Ring", recommend.Normalize([]float32{0, 1, 0}))
	other := seedGameWithVector(t, factory, "2358720", "Black Myth: Wukong", recommend.Normalize([]float32{0, 0.9, 0.1}))

	// First request is preference-sourced and warms the cache.
	res, err := rec.GetRecommendations(ctx, userId, &dto.GetRecommendationsRequest{})
	assert.NoError(t, err)
	assert.Equal(t, constant.VectorSourcePreference, res.VectorSource)

	_, err = fb.Submit(ctx, userId, &dto.SubmitFeedbackRequest{GameId: loved, FeedbackType: "love"})
	assert.NoError(t, err)

	// Feedback invalidated the cache; the next request blends 60/40.
	res, err = rec.GetRecommendations(ctx, userId, &dto.GetRecommendationsRequest{})
	assert.NoError(t, err)
	assert.Equal(t, constant.VectorSourceHybrid, res.VectorSource)

	// The loved game itself is excluded; the similar one surfaces.
	assert.Len(t, res.Items, 1)
	assert.Equal(t, other, res.Items[0].GameId)
}

func TestGetRecommendations_RequestExclusions(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	rec, _, _ := newTestRecommendationStack(factory)
	userId := uuid.New()
	ctx := context.Background()

	seedProfile(t, factory, userId, recommend.Normalize([]float32{1, 0, 0}))
	g1 := seedGameWithVector(t, factory, "730", "Counter-Strike 2", recommend.Normalize([]float32{0.9, 0.1, 0}))
	g2 := seedGameWithVector(t, factory, "440", "Team Fortress 2", recommend.Normalize([]float32{0.8, 0.2, 0}))

	res, err := rec.GetRecommendations(ctx, userId, &dto.GetRecommendationsRequest{
		ExcludeGameIds: []uuid.UUID{g1},
	})
	assert.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, g2, res.Items[0].GameId)
}

func TestGetRecommendations_LimitApplied(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	rec, _, _ := newTestRecommendationStack(factory)
	userId := uuid.New()
	ctx := context.Background()

	seedProfile(t, factory, userId, recommend.Normalize([]float32{1, 0, 0}))
	for i := 0; i < 15; i++ {
		seedGameWithVector(t, factory,
			uuid.NewString(), "Game",
			recommend.Normalize([]float32{1, float32(i) * 0.01, 0}))
	}

	res, err := rec.GetRecommendations(ctx, userId, &dto.GetRecommendationsRequest{})
	assert.NoError(t, err)
	// Default limit.
	assert.Len(t, res.Items, 10)

	res, err = rec.GetRecommendations(ctx, userId, &dto.GetRecommendationsRequest{Limit: 3})
	assert.NoError(t, err)
	assert.Len(t, res.Items, 3)
}

func TestHybridVector_CachedBetweenCalls(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	rec, _, cache := newTestRecommendationStack(factory)
	userId := uuid.New()
	ctx := context.Background()

	seedProfile(t, factory, userId, recommend.Normalize([]float32{1, 0, 0}))
	seedGameWithVector(t, factory, "730", "Counter-Strike 2", recommend.Normalize([]float32{0.9, 0.1, 0}))

	_, err := rec.GetRecommendations(ctx, userId, &dto.GetRecommendationsRequest{})
	assert.NoError(t, err)

	vector, source, ok := cache.Get(userId)
	assert.True(t, ok)
	assert.Equal(t, constant.VectorSourcePreference, source)
	assert.NotEmpty(t, vector)

	cache.Invalidate(userId)
	_, _, ok = cache.Get(userId)
	assert.False(t, ok)
}
