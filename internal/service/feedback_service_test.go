package service

import (
	"context"
	"testing"
	"time"

	"steam-recs-be/internal/dto"
	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/pkg/logger"
	"steam-recs-be/internal/repository/memory"
	"steam-recs-be/internal/repository/specification"
	"steam-recs-be/pkg/recommend"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestFeedbackService(factory *memory.UnitOfWorkFactory) IFeedbackService {
	return NewFeedbackService(
		factory,
		NewAllowAllChecker(),
		NewVectorCache(time.Minute),
		nil,
		logger.NewNopLogger(),
	)
}

func seedProfile(t *testing.T, factory *memory.UnitOfWorkFactory, userId uuid.UUID, preference []float32) {
	t.Helper()
	assert.NoError(t, factory.UoW.UserProfiles.SavePreferenceVector(context.Background(), userId, preference, 1, 10))
}

func TestSubmitFeedback_InvalidType(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestFeedbackService(factory)

	_, err := svc.Submit(context.Background(), uuid.New(), &dto.SubmitFeedbackRequest{
		GameId:       uuid.New(),
		FeedbackType: "meh",
	})
	assert.ErrorIs(t, err, ErrInvalidFeedbackType)
}

func TestSubmitFeedback_NoBaseline(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestFeedbackService(factory)

	gameId := seedGameWithVector(t, factory, "400", "Portal", recommend.Normalize([]float32{1, 0, 0}))

	_, err := svc.Submit(context.Background(), uuid.New(), &dto.SubmitFeedbackRequest{
		GameId:       gameId,
		FeedbackType: "love",
	})
	assert.ErrorIs(t, err, ErrNoBaselineVector)
}

func TestSubmitFeedback_UnknownGame(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestFeedbackService(factory)
	userId := uuid.New()
	seedProfile(t, factory, userId, recommend.Normalize([]float32{1, 1, 1}))

	res, err := svc.Submit(context.Background(), userId, &dto.SubmitFeedbackRequest{
		GameId:       uuid.New(),
		FeedbackType: "like",
	})
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestSubmitFeedback_LoveMovesTowardGame(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestFeedbackService(factory)
	userId := uuid.New()
	ctx := context.Background()

	preference := recommend.Normalize([]float32{1, 0, 0})
	seedProfile(t, factory, userId, preference)
	gameVec := recommend.Normalize([]float32{0, 1, 0})
	gameId := seedGameWithVector(t, factory, "1091500", "Cyberpunk 2077", gameVec)

	res, err := svc.Submit(ctx, userId, &dto.SubmitFeedbackRequest{
		GameId:       gameId,
		FeedbackType: "love",
	})
	assert.NoError(t, err)
	assert.True(t, res.VectorUpdated)

	profile, err := factory.UoW.UserProfiles.FindByUserId(ctx, userId)
	assert.NoError(t, err)
	assert.NotNil(t, profile.LearnedVector)
	// Learned vector should be closer to the loved game than the raw
	// preference was, and stay unit length.
	assert.Greater(t,
		recommend.Cosine(profile.LearnedVector, gameVec),
		recommend.Cosine(preference, gameVec),
	)
	assert.InDelta(t, 1.0, recommend.Norm(profile.LearnedVector), 1e-6)
}

func TestSubmitFeedback_NotInterestedPushesAway(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestFeedbackService(factory)
	userId := uuid.New()
	ctx := context.Background()

	preference := recommend.Normalize([]float32{1, 0.2, 0})
	seedProfile(t, factory, userId, preference)
	gameVec := recommend.Normalize([]float32{0, 1, 0})
	gameId := seedGameWithVector(t, factory, "271590", "GTA V", gameVec)

	_, err := svc.Submit(ctx, userId, &dto.SubmitFeedbackRequest{
		GameId:       gameId,
		FeedbackType: "not_interested",
	})
	assert.NoError(t, err)

	profile, err := factory.UoW.UserProfiles.FindByUserId(ctx, userId)
	assert.NoError(t, err)
	assert.Less(t,
		recommend.Cosine(profile.LearnedVector, gameVec),
		recommend.Cosine(preference, gameVec),
	)
}

func TestSubmitFeedback_NotInterestedSuppressesHarderThanDislike(t *testing.T) {
	ctx := context.Background()
	preference := recommend.Normalize([]float32{1, 0.2, 0})
	gameVec := recommend.Normalize([]float32{0, 1, 0})

	// Same seed profile and game, one user per feedback type.
	learnedAfter := func(feedbackType string) []float32 {
		factory := memory.NewUnitOfWorkFactory()
		svc := newTestFeedbackService(factory)
		userId := uuid.New()
		seedProfile(t, factory, userId, preference)
		gameId := seedGameWithVector(t, factory, "271590", "GTA V", gameVec)

		_, err := svc.Submit(ctx, userId, &dto.SubmitFeedbackRequest{
			GameId:       gameId,
			FeedbackType: feedbackType,
		})
		assert.NoError(t, err)

		profile, err := factory.UoW.UserProfiles.FindByUserId(ctx, userId)
		assert.NoError(t, err)
		return profile.LearnedVector
	}

	assert.Less(t,
		recommend.Dot(learnedAfter("not_interested"), gameVec),
		recommend.Dot(learnedAfter("dislike"), gameVec),
	)
}

func TestSubmitFeedback_MissingEmbeddingStillStoresRecord(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestFeedbackService(factory)
	userId := uuid.New()
	ctx := context.Background()

	seedProfile(t, factory, userId, recommend.Normalize([]float32{1, 0, 0}))

	// Game exists but was never embedded.
	game := &entity.Game{Id: uuid.New(), SteamAppId: "2358720", Title: "Black Myth: Wukong", CreatedAt: time.Now()}
	assert.NoError(t, factory.UoW.Games.Create(ctx, game))

	res, err := svc.Submit(ctx, userId, &dto.SubmitFeedbackRequest{
		GameId:       game.Id,
		FeedbackType: "love",
	})
	assert.NoError(t, err)
	assert.False(t, res.VectorUpdated)

	stored, err := factory.UoW.GameFeedbacks.FindOne(ctx, specification.ByUserID{UserID: userId}, specification.ByGameID{GameID: game.Id})
	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, entity.FeedbackLove, stored.FeedbackType)

	profile, err := factory.UoW.UserProfiles.FindByUserId(ctx, userId)
	assert.NoError(t, err)
	assert.Nil(t, profile.LearnedVector)
}

func TestSubmitFeedback_ResubmitOverwritesType(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestFeedbackService(factory)
	userId := uuid.New()
	ctx := context.Background()

	seedProfile(t, factory, userId, recommend.Normalize([]float32{1, 0, 0}))
	gameId := seedGameWithVector(t, factory, "292030", "The Witcher 3", recommend.Normalize([]float32{0, 1, 0}))

	_, err := svc.Submit(ctx, userId, &dto.SubmitFeedbackRequest{GameId: gameId, FeedbackType: "like"})
	assert.NoError(t, err)
	_, err = svc.Submit(ctx, userId, &dto.SubmitFeedbackRequest{GameId: gameId, FeedbackType: "dislike"})
	assert.NoError(t, err)

	count, err := factory.UoW.GameFeedbacks.Count(ctx, specification.ByUserID{UserID: userId})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := factory.UoW.GameFeedbacks.FindOne(ctx, specification.ByUserID{UserID: userId}, specification.ByGameID{GameID: gameId})
	assert.NoError(t, err)
	assert.Equal(t, entity.FeedbackDislike, stored.FeedbackType)
}

func TestDeleteFeedback_KeepsLearnedVector(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestFeedbackService(factory)
	userId := uuid.New()
	ctx := context.Background()

	seedProfile(t, factory, userId, recommend.Normalize([]float32{1, 0, 0}))
	gameId := seedGameWithVector(t, factory, "570", "Dota 2", recommend.Normalize([]float32{0, 1, 0}))

	_, err := svc.Submit(ctx, userId, &dto.SubmitFeedbackRequest{GameId: gameId, FeedbackType: "love"})
	assert.NoError(t, err)

	before, err := factory.UoW.UserProfiles.FindByUserId(ctx, userId)
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, userId, gameId))

	count, err := factory.UoW.GameFeedbacks.Count(ctx, specification.ByUserID{UserID: userId})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	after, err := factory.UoW.UserProfiles.FindByUserId(ctx, userId)
	assert.NoError(t, err)
	assert.Equal(t, before.LearnedVector, after.LearnedVector)
}

func TestListFeedback(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestFeedbackService(factory)
	userId := uuid.New()
	ctx := context.Background()

	seedProfile(t, factory, userId, recommend.Normalize([]float32{1, 0, 0}))
	g1 := seedGameWithVector(t, factory, "620", "Portal 2", recommend.Normalize([]float32{0, 1, 0}))
	g2 := seedGameWithVector(t, factory, "400", "Portal", recommend.Normalize([]float32{0, 0, 1}))

	_, err := svc.Submit(ctx, userId, &dto.SubmitFeedbackRequest{GameId: g1, FeedbackType: "love"})
	assert.NoError(t, err)
	_, err = svc.Submit(ctx, userId, &dto.SubmitFeedbackRequest{GameId: g2, FeedbackType: "dislike"})
	assert.NoError(t, err)

	res, err := svc.List(ctx, userId, 10, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Len(t, res.Items, 2)

	// Newest feedback first.
	assert.Equal(t, "Portal", res.Items[0].GameTitle)
	assert.Equal(t, "Portal 2", res.Items[1].GameTitle)

	// Pagination keeps Total but slices the page.
	page, err := svc.List(ctx, userId, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, "Portal 2", page.Items[0].GameTitle)
}
