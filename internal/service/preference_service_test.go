package service

import (
	"context"
	"testing"
	"time"

	"steam-recs-be/internal/constant"
	"steam-recs-be/internal/dto"
	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/pkg/logger"
	"steam-recs-be/internal/repository/memory"
	"steam-recs-be/pkg/recommend"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestPreferenceService(factory *memory.UnitOfWorkFactory) IPreferenceService {
	return NewPreferenceService(
		factory,
		NewAllowAllChecker(),
		NewVectorCache(time.Minute),
		nil, // no NATS in unit tests
		logger.NewNopLogger(),
	)
}

func seedGameWithVector(t *testing.T, factory *memory.UnitOfWorkFactory, appId, title string, vector []float32) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	game := &entity.Game{
		Id:         uuid.New(),
		SteamAppId: appId,
		Title:      title,
		CreatedAt:  time.Now(),
	}
	assert.NoError(t, factory.UoW.Games.Create(ctx, game))
	assert.NoError(t, factory.UoW.GameEmbeddings.Create(ctx, &entity.GameEmbedding{
		Id:             uuid.New(),
		GameId:         game.Id,
		EmbeddingValue: vector,
		CreatedAt:      time.Now(),
	}))
	return game.Id
}

func TestGeneratePreference_InsufficientPlaytime(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestPreferenceService(factory)
	userId := uuid.New()

	// 10 minutes is under the default 0.5h floor.
	res, err := svc.Generate(context.Background(), userId, &dto.GeneratePreferenceRequest{
		Games: []dto.LibraryGameEntry{
			{SteamAppId: "10", PlaytimeMinutes: 10},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, constant.StatusInsufficientData, res.Status)
	assert.Equal(t, 1, res.GamesSkipped)

	profile, err := factory.UoW.UserProfiles.FindByUserId(context.Background(), userId)
	assert.NoError(t, err)
	assert.Nil(t, profile)
}

func TestGeneratePreference_NoEmbeddings(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestPreferenceService(factory)

	res, err := svc.Generate(context.Background(), uuid.New(), &dto.GeneratePreferenceRequest{
		Games: []dto.LibraryGameEntry{
			{SteamAppId: "unknown-app", PlaytimeMinutes: 600},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, constant.StatusInsufficientData, res.Status)
	assert.Equal(t, 1, res.GamesMissingVector)
}

func TestGeneratePreference_SingleGameEqualsItsEmbedding(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestPreferenceService(factory)
	userId := uuid.New()

	vec := recommend.Normalize([]float32{0.3, 0.4, 0.5, 0.7})
	seedGameWithVector(t, factory, "620", "Portal 2", vec)

	res, err := svc.Generate(context.Background(), userId, &dto.GeneratePreferenceRequest{
		Games: []dto.LibraryGameEntry{
			{SteamAppId: "620", PlaytimeMinutes: 20 * 60, Genres: []string{"Puzzle"}},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, constant.StatusOk, res.Status)
	assert.Equal(t, 1, res.GamesAnalyzed)
	assert.Equal(t, 4, res.VectorDimensions)
	assert.InDelta(t, 20.0, res.TotalPlaytimeHours, 1e-9)
	assert.Greater(t, res.TotalWeight, 0.0)
	// One 20h game: min, max, and avg all collapse to its playtime.
	assert.InDelta(t, 20.0, res.MinPlaytimeHours, 1e-9)
	assert.InDelta(t, 20.0, res.MaxPlaytimeHours, 1e-9)
	assert.InDelta(t, 20.0, res.AvgPlaytimeHours, 1e-9)

	// Weighted average of one vector is the vector itself; normalization of
	// an already unit-length vector changes nothing.
	profile, err := factory.UoW.UserProfiles.FindByUserId(context.Background(), userId)
	assert.NoError(t, err)
	assert.NotNil(t, profile)
	for i := range vec {
		assert.InDelta(t, float64(vec[i]), float64(profile.PreferenceVector[i]), 1e-6)
	}
	assert.Nil(t, profile.LearnedVector)
	assert.Equal(t, 1, profile.GamesAnalyzed)
}

func TestGeneratePreference_SkipsGamesWithoutEmbedding(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestPreferenceService(factory)
	userId := uuid.New()

	seedGameWithVector(t, factory, "440", "Team Fortress 2", recommend.Normalize([]float32{1, 0, 0}))

	res, err := svc.Generate(context.Background(), userId, &dto.GeneratePreferenceRequest{
		Games: []dto.LibraryGameEntry{
			{SteamAppId: "440", PlaytimeMinutes: 100 * 60},
			{SteamAppId: "99999", PlaytimeMinutes: 50 * 60},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, constant.StatusOk, res.Status)
	assert.Equal(t, 1, res.GamesAnalyzed)
	assert.Equal(t, 1, res.GamesMissingVector)
	// Only resolved games count toward the stored playtime total, while the
	// min/max/avg stats describe everything that survived the playtime filter.
	assert.InDelta(t, 100.0, res.TotalPlaytimeHours, 1e-9)
	assert.InDelta(t, 50.0, res.MinPlaytimeHours, 1e-9)
	assert.InDelta(t, 100.0, res.MaxPlaytimeHours, 1e-9)
	assert.InDelta(t, 75.0, res.AvgPlaytimeHours, 1e-9)
}

func TestGeneratePreference_StoredVectorIsUnitLength(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestPreferenceService(factory)
	userId := uuid.New()

	seedGameWithVector(t, factory, "730", "Counter-Strike 2", recommend.Normalize([]float32{0.9, 0.1, 0.2}))
	seedGameWithVector(t, factory, "570", "Dota 2", recommend.Normalize([]float32{0.1, 0.8, 0.3}))

	res, err := svc.Generate(context.Background(), userId, &dto.GeneratePreferenceRequest{
		Games: []dto.LibraryGameEntry{
			{SteamAppId: "730", PlaytimeMinutes: 300 * 60, Genres: []string{"FPS"}, Tags: []string{"Counter-Strike"}},
			{SteamAppId: "570", PlaytimeMinutes: 150 * 60, Genres: []string{"MOBA"}},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, constant.StatusOk, res.Status)

	profile, err := factory.UoW.UserProfiles.FindByUserId(context.Background(), userId)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, recommend.Norm(profile.PreferenceVector), 1e-6)
}

func TestGeneratePreference_PreservesLearnedVector(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestPreferenceService(factory)
	userId := uuid.New()
	ctx := context.Background()

	learned := recommend.Normalize([]float32{0.5, 0.5, 0.5})
	assert.NoError(t, factory.UoW.UserProfiles.SaveLearnedVector(ctx, userId, learned))

	seedGameWithVector(t, factory, "620", "Portal 2", recommend.Normalize([]float32{0.3, 0.4, 0.5}))
	_, err := svc.Generate(ctx, userId, &dto.GeneratePreferenceRequest{
		Games: []dto.LibraryGameEntry{
			{SteamAppId: "620", PlaytimeMinutes: 20 * 60},
		},
	})
	assert.NoError(t, err)

	profile, err := factory.UoW.UserProfiles.FindByUserId(ctx, userId)
	assert.NoError(t, err)
	assert.NotNil(t, profile.PreferenceVector)
	for i := range learned {
		assert.InDelta(t, float64(learned[i]), float64(profile.LearnedVector[i]), 1e-6)
	}
}

func TestShowProfile(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory()
	svc := newTestPreferenceService(factory)
	userId := uuid.New()
	ctx := context.Background()

	res, err := svc.ShowProfile(ctx, userId)
	assert.NoError(t, err)
	assert.Nil(t, res)

	assert.NoError(t, factory.UoW.UserProfiles.SavePreferenceVector(ctx, userId, []float32{1, 0}, 12, 340.5))

	res, err = svc.ShowProfile(ctx, userId)
	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.True(t, res.HasPreferenceVector)
	assert.False(t, res.HasLearnedVector)
	assert.Equal(t, 12, res.GamesAnalyzed)
	assert.InDelta(t, 340.5, res.TotalPlaytimeHours, 1e-9)
}
