package service

import (
	"context"
	"encoding/json"
	"testing"

	"steam-recs-be/internal/dto"
	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingPublisher records every payload handed to the embed pipeline.
type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *capturingPublisher) lastGameId(t *testing.T) uuid.UUID {
	t.Helper()
	require.NotEmpty(t, p.payloads)
	var msg dto.PublishEmbedGameMessage
	require.NoError(t, json.Unmarshal(p.payloads[len(p.payloads)-1], &msg))
	return msg.GameId
}

func newTestGameService() (IGameService, *memory.UnitOfWorkFactory, *capturingPublisher) {
	factory := memory.NewUnitOfWorkFactory()
	publisher := &capturingPublisher{}
	return NewGameService(factory, publisher), factory, publisher
}

func TestGameService_CreateEnqueuesEmbedding(t *testing.T) {
	svc, _, publisher := newTestGameService()

	res, err := svc.Create(context.Background(), &dto.CreateGameRequest{
		SteamAppId:  "620",
		Title:       "Portal 2",
		Description: "A first-person puzzle game.",
		Genres:      []string{"Puzzle"},
		Tags:        []string{"Co-op", "Puzzle"},
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, res.Id, publisher.lastGameId(t))
}

func TestGameService_CreateRejectsDuplicateSteamAppId(t *testing.T) {
	svc, _, _ := newTestGameService()

	_, err := svc.Create(context.Background(), &dto.CreateGameRequest{SteamAppId: "620", Title: "Portal 2"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &dto.CreateGameRequest{SteamAppId: "620", Title: "Portal 2 again"})
	assert.Error(t, err)
}

func TestGameService_ShowReportsVectorPresence(t *testing.T) {
	svc, factory, _ := newTestGameService()

	created, err := svc.Create(context.Background(), &dto.CreateGameRequest{SteamAppId: "620", Title: "Portal 2"})
	require.NoError(t, err)

	shown, err := svc.Show(context.Background(), created.Id)
	require.NoError(t, err)
	require.NotNil(t, shown)
	assert.False(t, shown.HasVector)

	err = factory.UoW.GameEmbeddings.Create(context.Background(), &entity.GameEmbedding{
		Id:             uuid.New(),
		GameId:         created.Id,
		Document:       "Portal 2",
		EmbeddingValue: []float32{1, 0, 0, 0},
	})
	require.NoError(t, err)

	shown, err = svc.Show(context.Background(), created.Id)
	require.NoError(t, err)
	assert.True(t, shown.HasVector)
}

func TestGameService_ShowUnknownGame(t *testing.T) {
	svc, _, _ := newTestGameService()

	shown, err := svc.Show(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, shown)
}

func TestGameService_UpdateReenqueuesEmbedding(t *testing.T) {
	svc, _, publisher := newTestGameService()

	created, err := svc.Create(context.Background(), &dto.CreateGameRequest{SteamAppId: "620", Title: "Portal 2"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), &dto.UpdateGameRequest{
		Id:          created.Id,
		Title:       "Portal 2",
		Description: "Now with a description worth embedding.",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Len(t, publisher.payloads, 2)
	assert.Equal(t, created.Id, publisher.lastGameId(t))
}

func TestGameService_DeleteRemovesGameAndEmbedding(t *testing.T) {
	svc, factory, _ := newTestGameService()

	created, err := svc.Create(context.Background(), &dto.CreateGameRequest{SteamAppId: "620", Title: "Portal 2"})
	require.NoError(t, err)

	err = factory.UoW.GameEmbeddings.Create(context.Background(), &entity.GameEmbedding{
		Id:             uuid.New(),
		GameId:         created.Id,
		EmbeddingValue: []float32{1, 0, 0, 0},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.Id))

	shown, err := svc.Show(context.Background(), created.Id)
	require.NoError(t, err)
	assert.Nil(t, shown)
}

func TestGameService_ListFiltersByTitle(t *testing.T) {
	svc, _, _ := newTestGameService()

	titles := map[string]string{
		"620":    "Portal 2",
		"400":    "Portal",
		"413150": "Stardew Valley",
	}
	for appId, title := range titles {
		_, err := svc.Create(context.Background(), &dto.CreateGameRequest{SteamAppId: appId, Title: title})
		require.NoError(t, err)
	}

	res, err := svc.List(context.Background(), "portal", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Len(t, res.Games, 2)

	res, err = svc.List(context.Background(), "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
}
