package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/repository/specification"
	"steam-recs-be/internal/repository/unitofwork"
	"steam-recs-be/pkg/database"
	"steam-recs-be/pkg/recommend"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.GameRepository())
	assert.NotNil(t, uow.GameEmbeddingRepository())
	assert.NotNil(t, uow.UserProfileRepository())
	assert.NotNil(t, uow.GameFeedbackRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Game Repository", func(t *testing.T) {
		count, err := uow.GameRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Game count: %d", count)
	})

	t.Run("Check Game Embedding Repository", func(t *testing.T) {
		count, err := uow.GameEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("GameEmbedding count: %d", count)
	})

	t.Run("Check Transactional Game Embedding", func(t *testing.T) {
		// Setup DB data outside the transaction so the catalog row survives
		// the rollback check below.
		gameId := uuid.New()
		game := &entity.Game{
			Id:          gameId,
			SteamAppId:  "it-" + uuid.New().String(),
			Title:       "Integration Test Game",
			Description: "A game created by the integration suite",
			Genres:      []string{"Action"},
			Tags:        []string{"Integration"},
		}

		err := uow.GameRepository().Create(context.Background(), game)
		assert.NoError(t, err)
		defer uow.GameRepository().Delete(context.Background(), gameId)

		// Transaction Test
		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		vector := make([]float32, 1536)
		vector[0] = 1
		vector = recommend.Normalize(vector)

		embedding := &entity.GameEmbedding{
			Id:             uuid.New(),
			GameId:         gameId,
			Document:       "Integration Test Game",
			EmbeddingValue: vector,
		}

		err = uow.GameEmbeddingRepository().Create(ctx, embedding)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)
		defer uow.GameEmbeddingRepository().DeleteByGameId(context.Background(), gameId)

		found, err := uow.GameEmbeddingRepository().FindOne(context.Background(), specification.ByGameID{GameID: gameId})
		assert.NoError(t, err)
		assert.NotNil(t, found)

		t.Log("Successfully created Game with Embedding in Transaction")
	})
}
