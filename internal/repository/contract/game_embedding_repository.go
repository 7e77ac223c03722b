package contract

import (
	"context"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredGame wraps a game with its similarity to a query vector.
// Similarity maps cosine distance [0,2] onto [0,1]: 1 - distance/2.
type ScoredGame struct {
	GameId     uuid.UUID
	SteamAppId string
	Title      string
	Similarity float64
}

type GameEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.GameEmbedding) error
	Update(ctx context.Context, embedding *entity.GameEmbedding) error
	DeleteByGameId(ctx context.Context, gameId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GameEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindBySteamAppIds resolves embeddings for a batch of Steam app ids.
	// Games without a stored embedding are simply absent from the result map.
	FindBySteamAppIds(ctx context.Context, steamAppIds []string) (map[string]*entity.GameEmbedding, error)
	// SearchNearest returns the K nearest games by cosine distance to the
	// query vector. Excluded game ids never appear in the result.
	SearchNearest(ctx context.Context, queryVector []float32, limit int, excludeGameIds []uuid.UUID) ([]*ScoredGame, error)
}
