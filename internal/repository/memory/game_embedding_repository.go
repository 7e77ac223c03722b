package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/repository/contract"
	"steam-recs-be/internal/repository/specification"
	"steam-recs-be/pkg/recommend"

	"github.com/google/uuid"
)

// GameEmbeddingRepository keeps embeddings in a map keyed by game id. It
// borrows the game store to resolve Steam app ids and titles the way the
// SQL implementation joins the games table.
type GameEmbeddingRepository struct {
	mu         sync.RWMutex
	embeddings map[uuid.UUID]*entity.GameEmbedding
	games      *GameRepository
}

func NewGameEmbeddingRepository(games *GameRepository) *GameEmbeddingRepository {
	return &GameEmbeddingRepository{
		embeddings: make(map[uuid.UUID]*entity.GameEmbedding),
		games:      games,
	}
}

var _ contract.GameEmbeddingRepository = (*GameEmbeddingRepository)(nil)

func (r *GameEmbeddingRepository) Create(ctx context.Context, embedding *entity.GameEmbedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if embedding.Id == uuid.Nil {
		embedding.Id = uuid.New()
	}
	if embedding.CreatedAt.IsZero() {
		embedding.CreatedAt = time.Now()
	}
	cp := *embedding
	r.embeddings[embedding.GameId] = &cp
	return nil
}

func (r *GameEmbeddingRepository) Update(ctx context.Context, embedding *entity.GameEmbedding) error {
	return r.Create(ctx, embedding)
}

func (r *GameEmbeddingRepository) DeleteByGameId(ctx context.Context, gameId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.embeddings, gameId)
	return nil
}

func (r *GameEmbeddingRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GameEmbedding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.embeddings {
		if matchEmbedding(e, specs) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *GameEmbeddingRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, e := range r.embeddings {
		if matchEmbedding(e, specs) {
			n++
		}
	}
	return n, nil
}

func (r *GameEmbeddingRepository) FindBySteamAppIds(ctx context.Context, steamAppIds []string) (map[string]*entity.GameEmbedding, error) {
	result := make(map[string]*entity.GameEmbedding)
	for _, appId := range steamAppIds {
		game, err := r.games.FindOne(ctx, specification.BySteamAppID{SteamAppID: appId})
		if err != nil {
			return nil, err
		}
		if game == nil {
			continue
		}
		r.mu.RLock()
		e, ok := r.embeddings[game.Id]
		r.mu.RUnlock()
		if !ok {
			continue
		}
		cp := *e
		result[appId] = &cp
	}
	return result, nil
}

func (r *GameEmbeddingRepository) SearchNearest(ctx context.Context, queryVector []float32, limit int, excludeGameIds []uuid.UUID) ([]*contract.ScoredGame, error) {
	excluded := make(map[uuid.UUID]struct{}, len(excludeGameIds))
	for _, id := range excludeGameIds {
		excluded[id] = struct{}{}
	}

	r.mu.RLock()
	candidates := make([]*entity.GameEmbedding, 0, len(r.embeddings))
	for _, e := range r.embeddings {
		if _, skip := excluded[e.GameId]; skip {
			continue
		}
		candidates = append(candidates, e)
	}
	r.mu.RUnlock()

	var scored []*contract.ScoredGame
	for _, e := range candidates {
		game, err := r.games.FindOne(ctx, specification.ByID{ID: e.GameId})
		if err != nil {
			return nil, err
		}
		if game == nil {
			continue
		}
		// cosine distance is 1 - cos, so 1 - distance/2 collapses to (1+cos)/2
		similarity := (1 + recommend.Cosine(e.EmbeddingValue, queryVector)) / 2
		scored = append(scored, &contract.ScoredGame{
			GameId:     e.GameId,
			SteamAppId: game.SteamAppId,
			Title:      game.Title,
			Similarity: similarity,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

func matchEmbedding(e *entity.GameEmbedding, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if e.Id != s.ID {
				return false
			}
		case specification.ByGameID:
			if e.GameId != s.GameID {
				return false
			}
		}
	}
	return true
}
