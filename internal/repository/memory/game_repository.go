package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/repository/contract"
	"steam-recs-be/internal/repository/specification"

	"github.com/google/uuid"
)

// GameRepository is an in-memory contract.GameRepository used by service
// tests. Specifications are interpreted by type-switching on the concrete
// spec structs instead of building SQL.
type GameRepository struct {
	mu    sync.RWMutex
	games map[uuid.UUID]*entity.Game
}

func NewGameRepository() *GameRepository {
	return &GameRepository{
		games: make(map[uuid.UUID]*entity.Game),
	}
}

var _ contract.GameRepository = (*GameRepository)(nil)

func (r *GameRepository) Create(ctx context.Context, game *entity.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if game.Id == uuid.Nil {
		game.Id = uuid.New()
	}
	if game.CreatedAt.IsZero() {
		game.CreatedAt = time.Now()
	}
	cp := *game
	r.games[game.Id] = &cp
	return nil
}

func (r *GameRepository) Update(ctx context.Context, game *entity.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *game
	r.games[game.Id] = &cp
	return nil
}

func (r *GameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.games[id]; ok {
		now := time.Now()
		g.DeletedAt = &now
		g.IsDeleted = true
	}
	return nil
}

func (r *GameRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, g := range r.games {
		if !g.IsDeleted && matchGame(g, specs) {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *GameRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderField := ""
	desc := false
	limit, offset := -1, 0
	filters := make([]specification.Specification, 0, len(specs))
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			orderField, desc = s.Field, s.Desc
		case specification.Pagination:
			limit, offset = s.Limit, s.Offset
		default:
			filters = append(filters, spec)
		}
	}

	var out []*entity.Game
	for _, g := range r.games {
		if !g.IsDeleted && matchGame(g, filters) {
			cp := *g
			out = append(out, &cp)
		}
	}

	if orderField != "" {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if desc {
				a, b = b, a
			}
			if orderField == "title" {
				return strings.ToLower(a.Title) < strings.ToLower(b.Title)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		})
	}

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

func (r *GameRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func matchGame(g *entity.Game, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if g.Id != s.ID {
				return false
			}
		case specification.ByIDs:
			found := false
			for _, id := range s.IDs {
				if g.Id == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.BySteamAppID:
			if g.SteamAppId != s.SteamAppID {
				return false
			}
		case specification.TitleContains:
			if !strings.Contains(strings.ToLower(g.Title), strings.ToLower(s.Fragment)) {
				return false
			}
		}
	}
	return true
}
