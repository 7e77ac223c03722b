package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"steam-recs-be/internal/dto"
	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/repository/specification"
	"steam-recs-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IGameService interface {
	Create(ctx context.Context, req *dto.CreateGameRequest) (*dto.CreateGameResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowGameResponse, error)
	Update(ctx context.Context, req *dto.UpdateGameRequest) (*dto.UpdateGameResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, limit, offset int) (*dto.ListGamesResponse, error)
}

type gameService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewGameService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) IGameService {
	return &gameService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (c *gameService) Create(ctx context.Context, req *dto.CreateGameRequest) (*dto.CreateGameResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.GameRepository().FindOne(ctx, specification.BySteamAppID{SteamAppID: req.SteamAppId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("game with steam app id %s already exists", req.SteamAppId)
	}

	game := entity.Game{
		Id:          uuid.New(),
		SteamAppId:  req.SteamAppId,
		Title:       req.Title,
		Description: req.Description,
		Genres:      req.Genres,
		Tags:        req.Tags,
		CreatedAt:   time.Now(),
	}

	err = uow.GameRepository().Create(ctx, &game)
	if err != nil {
		return nil, err
	}

	if err := c.publishEmbed(ctx, game.Id); err != nil {
		return nil, err
	}

	return &dto.CreateGameResponse{
		Id: game.Id,
	}, nil
}

func (c *gameService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowGameResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	game, err := uow.GameRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, nil
	}

	embeddingCount, err := uow.GameEmbeddingRepository().Count(ctx, specification.ByGameID{GameID: game.Id})
	if err != nil {
		return nil, err
	}

	return c.toShowResponse(game, embeddingCount > 0), nil
}

func (c *gameService) Update(ctx context.Context, req *dto.UpdateGameRequest) (*dto.UpdateGameResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	game, err := uow.GameRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, nil
	}

	now := time.Now()
	game.Title = req.Title
	game.Description = req.Description
	game.Genres = req.Genres
	game.Tags = req.Tags
	game.UpdatedAt = &now

	err = uow.GameRepository().Update(ctx, game)
	if err != nil {
		return nil, err
	}

	// Metadata changed, so the stored vector is stale.
	if err := c.publishEmbed(ctx, game.Id); err != nil {
		return nil, err
	}

	return &dto.UpdateGameResponse{
		Id: game.Id,
	}, nil
}

func (c *gameService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	game, err := uow.GameRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if game == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.GameRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.GameEmbeddingRepository().DeleteByGameId(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (c *gameService) List(ctx context.Context, search string, limit, offset int) (*dto.ListGamesResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if search != "" {
		specs = append(specs, specification.TitleContains{Fragment: search})
	}

	total, err := uow.GameRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "title", Desc: false},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	games, err := uow.GameRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.ListGamesResponse{
		Games: make([]*dto.ShowGameResponse, 0, len(games)),
		Total: total,
	}
	for _, game := range games {
		embeddingCount, err := uow.GameEmbeddingRepository().Count(ctx, specification.ByGameID{GameID: game.Id})
		if err != nil {
			return nil, err
		}
		res.Games = append(res.Games, c.toShowResponse(game, embeddingCount > 0))
	}

	return res, nil
}

func (c *gameService) toShowResponse(game *entity.Game, hasVector bool) *dto.ShowGameResponse {
	return &dto.ShowGameResponse{
		Id:          game.Id,
		SteamAppId:  game.SteamAppId,
		Title:       game.Title,
		Description: game.Description,
		Genres:      game.Genres,
		Tags:        game.Tags,
		HasVector:   hasVector,
		CreatedAt:   game.CreatedAt,
		UpdatedAt:   game.UpdatedAt,
	}
}

func (c *gameService) publishEmbed(ctx context.Context, gameId uuid.UUID) error {
	msgPayload := dto.PublishEmbedGameMessage{
		GameId: gameId,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return err
	}

	return c.publisherService.Publish(ctx, msgJson)
}
