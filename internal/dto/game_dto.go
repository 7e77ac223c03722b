package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGameRequest struct {
	SteamAppId  string   `json:"steam_app_id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Tags        []string `json:"tags"`
}

type CreateGameResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowGameResponse struct {
	Id          uuid.UUID  `json:"id"`
	SteamAppId  string     `json:"steam_app_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Genres      []string   `json:"genres"`
	Tags        []string   `json:"tags"`
	HasVector   bool       `json:"has_vector"` // whether an embedding has been generated yet
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type UpdateGameRequest struct {
	Id          uuid.UUID
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Tags        []string `json:"tags"`
}

type UpdateGameResponse struct {
	Id uuid.UUID `json:"id"`
}

type ListGamesResponse struct {
	Games []*ShowGameResponse `json:"games"`
	Total int64               `json:"total"`
}

// PublishEmbedGameMessage is the payload placed on the embedding pipeline
// whenever a game's text needs (re)embedding.
type PublishEmbedGameMessage struct {
	GameId uuid.UUID `json:"game_id"`
}
