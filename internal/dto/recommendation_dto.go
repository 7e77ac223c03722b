package dto

import "github.com/google/uuid"

type GetRecommendationsRequest struct {
	Limit          int         `json:"limit" validate:"min=0,max=100"`
	ExcludeGameIds []uuid.UUID `json:"exclude_game_ids"`
}

type RecommendationItem struct {
	GameId     uuid.UUID `json:"game_id"`
	SteamAppId string    `json:"steam_app_id"`
	Title      string    `json:"title"`
	Similarity float64   `json:"similarity"`
}

type GetRecommendationsResponse struct {
	Items []*RecommendationItem `json:"items"`
	// VectorSource reports which taste vector drove the search:
	// "hybrid" when feedback exists, "preference" otherwise.
	VectorSource string `json:"vector_source"`
}
