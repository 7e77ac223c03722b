package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubmitFeedbackRequest struct {
	GameId       uuid.UUID `json:"game_id" validate:"required"`
	FeedbackType string    `json:"feedback_type" validate:"required,oneof=love like dislike not_interested"`
}

type SubmitFeedbackResponse struct {
	Id           uuid.UUID `json:"id"`
	GameId       uuid.UUID `json:"game_id"`
	FeedbackType string    `json:"feedback_type"`
	// VectorUpdated is false when the game had no embedding yet: the
	// feedback record is still stored, only the taste vector is untouched.
	VectorUpdated bool `json:"vector_updated"`
}

type FeedbackItemResponse struct {
	Id           uuid.UUID  `json:"id"`
	GameId       uuid.UUID  `json:"game_id"`
	GameTitle    string     `json:"game_title,omitempty"`
	FeedbackType string     `json:"feedback_type"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

type ListFeedbackResponse struct {
	Items []*FeedbackItemResponse `json:"items"`
	Total int64                   `json:"total"`
}
