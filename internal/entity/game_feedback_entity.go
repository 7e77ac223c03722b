package entity

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackType string

const (
	FeedbackLove          FeedbackType = "love"
	FeedbackLike          FeedbackType = "like"
	FeedbackDislike       FeedbackType = "dislike"
	FeedbackNotInterested FeedbackType = "not_interested"
)

func (t FeedbackType) Valid() bool {
	switch t {
	case FeedbackLove, FeedbackLike, FeedbackDislike, FeedbackNotInterested:
		return true
	}
	return false
}

type GameFeedback struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	GameId       uuid.UUID
	FeedbackType FeedbackType
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
