package model

import (
	"time"

	"github.com/google/uuid"
)

// GameFeedback has upsert semantics: at most one active record per
// (user, game) pair. Deletes are hard deletes so the unique index stays
// usable for re-submission; the learned vector is never replayed on delete.
type GameFeedback struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_feedbacks_user_game,priority:1"`
	GameId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_feedbacks_user_game,priority:2"`
	FeedbackType string    `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (GameFeedback) TableName() string {
	return "game_feedbacks"
}
