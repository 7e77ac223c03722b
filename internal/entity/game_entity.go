package entity

import (
	"time"

	"github.com/google/uuid"
)

type Game struct {
	Id          uuid.UUID
	SteamAppId  string
	Title       string
	Description string
	Genres      []string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
