package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Game struct {
	Id          uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SteamAppId  string                      `gorm:"type:varchar(32);uniqueIndex;not null"`
	Title       string                      `gorm:"type:varchar(255);not null"`
	Description string                      `gorm:"type:text"`
	Genres      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt              `gorm:"index"`
}

func (Game) TableName() string {
	return "games"
}
