package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByUserID filters by owning user
type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByGameID filters by game reference
type ByGameID struct {
	GameID uuid.UUID
}

func (s ByGameID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("game_id = ?", s.GameID)
}

// BySteamAppID filters games by their Steam application id
type BySteamAppID struct {
	SteamAppID string
}

func (s BySteamAppID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("steam_app_id = ?", s.SteamAppID)
}

// ByFeedbackType filters feedback records by type
type ByFeedbackType struct {
	FeedbackType string
}

func (s ByFeedbackType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("feedback_type = ?", s.FeedbackType)
}

// TitleContains filters games by a case-insensitive title fragment
type TitleContains struct {
	Fragment string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Fragment+"%")
}
