package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// UserProfile holds the per-user taste vectors. PreferenceVector is replaced
// wholesale on each rebuild; LearnedVector is only ever nudged incrementally.
type UserProfile struct {
	UserId             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	PreferenceVector   *pgvector.Vector `gorm:"type:vector(1536)"`
	LearnedVector      *pgvector.Vector `gorm:"type:vector(1536)"`
	GamesAnalyzed      int              `gorm:"default:0"`
	TotalPlaytimeHours float64          `gorm:"default:0"`
	CreatedAt          time.Time        `gorm:"autoCreateTime"`
	UpdatedAt          time.Time        `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
