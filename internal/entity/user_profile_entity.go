package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile carries both taste vectors. A nil PreferenceVector means the
// user has never had a library analyzed; a nil LearnedVector means no
// feedback has been recorded yet.
type UserProfile struct {
	UserId             uuid.UUID
	PreferenceVector   []float32
	LearnedVector      []float32
	GamesAnalyzed      int
	TotalPlaytimeHours float64
	CreatedAt          time.Time
	UpdatedAt          *time.Time
}
