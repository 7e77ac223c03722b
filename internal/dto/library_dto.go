package dto

import "time"

// LibraryGameEntry is one game from the user's Steam library snapshot.
// Optional fields stay nil when the Steam API did not report them.
type LibraryGameEntry struct {
	SteamAppId         string     `json:"steam_app_id" validate:"required"`
	PlaytimeMinutes    int        `json:"playtime_minutes" validate:"min=0"`
	LastPlayed         *time.Time `json:"last_played"`
	AchievementsEarned *int       `json:"achievements_earned"`
	AchievementsTotal  *int       `json:"achievements_total"`
	Genres             []string   `json:"genres"`
	Tags               []string   `json:"tags"`
	AvgCompletionHours *float64   `json:"avg_completion_hours"`
}

type GeneratePreferenceRequest struct {
	Games []LibraryGameEntry `json:"games" validate:"required,dive"`

	// Optional knobs; zero values fall back to the server defaults.
	RecencyDecayMonths   float64 `json:"recency_decay_months"`
	MinPlaytimeHours     float64 `json:"min_playtime_hours"`
	MaxGamesToInclude    int     `json:"max_games_to_include"`
	DisableDiversity     bool    `json:"disable_diversity"`
	DisableQualityWeight bool    `json:"disable_quality_weight"`
}

type GeneratePreferenceResponse struct {
	Status             string  `json:"status"` // "ok" | "insufficient_data"
	GamesAnalyzed      int     `json:"games_analyzed"`
	GamesSkipped       int     `json:"games_skipped"`
	GamesMissingVector int     `json:"games_missing_vector"`
	TotalPlaytimeHours float64 `json:"total_playtime_hours"`
	TotalWeight        float64 `json:"total_weight"`
	MinPlaytimeHours   float64 `json:"min_playtime_hours"`
	MaxPlaytimeHours   float64 `json:"max_playtime_hours"`
	AvgPlaytimeHours   float64 `json:"avg_playtime_hours"`
	VectorDimensions   int     `json:"vector_dimensions"`
}

type ShowProfileResponse struct {
	HasPreferenceVector bool       `json:"has_preference_vector"`
	HasLearnedVector    bool       `json:"has_learned_vector"`
	GamesAnalyzed       int        `json:"games_analyzed"`
	TotalPlaytimeHours  float64    `json:"total_playtime_hours"`
	UpdatedAt           *time.Time `json:"updated_at"`
}
