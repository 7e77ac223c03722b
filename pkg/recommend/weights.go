package recommend

import (
	"math"
	"time"
)

// LibraryEntry is one owned game as supplied by the library ingestion boundary.
// All optional signals are pointers; the weighting functions clamp/default
// instead of erroring.
type LibraryEntry struct {
	GameID             string     `json:"game_id"`
	PlaytimeMinutes    int        `json:"playtime_minutes"`
	LastPlayed         *time.Time `json:"last_played,omitempty"`
	AchievementsEarned *int       `json:"achievements_earned,omitempty"`
	AchievementsTotal  *int       `json:"achievements_total,omitempty"`
	Genres             []string   `json:"genres,omitempty"`
	Tags               []string   `json:"tags,omitempty"`
	AvgCompletionHours *float64   `json:"avg_completion_hours,omitempty"`
}

func (e LibraryEntry) PlaytimeHours() float64 {
	if e.PlaytimeMinutes <= 0 {
		return 0
	}
	return float64(e.PlaytimeMinutes) / 60.0
}

// Options controls preference vector generation.
type Options struct {
	RecencyDecayMonths         float64 `json:"recency_decay_months"`
	EnableGenreDiversification bool    `json:"enable_genre_diversification"`
	MinPlaytimeHours           float64 `json:"min_playtime_hours"`
	MaxGamesToInclude          int     `json:"max_games_to_include"`
	EnableQualityWeighting     bool    `json:"enable_quality_weighting"`
}

func DefaultOptions() Options {
	return Options{
		RecencyDecayMonths:         24,
		EnableGenreDiversification: true,
		MinPlaytimeHours:           0.5,
		MaxGamesToInclude:          200,
		EnableQualityWeighting:     true,
	}
}

// Average month length in days, used to convert elapsed time to months.
const daysPerMonth = 30.44

// PlaytimeWeight maps hours played onto a logarithmic five-piece curve.
// Short sessions are weak signal (refunds, bounced purchases), 10-50h is the
// genuine-interest sweet spot, and the curve flattens above 200h so a single
// 2000h game cannot dominate the aggregate vector. The two upper pieces are
// capped at 2.5 and 2.6: the raw log terms overshoot their piece boundaries,
// and the curve must stay monotonic in hours with the >=200h regime bounded
// to [2.5, 2.6] no matter how large hours grows.
func PlaytimeWeight(hours float64) float64 {
	if hours < 0 {
		hours = 0
	}
	switch {
	case hours < 2:
		return 0.1 + (hours/2)*0.4
	case hours < 10:
		return 0.5 + ((hours-2)/8)*0.5
	case hours < 50:
		return 1.0 + math.Log10(hours-9)*0.5
	case hours < 200:
		return math.Min(2.5, 2.0+math.Log10(hours-49)*0.3)
	default:
		return math.Min(2.6, 2.5+math.Log10(hours-199)*0.05)
	}
}

// RecencyWeight applies exponential half-life decay to the last-played
// timestamp: 0.5^(months/decayMonths), floored at 0.2 so old favorites still
// count. A nil timestamp returns a neutral 0.5.
func RecencyWeight(lastPlayed *time.Time, now time.Time, decayMonths float64) float64 {
	if lastPlayed == nil {
		return 0.5
	}
	if decayMonths <= 0 {
		decayMonths = DefaultOptions().RecencyDecayMonths
	}
	months := now.Sub(*lastPlayed).Hours() / (24 * daysPerMonth)
	if months < 0 {
		months = 0
	}
	w := math.Pow(0.5, months/decayMonths)
	if w < 0.2 {
		return 0.2
	}
	return w
}

// QualityWeight adjusts for completion and achievement signals. Starts at 1.0;
// adjustments compound multiplicatively. Missing signals leave the factor
// untouched.
func QualityWeight(hours float64, avgCompletionHours *float64, achievementsEarned, achievementsTotal *int) float64 {
	w := 1.0

	if avgCompletionHours != nil && *avgCompletionHours > 0 {
		ratio := hours / *avgCompletionHours
		if ratio > 0.8 {
			w *= 1.3 // completed or near-completed
		} else if ratio < 0.2 {
			w *= 0.7 // abandoned early
		}
	}

	if achievementsEarned != nil && achievementsTotal != nil && *achievementsTotal > 0 {
		ratio := float64(*achievementsEarned) / float64(*achievementsTotal)
		if ratio > 0.5 {
			w *= 1.2
		} else if ratio < 0.1 && hours > 10 {
			w *= 0.9
		}
	}

	return w
}

// CombinedWeight is the per-game raw weight: playtime x recency x quality.
// The quality term is skippable via Options.
func CombinedWeight(e LibraryEntry, now time.Time, opts Options) float64 {
	hours := e.PlaytimeHours()
	w := PlaytimeWeight(hours) * RecencyWeight(e.LastPlayed, now, opts.RecencyDecayMonths)
	if opts.EnableQualityWeighting {
		w *= QualityWeight(hours, e.AvgCompletionHours, e.AchievementsEarned, e.AchievementsTotal)
	}
	return w
}
