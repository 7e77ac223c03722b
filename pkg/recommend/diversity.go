package recommend

import (
	"math"
	"strings"
)

// franchiseMarkers is matched (case-insensitive substring) against game tags
// to detect series membership. A game may match zero, one, or several markers.
var franchiseMarkers = []string{
	"Warhammer",
	"Call of Duty",
	"Dark Souls",
	"Souls-like",
	"Final Fantasy",
	"Assassin's Creed",
	"Far Cry",
	"Battlefield",
	"Borderlands",
	"Elder Scrolls",
	"Fallout",
	"Grand Theft Auto",
	"The Witcher",
	"Civilization",
	"Total War",
	"Resident Evil",
	"Monster Hunter",
	"Dragon Quest",
	"Persona",
	"Halo",
	"Mortal Kombat",
	"Street Fighter",
	"Tekken",
	"Mass Effect",
	"Dragon Age",
	"Hitman",
	"Tomb Raider",
	"Yakuza",
	"Kingdom Hearts",
	"Counter-Strike",
	"Half-Life",
	"Diablo",
}

// WeightedGame carries a game's raw weight plus the metadata the diversity
// pass needs.
type WeightedGame struct {
	GameID string
	Weight float64
	Genres []string
	Tags   []string
}

func primaryGenre(genres []string) string {
	if len(genres) == 0 || genres[0] == "" {
		return "Unknown"
	}
	return genres[0]
}

func matchFranchises(tags []string) []string {
	var matched []string
	for _, marker := range franchiseMarkers {
		lowerMarker := strings.ToLower(marker)
		for _, tag := range tags {
			if strings.Contains(strings.ToLower(tag), lowerMarker) {
				matched = append(matched, marker)
				break
			}
		}
	}
	return matched
}

// ApplyDiversity down-weights overrepresented genres and franchises so a
// single series cannot saturate the preference vector. Each game's weight is
// multiplied by 1/sqrt(primary genre count) and, if it matches any franchise
// marker, by 1/sqrt(count of its strongest-represented franchise). The sqrt
// softens the penalty: volume still counts, it just stops compounding
// linearly.
func ApplyDiversity(games []WeightedGame) map[string]float64 {
	genreCounts := make(map[string]int)
	franchiseCounts := make(map[string]int)
	matchedFranchises := make(map[string][]string, len(games))

	for _, g := range games {
		genreCounts[primaryGenre(g.Genres)]++
		franchises := matchFranchises(g.Tags)
		matchedFranchises[g.GameID] = franchises
		for _, f := range franchises {
			franchiseCounts[f]++
		}
	}

	adjusted := make(map[string]float64, len(games))
	for _, g := range games {
		genrePenalty := 1.0 / math.Sqrt(float64(genreCounts[primaryGenre(g.Genres)]))

		franchisePenalty := 1.0
		maxCount := 0
		for _, f := range matchedFranchises[g.GameID] {
			if franchiseCounts[f] > maxCount {
				maxCount = franchiseCounts[f]
			}
		}
		if maxCount > 0 {
			franchisePenalty = 1.0 / math.Sqrt(float64(maxCount))
		}

		adjusted[g.GameID] = g.Weight * genrePenalty * franchisePenalty
	}

	return adjusted
}
