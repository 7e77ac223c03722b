package recommend

import (
	"sort"
	"time"
)

// ScoredEntry pairs a library entry with its combined raw weight.
type ScoredEntry struct {
	Entry  LibraryEntry
	Weight float64
}

// LibraryStats are diagnostics over the playtime-filtered candidate set.
type LibraryStats struct {
	MinHours float64 `json:"min_hours"`
	MaxHours float64 `json:"max_hours"`
	AvgHours float64 `json:"avg_hours"`
	Included int     `json:"included"`
	Skipped  int     `json:"skipped"`
}

// SelectCandidates filters entries below the minimum playtime, computes
// combined weights, and truncates to the top-N by raw weight (before any
// diversity adjustment or embedding lookup). Returns the surviving entries in
// descending weight order plus stats over the filtered set.
func SelectCandidates(entries []LibraryEntry, now time.Time, opts Options) ([]ScoredEntry, LibraryStats) {
	stats := LibraryStats{}
	candidates := make([]ScoredEntry, 0, len(entries))

	var sumHours float64
	for _, e := range entries {
		hours := e.PlaytimeHours()
		if hours < opts.MinPlaytimeHours {
			stats.Skipped++
			continue
		}
		if stats.Included == 0 || hours < stats.MinHours {
			stats.MinHours = hours
		}
		if hours > stats.MaxHours {
			stats.MaxHours = hours
		}
		sumHours += hours
		stats.Included++

		candidates = append(candidates, ScoredEntry{
			Entry:  e,
			Weight: CombinedWeight(e, now, opts),
		})
	}
	if stats.Included > 0 {
		stats.AvgHours = sumHours / float64(stats.Included)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight > candidates[j].Weight
	})
	if opts.MaxGamesToInclude > 0 && len(candidates) > opts.MaxGamesToInclude {
		candidates = candidates[:opts.MaxGamesToInclude]
	}

	return candidates, stats
}

// WeightedEmbedding is an embedding-resolved candidate with its (possibly
// diversity-adjusted) weight.
type WeightedEmbedding struct {
	GameID string
	Weight float64
	Vector []float32
}

// WeightedAverage computes sum(vector_i * weight_i) / sum(weight_i). The
// result is a weighted average, deliberately NOT unit-normalized: final
// normalization belongs to the storage boundary. Aggregation is commutative,
// so embedding fetch completion order never changes the result. Returns nil
// for an empty input or zero total weight.
func WeightedAverage(items []WeightedEmbedding) ([]float32, float64) {
	if len(items) == 0 {
		return nil, 0
	}

	dims := len(items[0].Vector)
	sum := make([]float64, dims)
	var totalWeight float64

	for _, item := range items {
		if len(item.Vector) != dims {
			continue
		}
		for i, v := range item.Vector {
			sum[i] += float64(v) * item.Weight
		}
		totalWeight += item.Weight
	}
	if totalWeight == 0 {
		return nil, 0
	}

	out := make([]float32, dims)
	for i := range sum {
		out[i] = float32(sum[i] / totalWeight)
	}
	return out, totalWeight
}
