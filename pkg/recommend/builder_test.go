package recommend

import (
	"math/rand"
	"testing"
	"time"
)

func TestSelectCandidatesFiltersBelowMinimum(t *testing.T) {
	now := time.Now()
	entries := []LibraryEntry{
		{GameID: "a", PlaytimeMinutes: 20}, // 0.33h, below default 0.5h
		{GameID: "b", PlaytimeMinutes: 15},
	}

	candidates, stats := SelectCandidates(entries, now, DefaultOptions())
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(candidates))
	}
	if stats.Skipped != 2 || stats.Included != 0 {
		t.Errorf("stats = %+v, want 2 skipped, 0 included", stats)
	}
}

func TestSelectCandidatesOrderAndTruncation(t *testing.T) {
	now := time.Now()
	var entries []LibraryEntry
	for i := 1; i <= 10; i++ {
		entries = append(entries, LibraryEntry{
			GameID:          string(rune('a' + i - 1)),
			PlaytimeMinutes: i * 600, // 10h, 20h, ... 100h
			LastPlayed:      timePtr(now),
		})
	}

	opts := DefaultOptions()
	opts.MaxGamesToInclude = 3

	candidates, stats := SelectCandidates(entries, now, opts)
	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates after truncation, got %d", len(candidates))
	}
	// Truncation happens after sorting descending by weight, so the longest
	// playtimes survive.
	if candidates[0].Entry.GameID != "j" || candidates[1].Entry.GameID != "i" || candidates[2].Entry.GameID != "h" {
		t.Errorf("unexpected top candidates: %s %s %s",
			candidates[0].Entry.GameID, candidates[1].Entry.GameID, candidates[2].Entry.GameID)
	}
	if stats.Included != 10 {
		t.Errorf("stats.Included = %d, want 10 (stats cover the filtered set, not the truncated one)", stats.Included)
	}
	if !almostEqual(stats.MinHours, 10, 1e-9) || !almostEqual(stats.MaxHours, 100, 1e-9) || !almostEqual(stats.AvgHours, 55, 1e-9) {
		t.Errorf("stats hours = %+v, want min 10, max 100, avg 55", stats)
	}
}

func TestSelectCandidatesMixedLibrary(t *testing.T) {
	// One substantial game, one sub-threshold game: only the first survives.
	now := time.Now()
	entries := []LibraryEntry{
		{GameID: "A", PlaytimeMinutes: 6000, LastPlayed: timePtr(now), Genres: []string{"RPG"}},
		{GameID: "B", PlaytimeMinutes: 15},
	}

	candidates, stats := SelectCandidates(entries, now, DefaultOptions())
	if len(candidates) != 1 || candidates[0].Entry.GameID != "A" {
		t.Fatalf("expected only game A, got %d candidates", len(candidates))
	}
	if stats.Included != 1 || stats.Skipped != 1 {
		t.Errorf("stats = %+v, want 1 included, 1 skipped", stats)
	}
}

func TestWeightedAverageSingleElement(t *testing.T) {
	vec := []float32{0.5, -0.25, 0.1}
	out, total := WeightedAverage([]WeightedEmbedding{{GameID: "A", Weight: 2.37, Vector: vec}})

	if !almostEqual(total, 2.37, 1e-9) {
		t.Errorf("total weight = %v, want 2.37", total)
	}
	// Weighted average of one element equals that element exactly, with no
	// unit-normalization applied at this stage.
	for i := range vec {
		if !almostEqual(float64(out[i]), float64(vec[i]), 1e-6) {
			t.Errorf("out[%d] = %v, want %v", i, out[i], vec[i])
		}
	}
}

func TestWeightedAverageOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	items := make([]WeightedEmbedding, 20)
	for i := range items {
		vec := make([]float32, 8)
		for j := range vec {
			vec[j] = rng.Float32()*2 - 1
		}
		items[i] = WeightedEmbedding{GameID: string(rune('a' + i)), Weight: rng.Float64() + 0.1, Vector: vec}
	}

	first, _ := WeightedAverage(items)

	shuffled := make([]WeightedEmbedding, len(items))
	copy(shuffled, items)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	second, _ := WeightedAverage(shuffled)

	for i := range first {
		if !almostEqual(float64(first[i]), float64(second[i]), 1e-5) {
			t.Fatalf("aggregation depends on input order at index %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestWeightedAverageEmpty(t *testing.T) {
	if out, total := WeightedAverage(nil); out != nil || total != 0 {
		t.Errorf("expected nil result for empty input, got %v / %v", out, total)
	}
}
