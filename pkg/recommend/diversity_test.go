package recommend

import (
	"math"
	"testing"
)

func TestApplyDiversityGenrePenalty(t *testing.T) {
	// Ten games of the same primary genre with equal raw weight should each
	// end up at rawWeight / sqrt(10).
	games := make([]WeightedGame, 10)
	for i := range games {
		games[i] = WeightedGame{
			GameID: string(rune('a' + i)),
			Weight: 1.0,
			Genres: []string{"Strategy"},
		}
	}

	adjusted := ApplyDiversity(games)
	want := 1.0 / math.Sqrt(10)
	for _, g := range games {
		if !almostEqual(adjusted[g.GameID], want, 1e-9) {
			t.Errorf("adjusted[%s] = %v, want %v", g.GameID, adjusted[g.GameID], want)
		}
	}
}

func TestApplyDiversitySingletonGenreUnchanged(t *testing.T) {
	games := []WeightedGame{
		{GameID: "a", Weight: 1.0, Genres: []string{"Strategy"}},
		{GameID: "b", Weight: 1.0, Genres: []string{"Strategy"}},
		{GameID: "c", Weight: 0.8, Genres: []string{"Racing"}},
	}

	adjusted := ApplyDiversity(games)
	if !almostEqual(adjusted["c"], 0.8, 1e-9) {
		t.Errorf("singleton genre weight changed: got %v, want 0.8", adjusted["c"])
	}
}

func TestApplyDiversityTwoSameGenre(t *testing.T) {
	games := []WeightedGame{
		{GameID: "a", Weight: 1.0, Genres: []string{"FPS"}},
		{GameID: "b", Weight: 1.0, Genres: []string{"FPS"}},
	}

	adjusted := ApplyDiversity(games)
	want := 1.0 / math.Sqrt(2) // ~0.7071
	for id, w := range adjusted {
		if !almostEqual(w, want, 1e-4) {
			t.Errorf("adjusted[%s] = %v, want %v", id, w, want)
		}
	}
}

func TestApplyDiversityFranchisePenalty(t *testing.T) {
	games := []WeightedGame{
		{GameID: "a", Weight: 1.0, Genres: []string{"Strategy"}, Tags: []string{"Warhammer 40k", "Turn-Based"}},
		{GameID: "b", Weight: 1.0, Genres: []string{"Action"}, Tags: []string{"warhammer"}},
		{GameID: "c", Weight: 1.0, Genres: []string{"RPG"}, Tags: []string{"Warhammer Fantasy"}},
		{GameID: "d", Weight: 1.0, Genres: []string{"Puzzle"}, Tags: []string{"Relaxing"}},
	}

	adjusted := ApplyDiversity(games)

	// Each Warhammer game: singleton genre, franchise count 3.
	wantFranchise := 1.0 / math.Sqrt(3)
	for _, id := range []string{"a", "b", "c"} {
		if !almostEqual(adjusted[id], wantFranchise, 1e-9) {
			t.Errorf("adjusted[%s] = %v, want %v", id, adjusted[id], wantFranchise)
		}
	}

	// No franchise match and singleton genre: untouched.
	if !almostEqual(adjusted["d"], 1.0, 1e-9) {
		t.Errorf("adjusted[d] = %v, want 1.0", adjusted["d"])
	}
}

func TestApplyDiversityStrongestFranchiseWins(t *testing.T) {
	// "a" matches both Dark Souls (count 3) and Tekken (count 1); the penalty
	// must come from the strongest-represented franchise.
	games := []WeightedGame{
		{GameID: "a", Weight: 1.0, Genres: []string{"Action"}, Tags: []string{"Dark Souls", "Tekken"}},
		{GameID: "b", Weight: 1.0, Genres: []string{"RPG"}, Tags: []string{"Dark Souls III"}},
		{GameID: "c", Weight: 1.0, Genres: []string{"Adventure"}, Tags: []string{"dark souls-inspired"}},
	}

	adjusted := ApplyDiversity(games)
	want := 1.0 / math.Sqrt(3)
	if !almostEqual(adjusted["a"], want, 1e-9) {
		t.Errorf("adjusted[a] = %v, want %v", adjusted["a"], want)
	}
}

func TestApplyDiversityMissingGenreCountsAsUnknown(t *testing.T) {
	games := []WeightedGame{
		{GameID: "a", Weight: 1.0},
		{GameID: "b", Weight: 1.0, Genres: []string{""}},
	}

	adjusted := ApplyDiversity(games)
	want := 1.0 / math.Sqrt(2)
	for _, id := range []string{"a", "b"} {
		if !almostEqual(adjusted[id], want, 1e-9) {
			t.Errorf("adjusted[%s] = %v, want %v (both should count as Unknown)", id, adjusted[id], want)
		}
	}
}
