package scoring

import (
	"errors"
	"testing"

	"github.com/MargonDiego/padel-frontend/models"
)

func TestCountSets(t *testing.T) {
	tests := []struct {
		name    string
		entries []SetEntry
		team1   int
		team2   int
	}{
		{"no sets", nil, 0, 0},
		{"straight win", []SetEntry{{"6", "3"}, {"6", "4"}}, 2, 0},
		{"split", []SetEntry{{"6", "3"}, {"4", "6"}, {"6", "2"}}, 2, 1},
		{"half-filled set ignored", []SetEntry{{"6", ""}}, 0, 0},
		{"empty set ignored", []SetEntry{{"", ""}, {"6", "4"}}, 1, 0},
		{"drawn set counts for neither", []SetEntry{{"5", "5"}, {"6", "4"}}, 1, 0},
		{"garbage ignored", []SetEntry{{"six", "4"}, {"6", "4"}}, 1, 0},
		{"negative ignored", []SetEntry{{"-1", "4"}, {"6", "4"}}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team1, team2 := CountSets(tt.entries)
			if team1 != tt.team1 || team2 != tt.team2 {
				t.Fatalf("CountSets = %d-%d, want %d-%d", team1, team2, tt.team1, tt.team2)
			}
		})
	}
}

func TestCountSetsNeverExceedsFilled(t *testing.T) {
	entries := []SetEntry{{"6", "3"}, {"", "4"}, {"5", "5"}, {"2", "6"}}
	filled := 0
	for _, e := range entries {
		if e.Filled() {
			filled++
		}
	}
	team1, team2 := CountSets(entries)
	if team1 < 0 || team2 < 0 {
		t.Fatalf("negative set count: %d-%d", team1, team2)
	}
	if team1+team2 > filled {
		t.Fatalf("counted %d sets from %d filled entries", team1+team2, filled)
	}
}

func TestFilledSets(t *testing.T) {
	results, err := FilledSets([]SetEntry{{"6", "3"}, {"", ""}, {"4", "6"}})
	if err != nil {
		t.Fatalf("FilledSets: %v", err)
	}
	want := []models.SetResult{{Team1: 6, Team2: 3}, {Team1: 4, Team2: 6}}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("result[%d] = %+v, want %+v", i, results[i], want[i])
		}
	}
}

func TestFilledSetsRejectsBadInput(t *testing.T) {
	for _, entries := range [][]SetEntry{
		{{"six", "3"}},
		{{"6", "-1"}},
	} {
		if _, err := FilledSets(entries); !errors.Is(err, ErrInvalidSetScore) {
			t.Errorf("FilledSets(%v) err = %v, want ErrInvalidSetScore", entries, err)
		}
	}
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name         string
		team1, team2 int
		id1, id2     int
		want         *int
	}{
		{"team1 wins", 2, 1, 10, 11, intPtr(10)},
		{"team2 wins", 0, 2, 10, 11, intPtr(11)},
		{"tie resolves to nobody", 1, 1, 10, 11, nil},
		{"zero-zero resolves to nobody", 0, 0, 10, 11, nil},
		{"missing team id resolves to nobody", 2, 0, 0, 11, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Winner(tt.team1, tt.team2, tt.id1, tt.id2)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Winner = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Fatalf("Winner = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestEntriesFromResultsRoundTrip(t *testing.T) {
	entries := EntriesFromResults([]models.SetResult{{Team1: 6, Team2: 3}, {Team1: 4, Team2: 6}})
	team1, team2 := CountSets(entries)
	if team1 != 1 || team2 != 1 {
		t.Fatalf("CountSets after round trip = %d-%d, want 1-1", team1, team2)
	}
}

func intPtr(v int) *int { return &v }
