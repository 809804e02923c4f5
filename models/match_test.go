package models

import (
	"encoding/json"
	"testing"
)

func TestSetResultsUnmarshalArray(t *testing.T) {
	var s SetResults
	if err := json.Unmarshal([]byte(`[{"team1":6,"team2":3},{"team1":4,"team2":6}]`), &s); err != nil {
		t.Fatalf("unmarshal array: %v", err)
	}
	if len(s) != 2 || s[0].Team1 != 6 || s[1].Team2 != 6 {
		t.Fatalf("unexpected results: %+v", s)
	}
}

func TestSetResultsUnmarshalEncodedString(t *testing.T) {
	var s SetResults
	raw := `"[{\"team1\":6,\"team2\":2}]"`
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal string form: %v", err)
	}
	if len(s) != 1 || s[0].Team1 != 6 || s[0].Team2 != 2 {
		t.Fatalf("unexpected results: %+v", s)
	}
}

func TestSetResultsUnmarshalEmptyString(t *testing.T) {
	var s SetResults
	if err := json.Unmarshal([]byte(`""`), &s); err != nil {
		t.Fatalf("unmarshal empty string: %v", err)
	}
	if s != nil {
		t.Fatalf("expected nil results, got %+v", s)
	}
}

func TestMatchMergeKeepsUnechoedFields(t *testing.T) {
	score1, score2, winner := 2, 1, 10
	scheduled := "2026-09-01T10:00:00Z"
	m := Match{
		ID:          5,
		Team1ID:     10,
		Team2ID:     11,
		Status:      MatchInProgress,
		Team1Score:  &score1,
		Team2Score:  &score2,
		ScheduledAt: &scheduled,
		SetResults:  SetResults{{Team1: 6, Team2: 3}},
	}

	// A sparse echo: only the status and winner came back.
	m.Merge(Match{Status: MatchCompleted, WinnerID: &winner})

	if m.Status != MatchCompleted {
		t.Errorf("status = %s, want completed", m.Status)
	}
	if m.WinnerID == nil || *m.WinnerID != 10 {
		t.Errorf("winner = %v, want 10", m.WinnerID)
	}
	if m.Team1Score == nil || *m.Team1Score != 2 {
		t.Errorf("team1 score lost in merge: %v", m.Team1Score)
	}
	if m.ScheduledAt == nil || *m.ScheduledAt != scheduled {
		t.Errorf("scheduledAt lost in merge: %v", m.ScheduledAt)
	}
	if len(m.SetResults) != 1 {
		t.Errorf("set results lost in merge: %v", m.SetResults)
	}
}

func TestMatchMergeReplacesSetResults(t *testing.T) {
	m := Match{SetResults: SetResults{{Team1: 6, Team2: 3}}}
	m.Merge(Match{SetResults: SetResults{{Team1: 6, Team2: 3}, {Team1: 6, Team2: 4}}})
	if len(m.SetResults) != 2 {
		t.Fatalf("set results = %v, want 2 entries", m.SetResults)
	}
}
