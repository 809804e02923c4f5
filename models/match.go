package models

import (
	"bytes"
	"encoding/json"
)

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchPending    MatchStatus = "pending" // older API payloads use pending for scheduled
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchCancelled  MatchStatus = "cancelled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchPending, MatchInProgress, MatchCompleted, MatchCancelled:
		return true
	}
	return false
}

// SetResult holds the points each team scored in one set. Order of results
// within a match is meaningful (set 1, set 2, ...).
type SetResult struct {
	Team1 int `json:"team1"`
	Team2 int `json:"team2"`
}

// SetResults decodes both encodings the API uses: a JSON array on some
// endpoints and a JSON-encoded string on others.
type SetResults []SetResult

func (s *SetResults) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			*s = nil
			return nil
		}
		return json.Unmarshal([]byte(raw), (*[]SetResult)(s))
	}
	return json.Unmarshal(data, (*[]SetResult)(s))
}

// Match is one contest between two teams within a tournament round. Outcome
// fields are nil until a result has been recorded.
type Match struct {
	ID           int         `json:"id"`
	TournamentID int         `json:"tournamentId"`
	Round        int         `json:"round"`
	MatchNumber  int         `json:"matchNumber"`
	Team1ID      int         `json:"team1Id"`
	Team2ID      int         `json:"team2Id"`
	Status       MatchStatus `json:"status"`
	ScheduledAt  *string     `json:"scheduledAt,omitempty"`
	CompletedAt  *string     `json:"completedAt,omitempty"`
	Team1Score   *int        `json:"team1Score,omitempty"`
	Team2Score   *int        `json:"team2Score,omitempty"`
	WinnerID     *int        `json:"winnerId,omitempty"`
	NextMatchID  *int        `json:"nextMatchId,omitempty"`
	SetResults   SetResults  `json:"setResults,omitempty"`

	Team1      *Team       `json:"team1,omitempty"`
	Team2      *Team       `json:"team2,omitempty"`
	Winner     *Team       `json:"winner,omitempty"`
	Tournament *Tournament `json:"tournament,omitempty"`
}

// Merge copies the fields present in update onto m. The API does not echo
// every field back after a write, so this is a shallow field-wise merge, never
// a replace: zero/nil fields in update leave the local value alone.
func (m *Match) Merge(update Match) {
	if update.Status != "" {
		m.Status = update.Status
	}
	if update.Team1Score != nil {
		m.Team1Score = update.Team1Score
	}
	if update.Team2Score != nil {
		m.Team2Score = update.Team2Score
	}
	if update.WinnerID != nil {
		m.WinnerID = update.WinnerID
	}
	if update.NextMatchID != nil {
		m.NextMatchID = update.NextMatchID
	}
	if update.SetResults != nil {
		m.SetResults = update.SetResults
	}
	if update.ScheduledAt != nil {
		m.ScheduledAt = update.ScheduledAt
	}
	if update.CompletedAt != nil {
		m.CompletedAt = update.CompletedAt
	}
	if update.Team1 != nil {
		m.Team1 = update.Team1
	}
	if update.Team2 != nil {
		m.Team2 = update.Team2
	}
	if update.Winner != nil {
		m.Winner = update.Winner
	}
}
