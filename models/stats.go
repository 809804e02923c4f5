package models

import "encoding/json"

// PlayerStat is a ranking row for a single player. WinRatio arrives as a
// string from some endpoints and as a number from others.
type PlayerStat struct {
	ID                int         `json:"id"`
	PlayerID          int         `json:"playerId"`
	MatchesPlayed     int         `json:"matchesPlayed"`
	MatchesWon        int         `json:"matchesWon"`
	MatchesLost       int         `json:"matchesLost"`
	SetsPlayed        int         `json:"setsPlayed"`
	SetsWon           int         `json:"setsWon"`
	SetsLost          int         `json:"setsLost"`
	TournamentsPlayed int         `json:"tournamentsPlayed"`
	TournamentsWon    int         `json:"tournamentsWon"`
	WinRatio          json.Number `json:"winRatio"`
	RankingPoints     int         `json:"rankingPoints"`
	LastMatchDate     *string     `json:"lastMatchDate,omitempty"`

	Player *User `json:"player,omitempty"`
}

type TeamStat struct {
	ID                   int         `json:"id"`
	TeamID               int         `json:"teamId"`
	MatchesPlayed        int         `json:"matchesPlayed"`
	MatchesWon           int         `json:"matchesWon"`
	MatchesLost          int         `json:"matchesLost"`
	SetsPlayed           int         `json:"setsPlayed"`
	SetsWon              int         `json:"setsWon"`
	SetsLost             int         `json:"setsLost"`
	TournamentsPlayed    int         `json:"tournamentsPlayed"`
	TournamentsWon       int         `json:"tournamentsWon"`
	WinRatio             json.Number `json:"winRatio"`
	RankingPoints        int         `json:"rankingPoints"`
	BestTournamentResult *string     `json:"bestTournamentResult,omitempty"`
	LastMatchDate        *string     `json:"lastMatchDate,omitempty"`

	Team *Team `json:"team,omitempty"`
}
