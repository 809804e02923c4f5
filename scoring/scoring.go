// Package scoring reduces per-set padel scores to the aggregate set counts a
// match outcome is derived from.
package scoring

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/MargonDiego/padel-frontend/models"
)

var ErrInvalidSetScore = errors.New("set scores must be non-negative integers")

// SetEntry is one set's raw scores as captured from input. An empty string on
// either side means the set has not been played yet.
type SetEntry struct {
	Team1 string
	Team2 string
}

// Filled reports whether both sides of the set have a value.
func (e SetEntry) Filled() bool {
	return e.Team1 != "" && e.Team2 != ""
}

func (e SetEntry) points() (int, int, error) {
	p1, err := strconv.Atoi(e.Team1)
	if err != nil || p1 < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSetScore, e.Team1)
	}
	p2, err := strconv.Atoi(e.Team2)
	if err != nil || p2 < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSetScore, e.Team2)
	}
	return p1, p2, nil
}

// CountSets returns how many sets each side has won. Entries with a missing
// value on either side are treated as not yet played, and a drawn set counts
// for neither team. Pure, so callers can recompute on every edit.
func CountSets(entries []SetEntry) (team1, team2 int) {
	for _, e := range entries {
		if !e.Filled() {
			continue
		}
		p1, p2, err := e.points()
		if err != nil {
			continue
		}
		switch {
		case p1 > p2:
			team1++
		case p2 > p1:
			team2++
		}
	}
	return team1, team2
}

// FilledSets converts the filled entries to integer pairs in submission order,
// dropping unplayed sets. Non-numeric or negative input is an error rather
// than a silent skip, since these values are about to go on the wire.
func FilledSets(entries []SetEntry) ([]models.SetResult, error) {
	var results []models.SetResult
	for _, e := range entries {
		if !e.Filled() {
			continue
		}
		p1, p2, err := e.points()
		if err != nil {
			return nil, err
		}
		results = append(results, models.SetResult{Team1: p1, Team2: p2})
	}
	return results, nil
}

// EntriesFromResults converts recorded set results back to editable entries.
func EntriesFromResults(results []models.SetResult) []SetEntry {
	entries := make([]SetEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, SetEntry{
			Team1: strconv.Itoa(r.Team1),
			Team2: strconv.Itoa(r.Team2),
		})
	}
	return entries
}

// Winner returns the id of the team with the strictly higher set count, or nil
// when the counts are equal. It never guesses on a tie; rejecting a completed
// submission without a winner is the caller's job.
func Winner(team1Sets, team2Sets, team1ID, team2ID int) *int {
	switch {
	case team1Sets > team2Sets && team1ID > 0:
		return &team1ID
	case team2Sets > team1Sets && team2ID > 0:
		return &team2ID
	}
	return nil
}
