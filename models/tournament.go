package models

// TournamentStatus moves strictly forward: draft -> open -> in_progress -> completed.
type TournamentStatus string

const (
	TournamentDraft      TournamentStatus = "draft"
	TournamentOpen       TournamentStatus = "open"
	TournamentInProgress TournamentStatus = "in_progress"
	TournamentCompleted  TournamentStatus = "completed"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentDraft, TournamentOpen, TournamentInProgress, TournamentCompleted:
		return true
	}
	return false
}

type TournamentFormat string

const (
	FormatElimination TournamentFormat = "elimination"
	FormatRoundRobin  TournamentFormat = "round_robin"
)

// Tournament is a competition container. Dates are date-only strings on the
// wire (YYYY-MM-DD going out, ISO timestamps coming back), so they stay raw
// here instead of time.Time.
type Tournament struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	OrganizerID int              `json:"organizerId"`
	StartDate   string           `json:"startDate"`
	EndDate     string           `json:"endDate"`
	Status      TournamentStatus `json:"status"`
	Format      TournamentFormat `json:"format"`
	MaxTeams    *int             `json:"maxTeams,omitempty"`
	Location    *string          `json:"location,omitempty"`

	Organizer *User   `json:"organizer,omitempty"`
	Teams     []Team  `json:"teams,omitempty"`
	Matches   []Match `json:"matches,omitempty"`
}
