package models

// Team is a pair of players. Seed is only meaningful inside a tournament
// context; the API attaches it on tournament team listings.
type Team struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Player1ID   int     `json:"player1Id"`
	Player2ID   int     `json:"player2Id"`
	Seed        *int    `json:"seed,omitempty"`

	Player1 *User `json:"player1,omitempty"`
	Player2 *User `json:"player2,omitempty"`
}

// HasPlayer reports whether the given user is one of the pair.
func (t Team) HasPlayer(userID int) bool {
	return t.Player1ID == userID || t.Player2ID == userID
}
