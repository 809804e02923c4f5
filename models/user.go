package models

// Role identifiers as assigned by the platform's user_roles table.
const (
	RoleAdmin     = 1
	RolePlayer    = 2
	RoleOrganizer = 3
)

// User is the platform account as the API returns it. Profile fields travel in
// snake_case on the /profile endpoint and are mapped back onto these camelCase
// fields by the api package.
type User struct {
	ID              int     `json:"id"`
	Username        string  `json:"username,omitempty"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Phone           *string `json:"phone,omitempty"`
	UserRoleID      int     `json:"userRoleId"`
	UserStatusID    int     `json:"userStatusId"`
	PlayerLevel     *string `json:"playerLevel,omitempty"`
	DominantHand    *string `json:"dominantHand,omitempty"`
	ExperienceYears *int    `json:"experienceYears,omitempty"`
	HeightCm        *int    `json:"heightCm,omitempty"`
	WeightKg        *int    `json:"weightKg,omitempty"`
	City            *string `json:"city,omitempty"`
	Country         *string `json:"country,omitempty"`
	PlayingPosition *string `json:"playingPosition,omitempty"`
	FavoriteRacket  *string `json:"favoriteRacket,omitempty"`
	Photo           *string `json:"photo,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.UserRoleID == RoleAdmin
}

func (u User) IsOrganizer() bool {
	return u.UserRoleID == RoleOrganizer
}
