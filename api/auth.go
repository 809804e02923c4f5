package api

import (
	"context"
	"net/http"

	"github.com/MargonDiego/padel-frontend/models"
)

// loginIdentity is the client identity discriminator the platform requires in
// the /auth body.
const loginIdentity = "postman"

// SessionWriter is the only surface through which this client mutates the
// shared session. Reads stay on the broad session store; writes are reserved
// for the auth operations here.
type SessionWriter interface {
	SaveLogin(token string, user models.User) error
	SetUser(user models.User) error
	SetToken(token string) error
	Clear() error
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Identity string `json:"identity"`
}

type UserToken struct {
	Type      string `json:"type,omitempty"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

type LoginResponse struct {
	User      models.User `json:"user"`
	UserToken UserToken   `json:"user_token"`
}

// Login authenticates and, on success, persists the token and user through
// the session writer. Nothing is stored on failure. Concurrent duplicate
// submissions are rejected, mirroring the login form's loading guard.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	select {
	case c.loginInFlight <- struct{}{}:
		defer func() { <-c.loginInFlight }()
	default:
		return LoginResponse{}, ErrLoginInFlight
	}

	var resp LoginResponse
	body := loginRequest{Username: username, Password: password, Identity: loginIdentity}
	if err := c.do(ctx, http.MethodPost, "/auth", body, &resp); err != nil {
		return LoginResponse{}, err
	}
	if c.sessions != nil {
		if err := c.sessions.SaveLogin(resp.UserToken.Token, resp.User); err != nil {
			return LoginResponse{}, err
		}
	}
	return resp, nil
}

// RegisterInput carries the registration form fields. Optional profile fields
// stay nil when the user left them blank.
type RegisterInput struct {
	Username             string  `json:"username"`
	Password             string  `json:"password"`
	PasswordConfirmation string  `json:"passwordConfirmation"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Phone                string  `json:"phone"`
	PlayerLevel          string  `json:"playerLevel"`
	DominantHand         string  `json:"dominantHand"`
	ExperienceYears      *int    `json:"experienceYears,omitempty"`
	HeightCm             *int    `json:"heightCm,omitempty"`
	WeightKg             *int    `json:"weightKg,omitempty"`
	City                 *string `json:"city,omitempty"`
	Country              *string `json:"country,omitempty"`
	PlayingPosition      *string `json:"playingPosition,omitempty"`
	FavoriteRacket       *string `json:"favoriteRacket,omitempty"`
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/register", input, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CurrentUser fetches the authenticated account and refreshes the cached copy.
func (c *Client) CurrentUser(ctx context.Context) (models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/user", nil, &user); err != nil {
		return models.User{}, err
	}
	if c.sessions != nil {
		if err := c.sessions.SetUser(user); err != nil {
			return models.User{}, err
		}
	}
	return user, nil
}

// RefreshToken rotates the bearer token and persists the replacement.
func (c *Client) RefreshToken(ctx context.Context) (UserToken, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodGet, "/auth/refresh-token", nil, &resp); err != nil {
		return UserToken{}, err
	}
	if c.sessions != nil {
		if err := c.sessions.SetToken(resp.UserToken.Token); err != nil {
			return UserToken{}, err
		}
	}
	return resp.UserToken, nil
}

// Logout invalidates the server-side token. The local session is cleared
// regardless of the outcome, so a dead backend cannot trap a stale login.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	if c.sessions != nil {
		if clearErr := c.sessions.Clear(); clearErr != nil && err == nil {
			err = clearErr
		}
	}
	return err
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (c *Client) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	return c.do(ctx, http.MethodPut, "/auth/change-password", input, nil)
}
