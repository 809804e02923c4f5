// Package session holds the authenticated user's token and cached profile,
// the only cross-component shared mutable state in the client. It is hydrated
// from a state file on startup, cleared on logout or a 401, and read by
// everything else.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MargonDiego/padel-frontend/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"
)

// State is what gets persisted between runs.
type State struct {
	Token     string       `json:"token,omitempty"`
	User      *models.User `json:"user,omitempty"`
	ThemeMode string       `json:"theme_mode,omitempty"`
}

// Store is the process-wide session. Reads are open to any component; writes
// go through the api.SessionWriter surface, which only the auth operations
// hold.
type Store struct {
	path  string
	clock clockwork.Clock

	mu    sync.RWMutex
	state State
}

func NewStore(path string) *Store {
	return NewStoreWithClock(path, clockwork.NewRealClock())
}

// NewStoreWithClock injects the clock used for token expiry checks.
func NewStoreWithClock(path string, clock clockwork.Clock) *Store {
	return &Store{path: path, clock: clock}
}

// Hydrate loads the persisted state. A missing file is a fresh session, not
// an error.
func (s *Store) Hydrate() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read session state: %w", err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return fmt.Errorf("decode session state: %w", err)
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns a copy of the cached profile, or nil when logged out.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// TokenValid reports whether the stored token exists and its exp claim is in
// the future. The parse is unverified: the client holds no signing key, it
// only needs the expiry to decide whether a refresh is worth attempting.
func (s *Store) TokenValid() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.VerifyExpiresAt(s.clock.Now().Unix(), true)
}

func (s *Store) ThemeMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.ThemeMode
}

func (s *Store) SetThemeMode(mode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ThemeMode = mode
	return s.persistLocked()
}

// SaveLogin stores a fresh token and user after a successful login.
func (s *Store) SaveLogin(token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	s.state.User = &user
	return s.persistLocked()
}

func (s *Store) SetUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = &user
	return s.persistLocked()
}

func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = token
	return s.persistLocked()
}

// Clear drops the token and user on logout or a 401. The theme preference
// survives, it is not session data.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Token = ""
	s.state.User = nil
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}
