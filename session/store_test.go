package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/MargonDiego/padel-frontend/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestHydrateMissingFileIsFreshSession(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := s.Hydrate(); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if s.Authenticated() {
		t.Fatal("fresh session reports authenticated")
	}
}

func TestSaveLoginPersistsAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path)
	user := models.User{ID: 4, Username: "carla", UserRoleID: models.RolePlayer}
	if err := s.SaveLogin("tok-123", user); err != nil {
		t.Fatalf("SaveLogin: %v", err)
	}

	reloaded := NewStore(path)
	if err := reloaded.Hydrate(); err != nil {
		t.Fatalf("Hydrate: %v", err)
	}
	if reloaded.Token() != "tok-123" {
		t.Errorf("token = %q, want tok-123", reloaded.Token())
	}
	got := reloaded.User()
	if got == nil || got.Username != "carla" {
		t.Errorf("user = %+v, want carla", got)
	}
}

func TestUserReturnsCopy(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := s.SaveLogin("tok", models.User{ID: 1, Name: "Ana"}); err != nil {
		t.Fatalf("SaveLogin: %v", err)
	}
	u := s.User()
	u.Name = "mutated"
	if s.User().Name != "Ana" {
		t.Fatal("mutating the returned user leaked into the store")
	}
}

func TestClearKeepsTheme(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err := s.SetThemeMode("dark"); err != nil {
		t.Fatalf("SetThemeMode: %v", err)
	}
	if err := s.SaveLogin("tok", models.User{ID: 1}); err != nil {
		t.Fatalf("SaveLogin: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Authenticated() || s.User() != nil {
		t.Fatal("session survived Clear")
	}
	if s.ThemeMode() != "dark" {
		t.Errorf("theme = %q, want dark to survive logout", s.ThemeMode())
	}
}

func TestTokenValid(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	s := NewStoreWithClock(filepath.Join(t.TempDir(), "session.json"), clock)

	if s.TokenValid() {
		t.Fatal("empty session reports a valid token")
	}

	if err := s.SetToken(signedToken(t, now.Add(time.Hour))); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if !s.TokenValid() {
		t.Fatal("unexpired token reported invalid")
	}

	clock.Advance(2 * time.Hour)
	if s.TokenValid() {
		t.Fatal("expired token reported valid")
	}

	if err := s.SetToken("not-a-jwt"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if s.TokenValid() {
		t.Fatal("malformed token reported valid")
	}
}
