package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/MargonDiego/padel-frontend/models"
)

// memorySession is a hand stub for the session writer plus token source.
type memorySession struct {
	token   string
	user    *models.User
	cleared int
}

func (m *memorySession) Token() string { return m.token }

func (m *memorySession) SaveLogin(token string, user models.User) error {
	m.token = token
	m.user = &user
	return nil
}

func (m *memorySession) SetUser(user models.User) error {
	m.user = &user
	return nil
}

func (m *memorySession) SetToken(token string) error {
	m.token = token
	return nil
}

func (m *memorySession) Clear() error {
	m.token = ""
	m.user = nil
	m.cleared++
	return nil
}

func envelopeJSON(data any) string {
	raw, _ := json.Marshal(map[string]any{"success": true, "data": data})
	return string(raw)
}

func TestLoginPersistsSession(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		w.Write([]byte(envelopeJSON(map[string]any{
			"user":       map[string]any{"id": 4, "username": "carla", "userRoleId": 2},
			"user_token": map[string]any{"type": "bearer", "token": "tok-abc"},
		})))
	}))
	defer srv.Close()

	sess := &memorySession{}
	client := New(srv.URL, sess, WithSession(sess))

	resp, err := client.Login(context.Background(), "carla", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.UserToken.Token != "tok-abc" {
		t.Errorf("token = %q, want tok-abc", resp.UserToken.Token)
	}
	if gotBody["identity"] != "postman" {
		t.Errorf("identity = %q, want postman", gotBody["identity"])
	}
	if sess.token != "tok-abc" || sess.user == nil || sess.user.Username != "carla" {
		t.Errorf("session not persisted: token=%q user=%+v", sess.token, sess.user)
	}
}

func TestLoginFailureStoresNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"invalid credentials"}`))
	}))
	defer srv.Close()

	sess := &memorySession{}
	client := New(srv.URL, sess, WithSession(sess))

	_, err := client.Login(context.Background(), "carla", "wrong")
	if err == nil {
		t.Fatal("Login succeeded with bad credentials")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Message != "invalid credentials" {
		t.Fatalf("err = %v, want api error with server message", err)
	}
	if sess.token != "" || sess.user != nil {
		t.Fatalf("session written on failed login: %+v", sess)
	}
}

func TestLoginRejectsConcurrentSubmission(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var enterOnce sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		enterOnce.Do(func() { close(entered) })
		<-release
		w.Write([]byte(envelopeJSON(map[string]any{
			"user":       map[string]any{"id": 4, "username": "carla", "userRoleId": 2},
			"user_token": map[string]any{"type": "bearer", "token": "tok-abc"},
		})))
	}))
	defer srv.Close()

	sess := &memorySession{}
	client := New(srv.URL, sess, WithSession(sess))

	firstDone := make(chan error, 1)
	go func() {
		_, err := client.Login(context.Background(), "carla", "secret123")
		firstDone <- err
	}()
	<-entered

	// The first submission is still waiting on the server; a duplicate is
	// rejected locally without reaching the wire.
	if _, err := client.Login(context.Background(), "carla", "secret123"); !errors.Is(err, ErrLoginInFlight) {
		t.Fatalf("second login err = %v, want ErrLoginInFlight", err)
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first login: %v", err)
	}
	if sess.token != "tok-abc" {
		t.Fatalf("first login did not persist the session: token=%q", sess.token)
	}

	// The guard releases once the first submission settles.
	if _, err := client.Login(context.Background(), "carla", "secret123"); err != nil {
		t.Fatalf("login after settle: %v", err)
	}
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(envelopeJSON(map[string]any{"id": 1, "username": "admin", "userRoleId": 1})))
	}))
	defer srv.Close()

	sess := &memorySession{token: "tok-abc"}
	client := New(srv.URL, sess, WithSession(sess))
	if _, err := client.CurrentUser(context.Background()); err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q, want Bearer tok-abc", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestUnauthorizedHookFiresOnceOutsideAuthPaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":"token expired"}`))
	}))
	defer srv.Close()

	hookCalls := 0
	sess := &memorySession{token: "stale"}
	client := New(srv.URL, sess,
		WithSession(sess),
		WithUnauthorizedHook(func() { hookCalls++ }))

	if _, _, err := client.ListTournaments(context.Background(), 1, 10, ""); err == nil {
		t.Fatal("expected 401 error")
	}
	if hookCalls != 1 {
		t.Fatalf("hook ran %d times, want 1", hookCalls)
	}

	// A failed login is a 401 too, but must not tear the session down.
	if _, err := client.Login(context.Background(), "x", "y"); err == nil {
		t.Fatal("expected login failure")
	}
	if hookCalls != 1 {
		t.Fatalf("hook ran %d times after login failure, want still 1", hookCalls)
	}
}

func TestUpdateProfileMergesSparseEcho(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode profile body: %v", err)
		}
		// The outgoing update must be snake_case.
		if _, ok := body["playing_hand"]; !ok {
			t.Errorf("playing_hand missing from update body: %v", body)
		}
		if _, ok := body["playingHand"]; ok {
			t.Errorf("camelCase key leaked into update body: %v", body)
		}
		// Echo back only a subset of fields.
		w.Write([]byte(envelopeJSON(map[string]any{
			"name":         "Carla R",
			"playing_hand": "left",
		})))
	}))
	defer srv.Close()

	sess := &memorySession{token: "tok"}
	client := New(srv.URL, sess, WithSession(sess))

	city := "Santiago"
	current := models.User{ID: 4, Username: "carla", Name: "Carla", City: &city}
	hand := "left"
	updated, err := client.UpdateProfile(context.Background(), current, ProfileUpdateInput{PlayingHand: &hand})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Carla R" {
		t.Errorf("name = %q, want Carla R", updated.Name)
	}
	if updated.DominantHand == nil || *updated.DominantHand != "left" {
		t.Errorf("dominant hand = %v, want left", updated.DominantHand)
	}
	// Fields absent from the echo keep their local value.
	if updated.City == nil || *updated.City != "Santiago" {
		t.Errorf("city = %v, want Santiago preserved", updated.City)
	}
	if updated.Username != "carla" || updated.ID != 4 {
		t.Errorf("identity fields lost: %+v", updated)
	}
	if sess.user == nil || sess.user.Name != "Carla R" {
		t.Errorf("merged user not persisted: %+v", sess.user)
	}
}

func TestPaginatedListDecodesMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "open" {
			t.Errorf("status query = %q, want open", got)
		}
		w.Write([]byte(envelopeJSON(map[string]any{
			"meta": map[string]int{"total": 12, "per_page": 10, "current_page": 1, "last_page": 2},
			"data": []map[string]any{{"id": 1, "name": "Apertura", "status": "open"}},
		})))
	}))
	defer srv.Close()

	sess := &memorySession{token: "tok"}
	client := New(srv.URL, sess)

	tournaments, meta, err := client.ListTournaments(context.Background(), 1, 10, models.TournamentOpen)
	if err != nil {
		t.Fatalf("ListTournaments: %v", err)
	}
	if len(tournaments) != 1 || tournaments[0].Name != "Apertura" {
		t.Fatalf("tournaments = %+v", tournaments)
	}
	if meta.Total != 12 || meta.LastPage != 2 {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestLogoutClearsSessionEvenOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"boom"}`))
	}))
	defer srv.Close()

	sess := &memorySession{token: "tok", user: &models.User{ID: 1}}
	client := New(srv.URL, sess, WithSession(sess))

	if err := client.Logout(context.Background()); err == nil {
		t.Fatal("expected server error")
	}
	if sess.cleared != 1 || sess.token != "" {
		t.Fatalf("session not cleared: %+v", sess)
	}
}
