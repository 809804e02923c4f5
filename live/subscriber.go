// Package live subscribes to a tournament's WebSocket room and feeds match
// and bracket updates back into the caller's local state.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MargonDiego/padel-frontend/api"
	"github.com/MargonDiego/padel-frontend/models"
	"github.com/gorilla/websocket"
)

// Deadlines match the hub's ping cadence: the server pings every ~54s, so a
// read must land at least once per pongWait.
const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// Message is the hub's wire envelope.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	RoomID  string          `json:"room_id,omitempty"`
}

const (
	MessageMatchUpdated   = "MATCH_UPDATED"
	MessageBracketUpdated = "BRACKET_UPDATED"
)

// Subscriber holds one room connection. Handlers run on the read loop
// goroutine; keep them short.
type Subscriber struct {
	conn   *websocket.Conn
	logger *slog.Logger

	// OnMatchUpdated receives single-match updates, typically merged into the
	// local match list.
	OnMatchUpdated func(models.Match)
	// OnBracketUpdated receives a full regenerated bracket, which replaces
	// the local match collection.
	OnBracketUpdated func([]models.Match)
}

// Dial connects to the tournament's room. baseURL is the API base; the http
// scheme is rewritten to ws, the /api path prefix drops (rooms hang off the
// server root) and the bearer token travels in the header.
func Dial(ctx context.Context, baseURL string, tournamentID int, tokens api.TokenSource, logger *slog.Logger) (*Subscriber, error) {
	wsURL := strings.TrimRight(baseURL, "/")
	wsURL = strings.TrimSuffix(wsURL, "/api")
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL = fmt.Sprintf("%s/ws/tournaments/%d", wsURL, tournamentID)

	header := http.Header{}
	if tokens != nil {
		if token := tokens.Token(); token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, fmt.Errorf("dial tournament room %d: %w", tournamentID, err)
	}
	return &Subscriber{conn: conn, logger: logger}, nil
}

// Listen reads messages until the context is cancelled or the connection
// drops. Unknown message types are logged and skipped.
func (s *Subscriber) Listen(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			s.conn.Close()
		case <-done:
		}
	}()

	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPingHandler(func(appData string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		return s.conn.WriteMessage(websocket.PongMessage, []byte(appData))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read room message: %w", err)
		}
		s.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.logger.Warn("malformed room message", slog.Any("error", err))
			continue
		}
		s.dispatch(msg)
	}
}

func (s *Subscriber) dispatch(msg Message) {
	switch msg.Type {
	case MessageMatchUpdated:
		if s.OnMatchUpdated == nil {
			return
		}
		var match models.Match
		if err := json.Unmarshal(msg.Payload, &match); err != nil {
			s.logger.Warn("bad MATCH_UPDATED payload", slog.Any("error", err))
			return
		}
		s.OnMatchUpdated(match)

	case MessageBracketUpdated:
		if s.OnBracketUpdated == nil {
			return
		}
		var matches []models.Match
		if err := json.Unmarshal(msg.Payload, &matches); err != nil {
			s.logger.Warn("bad BRACKET_UPDATED payload", slog.Any("error", err))
			return
		}
		s.OnBracketUpdated(matches)

	default:
		s.logger.Debug("ignoring room message", slog.String("type", msg.Type))
	}
}
