package mux

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (ts *testServer) lobby(t *testing.T) *session.Session {
	t.Helper()

	s := session.New(session.MauMau, "424242", session.Settings{
		MaxPlayers:         4,
		DeckSize:           32,
		NumberOfStartCards: 5,
	})
	require.NoError(t, ts.store.Create(context.Background(), s))
	return s
}

func (ts *testServer) dial(sessionID, token string) (*websocket.Conn, *http.Response, error) {
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/ws/" + sessionID + "?token=" + url.QueryEscape(token)
	return websocket.DefaultDialer.Dial(u, nil)
}

func readMessage(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

// connected round-trips a read-only action so the player is known to be registered
func connected(t *testing.T, ts *testServer, sessionID, token string) *websocket.Conn {
	t.Helper()

	conn, _, err := ts.dial(sessionID, token)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"action": "request_lobby_data"}))
	assert.Equal(t, "lobby_data", readMessage(t, conn)["action"])
	return conn
}

func TestGameWS_Broadcast(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	s := ts.lobby(t)

	p1, token1 := player(t)
	_, token2 := player(t)

	c1 := connected(t, ts, s.ID, token1)
	c2 := connected(t, ts, s.ID, token2)

	require.NoError(t, c1.WriteJSON(map[string]interface{}{"action": "join"}))
	for _, c := range []*websocket.Conn{c1, c2} {
		msg := readMessage(t, c)
		a.Equal("join", msg["action"])
		a.Equal(p1, msg["player"])
		a.Equal([]interface{}{p1}, msg["players"])
	}

	// rule errors only go to the requester
	require.NoError(t, c2.WriteJSON(map[string]interface{}{"action": "ready", "ready": true}))
	a.Equal("player_not_in_lobby", readMessage(t, c2)["error"])

	saved, err := ts.store.Load(context.Background(), s.ID)
	require.NoError(t, err)
	a.Len(saved.Players, 1)
}

func TestGameWS_MalformedMessageClosesConnection(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	s := ts.lobby(t)
	_, token := player(t)

	conn := connected(t, ts, s.ID, token)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	a.Equal("unknown_error", readMessage(t, conn)["error"])

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	a.True(websocket.IsCloseError(err, websocket.CloseNormalClosure), "expected a close frame, got %v", err)
}

func TestGameWS_Rejected(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	s := ts.lobby(t)
	_, token := player(t)

	_, resp, err := ts.dial("missing", token)
	a.Error(err)
	if a.NotNil(resp) {
		a.Equal(http.StatusNotFound, resp.StatusCode)
	}

	_, resp, err = ts.dial(s.ID, "garbage")
	a.Error(err)
	if a.NotNil(resp) {
		a.Equal(http.StatusUnauthorized, resp.StatusCode)
	}
}
