package mux

import (
	"errors"
	"testing"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
	"github.com/stretchr/testify/assert"
)

type fakeRecaptcha struct {
	token string
}

func (f fakeRecaptcha) Verify(token string) error {
	if token != f.token {
		return errors.New("invalid recaptcha token")
	}

	return nil
}

func TestPostGame_MauMau(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	_, token := player(t)

	var resp gameResponse
	assertPost(t, ts.Server, "/game", map[string]interface{}{
		"type":                  "maumau",
		"deck_size":             32,
		"number_of_start_cards": 5,
	}, &resp, 201, token)

	a.Equal(session.MauMau, resp.Type)
	a.Regexp("^[0-9]{6}$", resp.Code)
	a.Equal(4, resp.MaxPlayers)
	a.Equal(32, resp.DeckSize)
	a.Equal(5, resp.NumberOfStartCards)
	a.NotEmpty(resp.ID)

	var byCode gameResponse
	assertGet(t, ts.Server, "/game/"+resp.Code, &byCode, 200, token)
	a.Equal(resp.ID, byCode.ID)
	a.Equal(resp.MaxPlayers, byCode.MaxPlayers)
}

func TestPostGame_Luegen(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)
	_, token := player(t)

	var resp gameResponse
	assertPost(t, ts.Server, "/game", map[string]interface{}{
		"type":      "luegen",
		"deck_size": 52,
		"gamemode":  "gamemode_alternative",
	}, &resp, 201, token)

	a.Equal(session.Luegen, resp.Type)
	a.Equal(8, resp.MaxPlayers)
	a.Equal(session.GamemodeAlternative, resp.Gamemode)
}

func TestPostGame_Invalid(t *testing.T) {
	ts := newTestServer(t)
	_, token := player(t)

	tests := []struct {
		name    string
		payload interface{}
		status  int
	}{
		{"unknown type", map[string]interface{}{"type": "poker", "deck_size": 32}, 400},
		{"bad deck size", map[string]interface{}{"type": "luegen", "deck_size": 40}, 400},
		{"bad start cards", map[string]interface{}{"type": "maumau", "deck_size": 32, "number_of_start_cards": 2}, 400},
		{"unknown field", map[string]interface{}{"type": "luegen", "deck_size": 32, "ante": 25}, 400},
		{"not json", "{", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errObj errorResponse
			assertPost(t, ts.Server, "/game", tt.payload, &errObj, tt.status, token)
			assert.Equal(t, tt.status, errObj.StatusCode)
		})
	}

	// requires a token
	assertPost(t, ts.Server, "/game", map[string]interface{}{"type": "luegen", "deck_size": 32}, nil, 401)
}

func TestPostGame_Recaptcha(t *testing.T) {
	ts := newTestServer(t)
	ts.mux.recaptcha = fakeRecaptcha{token: "human"}
	_, token := player(t)

	var errObj errorResponse
	assertPost(t, ts.Server, "/game", map[string]interface{}{
		"type":            "luegen",
		"deck_size":       32,
		"recaptcha_token": "robot",
	}, &errObj, 400, token)
	assert.Equal(t, "invalid recaptcha token", errObj.Message)

	assertPost(t, ts.Server, "/game", map[string]interface{}{
		"type":            "luegen",
		"deck_size":       32,
		"recaptcha_token": "human",
	}, nil, 201, token)
}

func TestGetGameCode_NotFound(t *testing.T) {
	ts := newTestServer(t)
	_, token := player(t)

	var errObj errorResponse
	assertGet(t, ts.Server, "/game/000000", &errObj, 404, token)
	assert.Equal(t, "Not Found", errObj.Message)

	// codes are exactly six digits
	assertGet(t, ts.Server, "/game/12345", nil, 404, token)
}
