package mux

import (
	"errors"
	"net/http"
	"time"

	gmux "github.com/gorilla/mux"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/util"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/room/gamefactory"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
	"github.com/sirupsen/logrus"
)

type postGamePayload struct {
	Type               string           `json:"type"`
	DeckSize           int              `json:"deck_size"`
	NumberOfStartCards int              `json:"number_of_start_cards"`
	Gamemode           session.Gamemode `json:"gamemode"`
	RecaptchaToken     string           `json:"recaptcha_token"`
}

type gameResponse struct {
	ID                 string           `json:"id"`
	Type               session.Variant  `json:"type"`
	Code               string           `json:"code"`
	Created            time.Time        `json:"created"`
	Updated            time.Time        `json:"updated"`
	MaxPlayers         int              `json:"max_players"`
	DeckSize           int              `json:"deck_size"`
	NumberOfStartCards int              `json:"number_of_start_cards,omitempty"`
	Gamemode           session.Gamemode `json:"gamemode,omitempty"`
}

func newGameResponse(s *session.Session) gameResponse {
	return gameResponse{
		ID:                 s.ID,
		Type:               s.Type,
		Code:               s.Code,
		Created:            s.Created,
		Updated:            s.Updated,
		MaxPlayers:         s.Settings.MaxPlayers,
		DeckSize:           s.Settings.DeckSize,
		NumberOfStartCards: s.Settings.NumberOfStartCards,
		Gamemode:           s.Settings.Gamemode,
	}
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postGamePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if m.recaptcha != nil {
			if err := m.recaptcha.Verify(pp.RecaptchaToken); err != nil {
				writeJSONError(w, http.StatusBadRequest, err)
				return
			}
		}

		factory, err := gamefactory.Get(pp.Type)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		settings, err := factory.Settings(gamefactory.Options{
			DeckSize:           pp.DeckSize,
			NumberOfStartCards: pp.NumberOfStartCards,
			Gamemode:           pp.Gamemode,
		})
		if err != nil {
			var fe gamefactory.Error
			if errors.As(err, &fe) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		code, err := util.JoinCode(m.rng, func(code string) (bool, error) {
			return m.store.CodeExists(r.Context(), code)
		})
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		s := session.New(factory.Variant(), code, settings)
		if err := m.store.Create(r.Context(), s); err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		logrus.WithFields(logrus.Fields{
			"session": s.ID,
			"type":    s.Type,
			"player":  playerFromContext(r.Context()),
		}).Info("session created")

		writeJSON(w, http.StatusCreated, newGameResponse(s))
	}
}

func (m *Mux) getGameCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := m.store.LoadByCode(r.Context(), gmux.Vars(r)["code"])
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, newGameResponse(s))
	}
}
