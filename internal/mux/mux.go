package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/jwt"
	"github.com/phillipc0/PP-CGA-BE-Public/internal/rng"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/room"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/store"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version   string
	recaptcha recaptcha
	pitBoss   *room.PitBoss
	store     store.Store
	rng       rng.Generator

	// store for testing purposes
	authRouter *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, pitBoss *room.PitBoss, s store.Store) *Mux {
	this := &Mux{
		Router:    gmux.NewRouter(),
		version:   version,
		pitBoss:   pitBoss,
		store:     s,
		rng:       rng.Crypto{},
		recaptcha: newRecaptcha(),
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires a player token
	{
		r := this.authRouter
		r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())
		r.Methods(http.MethodGet).Path("/game/{code:[0-9]{6}}").Handler(this.getGameCode())
		r.Methods(http.MethodGet).Path("/game/ws/{id}").Handler(this.getGameWS())
	}

	return this
}

// authMiddleware accepts the token as a query parameter (websockets can't set headers)
// or in the Authorization header, with or without the bearer prefix
func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("token")
		if token == "" {
			token = r.FormValue("access_token")
		}

		if token == "" {
			authHeader := strings.Fields(r.Header.Get("Authorization"))
			switch {
			case len(authHeader) == 1:
				token = authHeader[0]
			case len(authHeader) == 2 && strings.ToLower(authHeader[0]) == "bearer":
				token = authHeader[1]
			default:
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}
		}

		playerID, err := jwt.ValidPlayerID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, playerID)
		w.Header().Set("CGA-Player-ID", playerID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func playerFromContext(ctx context.Context) string {
	playerID, _ := ctx.Value(ctxPlayerKey).(string)
	return playerID
}
