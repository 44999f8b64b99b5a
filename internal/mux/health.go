package mux

import "net/http"

type healthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	ActiveSessions int    `json:"active_sessions"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:         "OK",
			Version:        m.version,
			ActiveSessions: m.pitBoss.ActiveSessions(),
		})
	}
}
