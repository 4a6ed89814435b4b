package http

import (
	"encoding/json"
	"net/http"

	"financeflow/internal/core"
)

type profileResponse struct {
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
	Budget   string `json:"budget"`
}

type profileUpdatePayload struct {
	Currency string     `json:"currency"`
	Budget   core.Money `json:"budget"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, profileResponse{
		Currency: s.profile.Currency(),
		Symbol:   s.profile.Symbol(),
		Budget:   s.profile.Budget().StringFixed(),
	})
}

// handleUpdateProfile is the settings collaborator's surface; the ledger
// engine itself never writes the profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var payload profileUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := s.profile.Update(payload.Currency, payload.Budget); err != nil {
		writeCondition(w, r, err)
		return
	}
	s.handleGetProfile(w, r)
}
