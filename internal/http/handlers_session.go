package http

import (
	"encoding/json"
	"net/http"
)

type signInPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// handleSignIn authenticates against the provider and applies the identity
// transition synchronously, so the response reflects the new tier. The feed
// consumer sees the same uid again and no-ops.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var payload signInPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	id, err := s.provider.SignIn(r.Context(), payload.Email, payload.Password)
	if err != nil {
		writeCondition(w, r, err)
		return
	}

	if err := s.selector.Apply(r.Context(), &id); err != nil {
		writeCondition(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{UID: id.UID, Email: id.Email, Name: id.Name})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if err := s.provider.SignOut(r.Context()); err != nil {
		writeCondition(w, r, err)
		return
	}

	if err := s.selector.Apply(r.Context(), nil); err != nil {
		writeCondition(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
