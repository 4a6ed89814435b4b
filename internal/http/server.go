// Package http exposes the core contract to UI collaborators as a JSON API:
// expense intents, monthly summaries, session and profile management.
package http

import (
	"net/http"
	"time"

	"financeflow/internal/identity"
	applog "financeflow/internal/log"
	"financeflow/internal/profile"
	"financeflow/internal/services"
)

type Server struct {
	*http.Server

	svc      *services.LedgerService
	provider identity.Provider
	selector *identity.Selector
	profile  *profile.Profile
}

func NewServer(addr string, svc *services.LedgerService, provider identity.Provider, selector *identity.Selector, prof *profile.Profile, logger *applog.Logger) *Server {
	s := &Server{
		svc:      svc,
		provider: provider,
		selector: selector,
		profile:  prof,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/expenses", s.handleSaveExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("POST /api/session", s.handleSignIn)
	mux.HandleFunc("DELETE /api/session", s.handleSignOut)
	mux.HandleFunc("GET /api/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /api/profile", s.handleUpdateProfile)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	handler := applog.Middleware(logger.WithComponent(applog.ComponentHTTP))(mux)

	s.Server = &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
