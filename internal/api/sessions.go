package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mara2525/clearpath-health-backend/internal/assistant"
)

// ─── POST /api/session ────────────────────────────────────────────────────────

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

// handleCreateSession mints a fresh anonymous session ID. The browser keeps
// it in sessionStorage and sends it in the URL on all session-scoped routes.
// Nothing is written to the store until the session does something.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusCreated, createSessionResponse{
		SessionID: uuid.NewString(),
	})
}

// ─── POST /api/session/{sessionID}/restart ────────────────────────────────────

// handleRestartSession drops everything stored for the session: chat history,
// cached recommendations, and the mode override. The session ID itself stays
// valid.
func (s *Server) handleRestartSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.sessions.Reset(r.Context(), sessionID); err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("restart session: %w", err))
		return
	}
	respond(w, http.StatusOK, map[string]string{"session_id": sessionID})
}

// ─── GET/PUT /api/session/{sessionID}/mode ────────────────────────────────────

type modePayload struct {
	Mode string `json:"mode"`
}

// handleGetMode returns the session's assistant-mode override; empty means no
// override (the environment default applies).
func (s *Server) handleGetMode(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	mode, err := s.sessions.Mode(r.Context(), sessionID)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("get mode: %w", err))
		return
	}
	respond(w, http.StatusOK, modePayload{Mode: string(mode)})
}

// handleSetMode stores an assistant-mode override for the session: "demo"
// forces the corpus path, "ai" forces the webhook path, "" clears the
// override.
func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req modePayload
	if !decode(w, r, &req) {
		return
	}

	mode, err := assistant.ParseMode(req.Mode)
	if err != nil {
		respondErr(w, http.StatusBadRequest, `mode must be "demo", "ai", or ""`)
		return
	}

	if err := s.sessions.SetMode(r.Context(), sessionID, mode); err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("set mode: %w", err))
		return
	}
	respond(w, http.StatusOK, modePayload{Mode: string(mode)})
}
