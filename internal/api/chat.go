package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mara2525/clearpath-health-backend/internal/session"
)

// ─── POST /api/session/{sessionID}/chat ───────────────────────────────────────

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
	IsDemo   bool   `json:"is_demo"`
}

// handleChat answers one chat message through the assistant orchestrator and
// records both turns in the session history. History writes are best effort:
// a store failure is logged but never fails the chat response, matching the
// fire-and-forget behavior users already rely on.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req chatRequest
	if !decode(w, r, &req) {
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		respondErr(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	// The session's stored mode preference overrides the env default.
	// A store failure here degrades to "no override" rather than failing.
	mode, err := s.sessions.Mode(r.Context(), sessionID)
	if err != nil {
		s.logger.Warn("chat: mode lookup failed, using default",
			"session_id", sessionID,
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
	}

	s.appendHistory(r, sessionID, session.RoleUser, message)

	result := s.assistant.Respond(r.Context(), sessionID, message, mode)

	s.appendHistory(r, sessionID, session.RoleAssistant, result.Response)

	respond(w, http.StatusOK, chatResponse{
		Response: result.Response,
		IsDemo:   result.IsDemo,
	})
}

// appendHistory stores one chat turn, logging failures without surfacing them.
func (s *Server) appendHistory(r *http.Request, sessionID string, role session.Role, content string) {
	m := session.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.sessions.AppendMessage(r.Context(), sessionID, m); err != nil {
		s.logger.Warn("chat: failed to append history",
			"session_id", sessionID,
			"role", role,
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
	}
}

// ─── GET /api/session/{sessionID}/chat ────────────────────────────────────────

type chatHistoryResponse struct {
	Messages []session.Message `json:"messages"`
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := s.sessions.History(r.Context(), sessionID)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("chat history: %w", err))
		return
	}
	if messages == nil {
		messages = []session.Message{}
	}
	respond(w, http.StatusOK, chatHistoryResponse{Messages: messages})
}

// ─── DELETE /api/session/{sessionID}/chat ─────────────────────────────────────

func (s *Server) handleClearChat(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.sessions.ClearHistory(r.Context(), sessionID); err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("clear chat: %w", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ─── GET /api/highlights ──────────────────────────────────────────────────────

type highlightsResponse struct {
	Providers []string `json:"providers"`
	Plans     []string `json:"plans"`
}

// handleGetHighlights exposes the shared highlight state so the presentation
// layer can emphasize the entities the assistant last referenced.
func (s *Server) handleGetHighlights(w http.ResponseWriter, r *http.Request) {
	providers, plans := s.highlights.Snapshot()
	respond(w, http.StatusOK, highlightsResponse{
		Providers: providers,
		Plans:     plans,
	})
}
