// Package session provides the session-scoped key/value persistence the chat
// and guided flows rely on: chat history, cached questionnaire
// recommendations, and the per-session assistant-mode override. The core
// treats it as opaque get/set — a lookup miss is an empty value, never an
// error.
package session

import (
	"context"
	"time"

	"github.com/mara2525/clearpath-health-backend/internal/assistant"
	"github.com/mara2525/clearpath-health-backend/internal/scoring"
)

// Role identifies who authored a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn, stored as session history.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// Recommendations is the cached outcome of one questionnaire run: the profile
// the user submitted and the ranked results it produced.
type Recommendations struct {
	Profile   scoring.Profile  `json:"profile"`
	Results   []scoring.Result `json:"results"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Store is the session persistence collaborator. The concrete implementation
// is Redis-backed; tests use a stub or miniredis.
type Store interface {
	// AppendMessage appends one message to the session's chat history.
	AppendMessage(ctx context.Context, sessionID string, m Message) error

	// History returns the session's chat history in insertion order.
	// A session with no history yields an empty slice.
	History(ctx context.Context, sessionID string) ([]Message, error)

	// ClearHistory removes the session's chat history.
	ClearHistory(ctx context.Context, sessionID string) error

	// SaveRecommendations caches the latest questionnaire outcome,
	// replacing any previous one.
	SaveRecommendations(ctx context.Context, sessionID string, rec Recommendations) error

	// Recommendations returns the cached outcome. The boolean is false when
	// the session has none.
	Recommendations(ctx context.Context, sessionID string) (Recommendations, bool, error)

	// SetMode stores the session's assistant-mode override. ModeAuto clears
	// the override.
	SetMode(ctx context.Context, sessionID string, mode assistant.Mode) error

	// Mode returns the session's assistant-mode override, ModeAuto when none
	// is set.
	Mode(ctx context.Context, sessionID string) (assistant.Mode, error)

	// Reset drops everything stored for the session.
	Reset(ctx context.Context, sessionID string) error
}
