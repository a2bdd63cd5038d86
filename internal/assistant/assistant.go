// Package assistant implements the chat decision engine: intent matching
// against the canned Q&A corpus, response formatting with catalog references,
// and the orchestrator that decides per message whether to consult the live
// webhook or answer from the corpus. Every failure mode degrades to a
// deterministic local answer — the only externally visible signal is the
// IsDemo flag.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mara2525/clearpath-health-backend/internal/catalog"
	"github.com/mara2525/clearpath-health-backend/internal/metrics"
)

// Mode is a per-client override of the serving mode. Stored per session; the
// empty value defers to the environment default.
type Mode string

const (
	ModeAuto Mode = ""     // no override, use the configured default
	ModeDemo Mode = "demo" // force the corpus path
	ModeLive Mode = "ai"   // force the webhook path
)

// ParseMode validates a mode string from client input.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeDemo, ModeLive:
		return Mode(s), nil
	}
	return ModeAuto, fmt.Errorf("assistant: unknown mode %q", s)
}

// Publisher is the narrow write interface to the shared highlight state.
// Satisfied by *highlight.Registry.
type Publisher interface {
	Set(providers, plans []string)
	Clear()
}

// Result is the orchestrator's answer to one chat message. IsDemo reports
// whether the response came from the local corpus rather than the live
// endpoint — including when a live call failed and was downgraded.
type Result struct {
	Response string `json:"response"`
	IsDemo   bool   `json:"is_demo"`
}

// unprocessableAnswer stands in when the live endpoint returns a body with no
// usable answer text.
const unprocessableAnswer = "I could not process that request. Please try again."

// Assistant orchestrates chat responses.
type Assistant struct {
	catalog       *catalog.Catalog
	remote        Remote // nil when no webhook is configured
	highlights    Publisher
	liveByDefault bool
	logger        *slog.Logger
}

// New wires the orchestrator. remote may be nil, in which case every message
// takes the demo path regardless of mode. liveByDefault is the
// environment-level default; a per-message Mode override beats it.
func New(cat *catalog.Catalog, remote Remote, highlights Publisher, liveByDefault bool, logger *slog.Logger) *Assistant {
	return &Assistant{
		catalog:       cat,
		remote:        remote,
		highlights:    highlights,
		liveByDefault: liveByDefault,
		logger:        logger,
	}
}

// Respond answers one chat message. The override (usually the session's
// stored mode preference) takes precedence over the environment default.
func (a *Assistant) Respond(ctx context.Context, sessionID, message string, override Mode) Result {
	useRemote := a.liveByDefault
	switch override {
	case ModeDemo:
		useRemote = false
	case ModeLive:
		useRemote = true
	}

	if !useRemote || a.remote == nil {
		metrics.AssistantRequests.WithLabelValues("demo").Inc()
		return a.respondFromCorpus(message)
	}

	reply, err := a.remote.Send(ctx, sessionID, message)
	if err != nil {
		// Transport error, bad status, or malformed body — downgrade to the
		// demo path transparently.
		a.logger.Warn("assistant: webhook failed, falling back to demo corpus",
			"session_id", sessionID,
			"error", err,
		)
		metrics.WebhookFallbacks.Inc()
		metrics.AssistantRequests.WithLabelValues("demo").Inc()
		return a.respondFromCorpus(message)
	}

	metrics.AssistantRequests.WithLabelValues("live").Inc()

	answer := reply.Answer
	if answer == "" {
		answer = unprocessableAnswer
	}

	a.highlights.Set(reply.Providers, reply.Plans)
	return Result{
		Response: FormatResponse(a.catalog, answer, reply.Providers, reply.Plans),
		IsDemo:   false,
	}
}

// respondFromCorpus is the demo path: intent-match against the Q&A corpus,
// or a canned suggestion list when nothing matches.
func (a *Assistant) respondFromCorpus(message string) Result {
	corpus := a.catalog.QA()

	match, ok := BestMatch(message, corpus)
	if !ok {
		a.highlights.Clear()
		return Result{Response: noMatchResponse(corpus), IsDemo: true}
	}

	a.highlights.Set(match.Providers, match.Plans)
	return Result{
		Response: FormatResponse(a.catalog, match.Answer, match.Providers, match.Plans),
		IsDemo:   true,
	}
}

// noMatchResponse lists the first three corpus questions as suggestions.
func noMatchResponse(corpus []catalog.QAEntry) string {
	n := min(3, len(corpus))
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, corpus[i].Question))
	}
	return "I don't have information on that specific question yet. Here are some questions I can help with:\n\n" +
		strings.Join(lines, "\n")
}
