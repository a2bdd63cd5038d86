package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mara2525/clearpath-health-backend/internal/metrics"
	"github.com/mara2525/clearpath-health-backend/internal/scoring"
	"github.com/mara2525/clearpath-health-backend/internal/session"
)

// recommendationItem is one ranked plan with its display extras.
type recommendationItem struct {
	scoring.Result
	PlanName   string   `json:"planName"`
	Highlights []string `json:"highlights"`
}

type recommendationsResponse struct {
	Results   []recommendationItem `json:"results"`
	CreatedAt time.Time            `json:"createdAt"`
}

// ─── POST /api/session/{sessionID}/recommendations ────────────────────────────

// handleCreateRecommendations scores every catalog plan against the submitted
// questionnaire profile and caches the outcome for the session. Unrecognized
// enum values in the profile are not an error — they just earn no adjustment.
func (s *Server) handleCreateRecommendations(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var profile scoring.Profile
	if !decode(w, r, &profile) {
		return
	}

	results := scoring.ScorePlans(profile, s.catalog.Plans())
	metrics.ScoringRuns.Inc()

	rec := session.Recommendations{
		Profile:   profile,
		Results:   results,
		CreatedAt: time.Now().UTC(),
	}

	// Cache for later GETs. A store failure is logged, not surfaced — the
	// client already has the results in hand.
	if err := s.sessions.SaveRecommendations(r.Context(), sessionID, rec); err != nil {
		s.logger.Warn("recommendations: cache write failed",
			"session_id", sessionID,
			"error", err,
			"request_id", middleware.GetReqID(r.Context()),
		)
	}

	respond(w, http.StatusOK, s.recommendationsView(rec))
}

// ─── GET /api/session/{sessionID}/recommendations ─────────────────────────────

func (s *Server) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	rec, ok, err := s.sessions.Recommendations(r.Context(), sessionID)
	if err != nil {
		s.respondInternalErr(w, r, fmt.Errorf("get recommendations: %w", err))
		return
	}
	if !ok {
		respondErr(w, http.StatusNotFound, "no recommendations for session")
		return
	}
	respond(w, http.StatusOK, s.recommendationsView(rec))
}

// recommendationsView joins cached results with plan names and highlights
// from the current catalog snapshot.
func (s *Server) recommendationsView(rec session.Recommendations) recommendationsResponse {
	items := make([]recommendationItem, 0, len(rec.Results))
	for _, result := range rec.Results {
		item := recommendationItem{Result: result, Highlights: []string{}}
		if plan, ok := s.catalog.PlanByID(result.PlanID); ok {
			item.PlanName = plan.PlanName
			if h := scoring.ComputeHighlights(plan); h != nil {
				item.Highlights = h
			}
		}
		items = append(items, item)
	}
	return recommendationsResponse{Results: items, CreatedAt: rec.CreatedAt}
}
