package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mara2525/clearpath-health-backend/internal/catalog"
	"github.com/mara2525/clearpath-health-backend/internal/scoring"
)

// planView is a plan enriched with its derived metal tier and highlights.
type planView struct {
	catalog.Plan
	DisplayName string   `json:"displayName"`
	MetalTier   string   `json:"metalTier"`
	Highlights  []string `json:"highlights"`
}

func newPlanView(p catalog.Plan) planView {
	highlights := scoring.ComputeHighlights(p)
	if highlights == nil {
		highlights = []string{}
	}
	return planView{
		Plan:        p,
		DisplayName: catalog.DisplayName(p.PlanName),
		MetalTier:   scoring.MetalTier(p.PlanID),
		Highlights:  highlights,
	}
}

// ─── GET /api/plans ───────────────────────────────────────────────────────────

// handleListPlans returns every plan in the fixed comparison order.
func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans := s.catalog.Plans()
	views := make([]planView, 0, len(plans))
	for _, p := range plans {
		views = append(views, newPlanView(p))
	}
	respond(w, http.StatusOK, map[string]any{"plans": views})
}

// ─── GET /api/plans/{planID} ──────────────────────────────────────────────────

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	plan, ok := s.catalog.PlanByID(planID)
	if !ok {
		respondErr(w, http.StatusNotFound, "plan not found")
		return
	}
	respond(w, http.StatusOK, newPlanView(plan))
}

// ─── GET /api/plans/{planID}/providers ────────────────────────────────────────

// handlePlanProviders lists the providers that accept a plan.
func (s *Server) handlePlanProviders(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	if _, ok := s.catalog.PlanByID(planID); !ok {
		respondErr(w, http.StatusNotFound, "plan not found")
		return
	}

	providers := s.catalog.ProvidersByPlan(planID)
	if providers == nil {
		providers = []catalog.Provider{}
	}
	respond(w, http.StatusOK, map[string]any{"providers": providers})
}

// ─── GET /api/premiums/{planID}?coverage=&status= ─────────────────────────────

type premiumResponse struct {
	PlanID    string  `json:"planId"`
	Year      int     `json:"year"`
	Coverage  string  `json:"coverage"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Formatted string  `json:"formatted"`
}

// handleGetPremium looks up the premium for a plan under a coverage type and
// employment status. Defaults: selfOnly / employed.
func (s *Server) handleGetPremium(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planID")

	coverage := catalog.CoverageType(r.URL.Query().Get("coverage"))
	if coverage == "" {
		coverage = catalog.CoverageSelfOnly
	}
	status := catalog.EmploymentStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = catalog.StatusEmployed
	}

	switch coverage {
	case catalog.CoverageSelfOnly, catalog.CoverageSelfPlusOne, catalog.CoverageSelfAndFamily:
	default:
		respondErr(w, http.StatusBadRequest, "coverage must be selfOnly, selfPlusOne, or selfAndFamily")
		return
	}
	switch status {
	case catalog.StatusEmployed, catalog.StatusRetired:
	default:
		respondErr(w, http.StatusBadRequest, "status must be employed or retired")
		return
	}

	amount, ok := s.catalog.Premium(planID, coverage, status)
	if !ok {
		respondErr(w, http.StatusNotFound, "no premium for plan")
		return
	}

	respond(w, http.StatusOK, premiumResponse{
		PlanID:    planID,
		Year:      s.catalog.PremiumYear(),
		Coverage:  string(coverage),
		Status:    string(status),
		Amount:    amount,
		Formatted: catalog.FormatPremium(amount, status),
	})
}
