package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mara2525/clearpath-health-backend/internal/catalog"
)

// ─── GET /api/providers?q= ────────────────────────────────────────────────────

// handleSearchProviders searches providers by name, specialty, or city.
// Without a query it lists everyone.
func (s *Server) handleSearchProviders(w http.ResponseWriter, r *http.Request) {
	providers := s.catalog.SearchProviders(r.URL.Query().Get("q"))
	if providers == nil {
		providers = []catalog.Provider{}
	}
	respond(w, http.StatusOK, map[string]any{"providers": providers})
}

// ─── GET /api/providers/{providerID} ──────────────────────────────────────────

type providerDetailResponse struct {
	catalog.Provider
	// Plans resolves the provider's accepted plan IDs to full plan records;
	// IDs that no longer exist in the catalog are dropped.
	Plans []catalog.Plan `json:"plans"`
}

func (s *Server) handleGetProvider(w http.ResponseWriter, r *http.Request) {
	providerID := chi.URLParam(r, "providerID")

	provider, ok := s.catalog.ProviderByID(providerID)
	if !ok {
		respondErr(w, http.StatusNotFound, "provider not found")
		return
	}

	plans := s.catalog.PlansForProvider(providerID)
	if plans == nil {
		plans = []catalog.Plan{}
	}

	respond(w, http.StatusOK, providerDetailResponse{
		Provider: provider,
		Plans:    plans,
	})
}
