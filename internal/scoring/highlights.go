package scoring

import "github.com/mara2525/clearpath-health-backend/internal/catalog"

// Highlight labels, in rule-priority order. The order is load-bearing:
// ComputeHighlights evaluates rules first to last and truncates after three
// matches, so it must stay byte-identical to the frontend's highlights.ts.
const (
	HighlightLowDeductible      = "Low Deductible"
	HighlightFreePreventiveCare = "Free Preventive Care"
	HighlightFreeTelehealth     = "Free Telehealth"
	HighlightAffordableGenerics = "Affordable Generics"
	HighlightLowPCPCopay        = "Low PCP Copay"
	HighlightHSAEligible        = "HSA-Eligible"
	HighlightControlledOOP      = "Controlled Out-of-Pocket"
)

// maxHighlights caps how many labels a plan card shows.
const maxHighlights = 3

// ComputeHighlights returns up to three qualifying highlight labels for a
// plan, in fixed rule order — never re-sorted by strength.
func ComputeHighlights(plan catalog.Plan) []string {
	var highlights []string

	if plan.Deductible.Single <= 500 {
		highlights = append(highlights, HighlightLowDeductible)
	}
	if plan.PreventiveCare == "$0" {
		highlights = append(highlights, HighlightFreePreventiveCare)
	}
	if tele, ok := plan.Telehealth.Amount(); ok && tele == 0 {
		highlights = append(highlights, HighlightFreeTelehealth)
	}
	if generic, ok := plan.RxBenefits.Generic.Amount(); ok && generic <= 10 {
		highlights = append(highlights, HighlightAffordableGenerics)
	}
	if copay, ok := plan.PCPOfficeVisit.Amount(); ok && copay <= 20 {
		highlights = append(highlights, HighlightLowPCPCopay)
	}
	if plan.HSAContribution != 0 {
		highlights = append(highlights, HighlightHSAEligible)
	}
	if plan.OutOfPocketMax.Single <= 6000 {
		highlights = append(highlights, HighlightControlledOOP)
	}

	if len(highlights) > maxHighlights {
		highlights = highlights[:maxHighlights]
	}
	return highlights
}

// PlanHighlight is the aggregate highlight view for one plan, used by
// comparison and card surfaces.
type PlanHighlight struct {
	PlanID            string   `json:"planId"`
	Highlights        []string `json:"highlights"`
	LowDeductible     bool     `json:"lowDeductible"`
	LowPremium        bool     `json:"lowPremium"`
	CoverageBreadth   bool     `json:"coverageBreadth"`
	PrescriptionValue bool     `json:"prescriptionValue"`
}

// PlanHighlights assembles the aggregate highlight flags for a plan.
// LowPremium is always false: premium data is carried in a separate table
// and is not part of the highlight rules.
func PlanHighlights(plan catalog.Plan) PlanHighlight {
	generic, genericFixed := plan.RxBenefits.Generic.Amount()

	return PlanHighlight{
		PlanID:            plan.PlanID,
		Highlights:        ComputeHighlights(plan),
		LowDeductible:     plan.Deductible.Single <= 500,
		LowPremium:        false,
		CoverageBreadth:   plan.OutOfPocketMax.Single <= 8000,
		PrescriptionValue: genericFixed && generic <= 10,
	}
}
