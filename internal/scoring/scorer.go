// Package scoring implements the questionnaire-driven plan recommendation
// engine and the plan highlight rules. Both are pure functions over the
// in-memory catalog: no I/O, no hidden state, deterministic for identical
// inputs. The arithmetic mirrors the frontend's scoring.ts so that a plan
// scores identically no matter which side computes it.
package scoring

import (
	"sort"

	"github.com/mara2525/clearpath-health-backend/internal/catalog"
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Utilization levels: the self-reported frequency of healthcare use.
// Unrecognized values simply receive no deductible or out-of-pocket
// adjustment — permissive, never an error.
const (
	UtilizationLow    = "low"
	UtilizationMedium = "medium"
	UtilizationHigh   = "high"
)

// Prescription-needs buckets. Only "regular" and "heavy" influence scoring.
const (
	PrescriptionNone       = "none"
	PrescriptionOccasional = "occasional"
	PrescriptionRegular    = "regular"
	PrescriptionHeavy      = "heavy"
)

// Profile is one questionnaire submission. It is ephemeral: built when the
// user completes the guided flow, discarded or replaced on restart.
type Profile struct {
	AgeRange           string   `json:"ageRange"`
	HouseholdSize      string   `json:"householdSize"`
	UtilizationLevel   string   `json:"utilizationLevel"`
	PrescriptionNeeds  string   `json:"prescriptionNeeds"`
	PreferredProviders []string `json:"preferredProviders,omitempty"`
}

// Rank is the positional recommendation label. It derives from sort position,
// not from any absolute score threshold.
type Rank string

const (
	RankBest   Rank = "Best"
	RankBetter Rank = "Better"
	RankGood   Rank = "Good"
)

// Result is the scored output for a single plan.
type Result struct {
	PlanID    string  `json:"planId"`
	Score     float64 `json:"score"`
	Rank      Rank    `json:"rank"`
	MetalTier string  `json:"metalTier"`
}

// ─── SCORING ─────────────────────────────────────────────────────────────────

// ScorePlans scores every plan against the profile and returns results
// ordered by descending score, one per input plan. Ties keep input order
// (the sort is stable). Index 0 is "Best", index 1 "Better", the rest "Good".
// An empty plan slice yields an empty result slice.
func ScorePlans(profile Profile, plans []catalog.Plan) []Result {
	results := make([]Result, 0, len(plans))

	for _, plan := range plans {
		results = append(results, Result{
			PlanID: plan.PlanID,
			Score:  scorePlan(profile, plan),
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	for i := range results {
		switch i {
		case 0:
			results[i].Rank = RankBest
		case 1:
			results[i].Rank = RankBetter
		default:
			results[i].Rank = RankGood
		}
		results[i].MetalTier = MetalTier(results[i].PlanID)
	}

	return results
}

// scorePlan applies the cumulative adjustments to the base score of 100.
// No normalization or clamping of the total.
func scorePlan(profile Profile, plan catalog.Plan) float64 {
	score := 100.0

	// Deductible: infrequent users get the biggest reward for a low
	// deductible; heavy users are penalized by it but with a lower cap.
	deductible := plan.Deductible.Single
	switch profile.UtilizationLevel {
	case UtilizationLow:
		score += 30 - min(deductible/100, 30)
	case UtilizationMedium:
		score += 20 - min(deductible/100, 20)
	case UtilizationHigh:
		score -= min(deductible/100, 15)
	}

	// Out-of-pocket maximum matters most when utilization is high.
	if profile.UtilizationLevel == UtilizationHigh {
		score += 25 - min(plan.OutOfPocketMax.Single/500, 25)
	}

	// PCP copay bonus applies only to fixed dollar copays, never to
	// coinsurance descriptions.
	if copay, ok := plan.PCPOfficeVisit.Amount(); ok {
		score += max(30-copay*2, 0)
	}

	// Cheap generics only matter to users who fill prescriptions routinely.
	if profile.PrescriptionNeeds == PrescriptionRegular || profile.PrescriptionNeeds == PrescriptionHeavy {
		if generic, ok := plan.RxBenefits.Generic.Amount(); ok && generic < 15 {
			score += 20
		}
	}

	// Free telehealth.
	if tele, ok := plan.Telehealth.Amount(); ok && tele == 0 {
		score += 10
	}

	return score
}

// ─── METAL TIER ──────────────────────────────────────────────────────────────

// MetalTier maps a plan identifier to its categorical tier label. This is a
// fixed identifier table, not an actuarial derivation from plan attributes;
// unknown identifiers default to "Silver". Kept verbatim for compatibility
// with the frontend's getMetalTier().
func MetalTier(planID string) string {
	switch planID {
	case "CP-HDHP-02":
		return "Catastrophic"
	case "CP-STANDARD-03":
		return "Bronze"
	case "CP-ADVANCE-01", "CP-ADVANCE-PLUS-04":
		return "Silver"
	case "CP-HIGH-05":
		return "Gold"
	default:
		return "Silver"
	}
}
