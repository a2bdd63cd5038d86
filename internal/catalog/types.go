package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ─── COST ────────────────────────────────────────────────────────────────────

// Cost is a cost-sharing value that is either a fixed dollar amount or a
// descriptive string like "20% coinsurance after deductible". The plan JSON
// stores both shapes in the same fields, so Cost carries the distinction
// instead of forcing everything through interface{}.
type Cost struct {
	amount float64
	fixed  bool
	text   string
}

// FixedCost returns a Cost holding a fixed dollar amount. Used by tests and
// by callers constructing plans in code.
func FixedCost(amount float64) Cost {
	return Cost{amount: amount, fixed: true}
}

// DescriptiveCost returns a Cost holding a descriptive string.
func DescriptiveCost(text string) Cost {
	return Cost{text: text}
}

// Amount returns the dollar amount and true when the cost is a fixed number.
// Descriptive costs return (0, false).
func (c Cost) Amount() (float64, bool) {
	return c.amount, c.fixed
}

// String renders a fixed cost as "$N" and a descriptive cost verbatim.
func (c Cost) String() string {
	if c.fixed {
		return "$" + strconv.FormatFloat(c.amount, 'f', -1, 64)
	}
	return c.text
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (c *Cost) UnmarshalJSON(b []byte) error {
	var amount float64
	if err := json.Unmarshal(b, &amount); err == nil {
		*c = Cost{amount: amount, fixed: true}
		return nil
	}
	var text string
	if err := json.Unmarshal(b, &text); err != nil {
		return fmt.Errorf("cost: expected number or string, got %.40s", string(b))
	}
	*c = Cost{text: text}
	return nil
}

// MarshalJSON round-trips the original shape: number for fixed costs, string
// for descriptive ones.
func (c Cost) MarshalJSON() ([]byte, error) {
	if c.fixed {
		return json.Marshal(c.amount)
	}
	return json.Marshal(c.text)
}

// ─── PLAN ────────────────────────────────────────────────────────────────────

// MoneyPair holds the individual ("single") and family amounts for a
// deductible or out-of-pocket maximum.
type MoneyPair struct {
	Single float64 `json:"single"`
	Family float64 `json:"family"`
}

// RxBenefits holds per-tier prescription drug costs.
type RxBenefits struct {
	Generic           Cost `json:"generic"`
	PreferredBrand    Cost `json:"preferredBrand"`
	NonPreferredBrand Cost `json:"nonPreferredBrand"`
	Specialty         Cost `json:"specialty"`
}

// Plan is a single insurance product. Plans are immutable once loaded; all
// fields mirror the plans.json dataset consumed by the frontend.
type Plan struct {
	PlanID                  string     `json:"planId"`
	PlanName                string     `json:"planName"`
	Deductible              MoneyPair  `json:"deductible"`
	OutOfPocketMax          MoneyPair  `json:"outOfPocketMax"`
	PCPOfficeVisit          Cost       `json:"pcpOfficeVisit"`
	SpecialistOfficeVisit   Cost       `json:"specialistOfficeVisit"`
	MentalHealthOfficeVisit Cost       `json:"mentalHealthOfficeVisit"`
	PreventiveCare          string     `json:"preventiveCare"`
	Telehealth              Cost       `json:"telehealth"`
	RxBenefits              RxBenefits `json:"rxBenefits"`

	// HSAContribution is the annual employer HSA seed. Zero (or absent in the
	// JSON) means the plan is not HSA-eligible.
	HSAContribution float64 `json:"hsaContribution,omitempty"`
}

// DisplayName strips the shared "ClearPath " brand prefix from a plan name,
// e.g. "ClearPath Advance Plus" → "Advance Plus".
func DisplayName(planName string) string {
	return strings.TrimPrefix(planName, "ClearPath ")
}

// ─── PROVIDER ────────────────────────────────────────────────────────────────

// Address is a provider's postal address.
type Address struct {
	Line1 string `json:"line1"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// Provider is a clinician or facility record. PlansAccepted references plans
// by identifier only — there is no back-pointer object graph.
type Provider struct {
	ProviderID        string   `json:"providerId"`
	FullName          string   `json:"fullName"`
	Specialty         string   `json:"specialty"`
	Address           Address  `json:"address"`
	Phone             string   `json:"phone"`
	AcceptingPatients bool     `json:"acceptingPatients"`
	InNetwork         bool     `json:"inNetwork"`
	Rating            *float64 `json:"rating"`
	RatingCount       int      `json:"ratingCount"`
	VirtualCare       bool     `json:"virtualCareOffered"`
	PlansAccepted     []string `json:"plansAccepted"`
}

// ─── Q&A CORPUS ──────────────────────────────────────────────────────────────

// QAEntry is one canned question/answer pair from qa.json. The optional
// provider and plan ID lists drive the response formatter and the highlight
// registry.
type QAEntry struct {
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Providers []string `json:"providers,omitempty"`
	Plans     []string `json:"plans,omitempty"`
}
