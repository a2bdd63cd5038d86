package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/mara2525/clearpath-health-backend/internal/catalog"
)

// ─── Cost ────────────────────────────────────────────────────────────────────

func TestCost_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantAmount float64
		wantFixed  bool
		wantString string
	}{
		{"integer copay", `25`, 25, true, "$25"},
		{"zero copay", `0`, 0, true, "$0"},
		{"fractional amount", `12.5`, 12.5, true, "$12.5"},
		{"coinsurance description", `"Deductible, then 20% coinsurance"`, 0, false, "Deductible, then 20% coinsurance"},
		{"dollar-looking string stays descriptive", `"$0"`, 0, false, "$0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c catalog.Cost
			if err := json.Unmarshal([]byte(tt.input), &c); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}

			amount, fixed := c.Amount()
			if fixed != tt.wantFixed {
				t.Errorf("fixed = %v, want %v", fixed, tt.wantFixed)
			}
			if fixed && amount != tt.wantAmount {
				t.Errorf("amount = %v, want %v", amount, tt.wantAmount)
			}
			if got := c.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
		})
	}
}

func TestCost_UnmarshalJSONRejectsOtherShapes(t *testing.T) {
	for _, input := range []string{`true`, `{"amount": 5}`, `[5]`} {
		var c catalog.Cost
		if err := json.Unmarshal([]byte(input), &c); err == nil {
			t.Errorf("Unmarshal(%s) error = nil, want non-nil", input)
		}
	}
}

func TestCost_MarshalRoundTripsShape(t *testing.T) {
	fixed, err := json.Marshal(catalog.FixedCost(25))
	if err != nil {
		t.Fatal(err)
	}
	if string(fixed) != `25` {
		t.Errorf("fixed cost marshals to %s, want 25", fixed)
	}

	descriptive, err := json.Marshal(catalog.DescriptiveCost("20% coinsurance"))
	if err != nil {
		t.Fatal(err)
	}
	if string(descriptive) != `"20% coinsurance"` {
		t.Errorf("descriptive cost marshals to %s, want the quoted string", descriptive)
	}
}

// ─── Plan unmarshal ──────────────────────────────────────────────────────────

func TestPlan_UnmarshalMixedCostShapes(t *testing.T) {
	raw := `{
		"planId": "CP-HDHP-02",
		"planName": "ClearPath HDHP Saver",
		"deductible": {"single": 6000, "family": 12000},
		"outOfPocketMax": {"single": 7500, "family": 15000},
		"pcpOfficeVisit": "Deductible, then 20% coinsurance",
		"specialistOfficeVisit": "Deductible, then 20% coinsurance",
		"mentalHealthOfficeVisit": "Deductible, then 20% coinsurance",
		"preventiveCare": "$0",
		"telehealth": 45,
		"rxBenefits": {
			"generic": "Deductible, then 20%",
			"preferredBrand": "Deductible, then 20%",
			"nonPreferredBrand": "Deductible, then 20%",
			"specialty": "Deductible, then 20%"
		},
		"hsaContribution": 750
	}`

	var p catalog.Plan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal plan: %v", err)
	}

	if _, fixed := p.PCPOfficeVisit.Amount(); fixed {
		t.Error("pcpOfficeVisit parsed as fixed, want descriptive")
	}
	if tele, fixed := p.Telehealth.Amount(); !fixed || tele != 45 {
		t.Errorf("telehealth = (%v, %v), want (45, true)", tele, fixed)
	}
	if p.HSAContribution != 750 {
		t.Errorf("hsaContribution = %v, want 750", p.HSAContribution)
	}
	if p.Deductible.Single != 6000 || p.Deductible.Family != 12000 {
		t.Errorf("deductible = %+v, want 6000/12000", p.Deductible)
	}
}

// ─── DisplayName ─────────────────────────────────────────────────────────────

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ClearPath Advance Plus", "Advance Plus"},
		{"ClearPath HDHP Saver", "HDHP Saver"},
		{"Some Other Plan", "Some Other Plan"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := catalog.DisplayName(tt.input); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
