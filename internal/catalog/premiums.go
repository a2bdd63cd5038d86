package catalog

import "fmt"

// CoverageType selects which premium table applies.
type CoverageType string

const (
	CoverageSelfOnly      CoverageType = "selfOnly"
	CoverageSelfPlusOne   CoverageType = "selfPlusOne"
	CoverageSelfAndFamily CoverageType = "selfAndFamily"
)

// EmploymentStatus selects the premium payment schedule: biweekly payroll
// deduction for active employees, monthly billing for retirees.
type EmploymentStatus string

const (
	StatusEmployed EmploymentStatus = "employed"
	StatusRetired  EmploymentStatus = "retired"
)

// PremiumRates holds both payment schedules for one plan under one coverage
// type.
type PremiumRates struct {
	BiweeklyEmployed float64 `json:"biweeklyEmployed"`
	MonthlyRetired   float64 `json:"monthlyRetired"`
}

// PremiumData is the full premium table for one plan year.
type PremiumData struct {
	Year     int `json:"year"`
	Premiums struct {
		SelfOnly      map[string]PremiumRates `json:"selfOnly"`
		SelfPlusOne   map[string]PremiumRates `json:"selfPlusOne"`
		SelfAndFamily map[string]PremiumRates `json:"selfAndFamily"`
	} `json:"premiums"`
}

// rates returns the planID→rates table for a coverage type, nil for an
// unknown coverage type.
func (p *PremiumData) rates(coverage CoverageType) map[string]PremiumRates {
	switch coverage {
	case CoverageSelfOnly:
		return p.Premiums.SelfOnly
	case CoverageSelfPlusOne:
		return p.Premiums.SelfPlusOne
	case CoverageSelfAndFamily:
		return p.Premiums.SelfAndFamily
	default:
		return nil
	}
}

// Premium looks up the premium for a plan. The boolean is false when the plan
// or coverage type has no entry — a lookup miss, not an error.
func (c *Catalog) Premium(planID string, coverage CoverageType, status EmploymentStatus) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rates, ok := c.data.premiums.rates(coverage)[planID]
	if !ok {
		return 0, false
	}
	if status == StatusRetired {
		return rates.MonthlyRetired, true
	}
	return rates.BiweeklyEmployed, true
}

// PremiumYear returns the plan year the loaded premium table applies to.
func (c *Catalog) PremiumYear() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.premiums.Year
}

// FormatPremium renders a premium amount with its payment frequency,
// e.g. "$91.57 biweekly" or "$244.30 monthly".
func FormatPremium(amount float64, status EmploymentStatus) string {
	frequency := "biweekly"
	if status == StatusRetired {
		frequency = "monthly"
	}
	return fmt.Sprintf("$%.2f %s", amount, frequency)
}
