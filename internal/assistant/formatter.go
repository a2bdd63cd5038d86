package assistant

import (
	"fmt"
	"strings"

	"github.com/mara2525/clearpath-health-backend/internal/catalog"
)

// FormatResponse appends provider and plan reference sections to an answer.
// Each section appears only when at least one identifier resolves against the
// catalog; unresolvable identifiers are silently dropped. The markup (bullet
// plus inline <a> link) is what the chat view renders directly, so the shape
// has to stay stable.
func FormatResponse(cat *catalog.Catalog, answer string, providerIDs, planIDs []string) string {
	var sb strings.Builder
	sb.WriteString(answer)

	var providerLines []string
	for _, id := range providerIDs {
		provider, ok := cat.ProviderByID(id)
		if !ok {
			continue
		}
		providerLines = append(providerLines, fmt.Sprintf(
			`• <a href="/provider/%s">%s</a> - %s (%s, %s)`,
			id, provider.FullName, provider.Specialty,
			provider.Address.City, provider.Address.State,
		))
	}
	if len(providerLines) > 0 {
		sb.WriteString("\n\nProviders:\n")
		sb.WriteString(strings.Join(providerLines, "\n"))
	}

	var planLines []string
	for _, id := range planIDs {
		plan, ok := cat.PlanByID(id)
		if !ok {
			continue
		}
		planLines = append(planLines, fmt.Sprintf(
			`• <a href="/plan-detail/%s">%s</a>`, id, plan.PlanName,
		))
	}
	if len(planLines) > 0 {
		sb.WriteString("\n\nRelated Plans:\n")
		sb.WriteString(strings.Join(planLines, "\n"))
	}

	return sb.String()
}
