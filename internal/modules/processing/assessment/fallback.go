package assessment

import (
	"slices"
	"strings"
)

// Framework-specific recommendation ladders used when the model produced no
// usable recommendations. The parse path gets the full five-item list; the
// total-failure path intentionally keeps only the first three.
var (
	gdprRecommendations = []string{
		"Implement data subject rights management system",
		"Conduct Data Protection Impact Assessments (DPIAs)",
		"Establish data breach notification procedures",
		"Review and update privacy notices",
		"Implement data minimization practices",
	}
	hipaaRecommendations = []string{
		"Implement PHI access controls and audit logs",
		"Conduct risk assessments for all PHI systems",
		"Establish Business Associate Agreements (BAAs)",
		"Implement workforce training on PHI handling",
		"Develop incident response procedures",
	}
	genericRecommendations = []string{
		"Conduct comprehensive compliance review",
		"Develop detailed action plan with timelines",
		"Assign compliance responsibilities to team members",
		"Implement regular monitoring and reporting",
		"Establish training programs for staff",
	}
)

// frameworkRecommendations selects the recommendation list for a framework
// hint by case-insensitive substring match. Callers get a copy so appends
// cannot reach the package-level lists.
func frameworkRecommendations(hintType string) []string {
	hint := strings.ToLower(hintType)
	switch {
	case strings.Contains(hint, "gdpr"):
		return slices.Clone(gdprRecommendations)
	case strings.Contains(hint, "hipaa"):
		return slices.Clone(hipaaRecommendations)
	default:
		return slices.Clone(genericRecommendations)
	}
}
