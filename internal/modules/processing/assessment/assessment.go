// Package assessment runs the compliance check stage: regulation text plus
// company policies in, normalized gap list and recommendations out. Check is
// total in the same sense as the analysis stage: it always returns a
// schema-complete result, whatever the model did.
package assessment

import (
	"context"
	"fmt"
	"strings"

	"github.com/regwatch/core/internal/models"
	"github.com/regwatch/core/internal/pkg/llm"
)

// Result is the normalized outcome of one compliance check.
type Result struct {
	OverallStatus   string                     `json:"overall_status"`
	ComplianceScore int                        `json:"compliance_score"`
	Gaps            []models.Gap               `json:"gaps"`
	Recommendations []string                   `json:"recommendations"`
	Detailed        *models.DetailedAssessment `json:"detailed_analysis"`
}

// Check assesses company policies against a regulation. The framework hint is
// taken from the prior analysis when available.
func Check(ctx context.Context, gen llm.Generator, regulationText string, policies []string, analysis *models.AnalysisResult) *Result {
	policiesText := "No specific policies provided"
	if len(policies) > 0 {
		policiesText = strings.Join(policies, "\n")
	}
	truncated := llm.Truncate(regulationText, checkMaxTextLen)

	hintType := "general"
	if analysis != nil && strings.TrimSpace(analysis.DetectedFramework) != "" {
		hintType = analysis.DetectedFramework
	}
	hintJurisdiction := "unknown"

	raw, err := gen.Generate(ctx, checkSystemPrompt, buildCheckPrompt(hintType, hintJurisdiction, policiesText, truncated))
	if err != nil {
		return errorResult(hintType, err)
	}

	detailed := &models.DetailedAssessment{}
	if parseErr := llm.UnmarshalJSON(raw, detailed); parseErr != nil {
		detailed = parseFallback(raw)
	}
	normalizeDetailed(detailed)

	gaps := flattenGaps(detailed.Sections)
	recommendations := detailed.TopRecommendations
	if len(recommendations) == 0 {
		recommendations = gapRecommendations(gaps)
	}
	if len(recommendations) == 0 {
		recommendations = frameworkRecommendations(hintType)
	}

	return &Result{
		OverallStatus:   detailed.Overall.Status,
		ComplianceScore: detailed.Overall.Score,
		Gaps:            gaps,
		Recommendations: recommendations,
		Detailed:        detailed,
	}
}

// parseFallback builds a minimal detailed assessment carrying the raw model
// output in the summary.
func parseFallback(raw string) *models.DetailedAssessment {
	summary := llm.Truncate(strings.TrimSpace(raw), 300)
	return &models.DetailedAssessment{
		Regulation: models.AssessedRegulation{Name: "unknown", Type: "general"},
		Overall: models.OverallAssessment{
			Status:  models.StatusPartiallyCompliant,
			Score:   60,
			Summary: summary,
		},
		DetectedFramework: "unknown",
	}
}

// errorResult covers generation failure. The recommendation list here is the
// abbreviated three-item variant.
func errorResult(hintType string, err error) *Result {
	recommendations := frameworkRecommendations(hintType)[:3]
	return &Result{
		OverallStatus:   models.StatusPartiallyCompliant,
		ComplianceScore: 60,
		Gaps:            []models.Gap{},
		Recommendations: recommendations,
		Detailed:        &models.DetailedAssessment{Error: err.Error()},
	}
}

func normalizeDetailed(detailed *models.DetailedAssessment) {
	if detailed.Overall.Status == "" {
		detailed.Overall.Status = models.StatusPartiallyCompliant
	}
	if detailed.Overall.Score == 0 && detailed.Overall.Summary == "" && len(detailed.Sections) == 0 {
		detailed.Overall.Score = 60
	}
	if detailed.Sections == nil {
		detailed.Sections = []models.Section{}
	}
	if detailed.TopRecommendations == nil {
		detailed.TopRecommendations = []string{}
	}
	if detailed.Assumptions == nil {
		detailed.Assumptions = []string{}
	}
}

// flattenGaps lifts per-section gaps into the flat API shape. Gap IDs fall
// back to "<section>-<n>" with a 1-based index.
func flattenGaps(sections []models.Section) []models.Gap {
	gaps := []models.Gap{}
	for _, section := range sections {
		name := section.Name
		if name == "" {
			name = "SEC"
		}
		for i, gap := range section.Gaps {
			gapID := gap.GapID
			if gapID == "" {
				gapID = fmt.Sprintf("%s-%d", name, i+1)
			}
			requirement := section.Name
			if requirement == "" {
				requirement = "Unknown"
			}
			impact := gap.RiskLevel
			if impact == "" {
				impact = "medium"
			}
			actions := gap.Recommendations
			if actions == nil {
				actions = []string{}
			}
			gaps = append(gaps, models.Gap{
				GapID:              gapID,
				Requirement:        requirement,
				CurrentState:       "unknown",
				GapDescription:     gap.Description,
				ImpactLevel:        impact,
				RemediationEffort:  "medium",
				RecommendedActions: actions,
			})
		}
	}
	return gaps
}

// gapRecommendations collects gap actions preserving order, exact duplicates
// dropped.
func gapRecommendations(gaps []models.Gap) []string {
	seen := map[string]bool{}
	var recommendations []string
	for _, gap := range gaps {
		for _, action := range gap.RecommendedActions {
			if action == "" || seen[action] {
				continue
			}
			seen[action] = true
			recommendations = append(recommendations, action)
		}
	}
	return recommendations
}
