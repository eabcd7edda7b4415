package report

import (
	"strings"

	"github.com/regwatch/core/internal/models"
)

// ReportData is everything a renderer needs for one regulation: the
// regulation itself, its assessment history, and the derived aggregates.
type ReportData struct {
	Regulation          *models.RegulationModel   `json:"regulation"`
	Checks              []models.AssessmentModel  `json:"checks"`
	BestScore           *int                      `json:"best_score"`
	LastDetailed        *models.DetailedAssessment `json:"last_detailed"`
	Recommendations     []string                  `json:"recommendations"`
	TailoredSuggestions []string                  `json:"tailored_suggestions"`
}

// Aggregate derives report data from a regulation and its assessments.
// BestScore is the maximum across checks; LastDetailed is the detailed
// analysis of the last check that carries one.
func Aggregate(reg *models.RegulationModel, checks []models.AssessmentModel) *ReportData {
	data := &ReportData{
		Regulation: reg,
		Checks:     checks,
	}

	for i := range checks {
		score := checks[i].ComplianceScore
		if data.BestScore == nil || score > *data.BestScore {
			s := score
			data.BestScore = &s
		}
		if checks[i].Detailed != nil {
			data.LastDetailed = checks[i].Detailed
		}
	}

	data.Recommendations = collectRecommendations(reg, checks)
	data.TailoredSuggestions = tailoredSuggestions(data.LastDetailed)
	return data
}

// collectRecommendations merges recommendations from every assessment, its
// detailed sections, and the regulation analysis. Order-preserving dedup on
// the trimmed string; whitespace-only entries dropped.
func collectRecommendations(reg *models.RegulationModel, checks []models.AssessmentModel) []string {
	var raw []string
	for i := range checks {
		raw = append(raw, checks[i].Recommendations...)
		if detailed := checks[i].Detailed; detailed != nil {
			raw = append(raw, detailed.TopRecommendations...)
			for _, section := range detailed.Sections {
				for _, gap := range section.Gaps {
					raw = append(raw, gap.Recommendations...)
				}
			}
		}
	}
	if reg != nil && reg.Analysis != nil {
		raw = append(raw, reg.Analysis.RecommendedActions...)
	}

	seen := map[string]bool{}
	unique := []string{}
	for _, rec := range raw {
		trimmed := strings.TrimSpace(rec)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		unique = append(unique, trimmed)
	}
	return unique
}

// tailoredSuggestions pulls a bounded sample of gap recommendations from the
// last detailed analysis: up to 10 sections, 3 gaps each, 2 actions per gap.
func tailoredSuggestions(detailed *models.DetailedAssessment) []string {
	suggestions := []string{}
	if detailed == nil {
		return suggestions
	}
	sections := detailed.Sections
	if len(sections) > 10 {
		sections = sections[:10]
	}
	for _, section := range sections {
		gaps := section.Gaps
		if len(gaps) > 3 {
			gaps = gaps[:3]
		}
		for _, gap := range gaps {
			recs := gap.Recommendations
			if len(recs) > 2 {
				recs = recs[:2]
			}
			for _, rec := range recs {
				if rec == "" || contains(suggestions, rec) {
					continue
				}
				suggestions = append(suggestions, rec)
			}
		}
	}
	return suggestions
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}
