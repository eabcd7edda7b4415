package report

import (
	"testing"

	"github.com/regwatch/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateBestScoreIsMax(t *testing.T) {
	reg := &models.RegulationModel{}
	checks := []models.AssessmentModel{
		{ComplianceScore: 40},
		{ComplianceScore: 85},
		{ComplianceScore: 60},
	}

	data := Aggregate(reg, checks)
	require.NotNil(t, data.BestScore)
	assert.Equal(t, 85, *data.BestScore)
}

func TestAggregateNoChecks(t *testing.T) {
	data := Aggregate(&models.RegulationModel{}, nil)
	assert.Nil(t, data.BestScore)
	assert.Nil(t, data.LastDetailed)
	assert.Empty(t, data.Recommendations)
	assert.Empty(t, data.TailoredSuggestions)
}

func TestAggregateLastDetailedWins(t *testing.T) {
	first := &models.DetailedAssessment{DetectedFramework: "GDPR"}
	second := &models.DetailedAssessment{DetectedFramework: "HIPAA"}
	checks := []models.AssessmentModel{
		{Detailed: first},
		{Detailed: second},
		{Detailed: nil},
	}

	data := Aggregate(&models.RegulationModel{}, checks)
	require.NotNil(t, data.LastDetailed)
	assert.Equal(t, "HIPAA", data.LastDetailed.DetectedFramework)
}

func TestAggregateRecommendationDedup(t *testing.T) {
	reg := &models.RegulationModel{
		Analysis: &models.AnalysisResult{
			RecommendedActions: []string{"C", "A"},
		},
	}
	checks := []models.AssessmentModel{
		{
			Recommendations: models.StringArray{"A", "B", "A"},
			Detailed: &models.DetailedAssessment{
				TopRecommendations: []string{"  B  ", ""},
				Sections: []models.Section{{
					Name: "Access",
					Gaps: []models.SectionGap{{Recommendations: []string{"C", "   "}}},
				}},
			},
		},
	}

	data := Aggregate(reg, checks)
	assert.Equal(t, []string{"A", "B", "C"}, data.Recommendations)
}

func TestAggregateTailoredSuggestionsBounded(t *testing.T) {
	gaps := make([]models.SectionGap, 5)
	for i := range gaps {
		gaps[i] = models.SectionGap{Recommendations: []string{
			"rec-" + string(rune('a'+i)) + "-1",
			"rec-" + string(rune('a'+i)) + "-2",
			"rec-" + string(rune('a'+i)) + "-3",
		}}
	}
	checks := []models.AssessmentModel{{
		Detailed: &models.DetailedAssessment{
			Sections: []models.Section{{Name: "S", Gaps: gaps}},
		},
	}}

	data := Aggregate(&models.RegulationModel{}, checks)
	// 3 gaps considered, 2 recommendations each
	assert.Len(t, data.TailoredSuggestions, 6)
	assert.Contains(t, data.TailoredSuggestions, "rec-a-1")
	assert.NotContains(t, data.TailoredSuggestions, "rec-a-3")
	assert.NotContains(t, data.TailoredSuggestions, "rec-d-1")
}
