package assessment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/regwatch/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	return s.response, s.err
}

const validCheckResponse = `{
	"regulation": {"name": "GDPR", "jurisdiction": "EU", "type": "gdpr"},
	"overall": {"status": "partially_compliant", "score": 72, "summary": "Gaps in access control."},
	"sections": [{
		"name": "Access Control",
		"status": "non_compliant",
		"score": 40,
		"gaps": [
			{"gap_id": "", "description": "No role-based access", "risk_level": "high", "evidence": null, "recommendations": ["Deploy RBAC", "Review admin accounts"]},
			{"gap_id": "", "description": "Shared credentials in use", "risk_level": "medium", "evidence": null, "recommendations": ["Deploy RBAC"]}
		]
	}],
	"top_recommendations": [],
	"detected_framework": "GDPR",
	"assumptions": []
}`

func TestCheckFlattensGapsWithSectionIDs(t *testing.T) {
	gen := &stubGenerator{response: validCheckResponse}

	result := Check(context.Background(), gen, "regulation text", []string{"policy a"}, nil)
	require.NotNil(t, result)
	assert.Equal(t, models.StatusPartiallyCompliant, result.OverallStatus)
	assert.Equal(t, 72, result.ComplianceScore)

	require.Len(t, result.Gaps, 2)
	assert.Equal(t, "Access Control-1", result.Gaps[0].GapID)
	assert.Equal(t, "Access Control-2", result.Gaps[1].GapID)
	assert.Equal(t, "Access Control", result.Gaps[0].Requirement)
	assert.Equal(t, "unknown", result.Gaps[0].CurrentState)
	assert.Equal(t, "medium", result.Gaps[0].RemediationEffort)
	assert.Equal(t, "high", result.Gaps[0].ImpactLevel)
}

func TestCheckBuildsRecommendationsFromGaps(t *testing.T) {
	gen := &stubGenerator{response: validCheckResponse}

	result := Check(context.Background(), gen, "text", nil, nil)
	// collected from gap actions, order preserved, duplicates dropped
	assert.Equal(t, []string{"Deploy RBAC", "Review admin accounts"}, result.Recommendations)
}

func TestCheckKeepsExplicitGapID(t *testing.T) {
	gen := &stubGenerator{response: `{
		"overall": {"status": "compliant", "score": 95, "summary": "ok"},
		"sections": [{"name": "Audit", "status": "compliant", "score": 95,
			"gaps": [{"gap_id": "AUD-7", "description": "minor", "risk_level": "low", "recommendations": []}]}]
	}`}

	result := Check(context.Background(), gen, "text", nil, nil)
	require.Len(t, result.Gaps, 1)
	assert.Equal(t, "AUD-7", result.Gaps[0].GapID)
}

func TestCheckParseFailureFallsBack(t *testing.T) {
	raw := "the model rambled instead of returning JSON " + strings.Repeat("y", 400)
	gen := &stubGenerator{response: raw}

	result := Check(context.Background(), gen, "text", nil, &models.AnalysisResult{DetectedFramework: "GDPR"})
	assert.Equal(t, models.StatusPartiallyCompliant, result.OverallStatus)
	assert.Equal(t, 60, result.ComplianceScore)
	assert.Empty(t, result.Gaps)
	require.NotNil(t, result.Detailed)
	assert.Equal(t, "unknown", result.Detailed.Regulation.Name)
	assert.Equal(t, strings.TrimSpace(raw)[:300], result.Detailed.Overall.Summary)
	// no gaps, so the five-item framework ladder applies
	assert.Equal(t, gdprRecommendations, result.Recommendations)
}

func TestCheckGeneratorErrorUsesShortLadder(t *testing.T) {
	gen := &stubGenerator{err: errors.New("provider down")}

	result := Check(context.Background(), gen, "text", nil, &models.AnalysisResult{DetectedFramework: "GDPR"})
	assert.Equal(t, models.StatusPartiallyCompliant, result.OverallStatus)
	assert.Equal(t, 60, result.ComplianceScore)
	assert.Equal(t, []string{
		"Implement data subject rights management system",
		"Conduct Data Protection Impact Assessments (DPIAs)",
		"Establish data breach notification procedures",
	}, result.Recommendations)
	require.NotNil(t, result.Detailed)
	assert.Equal(t, "provider down", result.Detailed.Error)
}

func TestCheckFallbackRecommendationsAreIsolated(t *testing.T) {
	gen := &stubGenerator{err: errors.New("provider down")}

	result := Check(context.Background(), gen, "text", nil, &models.AnalysisResult{DetectedFramework: "gdpr"})
	result.Recommendations = append(result.Recommendations, "caller-added item")

	assert.Equal(t, "Review and update privacy notices", gdprRecommendations[3])
	assert.NotContains(t, gdprRecommendations, "caller-added item")
}

func TestCheckHIPAAFallback(t *testing.T) {
	gen := &stubGenerator{response: `{"overall": {"status": "partially_compliant", "score": 50, "summary": "s"}, "sections": []}`}

	result := Check(context.Background(), gen, "text", nil, &models.AnalysisResult{DetectedFramework: "HIPAA Security Rule"})
	assert.Equal(t, hipaaRecommendations, result.Recommendations)
}

func TestCheckGenericFallback(t *testing.T) {
	gen := &stubGenerator{response: `{"overall": {"status": "partially_compliant", "score": 50, "summary": "s"}, "sections": []}`}

	result := Check(context.Background(), gen, "text", nil, nil)
	assert.Equal(t, genericRecommendations, result.Recommendations)
}
