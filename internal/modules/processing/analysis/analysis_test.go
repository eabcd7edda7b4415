package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

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

func TestAnalyzeValidResponse(t *testing.T) {
	gen := &stubGenerator{response: `{
		"regulation_summary": "GDPR governs personal data processing.",
		"key_requirements": [{"id": "R1", "description": "Lawful basis", "category": "data processing", "priority": "high"}],
		"compliance_obligations": ["Maintain records of processing"],
		"risk_assessment": {"overall_risk": "high"},
		"implementation_timeline": "6 months",
		"affected_departments": ["Legal"],
		"penalties_and_enforcement": "Up to 4% of global turnover",
		"recommended_actions": ["Appoint a DPO"],
		"detected_framework": "GDPR",
		"document_overview": "EU data protection regulation"
	}`}

	result := Analyze(context.Background(), gen, "full text", "gdpr", "EU")
	require.NotNil(t, result)
	assert.Equal(t, "GDPR governs personal data processing.", result.RegulationSummary)
	require.Len(t, result.KeyRequirements, 1)
	assert.Equal(t, "R1", result.KeyRequirements[0].ID)
	assert.Equal(t, "high", result.RiskAssessment.OverallRisk)
	assert.Equal(t, "GDPR", result.DetectedFramework)
}

func TestAnalyzeFencedResponse(t *testing.T) {
	gen := &stubGenerator{response: "```json\n{\"regulation_summary\":\"ok\",\"risk_assessment\":{\"overall_risk\":\"low\"},\"detected_framework\":\"HIPAA\"}\n```"}

	result := Analyze(context.Background(), gen, "text", "hipaa", "US")
	assert.Equal(t, "ok", result.RegulationSummary)
	assert.Equal(t, "low", result.RiskAssessment.OverallRisk)
	assert.NotNil(t, result.KeyRequirements)
	assert.NotNil(t, result.RecommendedActions)
}

func TestAnalyzeGarbageResponseFallsBack(t *testing.T) {
	gen := &stubGenerator{response: "I could not produce JSON, sorry."}

	result := Analyze(context.Background(), gen, "text", "gdpr", "EU")
	require.NotNil(t, result)
	assert.Equal(t, "I could not produce JSON, sorry.", result.RegulationSummary)
	assert.Equal(t, "medium", result.RiskAssessment.OverallRisk)
	assert.Equal(t, "gdpr", result.DetectedFramework)
	assert.Equal(t, "Document analysis for gdpr regulation in EU", result.DocumentOverview)
	assert.Empty(t, result.KeyRequirements)
	assert.NotNil(t, result.KeyRequirements)
}

func TestAnalyzeLongGarbageTruncatedTo500(t *testing.T) {
	raw := strings.Repeat("x", 800)
	gen := &stubGenerator{response: raw}

	result := Analyze(context.Background(), gen, "text", "sox", "US")
	assert.Equal(t, raw[:500]+"...", result.RegulationSummary)
}

func TestAnalyzeFallbackSummaryKeepsRunesWhole(t *testing.T) {
	// A multibyte rune straddling the 500-character cut must survive intact.
	raw := strings.Repeat("a", 499) + "é not json at all " + strings.Repeat("b", 100)
	gen := &stubGenerator{response: raw}

	result := Analyze(context.Background(), gen, "text", "gdpr", "EU")
	assert.True(t, utf8.ValidString(result.RegulationSummary))
	assert.Equal(t, strings.Repeat("a", 499)+"é...", result.RegulationSummary)
}

func TestAnalyzeGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("provider down")}

	result := Analyze(context.Background(), gen, "text", "hipaa", "US")
	require.NotNil(t, result)
	assert.Equal(t, "Analysis generated for hipaa (US)", result.RegulationSummary)
	assert.Equal(t, "medium", result.RiskAssessment.OverallRisk)
	assert.Equal(t, "hipaa", result.DetectedFramework)
	assert.NotNil(t, result.ComplianceObligations)
	assert.NotNil(t, result.AffectedDepartments)
}

func TestAnalyzeTruncatesPromptInput(t *testing.T) {
	var seenPrompt string
	gen := &promptCapture{sink: &seenPrompt}

	Analyze(context.Background(), gen, strings.Repeat("a", 20000), "gdpr", "EU")
	assert.LessOrEqual(t, strings.Count(seenPrompt, "a"), 15100)
}

type promptCapture struct {
	sink *string
}

func (p *promptCapture) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	*p.sink = prompt
	return "", errors.New("capture only")
}
