// Package analysis turns extracted regulation text into a structured
// obligation summary. Analyze never returns an error: generation or parse
// failures degrade to a schema-complete fallback so the pipeline always has
// something to persist.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/regwatch/core/internal/models"
	"github.com/regwatch/core/internal/pkg/llm"
)

// Analyze asks the generator for a structured analysis of the regulation
// text. regulationType and jurisdiction are caller-supplied hints.
func Analyze(ctx context.Context, gen llm.Generator, text, regulationType, jurisdiction string) *models.AnalysisResult {
	truncated := llm.Truncate(text, analyzeMaxTextLen)
	prompt := buildAnalyzePrompt(truncated, regulationType, jurisdiction)

	raw, err := gen.Generate(ctx, analyzeSystemPrompt, prompt)
	if err != nil {
		return errorFallback(regulationType, jurisdiction)
	}

	result := &models.AnalysisResult{}
	if err := llm.UnmarshalJSON(raw, result); err != nil {
		return parseFallback(raw, regulationType, jurisdiction)
	}
	result.Normalize()
	return result
}

// parseFallback keeps the raw model output visible in the summary when the
// response was not valid JSON.
func parseFallback(raw, regulationType, jurisdiction string) *models.AnalysisResult {
	summary := strings.TrimSpace(raw)
	if utf8.RuneCountInString(summary) > 500 {
		summary = llm.Truncate(summary, 500) + "..."
	}
	result := &models.AnalysisResult{
		RegulationSummary: summary,
		RiskAssessment:    models.RiskAssessment{OverallRisk: "medium"},
		DetectedFramework: regulationType,
		DocumentOverview:  documentOverview(regulationType, jurisdiction),
	}
	result.Normalize()
	return result
}

func errorFallback(regulationType, jurisdiction string) *models.AnalysisResult {
	result := &models.AnalysisResult{
		RegulationSummary: fmt.Sprintf("Analysis generated for %s (%s)", regulationType, jurisdiction),
		RiskAssessment:    models.RiskAssessment{OverallRisk: "medium"},
		DetectedFramework: regulationType,
		DocumentOverview:  documentOverview(regulationType, jurisdiction),
	}
	result.Normalize()
	return result
}

func documentOverview(regulationType, jurisdiction string) string {
	return fmt.Sprintf("Document analysis for %s regulation in %s", regulationType, jurisdiction)
}
