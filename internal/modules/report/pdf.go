package report

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// renderPDF writes the report as a single-flow A4 PDF mirroring the data
// aggregated for the regulation.
func renderPDF(path string, data *ReportData, includeRecommendations bool) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	line := func(text string) {
		if len(text) > 110 {
			text = text[:110]
		}
		pdf.CellFormat(0, 5, text, "", 1, "L", false, 0, "")
	}
	heading := func(text string) {
		pdf.SetFont("Helvetica", "B", 12)
		line(text)
		pdf.SetFont("Helvetica", "", 10)
	}

	reg := data.Regulation

	pdf.SetFont("Helvetica", "B", 16)
	line("Compliance Report")
	pdf.SetFont("Helvetica", "", 10)
	line("Generated: " + time.Now().UTC().Format(time.RFC3339))
	line("")

	heading("Regulation")
	line("ID: " + reg.ID)
	line("Filename: " + reg.Filename)
	line(fmt.Sprintf("Type: %s | Jurisdiction: %s", reg.RegulationType, reg.Jurisdiction))
	line("")

	heading("Executive Summary")
	summary := "N/A"
	if reg.Analysis != nil && reg.Analysis.RegulationSummary != "" {
		summary = reg.Analysis.RegulationSummary
	}
	pdf.MultiCell(0, 5, summary, "", "L", false)
	line("")

	heading("Document Overview")
	if reg.Analysis != nil {
		if reg.Analysis.DocumentOverview != "" {
			line("Overview: " + reg.Analysis.DocumentOverview)
		}
		if reg.Analysis.DetectedFramework != "" {
			line("Detected Framework: " + reg.Analysis.DetectedFramework)
		}
		if len(reg.Analysis.KeyRequirements) > 0 {
			line("Key Requirements:")
			for i, kr := range reg.Analysis.KeyRequirements {
				if i >= 8 {
					break
				}
				line("- " + kr.Description)
			}
		}
		if len(reg.Analysis.ComplianceObligations) > 0 {
			line("Primary Obligations:")
			for i, ob := range reg.Analysis.ComplianceObligations {
				if i >= 6 {
					break
				}
				line("- " + ob)
			}
		}
	}
	line("")

	heading("Compliance Checks")
	for i := range data.Checks {
		chk := &data.Checks[i]
		line(fmt.Sprintf("Check: %s | Score: %d", chk.ID, chk.ComplianceScore))
		line("Status: " + chk.OverallStatus)
		if len(chk.Gaps) > 0 {
			line("Gaps:")
			for j, gap := range chk.Gaps {
				if j >= 10 {
					break
				}
				line(fmt.Sprintf("- %s: %s", gap.Requirement, gap.GapDescription))
			}
		}
	}
	line("")

	if data.BestScore != nil {
		heading("Compliance Score (Best)")
		drawScoreBar(pdf, *data.BestScore)
		line(fmt.Sprintf("Score: %d / 100", *data.BestScore))
		line("")
	}

	if data.LastDetailed != nil {
		if data.LastDetailed.DetectedFramework != "" {
			heading("Detected Framework: " + data.LastDetailed.DetectedFramework)
			line("")
		}
		if len(data.LastDetailed.Sections) > 0 {
			heading("Sections Overview")
			for i, section := range data.LastDetailed.Sections {
				if i >= 12 {
					break
				}
				line(fmt.Sprintf("- %s | Status: %s | Score: %d", section.Name, section.Status, section.Score))
			}
			line("")
		}
	}

	if includeRecommendations {
		heading("Recommendations")
		if len(data.Recommendations) > 0 {
			for i, rec := range data.Recommendations {
				if i >= 20 {
					break
				}
				line("- " + rec)
			}
		} else {
			line("No specific recommendations available at this time.")
		}
	}

	if len(data.TailoredSuggestions) > 0 {
		line("")
		heading("Tailored Suggestions (From this Document)")
		for i, rec := range data.TailoredSuggestions {
			if i >= 15 {
				break
			}
			line("- " + rec)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// drawScoreBar renders the filled proportional score bar.
func drawScoreBar(pdf *fpdf.Fpdf, score int) {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	x := pdf.GetX()
	y := pdf.GetY()
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	barW := pageW - left - right
	barH := 4.0

	pdf.Rect(x, y, barW, barH, "D")
	pdf.SetFillColor(51, 51, 51)
	pdf.Rect(x, y, barW*float64(score)/100, barH, "F")
	pdf.SetFillColor(0, 0, 0)
	pdf.SetY(y + barH + 3)
}
