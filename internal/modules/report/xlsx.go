package report

import (
	"github.com/xuri/excelize/v2"
)

// renderXLSX writes a three-sheet workbook: regulation metadata, check
// summaries, and flattened gaps.
func renderXLSX(path string, data *ReportData) error {
	book := excelize.NewFile()
	defer book.Close()

	reg := data.Regulation

	const regSheet = "Regulation"
	book.SetSheetName("Sheet1", regSheet)
	writeRow(book, regSheet, 1, "field", "value")
	writeRow(book, regSheet, 2, "id", reg.ID)
	writeRow(book, regSheet, 3, "filename", reg.Filename)
	writeRow(book, regSheet, 4, "type", reg.RegulationType)
	writeRow(book, regSheet, 5, "jurisdiction", reg.Jurisdiction)
	writeRow(book, regSheet, 6, "uploaded", reg.CreatedAt.UTC().Format("2006-01-02 15:04:05"))

	const checkSheet = "Checks"
	if _, err := book.NewSheet(checkSheet); err != nil {
		return err
	}
	writeRow(book, checkSheet, 1, "check_id", "score", "status")
	for i := range data.Checks {
		chk := &data.Checks[i]
		writeRow(book, checkSheet, i+2, chk.ID, chk.ComplianceScore, chk.OverallStatus)
	}

	const gapSheet = "Gaps"
	if _, err := book.NewSheet(gapSheet); err != nil {
		return err
	}
	writeRow(book, gapSheet, 1, "check_id", "requirement", "gap", "impact", "effort")
	row := 2
	for i := range data.Checks {
		chk := &data.Checks[i]
		for _, gap := range chk.Gaps {
			writeRow(book, gapSheet, row, chk.ID, gap.Requirement, gap.GapDescription, gap.ImpactLevel, gap.RemediationEffort)
			row++
		}
	}

	return book.SaveAs(path)
}

func writeRow(book *excelize.File, sheet string, row int, values ...interface{}) {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		_ = book.SetCellValue(sheet, cell, value)
	}
}
