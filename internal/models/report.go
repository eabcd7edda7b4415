package models

// Report formats.
const (
	ReportFormatPDF  = "pdf"
	ReportFormatXLSX = "xlsx"
)

// ReportModel records a rendered report file. Reports are derived data:
// safe to regenerate at any time from the regulation and its assessments.
type ReportModel struct {
	Base
	RegulationID string `json:"regulation_id" gorm:"index;not null"`
	Format       string `json:"format"        gorm:"not null"`
	FilePath     string `json:"file_path"     gorm:"not null"`
	ArchiveURL   string `json:"archive_url,omitempty"`
}

func (ReportModel) TableName() string { return "reports" }
