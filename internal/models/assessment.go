package models

// Compliance status values shared by assessments and detailed sections.
const (
	StatusCompliant          = "compliant"
	StatusPartiallyCompliant = "partially_compliant"
	StatusNonCompliant       = "non_compliant"
)

// AssessmentModel is one compliance check run against a regulation.
// Rows are immutable after creation; a regulation accumulates one per run.
type AssessmentModel struct {
	Base
	RegulationID    string              `json:"regulation_id"    gorm:"index;not null"`
	OverallStatus   string              `json:"overall_status"   gorm:"not null"`
	ComplianceScore int                 `json:"compliance_score"`
	Gaps            []Gap               `json:"gaps"             gorm:"type:longtext;serializer:json"`
	Recommendations StringArray         `json:"recommendations"  gorm:"type:longtext;serializer:json"`
	Detailed        *DetailedAssessment `json:"detailed_analysis" gorm:"type:longtext;serializer:json"`
}

func (AssessmentModel) TableName() string { return "assessments" }

// Gap is one flattened compliance gap, normalized from the model's
// per-section output.
type Gap struct {
	GapID              string   `json:"gap_id"`
	Requirement        string   `json:"requirement"`
	CurrentState       string   `json:"current_state"`
	GapDescription     string   `json:"gap_description"`
	ImpactLevel        string   `json:"impact_level"`       // high | medium | low
	RemediationEffort  string   `json:"remediation_effort"` // high | medium | low
	RecommendedActions []string `json:"recommended_actions"`
}

// DetailedAssessment is the full normalized model response, retained
// verbatim-in-shape for audit and report rendering.
type DetailedAssessment struct {
	Regulation         AssessedRegulation `json:"regulation"`
	Overall            OverallAssessment  `json:"overall"`
	Sections           []Section          `json:"sections"`
	TopRecommendations []string           `json:"top_recommendations"`
	DetectedFramework  string             `json:"detected_framework"`
	Assumptions        []string           `json:"assumptions"`
	Error              string             `json:"error,omitempty"`
}

type AssessedRegulation struct {
	Name         string  `json:"name"`
	Jurisdiction *string `json:"jurisdiction"`
	Type         string  `json:"type"`
}

type OverallAssessment struct {
	Status  string `json:"status"`
	Score   int    `json:"score"`
	Summary string `json:"summary"`
}

// Section is one assessed area of the regulation with its own score and gaps.
type Section struct {
	Name   string       `json:"name"`
	Status string       `json:"status"`
	Score  int          `json:"score"`
	Gaps   []SectionGap `json:"gaps"`
}

// SectionGap is a gap as the model reports it, before flattening.
type SectionGap struct {
	GapID           string   `json:"gap_id"`
	Description     string   `json:"description"`
	RiskLevel       string   `json:"risk_level"`
	Evidence        *string  `json:"evidence"`
	Recommendations []string `json:"recommendations"`
}
