package models

// Regulation processing status.
const (
	RegulationReceived   = "received"
	RegulationProcessing = "processing"
	RegulationProcessed  = "processed"
	RegulationError      = "error"
)

// RegulationModel is an ingested regulatory document and its analysis.
type RegulationModel struct {
	Base
	Filename       string          `json:"filename"        gorm:"not null"`
	FilePath       string          `json:"file_path"`
	RegulationType string          `json:"regulation_type" gorm:"index;default:'general'"`
	Jurisdiction   string          `json:"jurisdiction"    gorm:"default:'global'"`
	EffectiveDate  *string         `json:"effective_date"`
	ExtractedText  string          `json:"extracted_text"  gorm:"type:longtext"`
	Analysis       *AnalysisResult `json:"analysis_result" gorm:"type:longtext;serializer:json"`
	Status         string          `json:"status"          gorm:"index;default:'received'"`
	Error          string          `json:"error,omitempty"`
}

func (RegulationModel) TableName() string { return "regulations" }

// Requirement is one extracted key requirement of a regulation.
type Requirement struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"` // high | medium | low
}

// RiskAssessment summarizes the model's risk view of a regulation.
type RiskAssessment struct {
	OverallRisk string `json:"overall_risk"` // high | medium | low
	Notes       string `json:"notes,omitempty"`
}

// AnalysisResult is the normalized output of the regulation analysis stage.
// The schema is total: every field is present, zero-valued when unknown,
// so downstream stages never special-case a missing analysis.
type AnalysisResult struct {
	RegulationSummary       string         `json:"regulation_summary"`
	KeyRequirements         []Requirement  `json:"key_requirements"`
	ComplianceObligations   []string       `json:"compliance_obligations"`
	RiskAssessment          RiskAssessment `json:"risk_assessment"`
	ImplementationTimeline  string         `json:"implementation_timeline"`
	AffectedDepartments     []string       `json:"affected_departments"`
	PenaltiesAndEnforcement string         `json:"penalties_and_enforcement"`
	RecommendedActions      []string       `json:"recommended_actions"`
	DetectedFramework       string         `json:"detected_framework"`
	DocumentOverview        string         `json:"document_overview"`
}

// Normalize fills nil slices so serialized output always carries every field.
func (a *AnalysisResult) Normalize() {
	if a.KeyRequirements == nil {
		a.KeyRequirements = []Requirement{}
	}
	if a.ComplianceObligations == nil {
		a.ComplianceObligations = []string{}
	}
	if a.AffectedDepartments == nil {
		a.AffectedDepartments = []string{}
	}
	if a.RecommendedActions == nil {
		a.RecommendedActions = []string{}
	}
}
