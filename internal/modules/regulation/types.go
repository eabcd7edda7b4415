package regulation

// TaskTypeProcess is the taskqueue type for document processing runs.
const TaskTypeProcess = "regulation:process"

// ProcessPayload is the task payload for one processing run.
type ProcessPayload struct {
	RegulationID string `json:"regulation_id"`
}

type checkComplianceDTO struct {
	CompanyPolicies []string `json:"company_policies"`
}

type uploadResultDTO struct {
	RegulationID string `json:"regulation_id"`
	Status       string `json:"status"`
	TaskID       string `json:"task_id,omitempty"`
}
