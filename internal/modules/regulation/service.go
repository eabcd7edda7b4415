package regulation

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/regwatch/core/internal/models"
	"github.com/regwatch/core/internal/modules/processing/analysis"
	"github.com/regwatch/core/internal/modules/processing/assessment"
	"github.com/regwatch/core/internal/modules/processing/extract"
	"github.com/regwatch/core/internal/pkg/llm"
	"github.com/regwatch/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates the regulation does not exist.
	ErrNotFound = errors.New("regulation not found")
	// ErrNotProcessed indicates processing has not finished yet.
	ErrNotProcessed = errors.New("regulation not processed yet")
)

// Service handles regulation ingestion, processing and compliance checks.
type Service struct {
	db      *gorm.DB
	gen     llm.Generator
	taskSvc *taskqueue.Service
	log     *zap.Logger
}

func NewService(db *gorm.DB, gen llm.Generator, taskSvc *taskqueue.Service, log *zap.Logger) *Service {
	return &Service{db: db, gen: gen, taskSvc: taskSvc, log: log}
}

// Create persists a received regulation row and enqueues its processing run.
// filePath must point at the stored upload.
func (s *Service) Create(ctx context.Context, filename, filePath, regulationType, jurisdiction string, effectiveDate *string) (*models.RegulationModel, *taskqueue.Task, error) {
	if regulationType == "" {
		regulationType = "general"
	}
	if jurisdiction == "" {
		jurisdiction = "global"
	}

	reg := &models.RegulationModel{
		Filename:       filename,
		FilePath:       filePath,
		RegulationType: regulationType,
		Jurisdiction:   jurisdiction,
		EffectiveDate:  effectiveDate,
		Status:         models.RegulationReceived,
	}
	if err := s.db.WithContext(ctx).Create(reg).Error; err != nil {
		return nil, nil, err
	}

	payload := ProcessPayload{RegulationID: reg.ID}
	task, err := s.taskSvc.Enqueue(ctx, TaskTypeProcess, payload, "process:"+reg.ID, reg.ID)
	if err != nil {
		return nil, nil, err
	}

	// Execute immediately in a goroutine (in production use a worker pool)
	if task.Status == taskqueue.TaskPending {
		go s.executeProcess(context.Background(), task.ID, payload)
	}

	return reg, task, nil
}

// executeProcess runs extract -> analyze -> persist for one regulation.
// Extraction is the only hard failure; analysis always yields a result.
func (s *Service) executeProcess(ctx context.Context, taskID string, payload ProcessPayload) {
	s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskRunning, nil, "")

	var reg models.RegulationModel
	if err := s.db.WithContext(ctx).First(&reg, "id = ?", payload.RegulationID).Error; err != nil {
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, "regulation not found")
		return
	}

	s.db.WithContext(ctx).Model(&reg).Update("status", models.RegulationProcessing)

	text, err := extract.Text(reg.FilePath)
	if err != nil {
		s.log.Warn("document extraction failed",
			zap.String("regulation_id", reg.ID),
			zap.Error(err),
		)
		s.db.WithContext(ctx).Model(&reg).Updates(map[string]interface{}{
			"status": models.RegulationError,
			"error":  err.Error(),
		})
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error())
		s.removeUpload(reg.FilePath)
		return
	}

	result := analysis.Analyze(ctx, s.gen, text, reg.RegulationType, reg.Jurisdiction)

	if err := s.db.WithContext(ctx).Model(&reg).Updates(map[string]interface{}{
		"extracted_text": text,
		"analysis":       result,
		"status":         models.RegulationProcessed,
		"error":          "",
	}).Error; err != nil {
		s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskFailed, nil, err.Error())
		s.removeUpload(reg.FilePath)
		return
	}

	s.taskSvc.UpdateStatus(ctx, taskID, taskqueue.TaskCompleted, map[string]string{
		"regulation_id": reg.ID,
		"status":        models.RegulationProcessed,
	}, "")
	s.removeUpload(reg.FilePath)
}

func (s *Service) removeUpload(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove upload", zap.String("path", path), zap.Error(err))
	}
}

// Get loads one regulation by ID.
func (s *Service) Get(ctx context.Context, id string) (*models.RegulationModel, error) {
	var reg models.RegulationModel
	err := s.db.WithContext(ctx).First(&reg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// List returns regulations newest first.
func (s *Service) List(ctx context.Context, page, size int) ([]models.RegulationModel, int64, error) {
	var regs []models.RegulationModel
	var total int64

	query := s.db.WithContext(ctx).Model(&models.RegulationModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&regs).Error
	return regs, total, err
}

// CheckCompliance runs one compliance assessment against a processed
// regulation and persists the result.
func (s *Service) CheckCompliance(ctx context.Context, regulationID string, policies []string) (*models.AssessmentModel, error) {
	reg, err := s.Get(ctx, regulationID)
	if err != nil {
		return nil, err
	}
	if reg.Status != models.RegulationProcessed {
		return nil, ErrNotProcessed
	}

	result := assessment.Check(ctx, s.gen, reg.ExtractedText, policies, reg.Analysis)

	row := &models.AssessmentModel{
		RegulationID:    reg.ID,
		OverallStatus:   result.OverallStatus,
		ComplianceScore: result.ComplianceScore,
		Gaps:            result.Gaps,
		Recommendations: result.Recommendations,
		Detailed:        result.Detailed,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Assessments returns every assessment run for one regulation, oldest first.
func (s *Service) Assessments(ctx context.Context, regulationID string) ([]models.AssessmentModel, error) {
	if _, err := s.Get(ctx, regulationID); err != nil {
		return nil, err
	}
	var rows []models.AssessmentModel
	err := s.db.WithContext(ctx).
		Where("regulation_id = ?", regulationID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
