package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/regwatch/core/internal/models"
	"github.com/regwatch/core/internal/modules/regulation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrReportNotFound indicates the report row does not exist.
	ErrReportNotFound = errors.New("report not found")
	// ErrFileMissing indicates the rendered file disappeared from disk.
	ErrFileMissing = errors.New("report file not found")
	// ErrBadFormat indicates an unsupported report format.
	ErrBadFormat = errors.New("unsupported format, use 'pdf' or 'xlsx'")
)

// Service renders, stores and serves compliance reports.
type Service struct {
	db         *gorm.DB
	regSvc     *regulation.Service
	archiver   *Archiver
	reportsDir string
	log        *zap.Logger
}

func NewService(db *gorm.DB, regSvc *regulation.Service, archiver *Archiver, reportsDir string, log *zap.Logger) *Service {
	return &Service{db: db, regSvc: regSvc, archiver: archiver, reportsDir: reportsDir, log: log}
}

// Data aggregates report data for one regulation without rendering.
func (s *Service) Data(ctx context.Context, regulationID string) (*ReportData, error) {
	reg, err := s.regSvc.Get(ctx, regulationID)
	if err != nil {
		return nil, err
	}
	checks, err := s.regSvc.Assessments(ctx, regulationID)
	if err != nil {
		return nil, err
	}
	return Aggregate(reg, checks), nil
}

// Generate renders a report file and persists its row. The S3 archive upload
// is best-effort: failure logs but does not fail the report.
func (s *Service) Generate(ctx context.Context, regulationID, format string, includeRecommendations bool) (*models.ReportModel, error) {
	if format == "" {
		format = models.ReportFormatPDF
	}
	if format != models.ReportFormatPDF && format != models.ReportFormatXLSX {
		return nil, ErrBadFormat
	}

	data, err := s.Data(ctx, regulationID)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return nil, err
	}
	filename := fmt.Sprintf("report_%s_%s.%s", regulationID, time.Now().UTC().Format("20060102_150405"), format)
	path := filepath.Join(s.reportsDir, filename)

	switch format {
	case models.ReportFormatPDF:
		err = renderPDF(path, data, includeRecommendations)
	case models.ReportFormatXLSX:
		err = renderXLSX(path, data)
	}
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	row := &models.ReportModel{
		RegulationID: regulationID,
		Format:       format,
		FilePath:     path,
	}
	if s.archiver != nil {
		url, archiveErr := s.archiver.Upload(ctx, path)
		if archiveErr != nil {
			s.log.Warn("report archive upload failed", zap.String("path", path), zap.Error(archiveErr))
		} else {
			row.ArchiveURL = url
		}
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Get loads one report row.
func (s *Service) Get(ctx context.Context, id string) (*models.ReportModel, error) {
	var row models.ReportModel
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns all reports newest first.
func (s *Service) List(ctx context.Context) ([]models.ReportModel, error) {
	var rows []models.ReportModel
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// ResolveFile checks a report's file still exists and returns its path.
func (s *Service) ResolveFile(ctx context.Context, id string) (*models.ReportModel, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(row.FilePath); err != nil {
		return nil, ErrFileMissing
	}
	return row, nil
}
