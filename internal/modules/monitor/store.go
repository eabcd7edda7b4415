package monitor

import (
	"context"
	"errors"

	"github.com/regwatch/core/internal/models"
	"gorm.io/gorm"
)

// ErrSourceNotFound indicates the monitored source does not exist.
var ErrSourceNotFound = errors.New("source not found")

// Store is the persistence surface the poller needs. Kept narrow so the
// change-detection logic tests against an in-memory implementation.
type Store interface {
	CreateSource(ctx context.Context, src *models.SourceModel) error
	Source(ctx context.Context, id string) (*models.SourceModel, error)
	Sources(ctx context.Context) ([]models.SourceModel, error)
	EnabledSources(ctx context.Context) ([]models.SourceModel, error)

	// LatestVersion returns the most recent stored version, nil when the
	// source has never been fetched.
	LatestVersion(ctx context.Context, sourceID string) (*models.SourceVersionModel, error)
	SaveVersion(ctx context.Context, ver *models.SourceVersionModel) error

	SaveRegulation(ctx context.Context, reg *models.RegulationModel) error
}

// GormStore is the MySQL-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) CreateSource(ctx context.Context, src *models.SourceModel) error {
	return s.db.WithContext(ctx).Create(src).Error
}

func (s *GormStore) Source(ctx context.Context, id string) (*models.SourceModel, error) {
	var src models.SourceModel
	err := s.db.WithContext(ctx).First(&src, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &src, nil
}

func (s *GormStore) Sources(ctx context.Context) ([]models.SourceModel, error) {
	var rows []models.SourceModel
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (s *GormStore) EnabledSources(ctx context.Context) ([]models.SourceModel, error) {
	var rows []models.SourceModel
	err := s.db.WithContext(ctx).Where("enabled = ?", true).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (s *GormStore) LatestVersion(ctx context.Context, sourceID string) (*models.SourceVersionModel, error) {
	var ver models.SourceVersionModel
	err := s.db.WithContext(ctx).
		Where("source_id = ?", sourceID).
		Order("fetched_at DESC").
		First(&ver).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ver, nil
}

func (s *GormStore) SaveVersion(ctx context.Context, ver *models.SourceVersionModel) error {
	return s.db.WithContext(ctx).Create(ver).Error
}

func (s *GormStore) SaveRegulation(ctx context.Context, reg *models.RegulationModel) error {
	return s.db.WithContext(ctx).Create(reg).Error
}
