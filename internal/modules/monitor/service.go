// Package monitor watches registered source URLs for regulatory-text changes.
// A changed source yields a new stored version plus an auto-created, already
// analyzed regulation row. Fetch and analysis failures are absorbed: a poll
// reports changed=false rather than erroring.
package monitor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/regwatch/core/internal/models"
	"github.com/regwatch/core/internal/modules/processing/analysis"
	"github.com/regwatch/core/internal/pkg/llm"
	"go.uber.org/zap"
)

const (
	snippetLen         = 200
	monitorMaxTextLen  = 10000
	defaultHTTPTimeout = 30 * time.Second
)

// Service polls sources and records detected changes.
type Service struct {
	store  Store
	gen    llm.Generator
	client *http.Client
	log    *zap.Logger
}

func NewService(store Store, gen llm.Generator, fetchTimeout time.Duration, log *zap.Logger) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultHTTPTimeout
	}
	return &Service{
		store:  store,
		gen:    gen,
		client: &http.Client{Timeout: fetchTimeout},
		log:    log,
	}
}

// AddSource registers a new watched URL.
func (s *Service) AddSource(ctx context.Context, name, url, jurisdiction, regulationType string, dueDays *int) (*models.SourceModel, error) {
	if jurisdiction == "" {
		jurisdiction = "global"
	}
	if regulationType == "" {
		regulationType = "general"
	}
	src := &models.SourceModel{
		Name:           name,
		URL:            url,
		Jurisdiction:   jurisdiction,
		RegulationType: regulationType,
		Enabled:        true,
		DueDays:        dueDays,
	}
	if err := s.store.CreateSource(ctx, src); err != nil {
		return nil, err
	}
	return src, nil
}

// Sources lists all registered sources.
func (s *Service) Sources(ctx context.Context) ([]models.SourceModel, error) {
	return s.store.Sources(ctx)
}

// Poll fetches one source by ID and reports whether its content changed.
// Only a missing source is an error; fetch failures report false.
func (s *Service) Poll(ctx context.Context, sourceID string) (bool, error) {
	src, err := s.store.Source(ctx, sourceID)
	if err != nil {
		return false, err
	}
	return s.pollSource(ctx, src), nil
}

// PollAll polls every enabled source and returns (changes, checked).
func (s *Service) PollAll(ctx context.Context) (int, int, error) {
	sources, err := s.store.EnabledSources(ctx)
	if err != nil {
		return 0, 0, err
	}
	changes := 0
	for i := range sources {
		if s.pollSource(ctx, &sources[i]) {
			changes++
		}
	}
	return changes, len(sources), nil
}

// pollSource performs one fetch-compare-record cycle. Every failure path
// logs and returns false.
func (s *Service) pollSource(ctx context.Context, src *models.SourceModel) bool {
	content, ok := s.fetch(ctx, src.URL)
	if !ok {
		return false
	}

	sum := sha256.Sum256([]byte(content))
	digest := hex.EncodeToString(sum[:])

	last, err := s.store.LatestVersion(ctx, src.ID)
	if err != nil {
		s.log.Warn("monitor version lookup failed", zap.String("source_id", src.ID), zap.Error(err))
		return false
	}
	if last != nil && last.Digest == digest {
		return false
	}

	snippet := llm.Truncate(content, snippetLen)
	ver := &models.SourceVersionModel{
		SourceID:  src.ID,
		FetchedAt: time.Now().UTC(),
		Digest:    digest,
		Snippet:   snippet,
	}
	if err := s.store.SaveVersion(ctx, ver); err != nil {
		s.log.Warn("monitor version save failed", zap.String("source_id", src.ID), zap.Error(err))
		return false
	}

	extracted := llm.Truncate(content, monitorMaxTextLen)
	result := analysis.Analyze(ctx, s.gen, extracted, src.RegulationType, src.Jurisdiction)

	reg := &models.RegulationModel{
		Filename:       "monitor_" + src.Name + ".txt",
		RegulationType: src.RegulationType,
		Jurisdiction:   src.Jurisdiction,
		ExtractedText:  extracted,
		Analysis:       result,
		Status:         models.RegulationProcessed,
	}
	if err := s.store.SaveRegulation(ctx, reg); err != nil {
		s.log.Warn("monitor regulation save failed", zap.String("source_id", src.ID), zap.Error(err))
		return false
	}

	s.log.Info("monitor detected change",
		zap.String("source_id", src.ID),
		zap.String("source", src.Name),
		zap.String("regulation_id", reg.ID),
	)
	return true
}

func (s *Service) fetch(ctx context.Context, url string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.log.Warn("monitor fetch failed", zap.String("url", url), zap.Error(err))
		return "", false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("monitor fetch failed", zap.String("url", url), zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		s.log.Warn("monitor fetch failed", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.log.Warn("monitor fetch failed", zap.String("url", url), zap.Error(err))
		return "", false
	}
	return string(body), true
}
