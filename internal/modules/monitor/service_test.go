package monitor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/regwatch/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, systemPrompt, prompt string) (string, error) {
	return "", errors.New("generation unavailable")
}

// memStore is an in-memory Store for poll-cycle tests.
type memStore struct {
	mu          sync.Mutex
	sources     map[string]*models.SourceModel
	versions    []*models.SourceVersionModel
	regulations []*models.RegulationModel
}

func newMemStore() *memStore {
	return &memStore{sources: map[string]*models.SourceModel{}}
}

func (m *memStore) CreateSource(ctx context.Context, src *models.SourceModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	m.sources[src.ID] = src
	return nil
}

func (m *memStore) Source(ctx context.Context, id string) (*models.SourceModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	src, ok := m.sources[id]
	if !ok {
		return nil, ErrSourceNotFound
	}
	return src, nil
}

func (m *memStore) Sources(ctx context.Context) ([]models.SourceModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []models.SourceModel
	for _, src := range m.sources {
		rows = append(rows, *src)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (m *memStore) EnabledSources(ctx context.Context) ([]models.SourceModel, error) {
	rows, _ := m.Sources(ctx)
	var enabled []models.SourceModel
	for _, row := range rows {
		if row.Enabled {
			enabled = append(enabled, row)
		}
	}
	return enabled, nil
}

func (m *memStore) LatestVersion(ctx context.Context, sourceID string) (*models.SourceVersionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.SourceVersionModel
	for _, ver := range m.versions {
		if ver.SourceID != sourceID {
			continue
		}
		if latest == nil || ver.FetchedAt.After(latest.FetchedAt) {
			latest = ver
		}
	}
	return latest, nil
}

func (m *memStore) SaveVersion(ctx context.Context, ver *models.SourceVersionModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ver.ID == "" {
		ver.ID = uuid.NewString()
	}
	m.versions = append(m.versions, ver)
	return nil
}

func (m *memStore) SaveRegulation(ctx context.Context, reg *models.RegulationModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	m.regulations = append(m.regulations, reg)
	return nil
}

func newTestService(store Store) *Service {
	return NewService(store, stubGenerator{}, time.Second, zap.NewNop())
}

func addTestSource(t *testing.T, store *memStore, url string) *models.SourceModel {
	t.Helper()
	src := &models.SourceModel{
		Name:           "eu-portal",
		URL:            url,
		Jurisdiction:   "EU",
		RegulationType: "gdpr",
		Enabled:        true,
	}
	require.NoError(t, store.CreateSource(context.Background(), src))
	return src
}

func TestPollFirstFetchIsAChange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Article 1. Initial text."))
	}))
	defer server.Close()

	store := newMemStore()
	src := addTestSource(t, store, server.URL)
	svc := newTestService(store)

	changed, err := svc.Poll(context.Background(), src.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	require.Len(t, store.versions, 1)
	assert.Equal(t, src.ID, store.versions[0].SourceID)
	assert.Len(t, store.versions[0].Digest, 64)
	assert.Equal(t, "Article 1. Initial text.", store.versions[0].Snippet)

	require.Len(t, store.regulations, 1)
	reg := store.regulations[0]
	assert.Equal(t, "monitor_eu-portal.txt", reg.Filename)
	assert.Equal(t, models.RegulationProcessed, reg.Status)
	assert.Equal(t, "gdpr", reg.RegulationType)
	require.NotNil(t, reg.Analysis)
	assert.Equal(t, "medium", reg.Analysis.RiskAssessment.OverallRisk)
}

func TestPollUnchangedContentIsIdempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("stable content"))
	}))
	defer server.Close()

	store := newMemStore()
	src := addTestSource(t, store, server.URL)
	svc := newTestService(store)

	changed, err := svc.Poll(context.Background(), src.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.Poll(context.Background(), src.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	assert.Len(t, store.versions, 1)
	assert.Len(t, store.regulations, 1)
}

func TestPollDetectsChangeAfterContentUpdate(t *testing.T) {
	content := "version one"
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		w.Write([]byte(content))
	}))
	defer server.Close()

	store := newMemStore()
	src := addTestSource(t, store, server.URL)
	svc := newTestService(store)

	changed, err := svc.Poll(context.Background(), src.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	mu.Lock()
	content = "version two"
	mu.Unlock()

	changed, err = svc.Poll(context.Background(), src.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, store.versions, 2)
	assert.Len(t, store.regulations, 2)
}

func TestPollFetchFailureReportsNoChange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := newMemStore()
	src := addTestSource(t, store, server.URL)
	svc := newTestService(store)

	changed, err := svc.Poll(context.Background(), src.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, store.versions)
	assert.Empty(t, store.regulations)
}

func TestPollMissingSource(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.Poll(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestPollAllCountsChangesAndChecked(t *testing.T) {
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fresh content"))
	}))
	defer okServer.Close()
	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer badServer.Close()

	store := newMemStore()
	require.NoError(t, store.CreateSource(context.Background(), &models.SourceModel{
		Name: "a-good", URL: okServer.URL, Enabled: true,
	}))
	require.NoError(t, store.CreateSource(context.Background(), &models.SourceModel{
		Name: "b-bad", URL: badServer.URL, Enabled: true,
	}))
	require.NoError(t, store.CreateSource(context.Background(), &models.SourceModel{
		Name: "c-disabled", URL: okServer.URL, Enabled: false,
	}))

	svc := newTestService(store)
	changes, checked, err := svc.PollAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, changes)
	assert.Equal(t, 2, checked)
}

func TestPollTruncatesLongContent(t *testing.T) {
	long := make([]byte, 12000)
	for i := range long {
		long[i] = 'r'
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(long)
	}))
	defer server.Close()

	store := newMemStore()
	src := addTestSource(t, store, server.URL)
	svc := newTestService(store)

	changed, err := svc.Poll(context.Background(), src.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	require.Len(t, store.versions, 1)
	assert.Len(t, store.versions[0].Snippet, 200)
	require.Len(t, store.regulations, 1)
	assert.Len(t, store.regulations[0].ExtractedText, 10000)
}
