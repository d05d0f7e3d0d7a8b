package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"assessment-service/internal/cache"
	"assessment-service/internal/mlclient"
	"assessment-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST FAKES
// ============================================================================

type fakeMLClient struct {
	rainfall    *mlclient.RainfallPrediction
	roof        *mlclient.RoofDetection
	feasibility *mlclient.FeasibilityAnalysis

	rainfallCalls    int
	roofCalls        int
	feasibilityCalls int
}

func (f *fakeMLClient) PredictRainfall(_ context.Context, _, _ float64, _ int) (*mlclient.RainfallPrediction, error) {
	f.rainfallCalls++
	if f.rainfall == nil {
		return nil, fmt.Errorf("rainfall predictor unreachable")
	}
	return f.rainfall, nil
}

func (f *fakeMLClient) DetectRoof(_ context.Context, _ string, _, _ float64, _ models.BuildingType) (*mlclient.RoofDetection, error) {
	f.roofCalls++
	if f.roof == nil {
		return nil, fmt.Errorf("roof detector unreachable")
	}
	return f.roof, nil
}

func (f *fakeMLClient) AnalyzeFeasibility(_ context.Context, _ mlclient.FeasibilityInput) (*mlclient.FeasibilityAnalysis, error) {
	f.feasibilityCalls++
	if f.feasibility == nil {
		return nil, fmt.Errorf("feasibility analyzer unreachable")
	}
	return f.feasibility, nil
}

type fakeStore struct {
	mu       sync.Mutex
	saved    map[uuid.UUID]models.AssessmentResult
	failSave bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[uuid.UUID]models.AssessmentResult)}
}

func (s *fakeStore) Save(_ context.Context, result *models.AssessmentResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave {
		return fmt.Errorf("internal_error: store unavailable")
	}
	s.saved[result.ID] = *result
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*models.AssessmentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.saved[id]
	if !ok {
		return nil, fmt.Errorf("not_found: assessment not found: %s", id)
	}
	return &result, nil
}

func (s *fakeStore) ListByUser(_ context.Context, userID string, limit, offset int) (*models.AssessmentPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.AssessmentResult, 0)
	for _, r := range s.saved {
		if r.UserID == userID {
			items = append(items, r)
		}
	}
	return &models.AssessmentPage{Items: items, Total: len(items), Limit: limit, Offset: offset}, nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saved)
}

func newTestService(store *fakeStore, ml mlclient.Client) (*AssessmentService, *cache.MemoryCache) {
	memCache := cache.NewMemoryCache()
	svc := NewAssessmentService(store, memCache, ml, nil, nil, time.Hour)
	return svc, memCache
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func defaultRequest() models.AssessmentRequest {
	return models.AssessmentRequest{
		Latitude:      28.7,
		Longitude:     77.1,
		BuildingType:  models.BuildingResidential,
		RoofArea:      floatPtr(120),
		RoofMaterial:  models.RoofConcrete,
		HouseholdSize: intPtr(4),
	}
}

// ============================================================================
// END-TO-END PIPELINE
// ============================================================================

func TestPerformAssessment_AllCollaboratorsDown(t *testing.T) {
	store := newFakeStore()
	svc, memCache := newTestService(store, &fakeMLClient{})
	defer memCache.Close()

	result, err := svc.PerformAssessment(context.Background(), "user-1", defaultRequest())
	require.NoError(t, err)
	require.NotNil(t, result)

	// Every fallback engaged, nothing failed.
	assert.Equal(t, models.AssessmentCompleted, result.Status)
	assert.Equal(t, models.ProvenanceEstimated, result.Rainfall.Provenance)
	assert.Equal(t, 650.0, result.Rainfall.AnnualMM, "north regional default")
	assert.Equal(t, models.ProvenanceProvided, result.Roof.Provenance)
	assert.Equal(t, models.ProvenanceEstimated, result.Feasibility.Provenance)
	assert.Equal(t, 75.0, result.Feasibility.Score)
	assert.Equal(t, 80.0, result.Feasibility.TechnicalScore)

	// 120 * 650 * 0.90 = 70200
	assert.InDelta(t, 70200.0, result.Potential.AnnualLiters, 0.001)

	assert.NotEmpty(t, result.Overall.Grade)
	assert.NotEmpty(t, result.Overall.Recommendation)
	assert.InDelta(t, 63.0, result.Overall.Score, 0.001)
	assert.Equal(t, "B", result.Overall.Grade)
	assert.Equal(t, "Recommended", result.Overall.Recommendation)

	assert.Nil(t, result.StorageWarning)
	assert.Equal(t, 1, store.count())
}

func TestPerformAssessment_PredictedRainfallProvenance(t *testing.T) {
	deviation := 5.2
	ml := &fakeMLClient{
		rainfall: &mlclient.RainfallPrediction{
			PredictedAnnualRainfall: 812.5,
			DeviationPercent:        &deviation,
		},
		feasibility: &mlclient.FeasibilityAnalysis{FeasibilityScore: 88, TechnicalScore: 91},
	}
	store := newFakeStore()
	svc, memCache := newTestService(store, ml)
	defer memCache.Close()

	result, err := svc.PerformAssessment(context.Background(), "user-1", defaultRequest())
	require.NoError(t, err)

	assert.Equal(t, models.ProvenancePredicted, result.Rainfall.Provenance)
	assert.Equal(t, 812.5, result.Rainfall.AnnualMM)
	require.NotNil(t, result.Rainfall.DeviationPercent)
	assert.Equal(t, 5.2, *result.Rainfall.DeviationPercent)
	assert.Equal(t, 88.0, result.Feasibility.Score)
	assert.Equal(t, models.ProvenancePredicted, result.Feasibility.Provenance)
}

func TestPerformAssessment_RoofDetection(t *testing.T) {
	ml := &fakeMLClient{
		roof: &mlclient.RoofDetection{RoofArea: 142.5, ConfidenceScore: 0.87},
	}
	store := newFakeStore()
	svc, memCache := newTestService(store, ml)
	defer memCache.Close()

	req := defaultRequest()
	req.RoofArea = nil
	req.ImageRef = strPtr("roof-images/user-1/1.jpg")

	result, err := svc.PerformAssessment(context.Background(), "user-1", req)
	require.NoError(t, err)

	assert.Equal(t, models.ProvenanceDetected, result.Roof.Provenance)
	assert.Equal(t, 142.5, result.Roof.AreaSqm)
	assert.Equal(t, 0.87, result.Roof.Confidence)
	assert.Equal(t, 1, ml.roofCalls)
}

func TestPerformAssessment_RoofFallbackWithoutImage(t *testing.T) {
	ml := &fakeMLClient{
		roof: &mlclient.RoofDetection{RoofArea: 142.5, ConfidenceScore: 0.87},
	}
	store := newFakeStore()
	svc, memCache := newTestService(store, ml)
	defer memCache.Close()

	req := defaultRequest()
	req.RoofArea = nil
	req.BuildingType = models.BuildingCommercial

	result, err := svc.PerformAssessment(context.Background(), "user-1", req)
	require.NoError(t, err)

	// Detector is skipped entirely when no image reference is supplied.
	assert.Equal(t, 0, ml.roofCalls)
	assert.Equal(t, models.ProvenanceEstimated, result.Roof.Provenance)
	assert.Equal(t, 250.0, result.Roof.AreaSqm)
	assert.Equal(t, 0.6, result.Roof.Confidence)
}

func TestPerformAssessment_CacheHitShortCircuits(t *testing.T) {
	ml := &fakeMLClient{}
	store := newFakeStore()
	svc, memCache := newTestService(store, ml)
	defer memCache.Close()

	first, err := svc.PerformAssessment(context.Background(), "user-1", defaultRequest())
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := svc.PerformAssessment(context.Background(), "user-1", defaultRequest())
	require.NoError(t, err)
	assert.True(t, second.FromCache)

	// Identical content apart from the served-from-cache marker.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.ProcessingTimeMs, second.ProcessingTimeMs)

	// No recomputation and no second persist.
	assert.Equal(t, 1, ml.rainfallCalls)
	assert.Equal(t, 1, store.count())
}

func TestPerformAssessment_CacheKeyIgnoresHouseholdFields(t *testing.T) {
	store := newFakeStore()
	svc, memCache := newTestService(store, &fakeMLClient{})
	defer memCache.Close()

	first, err := svc.PerformAssessment(context.Background(), "user-1", defaultRequest())
	require.NoError(t, err)

	// Same coordinate/building/roof area, different budget tier: collides
	// with the cached entry by design.
	req := defaultRequest()
	req.BudgetTier = models.BudgetHigh
	second, err := svc.PerformAssessment(context.Background(), "user-1", req)
	require.NoError(t, err)

	assert.True(t, second.FromCache)
	assert.Equal(t, first.ID, second.ID)
}

func TestPerformAssessment_ValidationErrors(t *testing.T) {
	store := newFakeStore()
	svc, memCache := newTestService(store, &fakeMLClient{})
	defer memCache.Close()

	tests := []struct {
		name   string
		mutate func(*models.AssessmentRequest)
	}{
		{"latitude out of range", func(r *models.AssessmentRequest) { r.Latitude = 91 }},
		{"longitude out of range", func(r *models.AssessmentRequest) { r.Longitude = -181 }},
		{"unknown building type", func(r *models.AssessmentRequest) { r.BuildingType = "castle" }},
		{"roof area too small", func(r *models.AssessmentRequest) { r.RoofArea = floatPtr(5) }},
		{"roof area too large", func(r *models.AssessmentRequest) { r.RoofArea = floatPtr(20000) }},
		{"household size zero", func(r *models.AssessmentRequest) { r.HouseholdSize = intPtr(0) }},
		{"household size too large", func(r *models.AssessmentRequest) { r.HouseholdSize = intPtr(51) }},
		{"negative income", func(r *models.AssessmentRequest) { r.MonthlyIncome = floatPtr(-1) }},
		{"unknown budget tier", func(r *models.AssessmentRequest) { r.BudgetTier = "platinum" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := defaultRequest()
			tt.mutate(&req)

			_, err := svc.PerformAssessment(context.Background(), "user-1", req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation:")
		})
	}

	assert.Equal(t, 0, store.count(), "rejected requests must not persist anything")
}

func TestPerformAssessment_PersistenceFailureReturnsResultWithWarning(t *testing.T) {
	store := newFakeStore()
	store.failSave = true
	svc, memCache := newTestService(store, &fakeMLClient{})
	defer memCache.Close()

	result, err := svc.PerformAssessment(context.Background(), "user-1", defaultRequest())
	require.NoError(t, err, "the expensive computation is still returned")

	require.NotNil(t, result.StorageWarning)
	assert.Equal(t, models.AssessmentCompleted, result.Status)

	// A non-durable result must not be served from cache later.
	second, err := svc.PerformAssessment(context.Background(), "user-1", defaultRequest())
	require.NoError(t, err)
	assert.False(t, second.FromCache)
}

func TestPerformAssessment_CanceledContextAbortsWithoutPersisting(t *testing.T) {
	store := newFakeStore()
	svc, memCache := newTestService(store, &fakeMLClient{})
	defer memCache.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.PerformAssessment(ctx, "user-1", defaultRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "canceled:")
	assert.Equal(t, 0, store.count(), "partial results must never be written")
}

func TestGetAssessment(t *testing.T) {
	store := newFakeStore()
	svc, memCache := newTestService(store, &fakeMLClient{})
	defer memCache.Close()

	created, err := svc.PerformAssessment(context.Background(), "user-1", defaultRequest())
	require.NoError(t, err)

	fetched, err := svc.GetAssessment(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	_, err = svc.GetAssessment(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_found:")

	_, err = svc.GetAssessment(context.Background(), "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation:")
}

func TestListAssessments(t *testing.T) {
	store := newFakeStore()
	svc, memCache := newTestService(store, &fakeMLClient{})
	defer memCache.Close()

	_, err := svc.PerformAssessment(context.Background(), "user-1", defaultRequest())
	require.NoError(t, err)

	page, err := svc.ListAssessments(context.Background(), "user-1", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)

	_, err = svc.ListAssessments(context.Background(), "", 20, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation:")
}
