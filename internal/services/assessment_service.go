package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"assessment-service/internal/cache"
	"assessment-service/internal/mlclient"
	"assessment-service/internal/models"
	"assessment-service/internal/worker"

	"github.com/google/uuid"
)

// AssessmentStore is the persistence contract for completed assessments.
type AssessmentStore interface {
	Save(ctx context.Context, result *models.AssessmentResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AssessmentResult, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) (*models.AssessmentPage, error)
}

// CompletionNotifier publishes an event after an assessment is persisted.
type CompletionNotifier interface {
	PublishAssessmentCompleted(ctx context.Context, result *models.AssessmentResult) error
}

// AssessmentService orchestrates the feasibility assessment pipeline:
// cache check, rainfall and roof estimation, the deterministic calculators,
// scoring, persistence and cache store. Collaborator failures with a
// defined fallback are absorbed; only validation and persistence problems
// are surfaced.
type AssessmentService struct {
	store    AssessmentStore
	cache    cache.Cache
	rainfall *RainfallEstimator
	roof     *RoofEstimator
	scorer   *FeasibilityScorer
	notifier CompletionNotifier
	pool     *worker.WorkingPool
	cacheTTL time.Duration
}

func NewAssessmentService(
	store AssessmentStore,
	resultCache cache.Cache,
	ml mlclient.Client,
	notifier CompletionNotifier,
	pool *worker.WorkingPool,
	cacheTTL time.Duration,
) *AssessmentService {
	return &AssessmentService{
		store:    store,
		cache:    resultCache,
		rainfall: NewRainfallEstimator(ml),
		roof:     NewRoofEstimator(ml),
		scorer:   NewFeasibilityScorer(ml),
		notifier: notifier,
		pool:     pool,
		cacheTTL: cacheTTL,
	}
}

// PerformAssessment runs the full pipeline for one request. It returns an
// error only for invalid input; a persistence failure still returns the
// computed result, flagged with a storage warning.
func (s *AssessmentService) PerformAssessment(ctx context.Context, userID string, req models.AssessmentRequest) (*models.AssessmentResult, error) {
	start := time.Now()

	if err := ValidateRequest(&req); err != nil {
		return nil, err
	}

	fingerprint := cache.Fingerprint(req)
	if cached, ok := s.cache.Get(ctx, fingerprint); ok {
		cached.FromCache = true
		slog.Info("Assessment served from cache", "fingerprint", fingerprint, "assessment_id", cached.ID)
		return cached, nil
	}

	slog.Info("Starting assessment pipeline",
		"lat", req.Latitude, "lon", req.Longitude,
		"building_type", req.BuildingType, "user_id", userID)

	rainfall := s.rainfall.Estimate(ctx, req.Latitude, req.Longitude)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("canceled: assessment aborted after rainfall estimation: %w", err)
	}

	roof := s.resolveRoof(ctx, req)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("canceled: assessment aborted after roof estimation: %w", err)
	}

	potential := CalculateWaterPotential(roof.AreaSqm, rainfall.AnnualMM, req.RoofMaterial)
	demand := CalculateWaterDemand(req.BuildingType, req.HouseholdSize)

	feasibility := s.scorer.Score(ctx, roof.AreaSqm, rainfall.AnnualMM, demand.Occupancy, req.RoofMaterial, req.BuildingType)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("canceled: assessment aborted after feasibility scoring: %w", err)
	}

	structures := RecommendStructures(potential, demand, req.BuildingType, req.BudgetTier)
	economics := CalculateEconomics(structures, potential, req.Latitude, req.Longitude, req.MonthlyIncome)
	environmental := CalculateEnvironmentalImpact(potential)
	overall := AggregateScore(feasibility, economics, environmental, potential)

	now := time.Now()
	result := &models.AssessmentResult{
		ID:            uuid.New(),
		UserID:        userID,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Address:       req.Address,
		BuildingType:  req.BuildingType,
		RoofMaterial:  req.RoofMaterial,
		Rainfall:      rainfall,
		Roof:          roof,
		Potential:     potential,
		Demand:        demand,
		Feasibility:   feasibility,
		Structures:    structures,
		Economics:     economics,
		Environmental: environmental,
		Overall:       overall,
		Status:        models.AssessmentCompleted,
		CreatedAt:     now,
		CompletedAt:   &now,
	}
	result.ProcessingTimeMs = time.Since(start).Milliseconds()

	// A canceled caller must never leave a partial record behind.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("canceled: assessment aborted before persistence: %w", err)
	}

	if err := s.store.Save(ctx, result); err != nil {
		slog.Error("Failed to persist assessment, returning non-durable result",
			"assessment_id", result.ID, "error", err)
		warning := "assessment computed but could not be durably stored"
		result.StorageWarning = &warning
	} else {
		s.cache.Set(ctx, fingerprint, result, s.cacheTTL)
		s.notifyCompleted(result)
	}

	slog.Info("Assessment pipeline completed",
		"assessment_id", result.ID,
		"overall_score", overall.Score,
		"grade", overall.Grade,
		"rainfall_provenance", rainfall.Provenance,
		"roof_provenance", roof.Provenance,
		"feasibility_provenance", feasibility.Provenance,
		"processing_time_ms", result.ProcessingTimeMs)

	return result, nil
}

// resolveRoof uses the caller-supplied area when present, otherwise the
// estimator. The resolved area always lands within the allowed bounds.
func (s *AssessmentService) resolveRoof(ctx context.Context, req models.AssessmentRequest) models.RoofEstimate {
	var roof models.RoofEstimate
	if req.RoofArea != nil {
		roof = models.RoofEstimate{
			AreaSqm:    *req.RoofArea,
			Provenance: models.ProvenanceProvided,
			Confidence: 1.0,
		}
	} else {
		roof = s.roof.Estimate(ctx, req)
	}

	if roof.AreaSqm < minRoofAreaSqm {
		slog.Warn("Resolved roof area below minimum, clamping", "area_sqm", roof.AreaSqm)
		roof.AreaSqm = minRoofAreaSqm
	} else if roof.AreaSqm > maxRoofAreaSqm {
		slog.Warn("Resolved roof area above maximum, clamping", "area_sqm", roof.AreaSqm)
		roof.AreaSqm = maxRoofAreaSqm
	}
	return roof
}

func (s *AssessmentService) notifyCompleted(result *models.AssessmentResult) {
	if s.notifier == nil {
		return
	}

	published := *result
	job := func(jobCtx context.Context) error {
		return s.notifier.PublishAssessmentCompleted(jobCtx, &published)
	}

	if s.pool != nil {
		s.pool.SubmitJob(job)
		return
	}

	// No pool configured: publish inline but never let it affect the caller.
	if err := job(context.Background()); err != nil {
		slog.Warn("Failed to publish assessment completed event", "assessment_id", result.ID, "error", err)
	}
}

func (s *AssessmentService) GetAssessment(ctx context.Context, id string) (*models.AssessmentResult, error) {
	assessmentID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("validation: invalid assessment id %q: %w", id, err)
	}
	return s.store.GetByID(ctx, assessmentID)
}

func (s *AssessmentService) ListAssessments(ctx context.Context, userID string, limit, offset int) (*models.AssessmentPage, error) {
	if userID == "" {
		return nil, fmt.Errorf("validation: user id is required")
	}
	return s.store.ListByUser(ctx, userID, limit, offset)
}
