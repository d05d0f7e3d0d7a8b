package services

import (
	"context"
	"log/slog"

	"assessment-service/internal/mlclient"
	"assessment-service/internal/models"
)

// Local heuristic constants used when the feasibility analyzer is down.
// They are deliberately moderate and non-committal rather than realistic;
// the "estimated" provenance flag tells consumers not to treat this path
// with the same confidence as the ML path.
const (
	fallbackFeasibilityScore = 75
	fallbackTechnicalScore   = 80
	fallbackPaybackMonths    = 24
	fallbackRunoffFactor     = 0.85
	fallbackCostPerSqm       = 200
)

// FeasibilityScorer asks the external analyzer for a composite score and
// falls back to the local heuristic on any failure.
type FeasibilityScorer struct {
	ml mlclient.Client
}

func NewFeasibilityScorer(ml mlclient.Client) *FeasibilityScorer {
	return &FeasibilityScorer{ml: ml}
}

func (s *FeasibilityScorer) Score(
	ctx context.Context,
	roofAreaSqm, annualRainfallMM float64,
	householdSize int,
	roofMaterial models.RoofMaterial,
	buildingType models.BuildingType,
) models.FeasibilityResult {
	if s.ml != nil {
		analysis, err := s.ml.AnalyzeFeasibility(ctx, mlclient.FeasibilityInput{
			RoofArea:       roofAreaSqm,
			AnnualRainfall: annualRainfallMM,
			HouseholdSize:  householdSize,
			RoofType:       roofMaterial,
			BuildingType:   buildingType,
		})
		if err == nil {
			return models.FeasibilityResult{
				Score:          analysis.FeasibilityScore,
				TechnicalScore: analysis.TechnicalScore,
				Provenance:     models.ProvenancePredicted,
			}
		}
		slog.Warn("Feasibility analyzer unavailable, using local heuristic",
			"roof_area", roofAreaSqm, "annual_rainfall", annualRainfallMM, "error", err)
	}

	waterSaving := roofAreaSqm * annualRainfallMM * fallbackRunoffFactor
	basicCost := roofAreaSqm * fallbackCostPerSqm
	slog.Info("Local feasibility heuristic applied",
		"estimated_water_saving", waterSaving,
		"estimated_basic_cost", basicCost,
		"estimated_payback_months", fallbackPaybackMonths)

	return models.FeasibilityResult{
		Score:          fallbackFeasibilityScore,
		TechnicalScore: fallbackTechnicalScore,
		Provenance:     models.ProvenanceEstimated,
	}
}
