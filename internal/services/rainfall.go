package services

import (
	"context"
	"log/slog"

	"assessment-service/internal/mlclient"
	"assessment-service/internal/models"
)

// rainfallForecastMonths is the fixed look-ahead window for the predictor.
const rainfallForecastMonths = 12

// RainfallEstimator resolves annual rainfall for a coordinate: the external
// predictor first, the regional default on any failure. The fallback path
// never fails.
type RainfallEstimator struct {
	ml mlclient.Client
}

func NewRainfallEstimator(ml mlclient.Client) *RainfallEstimator {
	return &RainfallEstimator{ml: ml}
}

func (e *RainfallEstimator) Estimate(ctx context.Context, lat, lon float64) models.RainfallEstimate {
	if e.ml != nil {
		prediction, err := e.ml.PredictRainfall(ctx, lat, lon, rainfallForecastMonths)
		if err == nil {
			return models.RainfallEstimate{
				AnnualMM:         prediction.PredictedAnnualRainfall,
				Provenance:       models.ProvenancePredicted,
				DeviationPercent: prediction.DeviationPercent,
			}
		}
		slog.Warn("Rainfall prediction unavailable, using regional default",
			"lat", lat, "lon", lon, "error", err)
	}

	return models.RainfallEstimate{
		AnnualMM:   RegionalRainfall(lat, lon),
		Provenance: models.ProvenanceEstimated,
	}
}
