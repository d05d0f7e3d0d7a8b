package services

import (
	"context"
	"log/slog"

	"assessment-service/internal/mlclient"
	"assessment-service/internal/models"
)

// defaultRoofAreas is the fallback roof area (sq. meters) per building type.
var defaultRoofAreas = map[models.BuildingType]float64{
	models.BuildingResidential:   100,
	models.BuildingCommercial:    250,
	models.BuildingIndustrial:    500,
	models.BuildingInstitutional: 200,
}

const fallbackRoofConfidence = 0.6

// RoofEstimator resolves the roof area when the request does not supply one.
// The detector is only called when an image reference is present; otherwise
// the building-type default applies directly. The fallback never fails.
type RoofEstimator struct {
	ml mlclient.Client
}

func NewRoofEstimator(ml mlclient.Client) *RoofEstimator {
	return &RoofEstimator{ml: ml}
}

func (e *RoofEstimator) Estimate(ctx context.Context, req models.AssessmentRequest) models.RoofEstimate {
	if req.ImageRef != nil && *req.ImageRef != "" && e.ml != nil {
		detection, err := e.ml.DetectRoof(ctx, *req.ImageRef, req.Latitude, req.Longitude, req.BuildingType)
		if err == nil {
			return models.RoofEstimate{
				AreaSqm:    detection.RoofArea,
				Provenance: models.ProvenanceDetected,
				Confidence: detection.ConfidenceScore,
			}
		}
		slog.Warn("Roof detection unavailable, using building-type default",
			"building_type", req.BuildingType, "error", err)
	}

	area, ok := defaultRoofAreas[req.BuildingType]
	if !ok {
		area = defaultRoofAreas[models.BuildingResidential]
	}

	return models.RoofEstimate{
		AreaSqm:    area,
		Provenance: models.ProvenanceEstimated,
		Confidence: fallbackRoofConfidence,
	}
}
